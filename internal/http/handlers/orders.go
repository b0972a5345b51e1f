package handlers

import (
	"net/http"

	"marketplace/internal/auth"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	Orders   repositories.OrdersRepository
	Products repositories.ProductsRepository
}

type createOrderRequest struct {
	Items []services.OrderLine `json:"items"`
}

// POST /api/orders
func (h OrdersHandler) Create(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "items", Message: "invalid request body"},
		}})
		return
	}

	svc := services.OrderService{
		Orders:    h.Orders,
		Products:  h.Products,
		RequestID: middleware.GetRequestID(c),
	}
	order, err := svc.Place(p.ID, req.Items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GET /api/orders — own orders; admins see all.
func (h OrdersHandler) List(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if p.IsAdmin() {
		orders, err = h.Orders.ListAll()
	} else {
		orders, err = h.Orders.ListByUser(p.ID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id — buyer, a seller with a line in the order, or admin.
func (h OrdersHandler) Get(c *gin.Context) {
	order, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

var OrderStatusSchema = validation.Schema{Fields: []validation.Field{
	{Name: "status", Required: true, Type: validation.TypeEnum, Enum: []string{
		models.OrderPending, models.OrderPaid, models.OrderCompleted, models.OrderCancelled,
	}},
}}

// PUT /api/orders/:id/status — admins set any status; buyers may only
// cancel an order that is still pending.
func (h OrdersHandler) UpdateStatus(c *gin.Context) {
	order, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	p, _ := auth.GetPrincipal(c)
	body := middleware.ValidatedBody(c)
	status := body["status"].(string)

	if !p.IsAdmin() {
		if order.UserID != p.ID || status != models.OrderCancelled {
			writeError(c, domain.ForbiddenError{})
			return
		}
		if order.Status != models.OrderPending {
			writeError(c, domain.ConflictError{Resource: "order", Msg: "only pending orders can be cancelled"})
			return
		}
	}

	if err := h.Orders.UpdateStatus(order.ID, status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

// GET /api/orders/:id/invoice
func (h OrdersHandler) Invoice(c *gin.Context) {
	order, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	svc := services.InvoiceService{
		Orders:    h.Orders,
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.Generate(order.ID)
	if err != nil {
		writeError(c, domain.InternalError{Msg: "generate invoice", Err: err})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h OrdersHandler) loadAuthorized(c *gin.Context) (models.Order, bool) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return models.Order{}, false
	}

	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return models.Order{}, false
	}

	order, err := h.Orders.FindByID(id)
	if err != nil {
		writeError(c, err)
		return models.Order{}, false
	}

	if order.UserID != p.ID && !p.IsAdmin() && !sellsInOrder(p, order) {
		writeError(c, domain.ForbiddenError{})
		return models.Order{}, false
	}
	return order, true
}

func sellsInOrder(p auth.Principal, order models.Order) bool {
	if p.SellerID == 0 {
		return false
	}
	for _, item := range order.Items {
		if item.SellerID == p.SellerID {
			return true
		}
	}
	return false
}
