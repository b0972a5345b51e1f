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

var SellerSchema = validation.Schema{Fields: []validation.Field{
	{Name: "store_name", Required: true, Type: validation.TypeString, MinLen: 3, MaxLen: 100},
	{Name: "description", Type: validation.TypeString, MaxLen: 1000},
	{Name: "campus", Type: validation.TypeString, MaxLen: 100},
	{Name: "phone", Type: validation.TypeString, MaxLen: 30},
}}

// SellerUpdateSchema is the partial-update variant: same bounds, nothing required.
var SellerUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "store_name", Type: validation.TypeString, MinLen: 3, MaxLen: 100},
	{Name: "description", Type: validation.TypeString, MaxLen: 1000},
	{Name: "campus", Type: validation.TypeString, MaxLen: 100},
	{Name: "phone", Type: validation.TypeString, MaxLen: 30},
}}

type SellersHandler struct {
	Sellers  repositories.SellersRepository
	Users    repositories.UsersRepository
	ProductsRepo repositories.ProductsRepository
}

func (h SellersHandler) service(c *gin.Context) services.SellerService {
	return services.SellerService{
		Sellers:   h.Sellers,
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/sellers
func (h SellersHandler) Register(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	body := middleware.ValidatedBody(c)
	profile := models.Seller{
		StoreName: body["store_name"].(string),
	}
	if v, ok := body["description"].(string); ok {
		profile.Description = v
	}
	if v, ok := body["campus"].(string); ok {
		profile.Campus = v
	}
	if v, ok := body["phone"].(string); ok {
		profile.Phone = v
	}

	created, err := h.service(c).Register(p.ID, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"seller": created})
}

// GET /api/sellers/:id
func (h SellersHandler) Get(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	seller, err := h.Sellers.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller": seller})
}

// PUT /api/sellers/:id — auth + seller role + ownership enforced by the route chain.
func (h SellersHandler) Update(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	body := middleware.ValidatedBody(c)
	profile := models.Seller{}
	if v, ok := body["store_name"].(string); ok {
		profile.StoreName = v
	}
	if v, ok := body["description"].(string); ok {
		profile.Description = v
	}
	if v, ok := body["campus"].(string); ok {
		profile.Campus = v
	}
	if v, ok := body["phone"].(string); ok {
		profile.Phone = v
	}

	updated, err := h.service(c).Update(id, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller": updated})
}

// GET /api/sellers/:id/products
func (h SellersHandler) Products(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	if _, err := h.Sellers.FindByID(id); err != nil {
		writeError(c, err)
		return
	}

	products, err := h.ProductsRepo.ListBySeller(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
