package handlers

import (
	"net/http"

	"marketplace/internal/auth"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

var MessageSchema = validation.Schema{Fields: []validation.Field{
	{Name: "seller_id", Required: true, Type: validation.TypeInt, Min: validation.Num(1)},
	{Name: "product_id", Type: validation.TypeInt, Min: validation.Num(1)},
	{Name: "body", Required: true, Type: validation.TypeString, MinLen: 1, MaxLen: 2000},
}}

type MessagesHandler struct {
	Messages repositories.MessagesRepository
	Sellers  repositories.SellersRepository
	Products repositories.ProductsRepository
}

// POST /api/messages — message a seller, optionally about a product.
func (h MessagesHandler) Create(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	body := middleware.ValidatedBody(c)
	sellerID := body["seller_id"].(int64)

	seller, err := h.Sellers.FindByID(sellerID)
	if err != nil {
		writeError(c, err)
		return
	}

	msg := models.Message{
		FromUser: p.ID,
		ToUser:   seller.UserID,
		Body:     body["body"].(string),
	}
	if v, ok := body["product_id"].(int64); ok {
		if _, err := h.Products.FindByID(v); err != nil {
			writeError(c, err)
			return
		}
		msg.ProductID = v
	}

	created, err := h.Messages.Create(msg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": created})
}

// GET /api/messages
func (h MessagesHandler) List(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	messages, err := h.Messages.ListForUser(p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
