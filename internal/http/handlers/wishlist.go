package handlers

import (
	"net/http"

	"marketplace/internal/auth"
	"marketplace/internal/domain"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

var WishlistAddSchema = validation.Schema{Fields: []validation.Field{
	{Name: "product_id", Required: true, Type: validation.TypeInt, Min: validation.Num(1)},
}}

type WishlistHandler struct {
	Wishlist repositories.WishlistRepository
	Products repositories.ProductsRepository
}

// GET /api/wishlist
func (h WishlistHandler) List(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	items, err := h.Wishlist.ListByUser(p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// POST /api/wishlist — idempotent; re-adding a listed product succeeds.
func (h WishlistHandler) Add(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	body := middleware.ValidatedBody(c)
	productID := body["product_id"].(int64)

	if _, err := h.Products.FindByID(productID); err != nil {
		writeError(c, err)
		return
	}
	if err := h.Wishlist.Add(p.ID, productID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "added to wishlist"})
}

// DELETE /api/wishlist/:productId
func (h WishlistHandler) Remove(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	productID := pathID(c, "productId")
	if productID == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "productId", Message: "productId must be a number"},
		}})
		return
	}

	if err := h.Wishlist.Remove(p.ID, productID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}
