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

// ProductSchema covers creation. price and stock_quantity arrive from the
// storefront as strings or numbers; the validator coerces and rejects
// non-numeric input at the field level.
var ProductSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Required: true, Type: validation.TypeString, MinLen: 3, MaxLen: 150},
	{Name: "description", Type: validation.TypeString, MaxLen: 2000},
	{Name: "price", Required: true, Type: validation.TypeNumber, Min: validation.Num(0)},
	{Name: "stock_quantity", Required: true, Type: validation.TypeInt, Min: validation.Num(0)},
	{Name: "category_id", Required: true, Type: validation.TypeInt, Min: validation.Num(1)},
	{Name: "condition", Required: true, Type: validation.TypeEnum, Enum: []string{
		models.ConditionNew, models.ConditionLikeNew, models.ConditionUsed,
	}},
	{Name: "image_url", Type: validation.TypeString, MaxLen: 500},
}}

var ProductUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Type: validation.TypeString, MinLen: 3, MaxLen: 150},
	{Name: "description", Type: validation.TypeString, MaxLen: 2000},
	{Name: "price", Type: validation.TypeNumber, Min: validation.Num(0)},
	{Name: "stock_quantity", Type: validation.TypeInt, Min: validation.Num(0)},
	{Name: "category_id", Type: validation.TypeInt, Min: validation.Num(1)},
	{Name: "condition", Type: validation.TypeEnum, Enum: []string{
		models.ConditionNew, models.ConditionLikeNew, models.ConditionUsed,
	}},
	{Name: "image_url", Type: validation.TypeString, MaxLen: 500},
}}

var ProductListQuerySchema = validation.Schema{Fields: []validation.Field{
	{Name: "category_id", Type: validation.TypeInt, Min: validation.Num(1)},
}}

type ProductsHandler struct {
	Products   repositories.ProductsRepository
	Categories repositories.CategoriesRepository
}

// GET /api/products?category_id=3
func (h ProductsHandler) List(c *gin.Context) {
	query := middleware.ValidatedQuery(c)

	var categoryID int64
	if v, ok := query["category_id"].(int64); ok {
		categoryID = v
	}

	products, err := h.Products.List(categoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func (h ProductsHandler) Get(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	product, err := h.Products.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// POST /api/products — auth + seller role enforced by the route chain.
func (h ProductsHandler) Create(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}
	if p.SellerID == 0 {
		writeError(c, domain.ForbiddenError{})
		return
	}

	body := middleware.ValidatedBody(c)
	categoryID := body["category_id"].(int64)
	if _, err := h.Categories.FindByID(categoryID); err != nil {
		writeError(c, err)
		return
	}

	product := models.Product{
		SellerID:      p.SellerID,
		CategoryID:    categoryID,
		Name:          body["name"].(string),
		Price:         body["price"].(float64),
		StockQuantity: body["stock_quantity"].(int64),
		Condition:     body["condition"].(string),
	}
	if v, ok := body["description"].(string); ok {
		product.Description = v
	}
	if v, ok := body["image_url"].(string); ok {
		product.ImageURL = v
	}

	created, err := h.Products.Create(product)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": created})
}

// PUT /api/products/:id
func (h ProductsHandler) Update(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	product, err := h.Products.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !p.OwnsSeller(product.SellerID) {
		writeError(c, domain.ForbiddenError{})
		return
	}

	body := middleware.ValidatedBody(c)
	if v, ok := body["name"].(string); ok {
		product.Name = v
	}
	if v, ok := body["description"].(string); ok {
		product.Description = v
	}
	if v, ok := body["price"].(float64); ok {
		product.Price = v
	}
	if v, ok := body["stock_quantity"].(int64); ok {
		product.StockQuantity = v
	}
	if v, ok := body["condition"].(string); ok {
		product.Condition = v
	}
	if v, ok := body["image_url"].(string); ok {
		product.ImageURL = v
	}
	if v, ok := body["category_id"].(int64); ok {
		if _, err := h.Categories.FindByID(v); err != nil {
			writeError(c, err)
			return
		}
		product.CategoryID = v
	}

	if err := h.Products.Update(product); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DELETE /api/products/:id — seller-owner or admin.
func (h ProductsHandler) Delete(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	product, err := h.Products.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !p.OwnsSeller(product.SellerID) {
		writeError(c, domain.ForbiddenError{})
		return
	}

	if err := h.Products.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
