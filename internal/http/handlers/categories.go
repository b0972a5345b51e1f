package handlers

import (
	"net/http"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

var CategorySchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Required: true, Type: validation.TypeString, MinLen: 2, MaxLen: 80},
}}

type CategoriesHandler struct {
	Categories repositories.CategoriesRepository
	Products   repositories.ProductsRepository
}

// GET /api/categories
func (h CategoriesHandler) List(c *gin.Context) {
	categories, err := h.Categories.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GET /api/categories/:id
func (h CategoriesHandler) Get(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	category, err := h.Categories.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// POST /api/categories — admin only.
func (h CategoriesHandler) Create(c *gin.Context) {
	body := middleware.ValidatedBody(c)
	name := utils.NormalizeSpace(body["name"].(string))

	created, err := h.Categories.Create(models.Category{
		Name: name,
		Slug: utils.Slugify(name),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": created})
}

// PUT /api/categories/:id — admin only.
func (h CategoriesHandler) Update(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	body := middleware.ValidatedBody(c)
	name := utils.NormalizeSpace(body["name"].(string))

	category := models.Category{ID: id, Name: name, Slug: utils.Slugify(name)}
	if err := h.Categories.Update(category); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DELETE /api/categories/:id — admin only; refuses while products remain.
func (h CategoriesHandler) Delete(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	count, err := h.Products.CountByCategory(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		writeError(c, domain.ConflictError{Resource: "category", Msg: "category still has products"})
		return
	}

	if err := h.Categories.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
