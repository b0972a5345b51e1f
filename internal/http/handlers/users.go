package handlers

import (
	"net/http"

	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

var UpdateRoleSchema = validation.Schema{Fields: []validation.Field{
	{Name: "role", Required: true, Type: validation.TypeEnum, Enum: []string{
		models.RoleCustomer, models.RoleSeller, models.RoleAdmin,
	}},
}}

// UsersHandler is admin-only user management.
type UsersHandler struct {
	Users repositories.UsersRepository
}

// GET /api/users
func (h UsersHandler) List(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// GET /api/users/:id
func (h UsersHandler) Get(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	user, err := h.Users.FindByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}

// PUT /api/users/:id/role
func (h UsersHandler) UpdateRole(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	body := middleware.ValidatedBody(c)
	role := body["role"].(string)

	if err := h.Users.UpdateRole(id, role); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// DELETE /api/users/:id
func (h UsersHandler) Delete(c *gin.Context) {
	id := pathID(c, "id")
	if id == 0 {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Message: "id must be a number"},
		}})
		return
	}

	if err := h.Users.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
