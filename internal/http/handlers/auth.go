package handlers

import (
	"net/http"
	"strings"

	"marketplace/internal/auth"
	"marketplace/internal/domain"
	"marketplace/internal/domain/models"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

// RegisterSchema validates the multi-field registration form; all problems
// are reported at once, so wire it with AbortEarly off.
var RegisterSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Required: true, Type: validation.TypeString, MinLen: 2, MaxLen: 100},
	{Name: "email", Required: true, Type: validation.TypeString, MinLen: 5, MaxLen: 190},
	{Name: "password", Required: true, Type: validation.TypeString, MinLen: 8, MaxLen: 72},
	{Name: "phone", Type: validation.TypeString, MaxLen: 30},
}}

var LoginSchema = validation.Schema{Fields: []validation.Field{
	{Name: "email", Required: true, Type: validation.TypeString},
	{Name: "password", Required: true, Type: validation.TypeString},
}}

type AuthHandler struct {
	Users  repositories.UsersRepository
	Hasher auth.PasswordHasher
	Tokens auth.TokenManager
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	body := middleware.ValidatedBody(c)
	email := strings.ToLower(body["email"].(string))
	if !strings.Contains(email, "@") {
		writeError(c, domain.ValidationError{Fields: []domain.FieldError{
			{Field: "email", Message: "email must be a valid email address"},
		}})
		return
	}

	hash, err := h.Hasher.Hash(body["password"].(string))
	if err != nil {
		writeError(c, domain.InternalError{Msg: "hash password", Err: err})
		return
	}

	user := models.User{
		Name:         body["name"].(string),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	if phone, ok := body["phone"].(string); ok {
		user.Phone = phone
	}

	created, err := h.Users.Create(user)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", created.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    created.ToPublic(),
	})
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	body := middleware.ValidatedBody(c)
	email := strings.ToLower(body["email"].(string))
	password := body["password"].(string)

	// A missing user and a wrong password answer identically so the
	// endpoint cannot be used to discover which emails exist.
	user, err := h.Users.FindByEmail(email)
	if err != nil {
		writeError(c, domain.UnauthenticatedError{Msg: "invalid email or password", Err: err})
		return
	}
	if !h.Hasher.Verify(password, user.PasswordHash) {
		writeError(c, domain.UnauthenticatedError{Msg: "invalid email or password"})
		return
	}

	if h.Hasher.NeedsUpgrade(user.PasswordHash) {
		if rehash, err := h.Hasher.Hash(password); err == nil {
			_ = h.Users.UpdatePasswordHash(user.ID, rehash)
		}
	}

	token, err := h.Tokens.Issue(user.ID, user.Role, user.SellerID)
	if err != nil {
		writeError(c, domain.InternalError{Msg: "issue token", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.ToPublic(),
	})
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		writeError(c, domain.UnauthenticatedError{})
		return
	}

	user, err := h.Users.FindByID(p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToPublic()})
}
