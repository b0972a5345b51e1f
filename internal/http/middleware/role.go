package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"marketplace/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireRoles is the role-based authorization guard. Only principals whose
// role is in allowedRoles proceed. RequireAuth must run earlier in the
// chain; a request without a principal is a 401, a wrong role a 403.
// Example:
//
//	r.DELETE("/products/:id", RequireAuth(tokens, users), RequireRoles("seller", "admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := auth.GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(p.Role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}

		c.Next()
	}
}

// RequireSellerOwner checks that the principal owns the seller profile named
// by the given path param. Runs after RequireAuth and any role check, so the
// cheap checks fail first. Admins bypass ownership.
func RequireSellerOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
			return
		}

		sellerID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || sellerID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": param + " must be a number"})
			return
		}

		if !p.OwnsSeller(sellerID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}

		c.Next()
	}
}
