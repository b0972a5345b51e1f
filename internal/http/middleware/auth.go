package middleware

import (
	"net/http"
	"strings"

	"marketplace/internal/auth"
	"marketplace/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// IdentityStore resolves a token subject to a user record.
type IdentityStore interface {
	FindByID(id int64) (models.User, error)
}

// RequireAuth is the authentication guard. It extracts the bearer token,
// verifies signature and expiry, resolves the subject via the identity
// store, and attaches the Principal to the context. Every failure is a 401
// with the same message; a missing or malformed header is never a 400.
func RequireAuth(tokens auth.TokenManager, store IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			abortUnauthenticated(c)
			return
		}

		tokenString := strings.TrimSpace(header[len(prefix):])
		if tokenString == "" {
			abortUnauthenticated(c)
			return
		}

		_, userID, err := tokens.Parse(tokenString)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		// The token proves who the caller was at issue time; role and seller
		// profile are read fresh so revocations take effect immediately.
		user, err := store.FindByID(userID)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		auth.SetPrincipal(c, auth.Principal{
			ID:       user.ID,
			Email:    user.Email,
			Role:     user.Role,
			SellerID: user.SellerID,
		})
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
}
