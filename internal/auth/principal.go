package auth

import "github.com/gin-gonic/gin"

const principalKey = "principal"

// Principal is the authenticated identity attached to one request. It lives
// only for the request's lifetime and is never persisted.
type Principal struct {
	ID       int64
	Email    string
	Role     string
	SellerID int64 // 0 when the user has no seller profile
}

func (p Principal) IsAdmin() bool  { return p.Role == "admin" }
func (p Principal) IsSeller() bool { return p.Role == "seller" }

// OwnsSeller reports whether the principal owns the given seller profile.
// Admins pass every ownership check.
func (p Principal) OwnsSeller(sellerID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.SellerID != 0 && p.SellerID == sellerID
}

// SetPrincipal attaches the principal to the gin context for downstream handlers.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the request's principal, if authentication ran.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
