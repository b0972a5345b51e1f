package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried inside marketplace access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	SellerID int64  `json:"seller_id,omitempty"`
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return TokenManager{Secret: secret, TTL: ttl}
}

// Issue signs a token whose subject is the user id.
func (m TokenManager) Issue(userID int64, role string, sellerID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
		Role:     role,
		SellerID: sellerID,
	})
	return token.SignedString(m.Secret)
}

// Parse verifies signature and expiry and returns the embedded claims plus
// the numeric user id from the subject.
func (m TokenManager) Parse(tokenString string) (*Claims, int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, 0, err
	}
	if !token.Valid {
		return nil, 0, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid token subject %q", claims.Subject)
	}
	return claims, userID, nil
}
