package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/auth"
	"marketplace/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func TestCustomerOnAdminRouteIs403(t *testing.T) {
	tokens := auth.NewTokenManager([]byte("secret"), time.Hour)
	store := fakeIdentityStore{users: map[int64]models.User{
		1: {ID: 1, Email: "c@campus.edu", Role: models.RoleCustomer},
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	called := false
	r.GET("/admin", RequireAuth(tokens, store), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	token, err := tokens.Issue(1, models.RoleCustomer, 0)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	// Authentication passed, authorization failed: 403, not 401.
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if called {
		t.Fatalf("handler must not run for wrong role")
	}
}

func TestMatchingRolePasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/staff", func(c *gin.Context) {
		auth.SetPrincipal(c, auth.Principal{ID: 2, Role: models.RoleAdmin})
	}, RequireRoles(models.RoleSeller, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRoleCheckWithoutPrincipalIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", w.Code)
	}
}

func sellerOwnerRouter(p auth.Principal) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	called := false
	r.PUT("/sellers/:id", func(c *gin.Context) {
		auth.SetPrincipal(c, p)
	}, RequireSellerOwner("id"), func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})
	return r, &called
}

func TestSellerOwnerMismatchIs403(t *testing.T) {
	r, called := sellerOwnerRouter(auth.Principal{ID: 1, Role: models.RoleSeller, SellerID: 5})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/sellers/6", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if *called {
		t.Fatalf("handler must not run for a different seller's resource")
	}
}

func TestSellerOwnerMatchPasses(t *testing.T) {
	r, called := sellerOwnerRouter(auth.Principal{ID: 1, Role: models.RoleSeller, SellerID: 5})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/sellers/5", nil))

	if w.Code != http.StatusOK || !*called {
		t.Fatalf("owner should pass, got %d", w.Code)
	}
}

func TestAdminBypassesOwnership(t *testing.T) {
	r, called := sellerOwnerRouter(auth.Principal{ID: 1, Role: models.RoleAdmin})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/sellers/9", nil))

	if w.Code != http.StatusOK || !*called {
		t.Fatalf("admin should bypass ownership, got %d", w.Code)
	}
}

func TestSellerOwnerBadParamIs400(t *testing.T) {
	r, called := sellerOwnerRouter(auth.Principal{ID: 1, Role: models.RoleSeller, SellerID: 5})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/sellers/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
	if *called {
		t.Fatalf("handler must not run for a bad id")
	}
}
