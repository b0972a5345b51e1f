package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

var testBodySchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Required: true, Type: validation.TypeString, MinLen: 2},
	{Name: "price", Required: true, Type: validation.TypeNumber},
}}

func bodyTestRouter(opts validation.Options, captured *map[string]any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/things", ValidateBody(testBodySchema, opts), func(c *gin.Context) {
		*captured = ValidatedBody(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestValidateBodyJoinsAllMessages(t *testing.T) {
	var captured map[string]any
	r := bodyTestRouter(validation.Options{}, &captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["message"] != "name is required, price is required" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
	if captured != nil {
		t.Fatalf("handler must not run on validation failure")
	}
}

func TestValidateBodyAbortEarlySingleMessage(t *testing.T) {
	var captured map[string]any
	r := bodyTestRouter(validation.Options{AbortEarly: true}, &captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["message"] != "name is required" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestValidateBodyStoresNormalizedInput(t *testing.T) {
	var captured map[string]any
	r := bodyTestRouter(validation.Options{}, &captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things",
		strings.NewReader(`{"name":"  Desk Lamp  ","price":"19.99","extra":true}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured["name"].(string) != "Desk Lamp" {
		t.Fatalf("name not normalized: %v", captured["name"])
	}
	if captured["price"].(float64) != 19.99 {
		t.Fatalf("price not coerced: %v", captured["price"])
	}
	if _, present := captured["extra"]; present {
		t.Fatalf("unknown keys must be dropped from the facet")
	}
}

func TestValidateBodyMalformedJSONIs400(t *testing.T) {
	var captured map[string]any
	r := bodyTestRouter(validation.Options{}, &captured)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{broken`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", w.Code)
	}
	if captured != nil {
		t.Fatalf("handler must not run on malformed JSON")
	}
}

func TestValidateQueryFacet(t *testing.T) {
	schema := validation.Schema{Fields: []validation.Field{
		{Name: "category_id", Type: validation.TypeInt, Min: validation.Num(1)},
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	var captured map[string]any
	r.GET("/products", ValidateQuery(schema, validation.Options{AbortEarly: true}), func(c *gin.Context) {
		captured = ValidatedQuery(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category_id=3", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured["category_id"].(int64) != 3 {
		t.Fatalf("query not coerced: %v", captured["category_id"])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category_id=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric query value, got %d", w.Code)
	}
}

func TestValidateParamsFacet(t *testing.T) {
	schema := validation.Schema{Fields: []validation.Field{
		{Name: "id", Required: true, Type: validation.TypeInt, Min: validation.Num(1)},
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	var captured map[string]any
	r.GET("/users/:id", ValidateParams(schema, validation.Options{AbortEarly: true}), func(c *gin.Context) {
		captured = ValidatedParams(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured["id"].(int64) != 42 {
		t.Fatalf("param not coerced: %v", captured["id"])
	}
}
