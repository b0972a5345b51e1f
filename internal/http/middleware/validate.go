package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	validatedBodyKey   = "validated_body"
	validatedParamsKey = "validated_params"
	validatedQueryKey  = "validated_query"
)

// ValidateBody validates the JSON body against the schema. On success the
// normalized map is stored in the context for the handler; on failure the
// chain stops with a 400 carrying the joined field messages.
func ValidateBody(schema validation.Schema, opts validation.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input map[string]any
		if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		runSchema(c, schema, opts, input, validatedBodyKey)
	}
}

// ValidateParams validates path parameters.
func ValidateParams(schema validation.Schema, opts validation.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		input := make(map[string]any, len(c.Params))
		for _, p := range c.Params {
			input[p.Key] = p.Value
		}
		runSchema(c, schema, opts, input, validatedParamsKey)
	}
}

// ValidateQuery validates the query string (first value per key).
func ValidateQuery(schema validation.Schema, opts validation.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		values := c.Request.URL.Query()
		input := make(map[string]any, len(values))
		for key, vals := range values {
			if len(vals) > 0 {
				input[key] = vals[0]
			}
		}
		runSchema(c, schema, opts, input, validatedQueryKey)
	}
}

func runSchema(c *gin.Context, schema validation.Schema, opts validation.Options, input map[string]any, key string) {
	normalized, fieldErrs := schema.Validate(input, opts)
	if len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fe.Message)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": strings.Join(msgs, ", ")})
		return
	}
	c.Set(key, normalized)
	c.Next()
}

// ValidatedBody returns the normalized body produced by ValidateBody.
func ValidatedBody(c *gin.Context) map[string]any {
	return validatedMap(c, validatedBodyKey)
}

// ValidatedParams returns the normalized path params produced by ValidateParams.
func ValidatedParams(c *gin.Context) map[string]any {
	return validatedMap(c, validatedParamsKey)
}

// ValidatedQuery returns the normalized query produced by ValidateQuery.
func ValidatedQuery(c *gin.Context) map[string]any {
	return validatedMap(c, validatedQueryKey)
}

func validatedMap(c *gin.Context, key string) map[string]any {
	if v, ok := c.Get(key); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}
