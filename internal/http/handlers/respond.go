package handlers

import (
	"net/http"
	"strconv"

	"marketplace/internal/domain"
	"marketplace/internal/http/middleware"
	"marketplace/internal/utils"

	"github.com/gin-gonic/gin"
)

// writeError is the single place a domain error becomes a wire response.
// The envelope is {"message": text}; internals are logged, not detailed.
func writeError(c *gin.Context, err error) {
	status := domain.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
	}
	c.JSON(status, gin.H{"message": domain.PublicMessage(err)})
}

// pathID parses a numeric path parameter, returning 0 when it is not a
// positive integer.
func pathID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
