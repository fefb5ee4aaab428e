package handlers

import (
	"errors"
	"log"
	"net/http"

	"todoapi/internal/middleware"
	"todoapi/internal/store"

	"github.com/gin-gonic/gin"
)

// respondError maps store failures onto status codes.
func respondError(c *gin.Context, err error) {
	var notFound *store.NotFoundError
	var invalid *store.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": invalid.Error()})
	default:
		log.Printf("request_id=%s method=%s path=%s error=%v",
			middleware.RequestIDFromContext(c), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func respondBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
