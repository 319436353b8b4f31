package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-marketplace-backend/internal/freight"
	"freight-marketplace-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// abortWithError maps engine errors onto HTTP statuses: validation failures
// are 400, unknown ids 404, illegal status transitions 409, anything else 500.
func abortWithError(c *gin.Context, err error) {
	var (
		nf *freight.NotFoundError
		ve *freight.ValidationError
		te *freight.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &te):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
