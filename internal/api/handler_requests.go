package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-marketplace-backend/internal/store"
)

// GetRequests handles GET /api/requests: the trucker's incoming load queue.
func (h *Handler) GetRequests(c *gin.Context) {
	requests, err := h.store.ListRequests(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

type decisionRequest struct {
	Decision store.Decision `json:"decision" binding:"required"`
}

// RespondToRequest handles POST /api/requests/:booking_id/decision. Accept
// moves the request into the active ledger; decline discards it.
func (h *Handler) RespondToRequest(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.RespondToRequest(c.Request.Context(), c.Param("booking_id"), req.Decision)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if booking == nil {
		c.JSON(http.StatusOK, gin.H{"declined": c.Param("booking_id")})
		return
	}
	c.JSON(http.StatusOK, booking)
}
