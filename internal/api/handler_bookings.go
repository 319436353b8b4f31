package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-marketplace-backend/internal/model"
)

// GetBookings handles GET /api/bookings: the active ledger, newest first.
func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.store.ListBookings(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:booking_id, including chat history.
func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.store.GetBooking(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type updateStatusRequest struct {
	Status model.BookingStatus `json:"status" binding:"required"`
}

// UpdateBookingStatus handles PATCH /api/bookings/:booking_id/status, e.g.
// the trucker's "Confirm Pickup" and "Mark Delivered" actions.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.AdvanceStatus(c.Request.Context(), c.Param("booking_id"), req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type postMessageRequest struct {
	Sender model.SenderRole `json:"sender" binding:"required"`
	Text   string           `json:"text" binding:"required"`
}

// PostBookingMessage handles POST /api/bookings/:booking_id/messages.
func (h *Handler) PostBookingMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.store.AppendMessage(c.Request.Context(), c.Param("booking_id"), req.Sender, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetEarnings handles GET /api/earnings: totals over delivered shipments.
func (h *Handler) GetEarnings(c *gin.Context) {
	summary, err := h.store.Earnings(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
