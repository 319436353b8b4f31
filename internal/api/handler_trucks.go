package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-marketplace-backend/internal/store"
)

// GetTrucks handles GET /api/trucks?q=. The optional q parameter filters by
// origin, destination or vehicle model.
func (h *Handler) GetTrucks(c *gin.Context) {
	trucks, err := h.store.ListTrucks(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trucks)
}

// GetTruck handles GET /api/trucks/:truck_id.
func (h *Handler) GetTruck(c *gin.Context) {
	truck, err := h.store.GetTruck(c.Request.Context(), c.Param("truck_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

// PostTruck handles POST /api/trucks: a trucker posting a new trip.
func (h *Handler) PostTruck(c *gin.Context) {
	var in store.TripInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck, err := h.store.PostTrip(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, truck)
}

// BookTruck handles POST /api/trucks/:truck_id/bookings: a factory booking
// capacity on a truck.
func (h *Handler) BookTruck(c *gin.Context) {
	var in store.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.store.BookTruck(c.Request.Context(), c.Param("truck_id"), in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}
