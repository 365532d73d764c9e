package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/booking"
)

var BookingService booking.Service

type createBookingInput struct {
	ProviderID        string   `json:"providerId"`
	TeamID            string   `json:"teamId"`
	MemberIDs         []string `json:"memberIds"`
	RequiredMemberIDs []string `json:"requiredMemberIds"`
	ClientEmail       string   `json:"clientEmail" binding:"required"`
	Start             string   `json:"start" binding:"required"`
	DurationMinutes   int      `json:"durationMinutes" binding:"required"`
	BufferMinutes     int      `json:"bufferMinutes"`
	Timezone          string   `json:"timezone"`
	MinRequired       int      `json:"minRequired"`
	Mode              string   `json:"mode"`
	Notes             string   `json:"notes"`
}

// CreateBooking confirms a booking against a chosen slot.
func CreateBooking(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, input.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339", "details": err.Error()})
		return
	}

	req := booking.CreateRequest{
		ProviderID:        input.ProviderID,
		TeamID:            input.TeamID,
		MemberIDs:         input.MemberIDs,
		RequiredMemberIDs: input.RequiredMemberIDs,
		ClientEmail:       input.ClientEmail,
		Start:             start,
		Service: models.ServiceConfig{
			DurationMinutes: input.DurationMinutes,
			BufferMinutes:   input.BufferMinutes,
		},
		Timezone:    input.Timezone,
		MinRequired: input.MinRequired,
		Mode:        input.Mode,
		Notes:       input.Notes,
	}

	created, assigned, err := BookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case availability.IsInvalidInput(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking request", "details": err.Error()})
		case errors.Is(err, booking.ErrSlotUnavailable), errors.Is(err, booking.ErrSlotHeld):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":           created,
		"assignedProviders": assigned,
	})
}

// CancelBooking cancels a booking that has not yet started.
func CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if err := BookingService.CancelBooking(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, booking.ErrBookingStarted) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
