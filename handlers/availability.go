package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
	"slotwise/services/availability"
)

var AvailabilityEngine availability.Engine
var ProviderRepo providerRepo.ProviderRepository

// GetAvailableSlots returns the slot list for one date. Single-provider
// queries pass provider_id; team queries pass member_ids (comma separated)
// plus optional required_ids and min_required for flexible quorum.
func GetAvailableSlots(c *gin.Context) {
	memberIDs := splitCSV(c.Query("member_ids"))
	if pid := c.Query("provider_id"); pid != "" {
		memberIDs = append(memberIDs, pid)
	}
	if len(memberIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id or member_ids is required"})
		return
	}

	svc, err := resolveServiceConfig(c, memberIDs[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service config", "details": err.Error()})
		return
	}

	minRequired := 0
	if raw := c.Query("min_required"); raw != "" {
		minRequired, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_required must be an integer"})
			return
		}
	}

	q := availability.SlotQuery{
		MemberIDs:         memberIDs,
		RequiredMemberIDs: splitCSV(c.Query("required_ids")),
		Date:              c.Query("date"),
		Service:           svc,
		Timezone:          c.DefaultQuery("timezone", "UTC"),
		MinRequired:       minRequired,
		ExcludeBookingID:  c.Query("exclude_booking_id"),
		Now:               time.Now(),
	}

	slots, err := AvailabilityEngine.ListSlotsForDate(c.Request.Context(), q)
	if err != nil {
		if availability.IsInvalidInput(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": q.Date, "slots": slots})
}

// GetAvailableDates enumerates candidate bookable dates within the lookahead
// horizon for the given members.
func GetAvailableDates(c *gin.Context) {
	memberIDs := splitCSV(c.Query("member_ids"))
	if pid := c.Query("provider_id"); pid != "" {
		memberIDs = append(memberIDs, pid)
	}
	if len(memberIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id or member_ids is required"})
		return
	}

	daysAhead := 0
	if raw := c.Query("days_ahead"); raw != "" {
		var err error
		daysAhead, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days_ahead must be an integer"})
			return
		}
	}

	q := availability.DateQuery{
		MemberIDs:         memberIDs,
		RequiredMemberIDs: splitCSV(c.Query("required_ids")),
		Timezone:          c.DefaultQuery("timezone", "UTC"),
		DaysAhead:         daysAhead,
		Now:               time.Now(),
	}

	dates, err := AvailabilityEngine.ListAvailableDates(c.Request.Context(), q)
	if err != nil {
		if availability.IsInvalidInput(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// resolveServiceConfig takes duration/buffer from the query when present,
// otherwise falls back to the provider's configured service.
func resolveServiceConfig(c *gin.Context, providerID string) (models.ServiceConfig, error) {
	var svc models.ServiceConfig
	if raw := c.Query("duration_minutes"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return svc, err
		}
		svc.DurationMinutes = d
		if rawBuf := c.Query("buffer_minutes"); rawBuf != "" {
			b, err := strconv.Atoi(rawBuf)
			if err != nil {
				return svc, err
			}
			svc.BufferMinutes = b
		}
		return svc, nil
	}

	provider, err := ProviderRepo.GetByID(c.Request.Context(), providerID)
	if err != nil {
		return svc, err
	}
	return provider.Service, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
