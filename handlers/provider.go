package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	availabilityRepo "slotwise/database/repository/availability"
	"slotwise/models"
)

var AvailabilityRepo availabilityRepo.AvailabilityRepository

// CreateProvider registers a new provider.
func CreateProvider(c *gin.Context) {
	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if provider.Name == "" || provider.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}
	if provider.Timezone == "" {
		provider.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(provider.Timezone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown timezone", "details": provider.Timezone})
		return
	}
	if provider.Service.DurationMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service duration must be positive"})
		return
	}

	provider.ID = uuid.New().String()
	provider.CreatedAt = time.Now()

	if err := ProviderRepo.Create(c.Request.Context(), &provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create provider", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// GetProvider fetches one provider record.
func GetProvider(c *gin.Context) {
	provider, err := ProviderRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, provider)
}

// UpdateCalendarConnection stores or replaces the provider's external
// calendar link.
func UpdateCalendarConnection(c *gin.Context) {
	var conn models.CalendarConnection
	if err := c.ShouldBindJSON(&conn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	conn.SyncedAt = time.Now()

	if err := ProviderRepo.UpdateCalendar(c.Request.Context(), c.Param("id"), conn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update calendar connection", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// GetAvailabilityRules lists a provider's weekly working-hour rules.
func GetAvailabilityRules(c *gin.Context) {
	rules, err := AvailabilityRepo.GetRules(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rules", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ReplaceAvailabilityRules swaps the provider's full rule set.
func ReplaceAvailabilityRules(c *gin.Context) {
	providerID := c.Param("id")
	var input struct {
		Rules []models.AvailabilityRule `json:"rules"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	for i := range input.Rules {
		r := &input.Rules[i]
		if err := validateRule(r); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule", "details": err.Error()})
			return
		}
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		r.ProviderID = providerID
	}

	if err := AvailabilityRepo.ReplaceRules(c.Request.Context(), providerID, input.Rules); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store rules", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": input.Rules})
}

// GetBlackoutRanges lists a provider's blackout date ranges.
func GetBlackoutRanges(c *gin.Context) {
	ranges, err := AvailabilityRepo.GetBlackouts(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch blackouts", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": ranges})
}

// ReplaceBlackoutRanges swaps the provider's full blackout list.
func ReplaceBlackoutRanges(c *gin.Context) {
	providerID := c.Param("id")
	var input struct {
		Blackouts []models.BlackoutRange `json:"blackouts"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	for i := range input.Blackouts {
		b := &input.Blackouts[i]
		if err := validateBlackout(b); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blackout range", "details": err.Error()})
			return
		}
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		b.ProviderID = providerID
	}

	if err := AvailabilityRepo.ReplaceBlackouts(c.Request.Context(), providerID, input.Blackouts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store blackouts", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": input.Blackouts})
}

func validateRule(r *models.AvailabilityRule) error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d out of range", r.DayOfWeek)
	}
	if _, err := time.Parse("15:04", r.StartTime); err != nil {
		return fmt.Errorf("start_time %q is not HH:MM", r.StartTime)
	}
	if _, err := time.Parse("15:04", r.EndTime); err != nil {
		return fmt.Errorf("end_time %q is not HH:MM", r.EndTime)
	}
	if r.StartTime >= r.EndTime {
		return fmt.Errorf("start_time %s must precede end_time %s", r.StartTime, r.EndTime)
	}
	return nil
}

func validateBlackout(b *models.BlackoutRange) error {
	if _, err := time.Parse("2006-01-02", b.StartDate); err != nil {
		return fmt.Errorf("start_date %q is not YYYY-MM-DD", b.StartDate)
	}
	if _, err := time.Parse("2006-01-02", b.EndDate); err != nil {
		return fmt.Errorf("end_date %q is not YYYY-MM-DD", b.EndDate)
	}
	if b.StartDate > b.EndDate {
		return fmt.Errorf("start_date %s must not follow end_date %s", b.StartDate, b.EndDate)
	}
	return nil
}
