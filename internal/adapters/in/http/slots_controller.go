package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/utils"
)

// GET /api/v1/slots?doctorId=...&clinicId=...&date=2026-09-01
// The date parameter also accepts datetime forms; only the calendar day in
// the clinic's timezone is used.
func (c *Controller) resolveSlots(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Query("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}
	clinicID, err := uuid.Parse(ctx.Query("clinicId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid clinic ID format"})
		return
	}
	parsed, err := utils.ParseDate(ctx.Query("date"), c.cfg.Location())
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid date: %w", domain.ErrValidation))
		return
	}
	date := json_types.DateOf(parsed)

	daySlots, err := c.slotResolver.ResolveDaySlots(ctx.Request.Context(), doctorID, clinicID, date)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, daySlots)
}
