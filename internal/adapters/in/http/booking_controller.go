package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
)

type BookAppointmentRequest struct {
	DoctorID      uuid.UUID `json:"doctorId" binding:"required" validate:"required"`
	ClinicID      uuid.UUID `json:"clinicId" binding:"required" validate:"required"`
	Date          string    `json:"date" binding:"required" validate:"required"`
	SlotStartTime string    `json:"slotStartTime" binding:"required" validate:"required"`
	PatientName   string    `json:"patientName" binding:"required" validate:"required,min=2,max=120"`
	PatientPhone  string    `json:"patientPhone" binding:"required" validate:"required,min=7,max=20"`
}

func (c *Controller) bookAppointment(ctx *gin.Context) {
	var req BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := json_types.ParseDate(req.Date)
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid date: %w", domain.ErrValidation))
		return
	}
	slotStart, err := json_types.ParseTimeOfDay(req.SlotStartTime)
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid slot start time: %w", domain.ErrValidation))
		return
	}

	appointment, err := c.booking.BookAppointment(ctx.Request.Context(), in.BookingRequest{
		DoctorID:      req.DoctorID,
		ClinicID:      req.ClinicID,
		Date:          date,
		SlotStartTime: slotStart,
		PatientName:   req.PatientName,
		PatientPhone:  req.PatientPhone,
	})
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, appointment)
}

func (c *Controller) checkIn(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("appointmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	if err := c.booking.CheckIn(ctx.Request.Context(), appointmentID); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": string(domain.AppointmentStatusCheckedIn)})
}

func (c *Controller) completeAppointment(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("appointmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	if err := c.booking.CompleteAppointment(ctx.Request.Context(), appointmentID); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": string(domain.AppointmentStatusCompleted)})
}

func (c *Controller) cancelAppointment(ctx *gin.Context) {
	appointmentID, err := uuid.Parse(ctx.Param("appointmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID format"})
		return
	}

	if err := c.booking.CancelAppointment(ctx.Request.Context(), appointmentID); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": string(domain.AppointmentStatusCancelled)})
}

// GET /api/v1/queue?doctorId=...&clinicId=...&date=2026-09-01
func (c *Controller) queueSnapshot(ctx *gin.Context) {
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
	date, err := json_types.ParseDate(ctx.Query("date"))
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid date: %w", domain.ErrValidation))
		return
	}

	snapshot, err := c.booking.QueueSnapshot(ctx.Request.Context(), doctorID, clinicID, date)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}
