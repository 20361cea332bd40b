package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

type UpsertScheduleRequest struct {
	ID                  *uuid.UUID `json:"id,omitempty"`
	DoctorID            uuid.UUID  `json:"doctorId" binding:"required" validate:"required"`
	ClinicID            uuid.UUID  `json:"clinicId" binding:"required" validate:"required"`
	Weekday             int        `json:"weekday" validate:"gte=0,lte=6"`
	StartTime           string     `json:"startTime" binding:"required" validate:"required"`
	EndTime             string     `json:"endTime" binding:"required" validate:"required"`
	SlotDurationMinutes int        `json:"slotDurationMinutes" validate:"gt=0"`
	MaxPatientsPerSlot  int        `json:"maxPatientsPerSlot" validate:"gte=1"`
	Active              bool       `json:"active"`
}

func (c *Controller) upsertSchedule(ctx *gin.Context) {
	var req UpsertScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startTime, err := json_types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid start time: %w", domain.ErrValidation))
		return
	}
	endTime, err := json_types.ParseTimeOfDay(req.EndTime)
	if err != nil {
		c.respondError(ctx, fmt.Errorf("invalid end time: %w", domain.ErrValidation))
		return
	}

	schedule := &domain.DoctorSchedule{
		DoctorID:            req.DoctorID,
		ClinicID:            req.ClinicID,
		Weekday:             time.Weekday(req.Weekday),
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxPatientsPerSlot:  req.MaxPatientsPerSlot,
		Active:              req.Active,
	}
	if req.ID != nil {
		schedule.ID = *req.ID
	}

	if err := c.scheduleAdmin.UpsertSchedule(ctx.Request.Context(), schedule); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, schedule)
}

// GET /api/v1/schedules?doctorId=...&clinicId=...
func (c *Controller) listSchedules(ctx *gin.Context) {
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

	schedules, err := c.scheduleAdmin.ListSchedules(ctx.Request.Context(), doctorID, clinicID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

type LeaveRequest struct {
	DoctorID  uuid.UUID `json:"doctorId" binding:"required" validate:"required"`
	ClinicID  uuid.UUID `json:"clinicId" binding:"required" validate:"required"`
	LeaveDate string    `json:"leaveDate" binding:"required" validate:"required"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Reason    string    `json:"reason"`
}

func (c *Controller) leaveFromRequest(req LeaveRequest) (domain.DoctorLeave, error) {
	leaveDate, err := json_types.ParseDate(req.LeaveDate)
	if err != nil {
		return domain.DoctorLeave{}, fmt.Errorf("invalid leave date: %w", domain.ErrValidation)
	}

	leave := domain.DoctorLeave{
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		LeaveDate: leaveDate,
		Reason:    req.Reason,
	}

	if req.StartTime != nil {
		startTime, err := json_types.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return domain.DoctorLeave{}, fmt.Errorf("invalid start time: %w", domain.ErrValidation)
		}
		leave.StartTime = &startTime
	}
	if req.EndTime != nil {
		endTime, err := json_types.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			return domain.DoctorLeave{}, fmt.Errorf("invalid end time: %w", domain.ErrValidation)
		}
		leave.EndTime = &endTime
	}

	return leave, nil
}

func (c *Controller) createLeave(ctx *gin.Context) {
	var req LeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leave, err := c.leaveFromRequest(req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	if err := c.scheduleAdmin.CreateLeave(ctx.Request.Context(), &leave); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, leave)
}

// GET /api/v1/leaves/affected-appointments is the check half of the leave
// check-then-commit flow.
func (c *Controller) affectedAppointments(ctx *gin.Context) {
	req := LeaveRequest{
		LeaveDate: ctx.Query("leaveDate"),
	}

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
	req.DoctorID = doctorID
	req.ClinicID = clinicID
	if start := ctx.Query("startTime"); start != "" {
		req.StartTime = &start
	}
	if end := ctx.Query("endTime"); end != "" {
		req.EndTime = &end
	}

	leave, err := c.leaveFromRequest(req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	affected, err := c.scheduleAdmin.AffectedAppointments(ctx.Request.Context(), leave)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"count":        len(affected),
		"appointments": affected,
	})
}

type RegisterDoctorRequest struct {
	Name string `json:"name" binding:"required" validate:"required"`
	Type string `json:"type" binding:"required" validate:"required,oneof=doctor dentist pharmacist"`
}

func (c *Controller) registerDoctor(ctx *gin.Context) {
	var req RegisterDoctorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := &domain.Doctor{
		Name: req.Name,
		Type: domain.ProfessionalType(req.Type),
	}

	if err := c.scheduleAdmin.RegisterDoctor(ctx.Request.Context(), doctor); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":          doctor.ID,
		"name":        doctor.Name,
		"displayName": doctor.DisplayName(),
		"type":        doctor.Type,
	})
}
