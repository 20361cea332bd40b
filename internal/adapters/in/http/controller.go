package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

type Controller struct {
	slotResolver  in.SlotResolverUseCase
	booking       in.BookingUseCase
	scheduleAdmin in.ScheduleAdminUseCase
	pharmacy      in.PharmacyUseCase
	cfg           *config.Config
	validate      *validator.Validate
	logger        out.LoggerPort
}

func NewController(
	slotResolver in.SlotResolverUseCase,
	booking in.BookingUseCase,
	scheduleAdmin in.ScheduleAdminUseCase,
	pharmacy in.PharmacyUseCase,
	cfg *config.Config,
	logger out.LoggerPort,
) *Controller {
	return &Controller{
		slotResolver:  slotResolver,
		booking:       booking,
		scheduleAdmin: scheduleAdmin,
		pharmacy:      pharmacy,
		cfg:           cfg,
		validate:      validator.New(),
		logger:        logger.WithModule("HttpController"),
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/slots", c.resolveSlots)

		api.POST("/appointments", c.bookAppointment)
		api.POST("/appointments/:appointmentId/check-in", c.checkIn)
		api.POST("/appointments/:appointmentId/complete", c.completeAppointment)
		api.POST("/appointments/:appointmentId/cancel", c.cancelAppointment)
		api.GET("/queue", c.queueSnapshot)

		api.GET("/schedules", c.listSchedules)
		api.PUT("/schedules", c.upsertSchedule)
		api.POST("/leaves", c.createLeave)
		api.GET("/leaves/affected-appointments", c.affectedAppointments)
		api.POST("/doctors", c.registerDoctor)

		api.POST("/pharmacy/deduct", c.deductStock)
	}
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotUnavailable), errors.Is(err, domain.ErrScheduleConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.logger.Error("http.internal_error", out.LogFields{
			"path":  ctx.FullPath(),
			"error": err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (c *Controller) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
