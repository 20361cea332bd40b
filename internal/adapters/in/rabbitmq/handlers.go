package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

type AppointmentMessage struct {
	DoctorID uuid.UUID       `json:"doctorId"`
	ClinicID uuid.UUID       `json:"clinicId"`
	Date     json_types.Date `json:"date"`
}

type ScheduleMessage struct {
	DoctorID uuid.UUID `json:"doctorId"`
	ClinicID uuid.UUID `json:"clinicId"`
}

type LeaveMessage struct {
	DoctorID  uuid.UUID       `json:"doctorId"`
	ClinicID  uuid.UUID       `json:"clinicId"`
	LeaveDate json_types.Date `json:"leaveDate"`
}

// A booking elsewhere changed one day's availability.
func (l *CacheHitListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg)
	if err != nil {
		return err
	}
	if routingKey.ResourceType != CacheHitResourceTypeAppointment {
		return nil
	}

	var msgJson AppointmentMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"doctorId": msgJson.DoctorID,
		"date":     msgJson.Date.String(),
		"action":   routingKey.Action,
	})

	l.useCase.InvalidateDaySlots(ctx, msgJson.DoctorID, msgJson.ClinicID, msgJson.Date)

	return nil
}

// A rule change invalidates every cached day of the doctor: the weekday
// pattern may have moved.
func (l *CacheHitListener) processScheduleMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg)
	if err != nil {
		return err
	}
	if routingKey.ResourceType != CacheHitResourceTypeSchedule {
		return nil
	}

	var msgJson ScheduleMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("schedule.message.received", out.LogFields{
		"doctorId": msgJson.DoctorID,
		"action":   routingKey.Action,
	})

	// A bulk rule import publishes without a doctor id; everything cached
	// is suspect then.
	if msgJson.DoctorID == uuid.Nil {
		l.useCase.InvalidateAllSlots(ctx)
		return nil
	}

	l.useCase.InvalidateDoctorSlots(ctx, msgJson.DoctorID, msgJson.ClinicID)

	return nil
}

func (l *CacheHitListener) processLeaveMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg)
	if err != nil {
		return err
	}
	if routingKey.ResourceType != CacheHitResourceTypeLeave {
		return nil
	}

	var msgJson LeaveMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("leave.message.received", out.LogFields{
		"doctorId": msgJson.DoctorID,
		"date":     msgJson.LeaveDate.String(),
		"action":   routingKey.Action,
	})

	l.useCase.InvalidateDaySlots(ctx, msgJson.DoctorID, msgJson.ClinicID, msgJson.LeaveDate)

	return nil
}
