package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (p *PostgresAdapter) ListAppointments(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := p.db.WithContext(ctx).
		Where("doctor_id = ? AND clinic_id = ? AND date = ?", doctorID, clinicID, date.String()).
		Order("slot_start_time, token_number").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (p *PostgresAdapter) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := p.db.WithContext(ctx).First(&appointment, "id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CreateAppointment commits a booking atomically. The governing schedule row
// is locked FOR UPDATE so two concurrent bookings for the same doctor
// serialize; the capacity count and the token sequence are both read under
// that lock. The losing writer gets ErrSlotUnavailable, never an overbooked
// slot.
func (p *PostgresAdapter) CreateAppointment(ctx context.Context, appointment *domain.Appointment, scheduleID uuid.UUID, capacity int) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var schedule domain.DoctorSchedule
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&schedule, "id = ?", scheduleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("schedule %s: %w", scheduleID, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}

		var booked int64
		err = tx.Model(&domain.Appointment{}).
			Where("doctor_id = ? AND clinic_id = ? AND date = ? AND slot_start_time = ? AND status <> ?",
				appointment.DoctorID, appointment.ClinicID, appointment.Date.String(),
				appointment.SlotStartTime.String(), domain.AppointmentStatusCancelled).
			Count(&booked).Error
		if err != nil {
			return err
		}
		if booked >= int64(capacity) {
			return domain.ErrSlotUnavailable
		}

		var maxToken int64
		err = tx.Model(&domain.Appointment{}).
			Where("clinic_id = ? AND date = ?", appointment.ClinicID, appointment.Date.String()).
			Select("COALESCE(MAX(token_number), 0)").
			Scan(&maxToken).Error
		if err != nil {
			return err
		}
		appointment.TokenNumber = int(maxToken) + 1

		return tx.Create(appointment).Error
	})
}

func (p *PostgresAdapter) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error {
	result := p.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", appointmentID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("appointment %s: %w", appointmentID, domain.ErrNotFound)
	}
	return nil
}
