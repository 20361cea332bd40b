package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"gorm.io/gorm"
)

func (p *PostgresAdapter) GetScheduleForWeekday(ctx context.Context, doctorID, clinicID uuid.UUID, weekday time.Weekday) (*domain.DoctorSchedule, error) {
	var schedule domain.DoctorSchedule
	err := p.db.WithContext(ctx).
		Where("doctor_id = ? AND clinic_id = ? AND weekday = ? AND active", doctorID, clinicID, int(weekday)).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No rule for that weekday is an expected empty result.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (p *PostgresAdapter) ListSchedules(ctx context.Context, doctorID, clinicID uuid.UUID) ([]domain.DoctorSchedule, error) {
	var schedules []domain.DoctorSchedule
	err := p.db.WithContext(ctx).
		Where("doctor_id = ? AND clinic_id = ?", doctorID, clinicID).
		Order("weekday").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (p *PostgresAdapter) SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	return p.db.WithContext(ctx).Save(schedule).Error
}

func (p *PostgresAdapter) ListLeaves(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.DoctorLeave, error) {
	var leaves []domain.DoctorLeave
	err := p.db.WithContext(ctx).
		Where("doctor_id = ? AND clinic_id = ? AND leave_date = ?", doctorID, clinicID, date.String()).
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

func (p *PostgresAdapter) SaveLeave(ctx context.Context, leave *domain.DoctorLeave) error {
	return p.db.WithContext(ctx).Save(leave).Error
}
