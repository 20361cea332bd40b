package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresAdapter implements the storage port on gorm/postgres.
type PostgresAdapter struct {
	db     *gorm.DB
	logger out.LoggerPort
}

func NewPostgresAdapter(cfg *config.Config, logger out.LoggerPort) (*PostgresAdapter, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsNotLocal() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
	if err != nil {
		logger.Error("postgres.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Clinic{},
		&domain.Doctor{},
		&domain.DoctorSchedule{},
		&domain.DoctorLeave{},
		&domain.Appointment{},
		&domain.MedicineBatch{},
	); err != nil {
		logger.Error("postgres.migrate.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &PostgresAdapter{
		db:     db,
		logger: logger.WithModule("PostgresAdapter"),
	}, nil
}

func (p *PostgresAdapter) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	var doctor domain.Doctor
	err := p.db.WithContext(ctx).First(&doctor, "id = ?", doctorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("doctor %s: %w", doctorID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (p *PostgresAdapter) GetClinic(ctx context.Context, clinicID uuid.UUID) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := p.db.WithContext(ctx).First(&clinic, "id = ?", clinicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("clinic %s: %w", clinicID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (p *PostgresAdapter) SaveDoctor(ctx context.Context, doctor *domain.Doctor) error {
	return p.db.WithContext(ctx).Save(doctor).Error
}
