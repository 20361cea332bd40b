package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"gorm.io/gorm"
)

func (p *PostgresAdapter) ListBatches(ctx context.Context, clinicID, medicineID uuid.UUID) ([]domain.MedicineBatch, error) {
	var batches []domain.MedicineBatch
	err := p.db.WithContext(ctx).
		Where("clinic_id = ? AND medicine_id = ?", clinicID, medicineID).
		Order("expiry_date").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// UpdateBatchQuantities applies a FEFO deduction in one transaction so a
// failure midway never leaves a partial deduction behind.
func (p *PostgresAdapter) UpdateBatchQuantities(ctx context.Context, batches []domain.MedicineBatch) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range batches {
			err := tx.Model(&domain.MedicineBatch{}).
				Where("id = ?", batch.ID).
				Update("quantity", batch.Quantity).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
