package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// Service implements the point-of-sale stock deduction. Batches are
// consumed first-expired-first-out; the whole deduction fails when total
// usable stock is short, never partially applied.
type Service struct {
	storagePort out.StoragePort
	logger      out.LoggerPort
	now         func() time.Time
}

func NewService(storagePort out.StoragePort, logger out.LoggerPort) *Service {
	return &Service{
		storagePort: storagePort,
		logger:      logger.WithModule("PharmacyService"),
		now:         time.Now,
	}
}

func (s *Service) DeductStock(ctx context.Context, clinicID, medicineID uuid.UUID, quantity int) ([]domain.MedicineBatch, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("pharmacy.deduct: quantity must be positive: %w", domain.ErrValidation)
	}

	batches, err := s.storagePort.ListBatches(ctx, clinicID, medicineID)
	if err != nil {
		return nil, fmt.Errorf("pharmacy.deduct: %w", err)
	}

	today := json_types.DateOf(s.now())
	usable := make([]domain.MedicineBatch, 0, len(batches))
	for _, batch := range batches {
		if batch.ExpiredOn(today) || batch.Quantity <= 0 {
			continue
		}
		usable = append(usable, batch)
	}
	sortByExpiry(usable)

	remaining := quantity
	touched := make([]domain.MedicineBatch, 0)
	for _, batch := range usable {
		if remaining == 0 {
			break
		}
		take := batch.Quantity
		if take > remaining {
			take = remaining
		}
		batch.Quantity -= take
		remaining -= take
		touched = append(touched, batch)
	}

	if remaining > 0 {
		return nil, fmt.Errorf("pharmacy.deduct: short by %d units: %w", remaining, domain.ErrValidation)
	}

	if err := s.storagePort.UpdateBatchQuantities(ctx, touched); err != nil {
		return nil, fmt.Errorf("pharmacy.deduct: %w", err)
	}

	s.logger.Info("pharmacy.stock_deducted", out.LogFields{
		"medicineId": medicineID,
		"quantity":   quantity,
		"batches":    len(touched),
	})

	return touched, nil
}

func sortByExpiry(batches []domain.MedicineBatch) {
	for i := 1; i < len(batches); i++ {
		for j := i; j > 0 && batches[j].ExpiryDate.Before(batches[j-1].ExpiryDate); j-- {
			batches[j], batches[j-1] = batches[j-1], batches[j]
		}
	}
}
