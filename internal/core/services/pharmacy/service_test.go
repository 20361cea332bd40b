package pharmacy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/testutil"
)

var fixedNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func newPharmacyEnv(batches ...domain.MedicineBatch) (*Service, *testutil.MemoryStorage) {
	storage := testutil.NewMemoryStorage(nil)
	for _, batch := range batches {
		storage.Batches[batch.ID] = batch
	}
	service := NewService(storage, testutil.NopLogger{})
	service.now = func() time.Time { return fixedNow }
	return service, storage
}

func batch(clinicID, medicineID uuid.UUID, expiry json_types.Date, quantity int) domain.MedicineBatch {
	return domain.MedicineBatch{
		ID:         uuid.New(),
		MedicineID: medicineID,
		ClinicID:   clinicID,
		ExpiryDate: expiry,
		Quantity:   quantity,
	}
}

func TestDeductStockNearestExpiryFirst(t *testing.T) {
	clinicID, medicineID := uuid.New(), uuid.New()
	late := batch(clinicID, medicineID, json_types.NewDate(2026, time.June, 1), 50)
	soon := batch(clinicID, medicineID, json_types.NewDate(2025, time.June, 1), 50)
	service, storage := newPharmacyEnv(late, soon)

	touched, err := service.DeductStock(context.Background(), clinicID, medicineID, 10)
	if err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	if len(touched) != 1 || touched[0].ID != soon.ID {
		t.Fatalf("expected only the soonest-expiring batch touched, got %+v", touched)
	}
	if storage.Batches[soon.ID].Quantity != 40 {
		t.Fatalf("expected 40 left in the soon batch, got %d", storage.Batches[soon.ID].Quantity)
	}
	if storage.Batches[late.ID].Quantity != 50 {
		t.Fatalf("the later batch should be untouched, got %d", storage.Batches[late.ID].Quantity)
	}
}

func TestDeductStockSpillsAcrossBatches(t *testing.T) {
	clinicID, medicineID := uuid.New(), uuid.New()
	soon := batch(clinicID, medicineID, json_types.NewDate(2025, time.June, 1), 5)
	late := batch(clinicID, medicineID, json_types.NewDate(2026, time.June, 1), 20)
	service, storage := newPharmacyEnv(soon, late)

	touched, err := service.DeductStock(context.Background(), clinicID, medicineID, 12)
	if err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	if len(touched) != 2 {
		t.Fatalf("expected 2 batches touched, got %d", len(touched))
	}
	if storage.Batches[soon.ID].Quantity != 0 {
		t.Fatalf("the soon batch should be drained, got %d", storage.Batches[soon.ID].Quantity)
	}
	if storage.Batches[late.ID].Quantity != 13 {
		t.Fatalf("expected 13 left in the later batch, got %d", storage.Batches[late.ID].Quantity)
	}
}

func TestDeductStockSkipsExpiredBatches(t *testing.T) {
	clinicID, medicineID := uuid.New(), uuid.New()
	expired := batch(clinicID, medicineID, json_types.NewDate(2025, time.January, 1), 100)
	// A batch expiring today is already unusable.
	today := batch(clinicID, medicineID, json_types.DateOf(fixedNow), 100)
	usable := batch(clinicID, medicineID, json_types.NewDate(2025, time.June, 1), 10)
	service, storage := newPharmacyEnv(expired, today, usable)

	touched, err := service.DeductStock(context.Background(), clinicID, medicineID, 10)
	if err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	if len(touched) != 1 || touched[0].ID != usable.ID {
		t.Fatalf("expected only the usable batch touched, got %+v", touched)
	}
	if storage.Batches[expired.ID].Quantity != 100 || storage.Batches[today.ID].Quantity != 100 {
		t.Fatalf("expired stock must never be deducted")
	}
}

func TestDeductStockShortFailsWhole(t *testing.T) {
	clinicID, medicineID := uuid.New(), uuid.New()
	only := batch(clinicID, medicineID, json_types.NewDate(2025, time.June, 1), 5)
	service, storage := newPharmacyEnv(only)

	_, err := service.DeductStock(context.Background(), clinicID, medicineID, 8)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// All or nothing: the partial take is not applied.
	if storage.Batches[only.ID].Quantity != 5 {
		t.Fatalf("short deduction must leave stock untouched, got %d", storage.Batches[only.ID].Quantity)
	}
}

func TestDeductStockRejectsNonPositiveQuantity(t *testing.T) {
	service, _ := newPharmacyEnv()

	for _, quantity := range []int{0, -3} {
		if _, err := service.DeductStock(context.Background(), uuid.New(), uuid.New(), quantity); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("quantity %d: expected ErrValidation, got %v", quantity, err)
		}
	}
}

func TestDeductStockIgnoresOtherMedicines(t *testing.T) {
	clinicID := uuid.New()
	medicineID, otherID := uuid.New(), uuid.New()
	mine := batch(clinicID, medicineID, json_types.NewDate(2025, time.June, 1), 10)
	other := batch(clinicID, otherID, json_types.NewDate(2025, time.June, 1), 10)
	service, storage := newPharmacyEnv(mine, other)

	if _, err := service.DeductStock(context.Background(), clinicID, medicineID, 10); err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	if storage.Batches[other.ID].Quantity != 10 {
		t.Fatalf("another medicine's batch was touched")
	}
}
