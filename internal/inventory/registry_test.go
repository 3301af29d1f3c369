package inventory

import (
	"errors"
	"testing"
	"time"

	"kasap-backend/internal/models"
)

func newBatch(id string, weightKg float64) models.CarcassBatch {
	return models.CarcassBatch{
		ID:                id,
		SourceFarm:        "Test Farm",
		DateReceived:      time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC),
		InitialWeightKg:   weightKg,
		RemainingWeightKg: weightKg,
	}
}

func TestRegistryAddAndGet(t *testing.T) {
	r := NewBatchRegistry()
	if err := r.Add(newBatch("b1", 85.5)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := r.Get("b1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.BatchActive {
		t.Errorf("status = %s, want ACTIVE", got.Status)
	}
	if got.InitialWeightKg != 85.5 {
		t.Errorf("initialWeight = %v, want 85.5", got.InitialWeightKg)
	}
}

func TestRegistryAddRejectsDuplicate(t *testing.T) {
	r := NewBatchRegistry()
	if err := r.Add(newBatch("b1", 85.5)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(newBatch("b1", 92.0)); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Add error = %v, want ErrAlreadyExists", err)
	}
}

func TestRegistryAddRejectsInvalid(t *testing.T) {
	r := NewBatchRegistry()
	if err := r.Add(newBatch("", 85.5)); !errors.Is(err, ErrInvalidDelta) {
		t.Errorf("boş ID: %v, want ErrInvalidDelta", err)
	}
	if err := r.Add(newBatch("b1", 0)); !errors.Is(err, ErrInvalidDelta) {
		t.Errorf("sıfır ağırlık: %v, want ErrInvalidDelta", err)
	}
	if err := r.Add(newBatch("b2", -10)); !errors.Is(err, ErrInvalidDelta) {
		t.Errorf("negatif ağırlık: %v, want ErrInvalidDelta", err)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewBatchRegistry()
	if _, err := r.Get("yok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestRegistryListActiveInsertionOrder(t *testing.T) {
	r := NewBatchRegistry()
	for _, id := range []string{"b3", "b1", "b2"} {
		if err := r.Add(newBatch(id, 80)); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
	if _, err := r.MarkDepleted("b1"); err != nil {
		t.Fatalf("MarkDepleted: %v", err)
	}

	active := r.ListActive()
	if len(active) != 2 {
		t.Fatalf("len(active) = %d, want 2", len(active))
	}
	// Kayıt sırası korunur, sözlük sırası değil.
	if active[0].ID != "b3" || active[1].ID != "b2" {
		t.Errorf("active order = [%s %s], want [b3 b2]", active[0].ID, active[1].ID)
	}

	all := r.List()
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].ID != "b3" || all[1].ID != "b1" || all[2].ID != "b2" {
		t.Errorf("list order = [%s %s %s], want [b3 b1 b2]", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestRegistryMarkDepletedOneShot(t *testing.T) {
	r := NewBatchRegistry()
	if err := r.Add(newBatch("b1", 85.5)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	depleted, err := r.MarkDepleted("b1")
	if err != nil {
		t.Fatalf("MarkDepleted: %v", err)
	}
	if depleted.Status != models.BatchDepleted {
		t.Errorf("status = %s, want DEPLETED", depleted.Status)
	}
	if depleted.RemainingWeightKg != 0 {
		t.Errorf("remainingWeight = %v, want 0", depleted.RemainingWeightKg)
	}

	// İkinci çağrı sessizce yutulmaz.
	if _, err := r.MarkDepleted("b1"); !errors.Is(err, ErrAlreadyDepleted) {
		t.Errorf("ikinci MarkDepleted = %v, want ErrAlreadyDepleted", err)
	}
}

func TestRegistryMarkDepletedUnknown(t *testing.T) {
	r := NewBatchRegistry()
	if _, err := r.MarkDepleted("yok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkDepleted = %v, want ErrNotFound", err)
	}
}
