package inventory

import (
	"fmt"
	"sync"

	"kasap-backend/internal/models"
)

// BatchRegistry: Karkas partilerinin yaşam döngüsünü tutar
// (ACTIVE -> DEPLETED, tek yönlü ve tek seferlik). Listeleme kayıt
// sırasına göredir; tarih sıralaması çağıranın işi.
type BatchRegistry struct {
	mu      sync.Mutex
	order   []string
	batches map[string]*models.CarcassBatch
}

func NewBatchRegistry() *BatchRegistry {
	return &BatchRegistry{batches: make(map[string]*models.CarcassBatch)}
}

// Add: Yeni parti kaydı. Aynı ID ikinci kez eklenemez.
func (r *BatchRegistry) Add(batch models.CarcassBatch) error {
	if batch.ID == "" {
		return fmt.Errorf("%w: boş parti ID", ErrInvalidDelta)
	}
	if batch.InitialWeightKg <= 0 {
		return fmt.Errorf("%w: parti ağırlığı pozitif olmalı", ErrInvalidDelta)
	}
	if batch.Status == "" {
		batch.Status = models.BatchActive
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[batch.ID]; ok {
		return fmt.Errorf("%w: parti %s", ErrAlreadyExists, batch.ID)
	}
	r.order = append(r.order, batch.ID)
	r.batches[batch.ID] = &batch
	return nil
}

// Get: Partinin kopyası. Bilinmeyen ID için ErrNotFound.
func (r *BatchRegistry) Get(batchID string) (models.CarcassBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[batchID]
	if !ok {
		return models.CarcassBatch{}, fmt.Errorf("%w: parti %s", ErrNotFound, batchID)
	}
	return *b, nil
}

// List: Tüm partiler, kayıt sırasıyla.
func (r *BatchRegistry) List() []models.CarcassBatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.CarcassBatch, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.batches[id])
	}
	return out
}

// ListActive: Sadece ACTIVE partiler, kayıt sırasıyla.
func (r *BatchRegistry) ListActive() []models.CarcassBatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.CarcassBatch, 0, len(r.order))
	for _, id := range r.order {
		if b := r.batches[id]; b.Status == models.BatchActive {
			out = append(out, *b)
		}
	}
	return out
}

// MarkDepleted: Partiyi DEPLETED durumuna geçirir ve kalan ağırlığı
// sıfırlar. İlkinden sonraki çağrılar sessizce yutulmaz,
// ErrAlreadyDepleted ile reddedilir; çift commit bir programlama
// hatasıdır ve yüzeye çıkmalıdır.
func (r *BatchRegistry) MarkDepleted(batchID string) (models.CarcassBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[batchID]
	if !ok {
		return models.CarcassBatch{}, fmt.Errorf("%w: parti %s", ErrNotFound, batchID)
	}
	if b.Status == models.BatchDepleted {
		return models.CarcassBatch{}, fmt.Errorf("%w: parti %s", ErrAlreadyDepleted, batchID)
	}

	b.Status = models.BatchDepleted
	b.RemainingWeightKg = 0
	return *b, nil
}
