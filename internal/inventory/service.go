package inventory

import (
	"fmt"
	"math"
	"sync"

	"kasap-backend/internal/models"
)

// CartLine: Checkout çağrı yüzeyinin girdisi (sepet kalemi).
type CartLine struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// Service: Defter, parti kaydı ve parçalama motorunu tek yazarlı bir
// disiplin altında birleştirir. Mantıksal bir "commit" (parti tüketimi +
// stok kredisi) ve bir "checkout" (sepet deltaları + stok düşümü) tek bir
// karşılıklı dışlama kapsamında koşar: hiçbir okuyucu, stok kredisi
// uygulanmamış DEPLETED bir parti ya da kısmi uygulanmış bir delta seti
// göremez.
type Service struct {
	mu       sync.RWMutex
	Ledger   *StockLedger
	Registry *BatchRegistry
	Engine   *BreakdownEngine

	// OnCommit: Başarılı parçalama commit'inden sonra, kilit bırakıldıktan
	// sonra çağrılır (bildirim/denetim için).
	OnCommit func(batch models.CarcassBatch, report *BreakdownReport)

	// OnStockChange: Defter her değiştiğinde yeni snapshot ile çağrılır
	// (arkadan yazma kalıcılığı buraya bağlanır).
	OnStockChange func(snapshot map[string]float64)
}

func NewService(ledger *StockLedger, registry *BatchRegistry, engine *BreakdownEngine) *Service {
	return &Service{Ledger: ledger, Registry: registry, Engine: engine}
}

// CommitBreakdown: Parçalamanın tek mutasyon noktası. Rapor hesaplanır,
// defter fiili ağırlıklarla kredilenir ve parti DEPLETED işaretlenir;
// üçü birlikte tek atomik birimdir. Doğrulama hataları hiçbir şey
// değiştirmeden döner.
func (s *Service) CommitBreakdown(batchID string, recipe models.CutRecipe, actuals Actuals, catalog CatalogReader) (*BreakdownReport, map[string]float64, error) {
	s.mu.Lock()

	batch, err := s.Registry.Get(batchID)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	if batch.Status == models.BatchDepleted {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: parti %s", ErrAlreadyDepleted, batchID)
	}

	report := s.Engine.BuildReport(batch, recipe, actuals, catalog)

	// Önce defter: Adjust doğrulamada düşerse parti el değmeden kalır.
	deltas := CommitDeltas(report.Results)
	snapshot, err := s.Ledger.Adjust(deltas)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}

	// Parti aynı kilit altında ACTIVE doğrulandı; burada artık düşemez.
	depleted, err := s.Registry.MarkDepleted(batchID)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}

	s.mu.Unlock()

	if s.OnCommit != nil {
		s.OnCommit(depleted, report)
	}
	if s.OnStockChange != nil {
		s.OnStockChange(snapshot)
	}
	return report, snapshot, nil
}

// BuildCheckoutDeltas: Sepet kalemlerini tek bir delta setine toplar.
// Aynı ürün sepette birden çok kez geçiyorsa miktarlar tek deltada
// toplanır; checkout başına ya-hep-ya-hiç garantisi böyle korunur.
func BuildCheckoutDeltas(lines []CartLine) (map[string]float64, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: sepet boş", ErrInvalidDelta)
	}

	deltas := make(map[string]float64, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, fmt.Errorf("%w: boş ürün ID", ErrInvalidDelta)
		}
		if math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) || line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ürün %s için satış miktarı pozitif olmalı", ErrInvalidDelta, line.ProductID)
		}
		deltas[line.ProductID] -= line.Quantity
	}
	return deltas, nil
}

// Checkout: POS veya web satışının defter ayağı. Ödeme öncesi
// rezervasyon/hold yok; eşzamanlı satışlar birlikte stoğu aşabilir ve
// sıfıra kırpılır (bilinçli sadeleştirme, fazla satış reddi açık soru).
func (s *Service) Checkout(lines []CartLine) (map[string]float64, error) {
	deltas, err := BuildCheckoutDeltas(lines)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	snapshot, err := s.Ledger.Adjust(deltas)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if s.OnStockChange != nil {
		s.OnStockChange(snapshot)
	}
	return snapshot, nil
}

// CorrectStock: Manuel sayım sonrası komple değiştirme (operatör yetkisi).
func (s *Service) CorrectStock(snapshot map[string]float64) error {
	s.mu.Lock()
	err := s.Ledger.ReplaceAll(snapshot)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if s.OnStockChange != nil {
		s.OnStockChange(s.Ledger.Snapshot())
	}
	return nil
}

// AddBatch: Tedarik girişi (parti ACTIVE olarak kaydedilir).
func (s *Service) AddBatch(batch models.CarcassBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Registry.Add(batch)
}

func (s *Service) ReadStock(productID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Ledger.Read(productID)
}

func (s *Service) StockSnapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Ledger.Snapshot()
}

func (s *Service) Batch(batchID string) (models.CarcassBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Registry.Get(batchID)
}

func (s *Service) Batches() []models.CarcassBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Registry.List()
}

func (s *Service) ActiveBatches() []models.CarcassBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Registry.ListActive()
}
