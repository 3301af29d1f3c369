package inventory

import (
	"fmt"
	"math"
	"sync"
)

// StockLedger: Ürün bazında eldeki miktarın tek yetkili kaydı.
// Çok kalemli düşüm/ekleme tek atomik birim olarak uygulanır; ya hepsi
// ya hiçbiri. Miktar hiçbir gözlemlenebilir anda negatif olamaz.
type StockLedger struct {
	mu    sync.Mutex
	stock map[string]float64 // productID -> kg veya adet
}

func NewStockLedger() *StockLedger {
	return &StockLedger{stock: make(map[string]float64)}
}

// Adjust: Verilen deltaların tamamını tek seferde uygular ve yeni durumun
// kopyasını döndürür. Herhangi bir delta bozuksa (boş ürün ID, NaN/Inf)
// set komple reddedilir, defter değişmez.
//
// Düşüm sonucu negatife inerse miktar sıfıra kırpılır. Bu bir hata değil
// politika: satış miktarı terazi payı yüzünden kayıtlı stoğu aşabilir,
// fazla satış bastırılır.
func (l *StockLedger) Adjust(deltas map[string]float64) (map[string]float64, error) {
	if len(deltas) == 0 {
		return nil, fmt.Errorf("%w: boş delta seti", ErrInvalidDelta)
	}

	// Önce tamamını doğrula; kısmi uygulama yasak.
	for productID, delta := range deltas {
		if productID == "" {
			return nil, fmt.Errorf("%w: boş ürün ID", ErrInvalidDelta)
		}
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			return nil, fmt.Errorf("%w: ürün %s için miktar sayı değil", ErrInvalidDelta, productID)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for productID, delta := range deltas {
		next := l.stock[productID] + delta
		if next < 0 {
			next = 0
		}
		l.stock[productID] = next
	}

	return l.snapshotLocked(), nil
}

// Read: Ürünün mevcut miktarı. Hiç dokunulmamış ürün için 0.
func (l *StockLedger) Read(productID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stock[productID]
}

// Snapshot: Mevcut durumun kopyası.
func (l *StockLedger) Snapshot() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// ReplaceAll: Manuel stok sayımı sonrası komple değiştirme. Deltalarla
// birleştirilmez; son yazan kazanır. Negatif veya sayı olmayan miktar
// içeren snapshot reddedilir.
func (l *StockLedger) ReplaceAll(snapshot map[string]float64) error {
	for productID, qty := range snapshot {
		if productID == "" {
			return fmt.Errorf("%w: boş ürün ID", ErrInvalidDelta)
		}
		if math.IsNaN(qty) || math.IsInf(qty, 0) {
			return fmt.Errorf("%w: ürün %s için miktar sayı değil", ErrInvalidDelta, productID)
		}
		if qty < 0 {
			return fmt.Errorf("%w: ürün %s için negatif miktar", ErrInvalidDelta, productID)
		}
	}

	next := make(map[string]float64, len(snapshot))
	for productID, qty := range snapshot {
		next[productID] = qty
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.stock = next
	return nil
}

func (l *StockLedger) snapshotLocked() map[string]float64 {
	out := make(map[string]float64, len(l.stock))
	for productID, qty := range l.stock {
		out[productID] = qty
	}
	return out
}
