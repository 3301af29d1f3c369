package inventory

import (
	"errors"
	"math"
	"testing"

	"kasap-backend/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewStockLedger(), NewBatchRegistry(), NewBreakdownEngine(DefaultToleranceKg))
	return svc
}

func TestCommitBreakdownEndToEnd(t *testing.T) {
	svc := newTestService(t)
	if err := svc.AddBatch(testBatch()); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	var commitCalls, stockCalls int
	svc.OnCommit = func(batch models.CarcassBatch, report *BreakdownReport) {
		commitCalls++
		if batch.Status != models.BatchDepleted {
			t.Errorf("callback batch status = %s, want DEPLETED", batch.Status)
		}
	}
	svc.OnStockChange = func(snapshot map[string]float64) { stockCalls++ }

	actuals := NewActuals()
	weights := map[string]float64{"p7": 16.0, "p5": 18.5, "p4": 20.0, "p14": 12.0, "p10": 17.0}
	for productID, weight := range weights {
		if err := actuals.Record(productID, weight); err != nil {
			t.Fatalf("Record(%s): %v", productID, err)
		}
	}

	report, snapshot, err := svc.CommitBreakdown("BATCH-2023-001", standardRecipe(), actuals, testCatalog())
	if err != nil {
		t.Fatalf("CommitBreakdown: %v", err)
	}

	if math.Abs(report.UnaccountedKg-2.0) > 0.01 {
		t.Errorf("unaccounted = %v, want 2.0", report.UnaccountedKg)
	}
	if !report.Warning {
		t.Error("warning = false, want true (2.0 kg > 1.0 kg tolerans)")
	}

	// Defter fiili ağırlıklarla kredilendi.
	for productID, weight := range weights {
		if !almostEqual(snapshot[productID], weight) {
			t.Errorf("stok[%s] = %v, want %v", productID, snapshot[productID], weight)
		}
	}

	batch, err := svc.Batch("BATCH-2023-001")
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if batch.Status != models.BatchDepleted {
		t.Errorf("batch status = %s, want DEPLETED", batch.Status)
	}

	if commitCalls != 1 || stockCalls != 1 {
		t.Errorf("callbacks = (%d, %d), want (1, 1)", commitCalls, stockCalls)
	}
}

func TestCommitBreakdownDoubleCommit(t *testing.T) {
	svc := newTestService(t)
	if err := svc.AddBatch(testBatch()); err != nil {
		t.Fatalf("AddBatch: %v", err)
	}

	actuals := NewActuals()
	if err := actuals.Record("p7", 15.0); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, _, err := svc.CommitBreakdown("BATCH-2023-001", standardRecipe(), actuals, testCatalog()); err != nil {
		t.Fatalf("ilk commit: %v", err)
	}
	before := svc.StockSnapshot()

	_, _, err := svc.CommitBreakdown("BATCH-2023-001", standardRecipe(), actuals, testCatalog())
	if !errors.Is(err, ErrAlreadyDepleted) {
		t.Fatalf("ikinci commit = %v, want ErrAlreadyDepleted", err)
	}

	// Reddedilen commit defteri değiştirmez.
	after := svc.StockSnapshot()
	for productID, qty := range before {
		if !almostEqual(after[productID], qty) {
			t.Errorf("stok[%s] değişti: %v -> %v", productID, qty, after[productID])
		}
	}
}

func TestCommitBreakdownUnknownBatch(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.CommitBreakdown("yok", standardRecipe(), NewActuals(), testCatalog())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("CommitBreakdown = %v, want ErrNotFound", err)
	}
}

func TestCheckoutDecrementsStock(t *testing.T) {
	svc := newTestService(t)
	if err := svc.CorrectStock(map[string]float64{"p4": 33.4}); err != nil {
		t.Fatalf("CorrectStock: %v", err)
	}

	snapshot, err := svc.Checkout([]CartLine{{ProductID: "p4", Quantity: 2.0}})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !almostEqual(snapshot["p4"], 31.4) {
		t.Errorf("stok[p4] = %v, want 31.4", snapshot["p4"])
	}
}

func TestCheckoutOversellClampsToZero(t *testing.T) {
	svc := newTestService(t)
	if err := svc.CorrectStock(map[string]float64{"p4": 33.4}); err != nil {
		t.Fatalf("CorrectStock: %v", err)
	}

	// Kayıtlı stoğu aşan satış hata değildir; defter sıfıra kırpılır.
	snapshot, err := svc.Checkout([]CartLine{{ProductID: "p4", Quantity: 50.0}})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if snapshot["p4"] != 0 {
		t.Errorf("stok[p4] = %v, want 0", snapshot["p4"])
	}
}

func TestBuildCheckoutDeltasAggregatesRepeats(t *testing.T) {
	deltas, err := BuildCheckoutDeltas([]CartLine{
		{ProductID: "p4", Quantity: 1.5},
		{ProductID: "p7", Quantity: 2.0},
		{ProductID: "p4", Quantity: 0.5},
	})
	if err != nil {
		t.Fatalf("BuildCheckoutDeltas: %v", err)
	}

	if len(deltas) != 2 {
		t.Fatalf("len(deltas) = %d, want 2", len(deltas))
	}
	if !almostEqual(deltas["p4"], -2.0) {
		t.Errorf("deltas[p4] = %v, want -2.0", deltas["p4"])
	}
	if !almostEqual(deltas["p7"], -2.0) {
		t.Errorf("deltas[p7] = %v, want -2.0", deltas["p7"])
	}
}

func TestCheckoutRejectsInvalidCart(t *testing.T) {
	tests := []struct {
		name  string
		lines []CartLine
	}{
		{"empty cart", nil},
		{"empty product id", []CartLine{{ProductID: "", Quantity: 1}}},
		{"zero quantity", []CartLine{{ProductID: "p4", Quantity: 0}}},
		{"negative quantity", []CartLine{{ProductID: "p4", Quantity: -1}}},
		{"nan quantity", []CartLine{{ProductID: "p4", Quantity: math.NaN()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			if err := svc.CorrectStock(map[string]float64{"p4": 10}); err != nil {
				t.Fatalf("CorrectStock: %v", err)
			}

			if _, err := svc.Checkout(tt.lines); !errors.Is(err, ErrInvalidDelta) {
				t.Fatalf("Checkout = %v, want ErrInvalidDelta", err)
			}
			// Reddedilen sepet defteri değiştirmez.
			if got := svc.ReadStock("p4"); !almostEqual(got, 10) {
				t.Errorf("stok[p4] = %v, want 10", got)
			}
		})
	}
}

func TestCorrectStockReplacesEverything(t *testing.T) {
	svc := newTestService(t)
	if err := svc.CorrectStock(map[string]float64{"p4": 10, "p7": 5}); err != nil {
		t.Fatalf("CorrectStock: %v", err)
	}
	if err := svc.CorrectStock(map[string]float64{"p4": 12.5}); err != nil {
		t.Fatalf("CorrectStock: %v", err)
	}

	if got := svc.ReadStock("p4"); !almostEqual(got, 12.5) {
		t.Errorf("stok[p4] = %v, want 12.5", got)
	}
	if got := svc.ReadStock("p7"); got != 0 {
		t.Errorf("stok[p7] = %v, want 0", got)
	}
}
