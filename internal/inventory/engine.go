package inventory

import (
	"fmt"
	"math"

	"kasap-backend/internal/models"
)

// DefaultToleranceKg: |kayıp kütle| bu eşiği aşarsa rapor uyarı durumuna
// geçer. Uyarı bilgilendiricidir, commit'i engellemez.
const DefaultToleranceKg = 1.0

// CatalogReader: Katalog okuma arayüzü. Parçalama mantığı, katalogda
// bulunmayan bir ürüne referans veren reçete kalemini atlar; raporu
// komple iptal etmez.
type CatalogReader interface {
	GetProduct(productID string) (models.Product, bool)
}

// RecipeReader: Reçete okuma arayüzü.
type RecipeReader interface {
	GetRecipe(recipeID string) (models.CutRecipe, error)
}

// BreakdownEngine: Parti × reçete için beklenen/fiili/sapma hesabını yapar
// ve commit için defter deltalarını üretir. Commit dışında yan etkisizdir.
type BreakdownEngine struct {
	ToleranceKg float64
}

func NewBreakdownEngine(toleranceKg float64) *BreakdownEngine {
	if toleranceKg <= 0 {
		toleranceKg = DefaultToleranceKg
	}
	return &BreakdownEngine{ToleranceKg: toleranceKg}
}

// Actuals: Operatörün girdiği fiili ağırlıklar.
type Actuals map[string]float64

func NewActuals() Actuals {
	return make(Actuals)
}

// Record: Fiili ağırlık girişi. Negatif veya sayı olmayan ağırlık
// reddedilir; defterin kırpma politikasıyla karıştırılmamalı.
func (a Actuals) Record(productID string, weightKg float64) error {
	if productID == "" {
		return fmt.Errorf("%w: boş ürün ID", ErrInvalidDelta)
	}
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return fmt.Errorf("%w: ürün %s için ağırlık sayı değil", ErrInvalidDelta, productID)
	}
	if weightKg < 0 {
		return fmt.Errorf("%w: ürün %s", ErrNegativeWeight, productID)
	}
	a[productID] = weightKg
	return nil
}

type BreakdownResult struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ActualWeight    float64 `json:"actual_weight"`
	ExpectedWeight  float64 `json:"expected_weight"`
	Variance        float64 `json:"variance"`         // fiili - beklenen
	VariancePercent float64 `json:"variance_percent"` // beklenen 0 ise 0
}

type BreakdownReport struct {
	BatchID       string            `json:"batch_id"`
	RecipeID      string            `json:"recipe_id"`
	Results       []BreakdownResult `json:"results"`
	TotalActualKg float64           `json:"total_actual_kg"`
	UnaccountedKg float64           `json:"unaccounted_kg"` // fire, kesim kaybı veya eksik giriş
	Warning       bool              `json:"warning"`        // |unaccounted| > tolerans
}

// ComputeExpected: beklenen[p] = parti ilk ağırlığı × randıman oranı.
// Saf fonksiyon, yan etkisi yok.
func (e *BreakdownEngine) ComputeExpected(batch models.CarcassBatch, recipe models.CutRecipe) map[string]float64 {
	expected := make(map[string]float64, len(recipe.Items))
	for _, item := range recipe.Items {
		expected[item.ProductID] = round2(batch.InitialWeightKg * item.YieldFraction)
	}
	return expected
}

// BuildReport: Her reçete kalemi için fiili/beklenen/sapma satırı üretir.
// Katalogda olmayan ürünler atlanır. Kayıp kütle ve uyarı durumu tavsiye
// niteliğindedir; büyük kayıp kütleyle de commit edilebilir.
func (e *BreakdownEngine) BuildReport(batch models.CarcassBatch, recipe models.CutRecipe, actuals Actuals, catalog CatalogReader) *BreakdownReport {
	report := &BreakdownReport{
		BatchID:  batch.ID,
		RecipeID: recipe.ID,
		Results:  make([]BreakdownResult, 0, len(recipe.Items)),
	}

	totalActual := 0.0
	for _, item := range recipe.Items {
		product, ok := catalog.GetProduct(item.ProductID)
		if !ok {
			// Katalog eksik olabilir; kalemi atla, raporu düşürme.
			continue
		}

		actual := actuals[item.ProductID]
		expected := batch.InitialWeightKg * item.YieldFraction
		variance := actual - expected

		variancePercent := 0.0
		if expected > 0 {
			variancePercent = variance / expected * 100
		}

		report.Results = append(report.Results, BreakdownResult{
			ProductID:       item.ProductID,
			ProductName:     product.Name,
			ActualWeight:    round2(actual),
			ExpectedWeight:  round2(expected),
			Variance:        round2(variance),
			VariancePercent: round1(variancePercent),
		})
		totalActual += actual
	}

	report.TotalActualKg = round2(totalActual)
	report.UnaccountedKg = round2(batch.InitialWeightKg - totalActual)
	report.Warning = math.Abs(report.UnaccountedKg) > e.ToleranceKg
	return report
}

// CommitDeltas: Rapor satırlarından defter kredilerini üretir.
// Her ürün için fiili ağırlık kadar pozitif bir delta.
func CommitDeltas(results []BreakdownResult) map[string]float64 {
	deltas := make(map[string]float64, len(results))
	for _, res := range results {
		deltas[res.ProductID] = res.ActualWeight
	}
	return deltas
}

// ValidateRecipe: Reçete yükleme/oluşturma anı kontrolü. Her oran (0,1]
// aralığında olmalı, oran toplamı 1'i aşmamalı (%100 üstü randıman bir
// konfigürasyon hatasıdır).
func ValidateRecipe(recipe models.CutRecipe) error {
	if recipe.ID == "" || len(recipe.Items) == 0 {
		return fmt.Errorf("%w: reçete boş", ErrInvalidRecipe)
	}

	sum := 0.0
	for _, item := range recipe.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: boş ürün ID", ErrInvalidRecipe)
		}
		if math.IsNaN(item.YieldFraction) || item.YieldFraction <= 0 || item.YieldFraction > 1 {
			return fmt.Errorf("%w: ürün %s için randıman oranı (0,1] dışında", ErrInvalidRecipe, item.ProductID)
		}
		sum += item.YieldFraction
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("%w: randıman oranları toplamı 1'i aşıyor (%.4f)", ErrInvalidRecipe, sum)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
