package database

import (
	"fmt"

	"kasap-backend/internal/models"

	"gorm.io/gorm/clause"
)

// Bellekteki çekirdek (defter + parti kaydı) açılışta bu fonksiyonlarla
// yüklenir, her mutasyondan sonra arkadan yazılır. Çalışma anında kaynak
// doğruluk bellektir; buradaki satırlar sadece yansımadır.

func LoadStockSnapshot() (map[string]float64, error) {
	var levels []models.StockLevel
	if err := DB.Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("stok seviyeleri yüklenemedi: %w", err)
	}

	snapshot := make(map[string]float64, len(levels))
	for _, l := range levels {
		snapshot[l.ProductID] = l.Quantity
	}
	return snapshot, nil
}

func LoadBatches() ([]models.CarcassBatch, error) {
	var batches []models.CarcassBatch
	if err := DB.Order("created_at asc, id asc").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("partiler yüklenemedi: %w", err)
	}
	return batches, nil
}

// SaveStockSnapshot: Defter snapshot'ını stock_levels tablosuna upsert eder.
func SaveStockSnapshot(snapshot map[string]float64) error {
	levels := make([]models.StockLevel, 0, len(snapshot))
	for productID, qty := range snapshot {
		levels = append(levels, models.StockLevel{ProductID: productID, Quantity: qty})
	}
	if len(levels) == 0 {
		return nil
	}

	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&levels).Error
}

// SaveBatch: Parti satırının durum/kalan ağırlık alanlarını günceller.
func SaveBatch(batch models.CarcassBatch) error {
	return DB.Model(&models.CarcassBatch{}).
		Where("id = ?", batch.ID).
		Updates(map[string]interface{}{
			"status":              batch.Status,
			"remaining_weight_kg": batch.RemainingWeightKg,
		}).Error
}
