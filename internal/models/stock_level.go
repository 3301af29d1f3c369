package models

import "time"

// StockLevel: Bellekteki stok defterinin veritabanı yansıması.
// Kaynak doğruluk çalışma anında bellekte; bu satırlar her mutasyondan
// sonra arkadan yazılır ve açılışta geri yüklenir.
type StockLevel struct {
	ProductID string    `gorm:"primaryKey;size:30" json:"product_id"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
