package models

import "time"

type BatchStatus string

const (
	BatchActive   BatchStatus = "ACTIVE"
	BatchDepleted BatchStatus = "DEPLETED"
)

// CarcassBatch: Tedarikçiden gelen karkas partisi. İlk ağırlık kayıtta
// sabitlenir; parti tek bir parçalama işlemiyle DEPLETED durumuna geçer ve
// ondan sonra değiştirilemez.
type CarcassBatch struct {
	ID              string      `gorm:"primaryKey;size:40" json:"id"` // ör: "BATCH-2023-001"
	SourceFarm      string      `gorm:"size:150;not null" json:"source_farm"`
	DateReceived    time.Time   `gorm:"index;not null" json:"date_received"`
	InitialWeightKg float64     `gorm:"not null" json:"initial_weight_kg"`
	RemainingWeightKg float64   `gorm:"not null" json:"remaining_weight_kg"`
	Status          BatchStatus `gorm:"size:10;not null;index" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
