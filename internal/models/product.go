package models

import "time"

type UnitType string

const (
	UnitTypeKg    UnitType = "kg"   // tartılı ürün
	UnitTypeCount UnitType = "adet" // adetli ürün
)

type Product struct {
	ID           string    `gorm:"primaryKey;size:30" json:"id"` // ör: "p4"
	Name         string    `gorm:"size:150;not null" json:"name"`
	UnitType     UnitType  `gorm:"size:10;not null" json:"unit_type"`
	PricePerUnit float64   `gorm:"not null" json:"price_per_unit"` // kg veya adet başına fiyat
	Category     string    `gorm:"size:50;index" json:"category"`  // ör: "Primal", "Offal"
	ImageURL     string    `gorm:"size:255" json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
