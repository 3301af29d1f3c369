package models

import "time"

// CutRecipe: Bir karkasın hangi ürünlere hangi beklenen randıman oranıyla
// ayrılacağını tanımlar. Oranların toplamı 1'i aşamaz (fire payı serbest).
type CutRecipe struct {
	ID        string       `gorm:"primaryKey;size:30" json:"id"`
	Name      string       `gorm:"size:150;not null" json:"name"`
	Items     []RecipeItem `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type RecipeItem struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	RecipeID      string  `gorm:"size:30;index;not null" json:"-"`
	ProductID     string  `gorm:"size:30;not null" json:"product_id"`
	YieldFraction float64 `gorm:"not null" json:"yield_fraction"` // (0,1] aralığında
	Position      int     `gorm:"not null" json:"-"`              // reçete içi sıra
}
