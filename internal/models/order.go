package models

import "time"

type OrderChannel string

const (
	ChannelPOS OrderChannel = "POS"
	ChannelWeb OrderChannel = "WEB"
)

// Order: Tamamlanmış bir satış (POS kasası veya web sipariş).
// Ödeme/rezervasyon takibi yok; stok düşümü satış anında yapılır.
type Order struct {
	ID           string       `gorm:"primaryKey;size:50" json:"id"` // "ORD-<uuid>"
	Channel      OrderChannel `gorm:"size:10;not null;index" json:"channel"`
	CustomerName string       `gorm:"size:100" json:"customer_name"`
	Total        float64      `gorm:"not null" json:"total"`
	Items        []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
}

type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	OrderID    string  `gorm:"size:50;index;not null" json:"-"`
	ProductID  string  `gorm:"size:30;not null" json:"product_id"`
	Quantity   float64 `gorm:"not null" json:"quantity"` // kg veya adet
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
}
