package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionCommit  AuditAction = "commit"  // parti parçalama commit'i
	AuditActionSale    AuditAction = "sale"    // POS/web satış
	AuditActionCorrect AuditAction = "correct" // manuel stok düzeltme
)

// AuditLog: Salt-ekleme denetim kaydı. Stok defteri geri sarılamadığı için
// undo mekanizması yok; her mutasyon öncesi/sonrası durumla loglanır.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi kullanıcı?
	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // kullanıcı adı (denormalize)

	// Hangi entity? (ör: "batch", "order", "stock", "product", "recipe")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:50;index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Opsiyonel açıklama (küçük bir özet)
	Description string `gorm:"size:255" json:"description"`

	// Önceki ve sonraki hal (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
