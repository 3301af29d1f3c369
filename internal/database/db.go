package database

import (
	"log"

	"kasap-backend/internal/config"
	"kasap-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CutRecipe{},
		&models.RecipeItem{},
		&models.CarcassBatch{},
		&models.StockLevel{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	Seed()

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
