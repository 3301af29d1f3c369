package database

import (
	"log"
	"time"

	"kasap-backend/internal/models"
)

// Seed: Boş tablolara demo verisini yükler (katalog, standart reçete, iki
// parti ve açılış stoğu). Dolu tabloya hiçbir şey yazılmaz.
func Seed() {
	seedProducts()
	seedRecipes()
	seedBatches()
	seedStockLevels()
}

func seedProducts() {
	var count int64
	DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	products := []models.Product{
		{ID: "p2", Name: "Neck w/ Skin", UnitType: models.UnitTypeKg, PricePerUnit: 82, Category: "Raw Meat"},
		{ID: "p3", Name: "Grilled Pork Neck", UnitType: models.UnitTypeKg, PricePerUnit: 138, Category: "Raw Meat"},
		{ID: "p4", Name: "Hip / Ham", UnitType: models.UnitTypeKg, PricePerUnit: 112, Category: "Primal"},
		{ID: "p5", Name: "Loin Long", UnitType: models.UnitTypeKg, PricePerUnit: 114, Category: "Primal"},
		{ID: "p6", Name: "Cut Loin", UnitType: models.UnitTypeKg, PricePerUnit: 112, Category: "Primal"},
		{ID: "p7", Name: "Belly", UnitType: models.UnitTypeKg, PricePerUnit: 140, Category: "Primal"},
		{ID: "p8", Name: "Front Bone", UnitType: models.UnitTypeKg, PricePerUnit: 116, Category: "Bone"},
		{ID: "p9", Name: "Soft Ribs", UnitType: models.UnitTypeKg, PricePerUnit: 132, Category: "Bone"},
		{ID: "p10", Name: "Mid Frame", UnitType: models.UnitTypeKg, PricePerUnit: 90, Category: "Bone"},
		{ID: "p11", Name: "Breast Bone", UnitType: models.UnitTypeKg, PricePerUnit: 48, Category: "Bone"},
		{ID: "p12", Name: "Fresh Liver", UnitType: models.UnitTypeKg, PricePerUnit: 75, Category: "Offal"},
		{ID: "p13", Name: "Skin for Salad", UnitType: models.UnitTypeKg, PricePerUnit: 50, Category: "Skin"},
		{ID: "p14", Name: "Fat for Crackling", UnitType: models.UnitTypeKg, PricePerUnit: 44, Category: "Fat"},
		{ID: "p15", Name: "Deboned Leg", UnitType: models.UnitTypeKg, PricePerUnit: 82, Category: "Primal"},
		{ID: "p16", Name: "Boiled Offal", UnitType: models.UnitTypeKg, PricePerUnit: 25, Category: "Offal"},
		{ID: "p17", Name: "Boiled Intestine", UnitType: models.UnitTypeKg, PricePerUnit: 32, Category: "Offal"},
		{ID: "p18", Name: "Misc Bone", UnitType: models.UnitTypeKg, PricePerUnit: 10, Category: "Bone"},
		{ID: "p19", Name: "Frame Buk", UnitType: models.UnitTypeKg, PricePerUnit: 70, Category: "Bone"},
		{ID: "p20", Name: "2-Layer Hip", UnitType: models.UnitTypeKg, PricePerUnit: 98, Category: "Meat"},
		{ID: "p21", Name: "2-Layer", UnitType: models.UnitTypeKg, PricePerUnit: 94, Category: "Meat"},
	}

	if err := DB.Create(&products).Error; err != nil {
		log.Printf("Demo ürünler yüklenemedi: %v", err)
		return
	}
	log.Printf("Demo katalog yüklendi (%d ürün)", len(products))
}

func seedRecipes() {
	var count int64
	DB.Model(&models.CutRecipe{}).Count(&count)
	if count > 0 {
		return
	}

	recipe := models.CutRecipe{
		ID:   "rec1",
		Name: "Standard Retail Breakdown",
		Items: []models.RecipeItem{
			{ProductID: "p7", YieldFraction: 0.18, Position: 0},  // Belly
			{ProductID: "p5", YieldFraction: 0.22, Position: 1},  // Loin
			{ProductID: "p4", YieldFraction: 0.25, Position: 2},  // Hip
			{ProductID: "p14", YieldFraction: 0.15, Position: 3}, // Fat
			{ProductID: "p10", YieldFraction: 0.20, Position: 4}, // Bone
		},
	}

	if err := DB.Create(&recipe).Error; err != nil {
		log.Printf("Demo reçete yüklenemedi: %v", err)
		return
	}
	log.Println("Demo reçete yüklendi (rec1)")
}

func seedBatches() {
	var count int64
	DB.Model(&models.CarcassBatch{}).Count(&count)
	if count > 0 {
		return
	}

	batches := []models.CarcassBatch{
		{
			ID:                "BATCH-2023-001",
			SourceFarm:        "Sunny Valley Farms",
			DateReceived:      time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC),
			InitialWeightKg:   85.5,
			RemainingWeightKg: 85.5,
			Status:            models.BatchActive,
		},
		{
			ID:                "BATCH-2023-002",
			SourceFarm:        "Green Pastures",
			DateReceived:      time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC),
			InitialWeightKg:   92.0,
			RemainingWeightKg: 92.0,
			Status:            models.BatchActive,
		},
	}

	if err := DB.Create(&batches).Error; err != nil {
		log.Printf("Demo partiler yüklenemedi: %v", err)
		return
	}
	log.Printf("Demo partiler yüklendi (%d parti)", len(batches))
}

func seedStockLevels() {
	var count int64
	DB.Model(&models.StockLevel{}).Count(&count)
	if count > 0 {
		return
	}

	initial := map[string]float64{
		"p2": 12.7, "p3": 9.0, "p4": 33.4, "p5": 19.3, "p6": 13.6,
		"p7": 70.0, "p8": 5.7, "p9": 7.5, "p10": 32.0, "p11": 6.5,
		"p12": 13.5, "p13": 7.6, "p14": 22.8, "p15": 21.9, "p16": 10.4,
		"p17": 6.4, "p18": 8.7, "p19": 6.9, "p20": 68.0, "p21": 113.8,
	}

	levels := make([]models.StockLevel, 0, len(initial))
	for productID, qty := range initial {
		levels = append(levels, models.StockLevel{ProductID: productID, Quantity: qty})
	}

	if err := DB.Create(&levels).Error; err != nil {
		log.Printf("Açılış stoğu yüklenemedi: %v", err)
		return
	}
	log.Printf("Açılış stoğu yüklendi (%d ürün)", len(levels))
}
