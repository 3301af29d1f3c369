package catalog

import (
	"errors"
	"fmt"

	"kasap-backend/internal/database"
	"kasap-backend/internal/inventory"
	"kasap-backend/internal/models"

	"gorm.io/gorm"
)

// Reader: Çekirdeğin katalog/reçete okuma arayüzlerinin veritabanı
// destekli implementasyonu (inventory.CatalogReader + inventory.RecipeReader).
type Reader struct{}

func (Reader) GetProduct(productID string) (models.Product, bool) {
	var p models.Product
	if err := database.DB.First(&p, "id = ?", productID).Error; err != nil {
		return models.Product{}, false
	}
	return p, true
}

func (Reader) GetRecipe(recipeID string) (models.CutRecipe, error) {
	var recipe models.CutRecipe
	err := database.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&recipe, "id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CutRecipe{}, fmt.Errorf("%w: reçete %s", inventory.ErrNotFound, recipeID)
	}
	if err != nil {
		return models.CutRecipe{}, fmt.Errorf("reçete yüklenemedi: %w", err)
	}
	return recipe, nil
}

// ValidateAllRecipes: Açılışta tüm reçeteleri randıman kurallarına karşı
// doğrular. %100 üstü toplam randıman bir konfigürasyon hatasıdır ve
// commit anına bırakılmaz.
func ValidateAllRecipes() error {
	var recipes []models.CutRecipe
	if err := database.DB.Preload("Items").Find(&recipes).Error; err != nil {
		return fmt.Errorf("reçeteler yüklenemedi: %w", err)
	}

	for _, recipe := range recipes {
		if err := inventory.ValidateRecipe(recipe); err != nil {
			return fmt.Errorf("reçete %s: %w", recipe.ID, err)
		}
	}
	return nil
}
