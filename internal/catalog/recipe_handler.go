package catalog

import (
	"errors"
	"strings"

	"kasap-backend/internal/database"
	"kasap-backend/internal/inventory"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RecipeItemInput struct {
	ProductID     string  `json:"product_id"`
	YieldFraction float64 `json:"yield_fraction"`
}

type CreateRecipeRequest struct {
	ID    string            `json:"id"` // ör: "rec2"
	Name  string            `json:"name"`
	Items []RecipeItemInput `json:"items"`
}

// GET /api/recipes
func ListRecipesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recipes []models.CutRecipe
		err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Order("name asc").
			Find(&recipes).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reçeteler listelenemedi")
		}
		return c.JSON(recipes)
	}
}

// GET /api/recipes/:id
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, err := Reader{}.GetRecipe(c.Params("id"))
		if err != nil {
			if errors.Is(err, inventory.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Reçete yüklenemedi")
		}
		return c.JSON(recipe)
	}
}

// POST /api/admin/recipes (sadece admin)
// Randıman kuralları burada, yükleme anında doğrulanır: her oran (0,1]
// aralığında ve toplam en fazla 1. Katalogda henüz olmayan ürünlere
// referans serbesttir; rapor aşamasında atlanırlar.
func CreateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.ID = strings.TrimSpace(body.ID)
		body.Name = strings.TrimSpace(body.Name)

		if body.ID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id ve name zorunlu")
		}

		recipe := models.CutRecipe{
			ID:    body.ID,
			Name:  body.Name,
			Items: make([]models.RecipeItem, 0, len(body.Items)),
		}
		for i, item := range body.Items {
			recipe.Items = append(recipe.Items, models.RecipeItem{
				ProductID:     strings.TrimSpace(item.ProductID),
				YieldFraction: item.YieldFraction,
				Position:      i,
			})
		}

		if err := inventory.ValidateRecipe(recipe); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var existing models.CutRecipe
		if err := database.DB.First(&existing, "id = ?", recipe.ID).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu reçete ID zaten kullanılıyor")
		}

		if err := database.DB.Create(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reçete oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(recipe)
	}
}
