package catalog

import (
	"strings"

	"kasap-backend/internal/database"
	"kasap-backend/internal/inventory"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	ID           string  `json:"id"` // ör: "p22"
	Name         string  `json:"name"`
	UnitType     string  `json:"unit_type"` // "kg" veya "adet"
	PricePerUnit float64 `json:"price_per_unit"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"name"`
	UnitType     *string  `json:"unit_type"`
	PricePerUnit *float64 `json:"price_per_unit"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"image_url"`
}

type ShopProductResponse struct {
	models.Product
	Stock      float64 `json:"stock"`
	OutOfStock bool    `json:"out_of_stock"`
}

func parseUnitType(s string) (models.UnitType, bool) {
	switch models.UnitType(s) {
	case models.UnitTypeKg, models.UnitTypeCount:
		return models.UnitType(s), true
	default:
		return "", false
	}
}

// GET /api/products (tüm authenticated kullanıcılar)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})
		if category := c.Query("category"); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}
		return c.JSON(products)
	}
}

// GET /api/shop/products (public)
// Web vitrin görünümü: katalog + canlı stok. Üç kanal da aynı defteri
// gördüğü için buradaki stok POS ve arka ofisle birebir aynıdır.
func ShopProductsHandler(svc *inventory.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		snapshot := svc.StockSnapshot()
		res := make([]ShopProductResponse, 0, len(products))
		for _, p := range products {
			stock := snapshot[p.ID]
			res = append(res, ShopProductResponse{
				Product:    p,
				Stock:      stock,
				OutOfStock: stock <= 0,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/admin/products (sadece admin)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.ID = strings.TrimSpace(body.ID)
		body.Name = strings.TrimSpace(body.Name)

		if body.ID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id ve name zorunlu")
		}
		if body.PricePerUnit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price_per_unit negatif olamaz")
		}

		unitType, ok := parseUnitType(body.UnitType)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unit_type 'kg' veya 'adet' olmalı")
		}

		var existing models.Product
		if err := database.DB.First(&existing, "id = ?", body.ID).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu ürün ID zaten kullanılıyor")
		}

		p := models.Product{
			ID:           body.ID,
			Name:         body.Name,
			UnitType:     unitType,
			PricePerUnit: body.PricePerUnit,
			Category:     strings.TrimSpace(body.Category),
			ImageURL:     strings.TrimSpace(body.ImageURL),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name boş olamaz")
			}
			p.Name = name
		}

		if body.UnitType != nil {
			unitType, ok := parseUnitType(*body.UnitType)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "unit_type 'kg' veya 'adet' olmalı")
			}
			p.UnitType = unitType
		}

		if body.PricePerUnit != nil {
			if *body.PricePerUnit < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price_per_unit negatif olamaz")
			}
			p.PricePerUnit = *body.PricePerUnit
		}

		if body.Category != nil {
			p.Category = strings.TrimSpace(*body.Category)
		}
		if body.ImageURL != nil {
			p.ImageURL = strings.TrimSpace(*body.ImageURL)
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		return c.JSON(p)
	}
}

// DELETE /api/admin/products/:id
// Defterdeki eski hareketler silinmez; katalogdan kalkan ürünün reçete
// kalemleri rapor aşamasında zaten atlanır.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
