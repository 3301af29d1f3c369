package inventory

import (
	"kasap-backend/internal/audit"
	"kasap-backend/internal/database"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockLineResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitType    string  `json:"unit_type"`
	Quantity    float64 `json:"quantity"`
}

type ReplaceStockRequest struct {
	Stock map[string]float64 `json:"stock"`
}

// GET /api/stock
// Katalogla birleştirilmiş güncel stok görünümü.
func ListStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		snapshot := svc.StockSnapshot()
		res := make([]StockLineResponse, 0, len(products))
		for _, p := range products {
			res = append(res, StockLineResponse{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitType:    string(p.UnitType),
				Quantity:    snapshot[p.ID],
			})
		}
		return c.JSON(res)
	}
}

// GET /api/stock/:productId
// Hiç hareket görmemiş ürün için 0 döner.
func ReadStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Params("productId")
		return c.JSON(fiber.Map{
			"product_id": productID,
			"quantity":   svc.ReadStock(productID),
		})
	}
}

// PUT /api/stock (sadece admin)
// Manuel stok sayımı sonrası komple değiştirme. Mevcut deltalarla
// birleştirilmez; sayım sonucu olduğu gibi geçerli olur.
func ReplaceStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReplaceStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Stock == nil {
			return fiber.NewError(fiber.StatusBadRequest, "stock alanı zorunlu")
		}

		before := svc.StockSnapshot()

		if err := svc.CorrectStock(body.Stock); err != nil {
			return coreError(err)
		}

		after := svc.StockSnapshot()

		if userID, userName, uerr := currentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "stock",
				EntityID:    "ledger",
				Action:      models.AuditActionCorrect,
				Description: "Manuel stok düzeltmesi",
				Before:      before,
				After:       after,
			})
		}

		return c.JSON(fiber.Map{"stock": after})
	}
}
