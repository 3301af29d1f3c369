package checkout

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"kasap-backend/internal/audit"
	"kasap-backend/internal/auth"
	"kasap-backend/internal/database"
	"kasap-backend/internal/inventory"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CheckoutItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"` // kg veya adet
}

type CheckoutRequest struct {
	CustomerName string              `json:"customer_name"` // web için opsiyonel
	Items        []CheckoutItemInput `json:"items"`
}

// CheckoutHandler: POS ve web satışının ortak yolu. Sepet tek bir delta
// setine toplanıp deftere ya-hep-ya-hiç olarak uygulanır. Ödeme öncesi
// rezervasyon yok; kayıtlı stoğu aşan satış sıfıra kırpılır, hata değildir.
//
// POST /api/pos/checkout  (channel=POS, auth zorunlu)
// POST /api/shop/checkout (channel=WEB, public)
func CheckoutHandler(svc *inventory.Service, channel models.OrderChannel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
		}

		// Fiyatlandırma için ürünleri yükle; bilinmeyen ürünle satış olmaz.
		products := make(map[string]models.Product, len(body.Items))
		lines := make([]inventory.CartLine, 0, len(body.Items))
		for _, item := range body.Items {
			if _, ok := products[item.ProductID]; !ok {
				var p models.Product
				if err := database.DB.First(&p, "id = ?", item.ProductID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ürün bulunamadı: %s", item.ProductID))
				}
				products[item.ProductID] = p
			}
			lines = append(lines, inventory.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		snapshot, err := svc.Checkout(lines)
		if err != nil {
			if errors.Is(err, inventory.ErrInvalidDelta) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return err
		}

		// Satış kaydı
		order := models.Order{
			ID:           "ORD-" + uuid.NewString(),
			Channel:      channel,
			CustomerName: body.CustomerName,
			Items:        make([]models.OrderItem, 0, len(body.Items)),
		}
		total := 0.0
		for _, item := range body.Items {
			p := products[item.ProductID]
			linePrice := round2(p.PricePerUnit * item.Quantity)
			order.Items = append(order.Items, models.OrderItem{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  p.PricePerUnit,
				TotalPrice: linePrice,
			})
			total += linePrice
		}
		order.Total = round2(total)

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaydedilemedi")
		}

		userID, userName := saleUser(c, channel)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    order.ID,
			Action:      models.AuditActionSale,
			Description: fmt.Sprintf("Satış (%s): %d kalem, toplam %.2f", channel, len(order.Items), order.Total),
			After:       order,
		})

		affected := make(map[string]float64, len(products))
		for productID := range products {
			affected[productID] = snapshot[productID]
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"order": order,
			"stock": affected,
		})
	}
}

// GET /api/orders?channel=POS&limit=50
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 || parsed > 500 {
				return fiber.NewError(fiber.StatusBadRequest, "limit 1-500 arası olmalı")
			}
			limit = parsed
		}

		dbq := database.DB.Model(&models.Order{}).Preload("Items")
		if channel := c.Query("channel"); channel != "" {
			dbq = dbq.Where("channel = ?", channel)
		}

		var orders []models.Order
		if err := dbq.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}
		return c.JSON(orders)
	}
}

// saleUser: POS satışında token'daki kullanıcı, web satışında anonim.
func saleUser(c *fiber.Ctx, channel models.OrderChannel) (uint, string) {
	if channel == models.ChannelWeb {
		return 0, "web"
	}

	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "bilinmiyor"
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return userID, "bilinmiyor"
	}
	return userID, user.Name
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
