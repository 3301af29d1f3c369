package inventory

import (
	"fmt"
	"log"
	"strings"
	"time"

	"kasap-backend/internal/audit"
	"kasap-backend/internal/database"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBatchRequest struct {
	ID              string  `json:"id"` // ör: "BATCH-2023-003"
	SourceFarm      string  `json:"source_farm"`
	DateReceived    string  `json:"date_received"` // "2006-01-02"
	InitialWeightKg float64 `json:"initial_weight_kg"`
}

// GET /api/batches
func ListBatchesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Batches())
	}
}

// GET /api/batches/active
// Parçalama ekranının seçim listesi; sadece ACTIVE partiler, kayıt sırasıyla.
func ListActiveBatchesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.ActiveBatches())
	}
}

// POST /api/batches
// Tedarik girişi. Parti ACTIVE olarak kaydedilir; ilk ağırlık bundan
// sonra değişmez.
func CreateBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ID = strings.TrimSpace(body.ID)
		body.SourceFarm = strings.TrimSpace(body.SourceFarm)

		if body.ID == "" || body.SourceFarm == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id ve source_farm zorunlu")
		}
		if body.InitialWeightKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "initial_weight_kg pozitif olmalı")
		}

		dateReceived, err := time.Parse("2006-01-02", body.DateReceived)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		batch := models.CarcassBatch{
			ID:                body.ID,
			SourceFarm:        body.SourceFarm,
			DateReceived:      dateReceived,
			InitialWeightKg:   body.InitialWeightKg,
			RemainingWeightKg: body.InitialWeightKg,
			Status:            models.BatchActive,
		}

		if err := svc.AddBatch(batch); err != nil {
			return coreError(err)
		}

		// Arkadan yazma: açılışta geri yüklenmek üzere satırı kalıcılaştır.
		if err := database.DB.Create(&batch).Error; err != nil {
			log.Printf("Parti satırı kalıcılaştırılamadı (%s): %v", batch.ID, err)
		}

		if userID, userName, uerr := currentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "batch",
				EntityID:    batch.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Parti girişi: %s, %.2f kg (%s)", batch.ID, batch.InitialWeightKg, batch.SourceFarm),
				After:       batch,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(batch)
	}
}
