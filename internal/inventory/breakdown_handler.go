package inventory

import (
	"errors"
	"fmt"

	"kasap-backend/internal/audit"
	"kasap-backend/internal/auth"
	"kasap-backend/internal/database"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ActualWeightInput struct {
	ProductID string  `json:"product_id"`
	WeightKg  float64 `json:"weight_kg"`
}

type BreakdownRequest struct {
	BatchID  string              `json:"batch_id"`
	RecipeID string              `json:"recipe_id"`
	Actuals  []ActualWeightInput `json:"actuals"`
}

// coreError: Çekirdek hatalarını HTTP durum kodlarına çevirir.
func coreError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyDepleted), errors.Is(err, ErrAlreadyExists):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidDelta), errors.Is(err, ErrNegativeWeight), errors.Is(err, ErrInvalidRecipe):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

// Yardımcı: Token'daki kullanıcı bilgilerini al
func currentUser(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}
	return userID, user.Name, nil
}

func parseBreakdownRequest(c *fiber.Ctx, svc *Service, recipes RecipeReader) (models.CarcassBatch, models.CutRecipe, Actuals, error) {
	var body BreakdownRequest
	if err := c.BodyParser(&body); err != nil {
		return models.CarcassBatch{}, models.CutRecipe{}, nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	if body.BatchID == "" || body.RecipeID == "" {
		return models.CarcassBatch{}, models.CutRecipe{}, nil, fiber.NewError(fiber.StatusBadRequest, "batch_id ve recipe_id zorunlu")
	}

	batch, err := svc.Batch(body.BatchID)
	if err != nil {
		return models.CarcassBatch{}, models.CutRecipe{}, nil, coreError(err)
	}

	recipe, err := recipes.GetRecipe(body.RecipeID)
	if err != nil {
		return models.CarcassBatch{}, models.CutRecipe{}, nil, coreError(err)
	}

	actuals := NewActuals()
	for _, in := range body.Actuals {
		if err := actuals.Record(in.ProductID, in.WeightKg); err != nil {
			return models.CarcassBatch{}, models.CutRecipe{}, nil, coreError(err)
		}
	}
	return batch, recipe, actuals, nil
}

// POST /api/breakdown/report
// Beklenen/fiili/sapma önizlemesi. Hiçbir şeyi değiştirmez; operatör
// raporu görüp commit etmeden ağırlık girmeye devam edebilir.
func BreakdownReportHandler(svc *Service, recipes RecipeReader, catalog CatalogReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		batch, recipe, actuals, err := parseBreakdownRequest(c, svc, recipes)
		if err != nil {
			return err
		}

		report := svc.Engine.BuildReport(batch, recipe, actuals, catalog)
		return c.JSON(report)
	}
}

// POST /api/breakdown/commit
// Tek seferlik commit: parti DEPLETED olur, defter fiili ağırlıklarla
// kredilenir. Tükenmiş partiye ikinci deneme 409 döner.
func BreakdownCommitHandler(svc *Service, recipes RecipeReader, catalog CatalogReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		batch, recipe, actuals, err := parseBreakdownRequest(c, svc, recipes)
		if err != nil {
			return err
		}

		report, snapshot, err := svc.CommitBreakdown(batch.ID, recipe, actuals, catalog)
		if err != nil {
			return coreError(err)
		}

		depleted, err := svc.Batch(batch.ID)
		if err != nil {
			return coreError(err)
		}

		// Audit log
		if userID, userName, uerr := currentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "batch",
				EntityID:    batch.ID,
				Action:      models.AuditActionCommit,
				Description: fmt.Sprintf("Parçalama: %s, toplam %.2f kg, kayıp %.2f kg", batch.ID, report.TotalActualKg, report.UnaccountedKg),
				Before:      batch,
				After:       report,
			})
		}

		// Yanıtta sadece commit'ten etkilenen ürünlerin yeni stoğu döner.
		affected := make(map[string]float64, len(report.Results))
		for _, res := range report.Results {
			affected[res.ProductID] = snapshot[res.ProductID]
		}

		return c.JSON(fiber.Map{
			"batch":  depleted,
			"report": report,
			"stock":  affected,
		})
	}
}
