package audit

import (
	"strconv"

	"kasap-backend/internal/database"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/audit-logs?entity_type=batch&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed <= 0 || parsed > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit 1-1000 arası olmalı")
			}
			limit = parsed
		}

		dbq := database.DB.Model(&models.AuditLog{})
		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entity_id"); entityID != "" {
			dbq = dbq.Where("entity_id = ?", entityID)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit loglar listelenemedi")
		}

		return c.JSON(logs)
	}
}
