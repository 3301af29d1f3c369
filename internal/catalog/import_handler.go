package catalog

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"kasap-backend/internal/database"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ImportProductsResponse struct {
	Imported int      `json:"imported"` // yeni oluşturulan ürün sayısı
	Updated  int      `json:"updated"`  // güncellenen ürün sayısı
	Skipped  int      `json:"skipped"`  // atlanan satır sayısı
	Errors   []string `json:"errors"`   // satır bazlı hata mesajları
}

// POST /api/admin/products/import-excel (sadece admin)
// XLSX dosyasından toplu ürün içe aktarma. Beklenen kolonlar:
// ID | NAME | UNIT | PRICE | CATEGORY. Mevcut ID'ler güncellenir,
// yeniler oluşturulur; bozuk satırlar raporlanır ama import durmaz.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// İlk satır başlık mı? ("ID", "ÜRÜN", "PRODUCT" vb. geçiyorsa atla)
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if firstCell == "ID" || strings.Contains(firstCell, "ÜRÜN") || strings.Contains(firstCell, "PRODUCT") {
				startIndex = 1
			}
		}

		resp := ImportProductsResponse{Errors: make([]string, 0)}

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}

			cell := func(idx int) string {
				if idx < len(row) {
					return strings.TrimSpace(row[idx])
				}
				return ""
			}

			id := cell(0)
			name := cell(1)
			if name == "" {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("satır %d: ürün adı boş", i+1))
				continue
			}

			unitType, ok := parseUnitType(cell(2))
			if !ok {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("satır %d: birim 'kg' veya 'adet' olmalı", i+1))
				continue
			}

			price, err := strconv.ParseFloat(strings.ReplaceAll(cell(3), ",", "."), 64)
			if err != nil || price < 0 {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("satır %d: fiyat geçersiz", i+1))
				continue
			}

			var existing models.Product
			if err := database.DB.First(&existing, "id = ?", id).Error; err == nil {
				existing.Name = name
				existing.UnitType = unitType
				existing.PricePerUnit = price
				existing.Category = cell(4)
				if err := database.DB.Save(&existing).Error; err != nil {
					resp.Skipped++
					resp.Errors = append(resp.Errors, fmt.Sprintf("satır %d: güncellenemedi", i+1))
					continue
				}
				resp.Updated++
				continue
			}

			p := models.Product{
				ID:           id,
				Name:         name,
				UnitType:     unitType,
				PricePerUnit: price,
				Category:     cell(4),
			}
			if err := database.DB.Create(&p).Error; err != nil {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("satır %d: oluşturulamadı", i+1))
				continue
			}
			resp.Imported++
		}

		log.Printf("Excel import tamamlandı: %d yeni, %d güncel, %d atlandı", resp.Imported, resp.Updated, resp.Skipped)
		return c.JSON(resp)
	}
}
