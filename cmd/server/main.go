package main

import (
	"log"
	"strings"

	"kasap-backend/internal/audit"
	"kasap-backend/internal/auth"
	"kasap-backend/internal/catalog"
	"kasap-backend/internal/checkout"
	"kasap-backend/internal/config"
	"kasap-backend/internal/database"
	"kasap-backend/internal/inventory"
	"kasap-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Reçeteler açılışta doğrulanır; %100 üstü randıman konfigürasyon
	// hatasıdır, commit anına bırakılmaz.
	if err := catalog.ValidateAllRecipes(); err != nil {
		log.Fatalf("Reçete doğrulaması başarısız: %v", err)
	}

	svc := buildInventoryService(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	reader := catalog.Reader{}

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Web vitrin (public): katalog + canlı stok ve Click & Collect satışı
	api.Get("/shop/products", catalog.ShopProductsHandler(svc))
	api.Post("/shop/checkout", checkout.CheckoutHandler(svc, models.ChannelWeb))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// POS kasası
	protected.Post("/pos/checkout", checkout.CheckoutHandler(svc, models.ChannelPOS))
	protected.Get("/orders", checkout.ListOrdersHandler())

	// Katalog ve reçeteler
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/recipes", catalog.ListRecipesHandler())
	protected.Get("/recipes/:id", catalog.GetRecipeHandler())

	// Stok defteri
	protected.Get("/stock", inventory.ListStockHandler(svc))
	protected.Get("/stock/:productId", inventory.ReadStockHandler(svc))
	protected.Put("/stock", auth.RequireRole(models.RoleAdmin), inventory.ReplaceStockHandler(svc))

	// Partiler ve parçalama
	protected.Get("/batches", inventory.ListBatchesHandler(svc))
	protected.Get("/batches/active", inventory.ListActiveBatchesHandler(svc))
	protected.Post("/batches", inventory.CreateBatchHandler(svc))
	protected.Post("/breakdown/report", inventory.BreakdownReportHandler(svc, reader, reader))
	protected.Post("/breakdown/commit", inventory.BreakdownCommitHandler(svc, reader, reader))

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/staff", auth.CreateStaffHandler())
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Post("/products/import-excel", catalog.ImportProductsHandler())
	adminRoutes.Post("/recipes", catalog.CreateRecipeHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// buildInventoryService: Bellekteki çekirdeği veritabanından yükler ve
// arkadan yazma callback'lerini bağlar. Çalışma anında kaynak doğruluk
// bellekteki defter/kayıttır; DB satırları yansımadır.
func buildInventoryService(cfg *config.Config) *inventory.Service {
	ledger := inventory.NewStockLedger()

	snapshot, err := database.LoadStockSnapshot()
	if err != nil {
		log.Fatalf("Stok durumu yüklenemedi: %v", err)
	}
	if err := ledger.ReplaceAll(snapshot); err != nil {
		log.Fatalf("Stok durumu geçersiz: %v", err)
	}

	registry := inventory.NewBatchRegistry()
	batches, err := database.LoadBatches()
	if err != nil {
		log.Fatalf("Partiler yüklenemedi: %v", err)
	}
	for _, batch := range batches {
		if err := registry.Add(batch); err != nil {
			log.Printf("Parti %s yüklenemedi: %v", batch.ID, err)
		}
	}

	svc := inventory.NewService(ledger, registry, inventory.NewBreakdownEngine(cfg.YieldToleranceKg))

	svc.OnStockChange = func(snapshot map[string]float64) {
		if err := database.SaveStockSnapshot(snapshot); err != nil {
			log.Printf("Stok snapshot'ı kalıcılaştırılamadı: %v", err)
		}
	}

	svc.OnCommit = func(batch models.CarcassBatch, report *inventory.BreakdownReport) {
		if err := database.SaveBatch(batch); err != nil {
			log.Printf("Parti durumu kalıcılaştırılamadı (%s): %v", batch.ID, err)
		}
		log.Printf("Parçalama commit edildi: %s, %d ürün, kayıp %.2f kg",
			batch.ID, len(report.Results), report.UnaccountedKg)
	}

	log.Printf("Çekirdek yüklendi: %d ürün stokta, %d parti kayıtlı", len(snapshot), len(batches))
	return svc
}
