package router

import (
	"time"

	"github.com/Omc12/StockSimple/internal/config"
	"github.com/Omc12/StockSimple/internal/handler"
	"github.com/Omc12/StockSimple/internal/infra"
	"github.com/Omc12/StockSimple/internal/middleware"
	"github.com/Omc12/StockSimple/internal/repository"
	"github.com/Omc12/StockSimple/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// notifier may be nil when low-stock alert mail is not configured.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notifier service.LowStockNotifier) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	tokenStore := infra.NewTokenStore(rdb, time.Duration(cfg.JWTRefreshHours)*time.Hour)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, tokenStore, cfg)
	catalogSvc := service.NewCatalogService(productRepo)
	ledgerSvc := service.NewLedgerService(productRepo, movementRepo, notifier)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	movementsH := handler.NewMovementsHandler(ledgerSvc)
	dashboardH := handler.NewDashboardHandler(ledgerSvc)
	reportsH := handler.NewReportsHandler(ledgerSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	products := r.Group("/products", jwtMW)
	{
		products.GET("", productsH.List)
		products.GET("/:id", productsH.GetByID)
		products.POST("", productsH.Create)
		products.PUT("/:sku", productsH.UpdateBySKU)
		products.DELETE("/:id", productsH.Delete)
	}

	movements := r.Group("/movements", jwtMW)
	{
		movements.POST("", movementsH.Record)
		movements.GET("", movementsH.List)
	}

	r.GET("/dashboard/alerts", jwtMW, dashboardH.Alerts)

	reports := r.Group("/reports", jwtMW)
	{
		reports.GET("/toplow", reportsH.TopLow)
		reports.GET("/toplow/pdf", reportsH.TopLowPDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
