// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/catalogs/customer"
	"bahikhata/internal/domain/catalogs/product"
	"bahikhata/internal/domain/documents/adjustment"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/domain/documents/purchase"
	"bahikhata/internal/domain/registers/ledger"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/infrastructure/http/v1/handlers"
	"bahikhata/internal/infrastructure/http/v1/middleware"
	"bahikhata/internal/infrastructure/render/pdf"
	"bahikhata/internal/infrastructure/storage/postgres"
	"bahikhata/internal/infrastructure/storage/postgres/catalog_repo"
	"bahikhata/internal/infrastructure/storage/postgres/document_repo"
	"bahikhata/internal/infrastructure/storage/postgres/register_repo"
	"bahikhata/internal/infrastructure/storage/postgres/report_repo"
	"bahikhata/pkg/logger"
	"bahikhata/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks).
	Pool *postgres.Pool

	// TxManager routes repository queries through the caller's transaction.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// AuthService for authentication endpoints and token validation.
	AuthService *auth.Service

	// Invoice holds invoice engine behavior switches.
	Invoice invoice.Config

	// Business is the seller block printed on invoice PDFs.
	Business pdf.BusinessInfo
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters).
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth).
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// Repositories share the transaction manager; a repo call inside
	// RunInTransaction rides the surrounding transaction.
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	adjustmentRepo := document_repo.NewAdjustmentRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	paymentRepo := document_repo.NewPaymentRepo(cfg.TxManager)
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	ledgerRepo := register_repo.NewLedgerRepo(cfg.TxManager)
	reportsRepo := report_repo.NewReportsRepo(cfg.TxManager)

	stockService := stock.NewService(stockRepo)
	ledgerService := ledger.NewService(ledgerRepo, paymentRepo)
	productService := product.NewService(productRepo, stockService)
	customerService := customer.NewService(customerRepo)
	purchaseService := purchase.NewService(purchaseRepo, stockService)
	adjustmentService := adjustment.NewService(adjustmentRepo, stockService)
	reportService := reports.NewService(reportsRepo)

	numbers := numerator.New(cfg.TxManager, numerator.InvoiceConfig())
	invoiceService := invoice.NewService(
		invoiceRepo,
		stockService,
		ledgerService,
		numbers,
		cfg.TxManager,
		cfg.Invoice,
	)

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		publicAuth := v1.Group("/auth")
		protectedAuth := v1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.AuthService))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		catalogs := protected.Group("/catalog")
		{
			handler := handlers.NewProductHandler(baseHandler, productService)
			handler.RegisterRoutes(catalogs.Group("/products"))
		}
		{
			handler := handlers.NewCustomerHandler(baseHandler, customerService)
			handler.RegisterRoutes(catalogs.Group("/customers"))
		}

		docs := protected.Group("/document")
		{
			handler := handlers.NewPurchaseHandler(baseHandler, purchaseService)
			handler.RegisterRoutes(docs.Group("/purchases"))
		}
		{
			handler := handlers.NewAdjustmentHandler(baseHandler, adjustmentService)
			handler.RegisterRoutes(docs.Group("/adjustments"))
		}
		{
			handler := handlers.NewInvoiceHandler(baseHandler, invoiceService, productService, customerService, cfg.Business)
			handler.RegisterRoutes(docs.Group("/invoices"))
		}

		ledgerHandler := handlers.NewLedgerHandler(baseHandler, ledgerService)
		ledgerHandler.RegisterPaymentRoutes(docs.Group("/payments"))

		registers := protected.Group("/registers")
		{
			handler := handlers.NewStockHandler(baseHandler, stockService, reportService)
			handler.RegisterRoutes(registers.Group("/stock"))
		}
		ledgerHandler.RegisterLedgerRoutes(registers.Group("/ledger"))

		{
			handler := handlers.NewReportsHandler(baseHandler, reportService, purchaseService, invoiceService)
			handler.RegisterRoutes(protected.Group("/reports"))
		}
	}

	return router
}
