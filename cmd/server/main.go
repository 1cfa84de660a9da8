package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	companyapp "github.com/erp/invoicing/internal/application/company"
	documentapp "github.com/erp/invoicing/internal/application/document"
	reportapp "github.com/erp/invoicing/internal/application/report"
	"github.com/erp/invoicing/internal/infrastructure/auth"
	"github.com/erp/invoicing/internal/infrastructure/cache"
	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/erp/invoicing/internal/infrastructure/event"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/infrastructure/persistence"
	"github.com/erp/invoicing/internal/infrastructure/storage"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/erp/invoicing/internal/interfaces/http/handler"
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/erp/invoicing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Invoicing API
//	@version		1.0
//	@description	Multi-tenant invoicing API: companies, orders, documents, totals and cash-flow reports

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting invoicing API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Error shutting down tracing", zap.Error(err))
		}
	}()

	shutdownMetrics, err := telemetry.SetupMetrics(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			log.Error("Error shutting down metrics", zap.Error(err))
		}
	}()
	eventMetrics, err := telemetry.NewEventMetrics(telemetry.Meter())
	if err != nil {
		log.Fatal("Failed to create event metrics", zap.Error(err))
	}
	reportMetrics, err := telemetry.NewReportMetrics(telemetry.Meter())
	if err != nil {
		log.Fatal("Failed to create report metrics", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled,
		DBName:          cfg.Database.DBName,
		WithVariables:   cfg.App.Env == "development",
		SlowQueryThresh: cfg.Database.SlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	changeRateRepo := persistence.NewGormChangeRateRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	invoiceReportRepo := persistence.NewGormInvoiceReportRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	reportCache, err := cache.NewReportCache(cfg.Redis, cache.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize report cache", zap.Error(err))
	}
	defer func() {
		_ = reportCache.Close()
	}()

	var archive storage.ReportArchive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3ReportArchive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Report archive bucket unavailable", zap.Error(err))
		}
		archive = s3Archive
	} else {
		log.Info("Object storage disabled, cash-flow export unavailable")
	}

	// Event bus: document changes drop the cached reports of their tenant
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.SetMetrics(eventMetrics)
	invalidator := cache.NewReportCacheInvalidator(reportCache, log)
	eventBus.Subscribe(invalidator, invalidator.EventTypes()...)
	log.Info("Event handlers registered", zap.Strings("report_cache_invalidation", invalidator.EventTypes()))

	// Application services
	companyService := companyapp.NewCompanyService(companyRepo)
	companyService.SetEventPublisher(eventBus)
	partnerService := companyapp.NewPartnerService(companyRepo, customerRepo, providerRepo)
	partnerService.SetEventPublisher(eventBus)
	bankAccountService := companyapp.NewBankAccountService(companyRepo, bankAccountRepo)
	orderService := documentapp.NewOrderService(companyRepo, orderRepo)
	changeRateService := documentapp.NewChangeRateService(changeRateRepo)
	documentService := documentapp.NewDocumentService(documentapp.DocumentServiceDeps{
		Documents:    documentRepo,
		Orders:       orderRepo,
		ChangeRates:  changeRateRepo,
		Companies:    companyRepo,
		Customers:    customerRepo,
		BankAccounts: bankAccountRepo,
		TxManager:    txManager,
	})
	documentService.SetEventPublisher(eventBus)
	documentService.SetNoteLocale(cfg.Report.Locale)
	reportService := reportapp.NewReportService(invoiceReportRepo, reportCache, archive, cfg.Report)
	reportService.SetMetrics(reportMetrics)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.AccessLog(log, "/health", "/api/v1/health"),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	systemHandler := handler.NewSystemHandler(telemetry.ServiceVersion)
	systemHandler.AddCheck("database", db.PingContext)
	systemHandler.SetEventStats(eventBus)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/api/v1/health", systemHandler.Health)

	api := router.NewAPI(engine, "v1")
	var docsGuard []gin.HandlerFunc
	if cfg.JWT.Enabled {
		verifier := auth.NewTokenVerifier(cfg.JWT)
		jwtCfg := middleware.DefaultJWTConfig(verifier)
		jwtCfg.Logger = log
		jwtCfg.SkipPaths = append(jwtCfg.SkipPaths, api.Base()+"/iban/validate")
		api.Use(middleware.JWTAuth(jwtCfg))

		docsCfg := middleware.DefaultJWTConfig(verifier)
		docsCfg.Logger = log
		docsGuard = append(docsGuard, middleware.JWTAuth(docsCfg))
	} else {
		log.Warn("JWT authentication disabled, tenant taken from the X-Tenant-ID header")
	}
	if router.MountSwagger(engine, cfg.Swagger, docsGuard...) {
		log.Info("Swagger UI mounted", zap.String("path", "/swagger/index.html"), zap.Bool("require_auth", cfg.Swagger.RequireAuth))
	}
	api.Use(
		middleware.Tenant(middleware.DefaultTenantConfig(cfg.JWT.Enabled)),
		middleware.SpanAttributes(),
	)
	router.RegisterAPI(api, router.Handlers{
		Companies:   handler.NewCompanyHandler(companyService, bankAccountService),
		Partners:    handler.NewPartnerHandler(partnerService),
		BankAccount: handler.NewBankAccountHandler(bankAccountService),
		Orders:      handler.NewOrderHandler(orderService),
		ChangeRates: handler.NewChangeRateHandler(changeRateService),
		Documents:   handler.NewDocumentHandler(documentService),
		Reports:     handler.NewReportHandler(reportService),
	})
	api.Mount()
	log.Info("API routes mounted", zap.String("base", api.Base()), zap.Int("routes", len(api.Routes())))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
