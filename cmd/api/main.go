package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lockstock/lockstock-api/internal/application/auth"
	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/importer"
	"github.com/lockstock/lockstock-api/internal/application/purchase"
	"github.com/lockstock/lockstock-api/internal/application/stock"
	"github.com/lockstock/lockstock-api/internal/application/usecase"
	infraexcel "github.com/lockstock/lockstock-api/internal/infrastructure/excel"
	infrapdf "github.com/lockstock/lockstock-api/internal/infrastructure/pdf"
	"github.com/lockstock/lockstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/lockstock/lockstock-api/internal/interfaces/http"
	"github.com/lockstock/lockstock-api/pkg/config"
	"github.com/lockstock/lockstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	lineRepo := postgres.NewPurchaseOrderLineRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	resolver := authz.NewResolver(membershipRepo)

	orgUC := usecase.NewOrganizationUseCase(txRunner, orgRepo, membershipRepo, userRepo)
	teamUC := usecase.NewTeamUseCase(txRunner, teamRepo, membershipRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	ledgerUC := stock.NewLedgerUseCase(movementRepo, materialRepo, locationRepo)
	healthUC := stock.NewHealthUseCase(materialRepo, movementRepo)

	purchaseUC := purchase.NewPurchaseOrderUseCase(txRunner, supplierRepo, materialRepo, poRepo, lineRepo)
	transitionUC := purchase.NewTransitionUseCase(txRunner)
	receiveUC := purchase.NewReceiveUseCase(txRunner, locationRepo)
	pdfGenerator := infrapdf.NewMarotoPOGenerator()
	poPDFUC := purchase.NewPOPDFUseCase(poRepo, lineRepo, supplierRepo, materialRepo, orgRepo, pdfGenerator)

	csvImporter := importer.NewMaterialsCSVImporter(materialUC)
	exporter := infraexcel.NewStockReportExporter()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lockstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		OrgUC:        orgUC,
		TeamUC:       teamUC,
		MaterialUC:   materialUC,
		LocationUC:   locationUC,
		SupplierUC:   supplierUC,
		LedgerUC:     ledgerUC,
		HealthUC:     healthUC,
		PurchaseUC:   purchaseUC,
		TransitionUC: transitionUC,
		ReceiveUC:    receiveUC,
		POPDFUC:      poPDFUC,
		CSVImporter:  csvImporter,
		Exporter:     exporter,
		Resolver:     resolver,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
