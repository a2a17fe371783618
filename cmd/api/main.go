package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/frutasur/empaque-api/internal/application/anulacion"
	"github.com/frutasur/empaque-api/internal/application/auth"
	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/application/maestros"
	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/application/reports"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/infrastructure/dtv"
	"github.com/frutasur/empaque-api/internal/infrastructure/excel"
	infrapdf "github.com/frutasur/empaque-api/internal/infrastructure/pdf"
	"github.com/frutasur/empaque-api/internal/infrastructure/postgres"
	httpRouter "github.com/frutasur/empaque-api/internal/interfaces/http"
	"github.com/frutasur/empaque-api/pkg/config"
	"github.com/frutasur/empaque-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	containerRepo := postgres.NewContainerRepository(pool)
	intakeRepo := postgres.NewIntakeRepository(pool)
	outflowRepo := postgres.NewOutflowRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	treasuryRepo := postgres.NewTreasuryRepository(pool)
	checkRepo := postgres.NewCheckRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	partyUC := maestros.NewPartyUseCase(partyRepo, ledgerRepo)
	productUC := maestros.NewProductUseCase(productRepo)
	containerUC := maestros.NewContainerUseCase(containerRepo)
	reconciler := cuenta.NewReconciler(txRunner, partyRepo, log)
	intakeUC := movimientos.NewIntakeUseCase(txRunner, partyRepo)
	outflowUC := movimientos.NewOutflowUseCase(txRunner, partyRepo)
	movQuery := movimientos.NewQueryUseCase(intakeRepo, outflowRepo, partyRepo, productRepo, containerRepo)
	collectionUC := tesoreria.NewCollectionUseCase(txRunner, partyRepo)
	paymentUC := tesoreria.NewPaymentUseCase(txRunner, partyRepo)
	treasuryUC := tesoreria.NewTreasuryUseCase(txRunner, treasuryRepo)
	checkUC := tesoreria.NewCheckUseCase(txRunner, checkRepo)
	tesQuery := tesoreria.NewQueryUseCase(collectionRepo, paymentRepo)
	undoUC := anulacion.NewUndoUseCase(txRunner, log)
	statementUC := reports.NewStatementUseCase(partyRepo, ledgerRepo)
	stockUC := reports.NewStockUseCase(productRepo, containerRepo)

	// Exportadores
	statementXLSX := excel.NewStatementExporter()
	statementPDF := infrapdf.NewStatementGenerator(cfg.Empresa.Name)
	stockXLSX := excel.NewStockExporter()
	dtvBuilder := dtv.NewBuilder(dtv.Emitter{
		Name:    cfg.Empresa.Name,
		TaxID:   cfg.Empresa.TaxID,
		Address: cfg.Empresa.Address,
	})

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
		Title:    "Empaque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		PartyUC:       partyUC,
		ProductUC:     productUC,
		ContainerUC:   containerUC,
		Reconciler:    reconciler,
		IntakeUC:      intakeUC,
		OutflowUC:     outflowUC,
		MovQuery:      movQuery,
		CollectionUC:  collectionUC,
		PaymentUC:     paymentUC,
		TreasuryUC:    treasuryUC,
		CheckUC:       checkUC,
		TesQuery:      tesQuery,
		UndoUC:        undoUC,
		StatementUC:   statementUC,
		StockUC:       stockUC,
		StatementXLSX: statementXLSX,
		StatementPDF:  statementPDF,
		StockXLSX:     stockXLSX,
		DTVBuilder:    dtvBuilder,
		JWTSecret:     cfg.JWT.Secret,
		HealWorkers:   cfg.Cuenta.HealWorkers,
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
