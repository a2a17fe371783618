package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/anulacion"
	"github.com/frutasur/empaque-api/internal/application/auth"
	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/application/maestros"
	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/application/reports"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/dtv"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	PartyUC       *maestros.PartyUseCase
	ProductUC     *maestros.ProductUseCase
	ContainerUC   *maestros.ContainerUseCase
	Reconciler    *cuenta.Reconciler
	IntakeUC      *movimientos.IntakeUseCase
	OutflowUC     *movimientos.OutflowUseCase
	MovQuery      *movimientos.QueryUseCase
	CollectionUC  *tesoreria.CollectionUseCase
	PaymentUC     *tesoreria.PaymentUseCase
	TreasuryUC    *tesoreria.TreasuryUseCase
	CheckUC       *tesoreria.CheckUseCase
	TesQuery      *tesoreria.QueryUseCase
	UndoUC        *anulacion.UndoUseCase
	StatementUC   *reports.StatementUseCase
	StockUC       *reports.StockUseCase
	StatementXLSX reports.StatementExporter
	StatementPDF  reports.StatementExporter
	StockXLSX     reports.StockExporter
	DTVBuilder    *dtv.Builder
	JWTSecret     string
	HealWorkers   int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cuentas corrientes (protegido)
	parties := protected.Group("/parties")
	partyHandler := NewPartyHandler(deps.PartyUC, deps.Reconciler, deps.StatementUC,
		deps.StatementXLSX, deps.StatementPDF, deps.HealWorkers)
	containerHandler := NewContainerHandler(deps.ContainerUC)
	parties.Post("/", partyHandler.Create)
	parties.Get("/", partyHandler.List)
	parties.Post("/heal", RequireRole(entity.RoleAdmin), partyHandler.HealAll)
	parties.Get("/:id", partyHandler.Get)
	parties.Put("/:id", partyHandler.Update)
	parties.Delete("/:id", RequireRole(entity.RoleAdmin), partyHandler.Delete)
	parties.Post("/:id/reconcile", partyHandler.Reconcile)
	parties.Get("/:id/statement", partyHandler.Statement)
	parties.Get("/:id/container-debts", containerHandler.ListDebtByParty)

	// Productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Envases (protegido)
	containers := protected.Group("/containers")
	containers.Post("/types", containerHandler.CreateType)
	containers.Get("/types", containerHandler.ListTypes)
	containers.Get("/stock", containerHandler.ListStock)

	// Remitos de entrada (protegido)
	intakes := protected.Group("/intakes")
	intakeHandler := NewIntakeHandler(deps.IntakeUC, deps.MovQuery)
	undoHandler := NewUndoHandler(deps.UndoUC)
	intakes.Post("/", intakeHandler.Create)
	intakes.Get("/", intakeHandler.List)
	intakes.Get("/:id", intakeHandler.Get)
	intakes.Delete("/:id", undoHandler.UndoIntake)

	// Salidas (protegido)
	outflows := protected.Group("/outflows")
	outflowHandler := NewOutflowHandler(deps.OutflowUC, deps.MovQuery, deps.DTVBuilder)
	outflows.Post("/", outflowHandler.Create)
	outflows.Get("/", outflowHandler.List)
	outflows.Get("/:id", outflowHandler.Get)
	outflows.Get("/:id/transport-doc", outflowHandler.TransportDoc)
	outflows.Delete("/:id", undoHandler.UndoOutflow)

	// Cobranzas (protegido)
	collections := protected.Group("/collections")
	collectionHandler := NewCollectionHandler(deps.CollectionUC, deps.TesQuery)
	collections.Post("/", collectionHandler.Create)
	collections.Get("/", collectionHandler.List)
	collections.Get("/:id", collectionHandler.Get)
	collections.Delete("/:id", undoHandler.UndoCollection)

	// Pagos (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.TesQuery)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.Get)
	payments.Delete("/:id", undoHandler.UndoPayment)

	// Tesorería (protegido)
	treasury := protected.Group("/treasury")
	treasuryHandler := NewTreasuryHandler(deps.TreasuryUC)
	treasury.Post("/accounts", treasuryHandler.CreateAccount)
	treasury.Get("/accounts", treasuryHandler.ListAccounts)
	treasury.Get("/accounts/:id", treasuryHandler.GetAccount)
	treasury.Delete("/accounts/:id", RequireRole(entity.RoleAdmin), treasuryHandler.DeleteAccount)
	treasury.Post("/accounts/:id/entries", treasuryHandler.CreateEntry)
	treasury.Get("/accounts/:id/entries", treasuryHandler.ListEntries)
	treasury.Delete("/entries/:id", treasuryHandler.DeleteEntry)

	// Cartera de cheques (protegido)
	checks := protected.Group("/checks")
	checkHandler := NewCheckHandler(deps.CheckUC)
	checks.Get("/", checkHandler.List)
	checks.Get("/:id", checkHandler.Get)
	checks.Post("/:id/deposit", checkHandler.Deposit)
	checks.Put("/:id/status", checkHandler.UpdateStatus)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.StockUC, deps.StockXLSX)
	reportsGroup.Get("/stock", reportHandler.Stock)
}
