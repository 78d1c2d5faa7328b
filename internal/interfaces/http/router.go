package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lockstock/lockstock-api/internal/application/auth"
	"github.com/lockstock/lockstock-api/internal/application/authz"
	"github.com/lockstock/lockstock-api/internal/application/importer"
	"github.com/lockstock/lockstock-api/internal/application/purchase"
	"github.com/lockstock/lockstock-api/internal/application/stock"
	"github.com/lockstock/lockstock-api/internal/application/usecase"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
	"github.com/lockstock/lockstock-api/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OrgUC        *usecase.OrganizationUseCase
	TeamUC       *usecase.TeamUseCase
	MaterialUC   *usecase.MaterialUseCase
	LocationUC   *usecase.LocationUseCase
	SupplierUC   *usecase.SupplierUseCase
	LedgerUC     *stock.LedgerUseCase
	HealthUC     *stock.HealthUseCase
	PurchaseUC   *purchase.PurchaseOrderUseCase
	TransitionUC *purchase.TransitionUseCase
	ReceiveUC    *purchase.ReceiveUseCase
	POPDFUC      *purchase.POPDFUseCase
	CSVImporter  *importer.MaterialsCSVImporter
	Exporter     *excel.StockReportExporter
	Resolver     *authz.Resolver
	JWTSecret    string
}

// Router registra las rutas de la API.
// Toda ruta bajo org exige Bearer Token + X-Org-ID con membresía; el mínimo de
// rol por operación: lecturas viewer, movimientos y recepciones member,
// catálogo y órdenes manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Autenticado, sin organización activa
	authed := api.Group("/", AuthMiddleware(deps.JWTSecret))

	orgHandler := NewOrganizationHandler(deps.OrgUC)
	authed.Post("/organizations", orgHandler.Create)
	authed.Get("/organizations", orgHandler.ListMine)

	// Autenticado + organización activa resuelta (X-Org-ID)
	org := authed.Group("/", OrgMiddleware(deps.Resolver))
	org.Get("/org", orgHandler.Get)

	manager := RequireMinRole(entity.RoleManager)
	member := RequireMinRole(entity.RoleMember)

	org.Get("/org/members", orgHandler.ListMembers)
	org.Post("/org/members", manager, orgHandler.AddMember)

	// Equipos
	teamHandler := NewTeamHandler(deps.TeamUC)
	teams := org.Group("/teams")
	teams.Post("/", manager, teamHandler.Create)
	teams.Get("/", teamHandler.List)
	teams.Post("/:id/members", manager, teamHandler.AddMember)

	// Materiales
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.CSVImporter)
	materials := org.Group("/materials")
	materials.Post("/", manager, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", manager, materialHandler.Update)
	materials.Delete("/:id", manager, materialHandler.Deactivate)
	org.Post("/import/materials-csv", manager, materialHandler.ImportCSV)

	// Ubicaciones
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := org.Group("/locations")
	locations.Post("/", manager, locationHandler.Create)
	locations.Get("/", locationHandler.List)

	// Proveedores
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := org.Group("/suppliers")
	suppliers.Post("/", manager, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Ledger de stock
	stockHandler := NewStockHandler(deps.LedgerUC)
	stockGroup := org.Group("/stock")
	stockGroup.Post("/movements", member, stockHandler.RegisterMovement)
	stockGroup.Get("/:material_id/balance", stockHandler.Balance)
	stockGroup.Get("/:material_id/movements", stockHandler.ListMovements)

	// Órdenes de compra
	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC, deps.TransitionUC, deps.ReceiveUC, deps.POPDFUC)
	pos := org.Group("/purchase-orders")
	pos.Post("/", manager, poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Patch("/:id/status", manager, poHandler.UpdateStatus)
	pos.Post("/:id/receive", member, poHandler.Receive)
	pos.Get("/:id/pdf", poHandler.PDF)

	// Reportes y alertas
	reportHandler := NewReportHandler(deps.HealthUC, deps.Exporter)
	org.Get("/alerts/low-stock", reportHandler.LowStock)
	org.Get("/reports/stock-health", reportHandler.StockHealth)
	org.Get("/reports/stock-health/export", reportHandler.LowStockXLSX)
}
