package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/pharmacy"
	"github.com/jhoicas/Farmacia-api/internal/application/search"
	"github.com/jhoicas/Farmacia-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Search      *search.Engine
	Directory   *pharmacy.Directory
	Registrar   *pharmacy.Registrar
	Store       *appinventory.Store
	ScanUC      *appinventory.ScanUseCase
	ReportUC    *appinventory.ReportUseCase
	JWT         config.JWTConfig
	SearchLimit fiber.Handler // nil = sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Búsqueda (público, limitado por IP)
	searchHandler := NewSearchHandler(deps.Search)
	if deps.SearchLimit != nil {
		api.Get("/search", deps.SearchLimit, searchHandler.Search)
	} else {
		api.Get("/search", searchHandler.Search)
	}

	// Directorio e ingreso de dueños (público)
	pharmacyHandler := NewPharmacyHandler(deps.Directory, deps.Registrar, deps.JWT)
	api.Get("/pharmacies", pharmacyHandler.List)
	api.Post("/owners/session", pharmacyHandler.Session)

	// Inventario de la farmacia del token (protegido)
	owner := api.Group("/owner", AuthMiddleware(deps.JWT.Secret), RequirePharmacy(deps.Directory))
	inventoryHandler := NewInventoryHandler(deps.Store, deps.ScanUC, deps.ReportUC)
	inv := owner.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Put("/", inventoryHandler.Upsert)
	inv.Post("/scan", inventoryHandler.Scan)
	inv.Get("/report.pdf", inventoryHandler.Report)
	inv.Patch("/:medicine", inventoryHandler.UpdateStock)
	inv.Delete("/:medicine", inventoryHandler.Remove)
}
