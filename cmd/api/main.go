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
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/pharmacy"
	"github.com/jhoicas/Farmacia-api/internal/application/search"
	infraai "github.com/jhoicas/Farmacia-api/internal/infrastructure/ai"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/seed"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	// Precios como número JSON (25.5) y no como string ("25.5").
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	seeds, err := seed.Pharmacies(cfg.Store.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar farmacias semilla")
	}

	directory := pharmacy.NewDirectory(seeds, backend.Pharmacies, log.Component("directory"))
	if err := directory.Load(ctx); err != nil {
		log.Error().Err(err).Msg("leer farmacias registradas; se continúa sin ellas")
	}
	registrar := pharmacy.NewRegistrar(directory, backend.Pharmacies, log.Component("registrar"))

	store := appinventory.NewStore(backend.Inventory, log.Component("inventory"))
	if err := store.Load(ctx); err != nil {
		log.Error().Err(err).Msg("leer inventario; se continúa con inventario vacío")
	}

	m := metrics.New("farmacia")
	engine := search.NewEngine(directory, store, m, log.Component("search"))

	extractor, err := infraai.NewExtractor(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar proveedor de IA")
	}
	scanUC := appinventory.NewScanUseCase(extractor, store, log.Component("scan"))

	// PDF: reporte de inventario por farmacia
	reportUC := appinventory.NewReportUseCase(directory, store, infrapdf.NewMarotoReportGenerator())

	searchLimit, err := httpRouter.RateLimit(cfg.Search.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.Search.RateLimit).Msg("SEARCH_RATE_LIMIT inválido")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el escaneo con IA puede tardar hasta 20 s
		IdleTimeout:  time.Second * 60,
		BodyLimit:    httpRouter.MaxScanImageBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init` previo)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Farmacia API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    cfg.App.Name,
			"store":      backend.Driver,
			"pharmacies": len(directory.ListAll()),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Search:      engine,
		Directory:   directory,
		Registrar:   registrar,
		Store:       store,
		ScanUC:      scanUC,
		ReportUC:    reportUC,
		JWT:         cfg.JWT,
		SearchLimit: searchLimit,
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
