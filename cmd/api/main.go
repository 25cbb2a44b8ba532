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
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/usecase"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-pos/internal/interfaces/ws"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// repos agrupa los repositorios y runners de transacción del driver elegido.
type repos struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	lots      repository.StockLotRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	saleTx    sales.SaleTxRunner
	receiving inventory.ReceivingTxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var r repos
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		r = repos{
			products:  store.Products(),
			customers: store.Customers(),
			suppliers: store.Suppliers(),
			lots:      store.StockLots(),
			sales:     store.Sales(),
			purchases: store.Purchases(),
			saleTx:    store,
			receiving: store,
		}
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner := postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout)
		r = repos{
			products:  postgres.NewProductRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool),
			lots:      postgres.NewStockLotRepository(pool),
			sales:     postgres.NewSaleRepository(pool),
			purchases: postgres.NewPurchaseRepository(pool),
			saleTx:    txRunner,
			receiving: txRunner,
		}
	}

	// Caché de productos opcional (REDIS_ADDR)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, sin caché de productos")
		} else {
			defer client.Close()
			r.products = cache.NewProductCache(r.products, client, cfg.Redis.TTL, log.Named("cache"))
		}
	}

	hub := ws.NewHub(log.Named("ws"))
	go hub.Run(ctx)

	productUC := usecase.NewProductUseCase(r.products)
	customerUC := usecase.NewCustomerUseCase(r.customers)
	supplierUC := usecase.NewSupplierUseCase(r.suppliers)
	saleUC := sales.NewCreateSaleUseCase(r.saleTx, r.products, r.customers, r.sales, hub, log.Named("sales"))
	purchaseUC := inventory.NewPurchaseUseCase(r.receiving, r.products, r.suppliers, r.purchases, r.lots, hub)
	ledgerUC := inventory.NewLedgerUseCase(r.products, r.lots)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CustomerUC: customerUC,
		SupplierUC: supplierUC,
		SaleUC:     saleUC,
		PurchaseUC: purchaseUC,
		LedgerUC:   ledgerUC,
		Hub:        hub,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Named("http"),
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
	stop()

	log.Info().Msg("aplicación detenida")
}
