package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/customer-orders-api/internal/application/usecase"
	"github.com/jhoicas/customer-orders-api/internal/application/validation"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
	"github.com/jhoicas/customer-orders-api/internal/infrastructure/postgres"
	"github.com/jhoicas/customer-orders-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/customer-orders-api/internal/interfaces/http"
	"github.com/jhoicas/customer-orders-api/internal/metrics"
	"github.com/jhoicas/customer-orders-api/pkg/config"
	"github.com/jhoicas/customer-orders-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	txRunner, closeDB, err := openStore(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la BD")
	}
	defer closeDB()

	validate := validation.New()
	customerUC := usecase.NewCustomerUseCase(txRunner, validate)
	orderUC := usecase.NewOrderUseCase(txRunner, validate)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:    cfg.App.Name,
		CustomerUC: customerUC,
		OrderUC:    orderUC,
		Logger:     log,
		Metrics:    httpMetrics,
		Gatherer:   registry,
	})

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Customer Orders API",
		}))
	}

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

// openStore abre la BD elegida por DB_DRIVER, aplica migraciones si procede y devuelve
// el TxRunner junto con la función que libera la conexión.
func openStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (repository.TxRunner, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := sqlite.Migrate(db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			log.Info().Str("path", cfg.SQLitePath).Msg("migraciones SQLite aplicadas")
		}
		return sqlite.NewTxRunner(db), func() { _ = db.Close() }, nil
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
				return nil, nil, err
			}
			log.Info().Msg("migraciones PostgreSQL aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewTxRunner(pool), pool.Close, nil
	default:
		return nil, nil, errors.New("driver de BD no soportado: " + cfg.Driver)
	}
}
