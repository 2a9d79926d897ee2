package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	libdb "powermonitor/backend/libs/db"
	libredis "powermonitor/backend/libs/redis"
	"powermonitor/backend/services/monitor-service/internal/cache"
	"powermonitor/backend/services/monitor-service/internal/config"
	httpserver "powermonitor/backend/services/monitor-service/internal/http"
	"powermonitor/backend/services/monitor-service/internal/http/handlers"
	"powermonitor/backend/services/monitor-service/internal/repository"
	"powermonitor/backend/services/monitor-service/internal/service"
	"powermonitor/backend/services/monitor-service/internal/store"
	"powermonitor/backend/services/monitor-service/internal/telemetry"
	"powermonitor/backend/services/monitor-service/internal/ws"
)

const (
	serviceName    = "monitor-service"
	serviceVersion = "0.1.0"
	startupTimeout = 15 * time.Second
)

// App wires monitor-service dependencies.
type App struct {
	server         *httpserver.Server
	handler        http.Handler
	manager        *ws.Manager
	db             *sql.DB
	redisClient    *redis.Client
	shutdownTracer func(context.Context) error
	logger         *zap.Logger
}

// New constructs the application graph. Postgres and redis are optional and
// only connected when configured.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	a := &App{logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	schedule, err := cfg.PricingSchedule()
	if err != nil {
		return nil, err
	}

	tracer, shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Options{
		ServiceName: serviceName,
		Version:     serviceVersion,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	a.shutdownTracer = shutdownTracer

	var (
		archive   service.ReadingArchive
		schedRepo service.ScheduleRepository
		latest    service.LatestReadingCache
	)
	if cfg.PersistenceEnabled() {
		sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.db = sqlDB
		if err := libdb.Migrate(ctx, sqlDB, repository.Schema); err != nil {
			return nil, err
		}
		archive = repository.NewReadingRepository(sqlDB)
		schedRepo = repository.NewPricingRepository(sqlDB)
	} else {
		logger.Info("postgres dsn not set, readings and pricing are kept in memory only")
	}
	if cfg.CacheEnabled() {
		redisClient, err := libredis.NewRedisClient(libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redisClient = redisClient
		latest = cache.NewLatestReadingCache(redisClient, cfg.LatestReadingTTL())
	}

	readings := store.NewMemoryReadingStore(cfg.Readings.Capacity)
	slabs := store.NewMemorySlabStore(schedule)

	readingsService := service.NewReadingsService(readings, archive, latest, logger)
	pricingService := service.NewPricingService(slabs, schedRepo, logger)
	billingService := service.NewBillingService(readings, slabs, tracer, logger)

	if err := readingsService.Warm(ctx); err != nil {
		return nil, err
	}
	if err := pricingService.Restore(ctx); err != nil {
		return nil, err
	}

	a.manager = ws.NewManager()
	wsServer := ws.NewServer(a.manager, ws.NewReadingProcessor(readingsService, logger), cfg.WSWriteTimeout(), logger)

	readingsHandler := handlers.NewReadingsHandler(readingsService, logger)
	costHandler := handlers.NewCostHandler(billingService, logger)

	routes := httpserver.Routes{
		ReadingsCreate: readingsHandler.Create,
		ReadingsList:   readingsHandler.List,
		ReadingsLatest: readingsHandler.Latest,
		PricingGet:     handlers.NewPricingSlabsHandler(pricingService),
		PricingUpdate:  handlers.NewPricingUpdateHandler(pricingService, logger),
		CostCalculate:  costHandler.Calculate,
		CostRealtime:   costHandler.Realtime,
		Summary:        costHandler.Summary,
		DeviceSocket:   wsServer.HandleWS,
		Metrics:        promhttp.Handler(),
		Health:         handlers.HealthHandler,
	}

	a.handler = httpserver.Instrument(httpserver.NewRouter(routes), logger)
	a.server = httpserver.NewServer(cfg.HTTPAddress(), a.handler, logger)

	ok = true
	return a, nil
}

// Handler exposes the instrumented router.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run starts the websocket manager and HTTP server. A failing server stops
// the manager and vice versa.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.manager.Start(ctx)
		return nil
	})
	g.Go(func() error {
		return a.server.Run(ctx)
	})
	return g.Wait()
}

// Close releases resources.
func (a *App) Close() {
	if a.manager != nil {
		a.manager.CloseAll()
	}
	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracer(ctx); err != nil {
			a.logger.Warn("failed to flush traces", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
