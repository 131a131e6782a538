package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kloth-be/internal/cache"
	"kloth-be/internal/carousel"
	"kloth-be/internal/category"
	"kloth-be/internal/config"
	"kloth-be/internal/db"
	"kloth-be/internal/httpapi"
	"kloth-be/internal/logger"
	"kloth-be/internal/middleware"
	"kloth-be/internal/product"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc       = db.InitDB
	connectCacheFunc = connectCache
	startServerFunc  = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("catalog server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(ctx, cfg)
	defer database.Close()

	store, closeCache := connectCacheFunc(ctx, cfg)
	defer closeCache()

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, database, store, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.L().Info("🚀 catalog API running", zap.String("addr", "http://localhost:"+cfg.AppPort+"/api/v1"))
	return startServerFunc(ctx, srv)
}

func newServer(cfg *config.Config, database *sql.DB, store cache.Cache, limiter *middleware.RateLimiter) http.Handler {
	productSvc := product.NewService(product.NewRepository(database), cfg.PageSize)
	categorySvc := category.NewService(category.NewRepository(database), store, cfg.CacheTTL)
	carouselSvc := carousel.NewService(carousel.NewRepository(database), store, cfg.CacheTTL)

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService:  productSvc,
		CategoryService: categorySvc,
		CarouselService: carouselSvc,
		DB:              database,
		Limiter:         limiter,
		CORSOrigin:      cfg.CORSOrigin,
	})
	return api.Router()
}

// connectCache prefers redis and falls back to the in-process cache.
func connectCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	log := logger.L()
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemory(), func() {}
	}

	client, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		return cache.NewMemory(), func() {}
	}

	log.Info("redis cache connected")
	return cache.NewRedis(client), func() { _ = client.Close() }
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.L().Info("shutting down catalog API")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
