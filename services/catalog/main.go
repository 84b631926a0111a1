package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg := LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	if cfg.OTelEnabled {
		tp, err := initTracer(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()

		mp, err := initMetrics(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize metrics: %v", err)
		}
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down meter provider: %v", err)
			}
		}()
	} else {
		log.Println("ℹ️ OpenTelemetry disabled, using no-op providers")
	}

	tracer := otel.Tracer(cfg.ServiceName)
	metrics, err := newCatalogMetrics(otel.Meter(cfg.ServiceName))
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database
	dbPool, err := initDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbPool.Close()

	startSchemaBootstrap(ctx, cfg)

	cache, closeCache := initCache(ctx, cfg)
	defer closeCache()

	productRepository := NewProductRepository(dbPool)
	inventoryRepository := NewInventoryRepository(dbPool)

	productUseCase := NewProductUseCase(productRepository, cache, tracer, metrics)
	inventoryUseCase := NewInventoryUseCase(inventoryRepository, cache, tracer, metrics)

	productHandler := NewProductHandler(productUseCase)
	inventoryHandler := NewInventoryHandler(inventoryUseCase)
	statusHandler := NewStatusHandler(dbPool)

	// Setup Gin router
	r := gin.Default()
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", statusHandler.Health)

	api := r.Group("/api")
	api.GET("/db-test", statusHandler.DBTest)
	productHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Catalog Service listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}

// initDB cria o pool sem exigir que o banco esteja no ar
func initDB(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.PoolDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 25
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Printf("⏳ Database not reachable yet, requests will fail until it is: %v", err)
	} else {
		log.Println("✅ Connected to catalog database with connection pool")
	}

	return pool, nil
}

// initCache usa Redis quando REDIS_ADDR está definido; qualquer falha cai no cache no-op
func initCache(ctx context.Context, cfg Config) (ProductCache, func()) {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, product cache disabled")
		return noopProductCache{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 50,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("❌ Failed to connect redis at %s, product cache disabled: %v", cfg.RedisAddr, err)
		rdb.Close()
		return noopProductCache{}, func() {}
	}

	log.Printf("✅ Connected to redis at %s", cfg.RedisAddr)
	return NewRedisProductCache(rdb, cfg.CacheTTL), func() {
		if err := rdb.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
	}
}
