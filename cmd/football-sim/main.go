package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/cache"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/config"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/consumer"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/hub"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/retry"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/service"
	"github.com/XavierBriggs/fortuna/services/football-sim/internal/store"
	"github.com/XavierBriggs/fortuna/services/football-sim/pkg/contracts"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("=== Fortuna Football Sim ===")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("❌ Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	tables, err := cfg.Tables()
	if err != nil {
		fmt.Printf("❌ Failed to load tuning tables: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	policy := retry.NewPolicy(cfg.Connect.Attempts, cfg.Connect.Backoff).
		OnRetry(func(attempt int, err error, wait time.Duration) {
			fmt.Printf("⚠️  Connection attempt %d failed: %v (retrying in %v)\n", attempt, err, wait)
		})

	// Connect to Redis
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := policy.Execute(ctx, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	redisWriter := cache.NewRedisWriter(redisClient, cfg.Stream.SportKey, cfg.Redis.BoxScoreTTL, cfg.Redis.RecentLimit)
	streamPublisher := publisher.NewStreamPublisher(redisClient, cfg.Stream.Key())

	sinks := []contracts.ResultSink{redisWriter, streamPublisher}
	readers := []contracts.GameReader{redisWriter}
	checks := map[string]handlers.HealthCheck{"redis": redisWriter.Ping}

	// Connect to Holocron
	if cfg.Postgres.PersistResults {
		var db *sql.DB
		err := policy.Execute(ctx, func(ctx context.Context) error {
			var err error
			db, err = connectDB(ctx, cfg.Postgres.DSN)
			return err
		})
		if err != nil {
			fmt.Printf("❌ Failed to connect to Holocron: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := store.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			fmt.Printf("❌ Failed to migrate Holocron: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Connected to Holocron DB")

		sinks = append(sinks, pg)
		readers = append(readers, pg)
		checks["postgres"] = pg.Ping
	}

	sim := service.NewSimulator(service.Options{
		SportKey:      cfg.Stream.SportKey,
		Tables:        tables,
		Workers:       cfg.Sim.Workers,
		MaxBatchGames: cfg.Sim.MaxBatchGames,
		Logger:        logger,
	}, sinks...)
	reader := service.NewFallbackReader(logger, readers...)

	// Websocket fan-out fed from the games stream
	h := hub.NewHub(logger.With(zap.String("component", "hub")))
	go h.Run(ctx)

	streamConsumer := consumer.NewStreamConsumer(redisClient, h, cfg.Stream, logger.With(zap.String("component", "consumer")))
	go func() {
		if err := streamConsumer.Start(ctx); err != nil {
			logger.Error("stream consumer stopped", zap.Error(err))
		}
	}()

	handler := handlers.NewHandler(checks, h.GetMetrics, logger)
	gamesHandler := handlers.NewGamesHandler(sim, reader, logger.With(zap.String("component", "api")))
	wsHandler := handlers.NewWebSocketHandler(ctx, h, cfg.Server.CORSOrigins, logger.With(zap.String("component", "ws")))

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", handler.HandleMetrics)
	r.Get("/ws", wsHandler.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		if cfg.Sim.RatePerMinute > 0 {
			limiter := ratelimit.NewWindow(redisClient, "football-sim", cfg.Sim.RatePerMinute, time.Minute)
			r.Use(middleware.RateLimit(limiter, logger))
		}
		gamesHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Football Sim listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /metrics")
		fmt.Println("    GET  /ws")
		fmt.Println("    POST /api/v1/games")
		fmt.Println("    POST /api/v1/games/batch")
		fmt.Println("    GET  /api/v1/games/recent")
		fmt.Println("    GET  /api/v1/games/{game_id}")
		fmt.Println("    GET  /api/v1/games/{game_id}/boxscore")
		fmt.Printf("  Sinks: %v\n", sim.Sinks())

		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Stop the hub, consumer and websocket pumps
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}

// connectDB opens a direct database connection
func connectDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
