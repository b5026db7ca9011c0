package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"smartisp.net/console/internal/auth"
	"smartisp.net/console/internal/billing"
	"smartisp.net/console/internal/clients"
	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/config"
	"smartisp.net/console/internal/handlers"
	"smartisp.net/console/internal/ids"
	"smartisp.net/console/internal/kvstore"
	"smartisp.net/console/internal/middleware"
	"smartisp.net/console/internal/mikrotik"
	"smartisp.net/console/internal/reports"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/internal/settings"
	"smartisp.net/console/internal/state"
	"smartisp.net/console/internal/support"
	"smartisp.net/console/internal/vouchers"
	"smartisp.net/console/pkg/database"
	"smartisp.net/console/pkg/logger"
	"smartisp.net/console/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatal("Failed to load configuration", "error", err)
	}

	// Initialize logger
	log := logger.NewWithWriter(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	log.Info("Starting Smart ISP console API", "version", handlers.Version, "store", cfg.StoreBackend)

	ctx := context.Background()

	// Open the persisted key-value store
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", "backend", cfg.StoreBackend, "error", err)
	}
	defer st.close()

	// Sample data
	data := seed.Empty()
	if cfg.SeedData {
		if data, err = seed.Load(); err != nil {
			log.Fatal("Failed to load seed data", "error", err)
		}
	}

	// Initialize services
	clk := clock.Real{}
	rng := ids.Default()

	hash := cfg.AdminPasswordHash
	if hash == "" {
		if hash, err = auth.HashPassword(cfg.AdminPassword); err != nil {
			log.Fatal("Failed to hash admin password", "error", err)
		}
	}
	authSvc := auth.NewService(auth.Config{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Secret:       []byte(cfg.JWTSecret),
		LoginDelay:   cfg.LoginDelay,
	}, st.kv, clk, log)

	appState := state.New(data.Clients, nil)
	svc := handlers.Services{
		Auth:    authSvc,
		Clients: clients.NewRegistry(appState, clk, rng, log),
		Vouchers: vouchers.NewEngine(ctx, vouchers.Config{
			Packages: data.Packages,
			Design:   data.VoucherDesign,
			Presets:  data.VoucherPresets,
		}, st.kv, clk, rng, log),
		Billing:  billing.NewLedger(appState, clk, log),
		Support:  support.NewDesk(data.Tickets, data.Announcements, clk, log),
		Settings: settings.NewService(ctx, data.Company, data.HotspotPresets, st.kv, clk, cfg.SaveDelay, log),
		Routers: mikrotik.NewManager(mikrotik.Inventory{
			Routers:        data.Routers,
			PPPoESecrets:   data.PPPoESecrets,
			HotspotServers: data.HotspotServers,
			FirewallRules:  data.FirewallRules,
			Logs:           data.RouterLogs,
		}, clk, rng, cfg.LogFeedInterval, log),
		Reports: reports.NewService(data.Revenue, data.PackageDistribution, data.Transactions, clk, cfg.ExportDelay, log),
	}

	h := handlers.New(svc, cfg.StoreBackend, st.ping, clk, log)

	// Rate limiting needs Redis; other backends run without it
	var limiter middleware.Limiter
	if st.redis != nil {
		limiter = st.redis
	} else {
		log.Info("Rate limiting disabled", "reason", "no redis backend")
	}
	rl := middleware.NewRateLimiter(limiter, cfg.RateLimit, cfg.RateLimitWindow, log)

	// Create router
	r := h.Routes(middleware.AuthMiddleware(authSvc))
	r.Use(middleware.RequestID, middleware.Logging(log), rl.Middleware)

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	// Create server. No WriteTimeout: the router log stream is long-lived.
	srv := &http.Server{
		Handler:           c.Handler(r),
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}

// store is the opened backend plus the handles main needs around it.
type store struct {
	kv    kvstore.Store
	redis *redis.RedisClient
	ping  handlers.Pinger
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("Redis connected successfully")
		return &store{
			kv:    kvstore.NewRedisStore(client),
			redis: client,
			ping:  client.Ping,
			close: func() { client.Close() },
		}, nil

	case config.BackendPostgres, config.BackendSQLite:
		var (
			db  *database.DB
			err error
		)
		if cfg.StoreBackend == config.BackendPostgres {
			db, err = database.Connect(cfg.Database)
		} else {
			db, err = database.OpenSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		log.Info("Database connected successfully", "driver", db.Driver)

		applied, err := db.RunMigrations()
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Migrations completed", "applied", applied)

		kv, err := kvstore.NewSQLStore(db.DB, db.Driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			kv:    kv,
			ping:  db.PingContext,
			close: func() { db.Close() },
		}, nil

	case config.BackendMemory:
		return &store{kv: kvstore.NewMemory(), close: func() {}}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
