package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivmaks/raskraska/internal/server/handlers"
	"github.com/ivmaks/raskraska/internal/server/middleware"
	"github.com/ivmaks/raskraska/internal/server/storage/sqlite"
	"github.com/ivmaks/raskraska/internal/server/telegram"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	shutdownTimeout = 10 * time.Second
	initDataMaxAge  = 24 * time.Hour
	accessTokenTTL  = 24 * time.Hour
)

type config struct {
	addr          string
	dbPath        string
	botToken      string
	jwtSecret     string
	webAppURL     string
	webhookSecret string
	corsOrigin    string
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOr("RASKRASKA_ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOr("RASKRASKA_DB", "raskraska.db"), "Path to SQLite database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config{
		addr:          *addr,
		dbPath:        *dbPath,
		botToken:      os.Getenv("RASKRASKA_BOT_TOKEN"),
		jwtSecret:     os.Getenv("RASKRASKA_JWT_SECRET"),
		webAppURL:     os.Getenv("RASKRASKA_WEBAPP_URL"),
		webhookSecret: os.Getenv("RASKRASKA_WEBHOOK_SECRET"),
		corsOrigin:    os.Getenv("RASKRASKA_CORS_ORIGIN"),
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	if cfg.botToken == "" {
		return errors.New("RASKRASKA_BOT_TOKEN is required")
	}
	if cfg.jwtSecret == "" {
		return errors.New("RASKRASKA_JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем БД и прогоняем миграции
	store, err := sqlite.New(ctx, cfg.dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", slog.Any("error", cerr))
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.jwtSecret),
		AccessTokenTTL: accessTokenTTL,
	}

	bot := telegram.NewBot(cfg.botToken)

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig, cfg.botToken, initDataMaxAge)
	stateHandler := handlers.NewStateHandler(logger, store)
	pagesHandler := handlers.NewPagesHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store, Version)
	webhookHandler := handlers.NewWebhookHandler(logger, bot, store, cfg.webAppURL, cfg.webhookSecret)

	authMW := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/telegram", authHandler.AuthTelegram)
	mux.Handle("/api/v1/me/state", authMW(http.HandlerFunc(stateHandler.HandleState)))
	mux.Handle("/api/v1/pages/{pageID}/progress", authMW(http.HandlerFunc(pagesHandler.HandleProgress)))
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	// Токен бота в пути скрывает эндпоинт от сканеров, заголовок с секретом
	// проверяется в самом обработчике
	mux.HandleFunc("POST /webhook/"+cfg.botToken, webhookHandler.HandleUpdate)

	rateLimits := []middleware.RouteLimit{
		{Path: "/api/v1/auth/telegram", Rate: middleware.AuthRateLimit, Window: middleware.AuthRateWindow},
	}

	var handler http.Handler = mux
	handler = middleware.BodyLimitMiddleware(middleware.DefaultMaxBodyBytes)(handler)
	handler = middleware.CORSMiddleware(cfg.corsOrigin)(handler)
	handler = middleware.RateLimitPerRoute(rateLimits, middleware.DefaultRateLimit, middleware.DefaultRateWindow, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("Raskraska Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
