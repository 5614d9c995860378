package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kyluxehaven/storefront/internal/admin"
	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/cart"
	cartmemory "github.com/kyluxehaven/storefront/internal/cart/memory"
	cartredis "github.com/kyluxehaven/storefront/internal/cart/redis"
	"github.com/kyluxehaven/storefront/internal/catalog"
	catalogsqlite "github.com/kyluxehaven/storefront/internal/catalog/sqlite"
	"github.com/kyluxehaven/storefront/internal/checkout"
	"github.com/kyluxehaven/storefront/internal/config"
	"github.com/kyluxehaven/storefront/internal/httpx"
	"github.com/kyluxehaven/storefront/internal/notify"
	"github.com/kyluxehaven/storefront/internal/order"
	eventlogsqlite "github.com/kyluxehaven/storefront/internal/order/eventlog/sqlite"
	ordersqlite "github.com/kyluxehaven/storefront/internal/order/sqlite"
	"github.com/kyluxehaven/storefront/internal/pkg/sqlitedb"
	"github.com/kyluxehaven/storefront/internal/pkg/telemetry"
	"github.com/kyluxehaven/storefront/internal/summary"
)

func main() {
	cfg := config.Load()
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET is not set in environment")
	}

	telemetry.InitLogger()

	ctx := context.Background()
	shutdownTracer, err := telemetry.SetupTracer(ctx, "storefront")
	if err != nil {
		// Tracing is best-effort: the shop must still sell when the
		// collector is down.
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	catalogRepo, err := catalogsqlite.NewWithDB(db)
	if err != nil {
		log.Fatalf("failed to initialise catalog store: %v", err)
	}
	orderRepo, err := ordersqlite.NewWithDB(db)
	if err != nil {
		log.Fatalf("failed to initialise order store: %v", err)
	}
	eventRepo, err := eventlogsqlite.NewWithDB(db)
	if err != nil {
		log.Fatalf("failed to initialise order event log: %v", err)
	}

	var carts cart.Store
	if cfg.RedisAddr != "" {
		store := cartredis.NewStore(cfg.RedisAddr, 0)
		defer store.Close()
		carts = store
		slog.Info("using redis cart store", "addr", cfg.RedisAddr)
	} else {
		carts = cartmemory.NewStore()
		slog.Info("REDIS_ADDR not set, using in-memory cart store")
	}

	catalogSvc := catalog.NewService(catalogRepo)
	orderSvc := order.NewService(orderRepo, eventRepo)
	adminSvc := admin.NewService(catalogSvc, orderSvc)

	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	if !notifier.Enabled() {
		slog.Info("telegram notifier not configured, order notifications disabled")
	}

	workflow := checkout.NewWorkflow(orderSvc, carts, notifier)

	var summarizer httpx.Summarizer
	if cfg.SummaryAPIKey != "" {
		summarizer = summary.NewClient(cfg.SummaryAPIKey, cfg.SummaryBaseURL, cfg.SummaryModel)
	} else {
		slog.Info("SUMMARY_API_KEY not set, order summaries disabled")
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	handler := httpx.NewHandler(catalogSvc, orderSvc, adminSvc, carts, workflow, summarizer)
	router := httpx.NewRouter(handler, verifier)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("storefront listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
