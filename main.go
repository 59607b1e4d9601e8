package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/audit"
	"storefront-api/catalog"
	"storefront-api/config"
	"storefront-api/handlers"
	"storefront-api/metrics"
	"storefront-api/routes"
	"storefront-api/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)
	logger := newLogger(cfg.GinMode)
	slog.SetDefault(logger)

	repo, err := loadCatalog(cfg.DatasetPath)
	if err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}
	products, chefs := repo.Counts()
	logger.Info("catalog seeded", "products", products, "chefs", chefs)

	db, err := config.OpenJournal(cfg.AuditDSN)
	if err != nil {
		log.Fatal(err)
	}
	journal, err := audit.NewJournal(db, logger)
	if err != nil {
		log.Fatal(err)
	}

	collector := metrics.New()
	sessions := session.NewRegistry(
		session.WithHook(func(s *session.Session) func() {
			collector.SessionOpened()
			return journal.Attach(s.UserID, s.Orders)
		}),
		session.WithHook(func(s *session.Session) func() {
			return collector.Observe(s.Cart, s.Orders)
		}),
		session.WithMockData(cfg.SeedMockSession),
	)
	defer sessions.Close()

	h := &handlers.Handler{
		Catalog:           repo,
		Sessions:          sessions,
		Journal:           journal,
		Metrics:           collector,
		OTP:               handlers.NewOTPIssuer(),
		StrictTransitions: cfg.StrictOrderTransitions,
		EchoOTP:           cfg.OTPEcho,
		AdminPhones:       cfg.AdminPhones,
		Log:               logger,
	}
	r, err := routes.NewEngine(h)
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server running", "addr", "http://localhost:"+cfg.Port,
			"strict_transitions", cfg.StrictOrderTransitions, "mock_sessions", cfg.SeedMockSession)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(mode string) *slog.Logger {
	if mode == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadCatalog seeds a repository from path, or from the embedded dataset
func loadCatalog(path string) (*catalog.Repository, error) {
	now := time.Now()
	var (
		ds  catalog.Dataset
		err error
	)
	if path != "" {
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		ds, err = catalog.ParseDataset(data, now)
	} else {
		ds, err = catalog.LoadDefault(now)
	}
	if err != nil {
		return nil, err
	}

	repo := catalog.NewRepository()
	repo.SeedProducts(ds.Products)
	repo.SeedChefs(ds.Chefs)
	return repo, nil
}
