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

	"pizza-orders/internal/config"
	"pizza-orders/internal/db"
	"pizza-orders/internal/logger"
	"pizza-orders/internal/metrics"
	"pizza-orders/internal/repository"
	"pizza-orders/internal/router"
	"pizza-orders/internal/session"
	"pizza-orders/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pizza-orders",
		Short:        "Session-authenticated pizza order manager",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			return serve(cfg, logger.InitLogger(cfg.LogLevel, cfg.IsProduction()))
		},
	}

	var force bool
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write default users, catalog and orders files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := logger.InitLogger(cfg.LogLevel, cfg.IsProduction())

			files := store.NewFileStore(cfg.DataDir)
			written, err := files.Seed(force)
			if err != nil {
				return err
			}
			for _, name := range written {
				log.Info().Str("store", string(name)).Str("dir", files.Dir()).Msg("Seeded document")
			}
			if len(written) == 0 {
				log.Info().Msg("All documents already exist, nothing written")
			}
			return nil
		},
	}
	seed.Flags().BoolVar(&force, "force", false, "overwrite existing documents")

	root.AddCommand(serve, seed)
	root.RunE = serve.RunE
	return root
}

func serve(cfg config.Config, log zerolog.Logger) error {
	log.Info().Str("store", cfg.StoreDriver).Msg("Application starting")
	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("SECRET_KEY not set, using default key")
	}

	files := store.NewFileStore(cfg.DataDir)
	deps := router.Deps{
		Catalog:   repository.NewJSONCatalogRepository(files),
		Sessions:  session.NewManager(cfg.SecretKey, cfg.SessionTTL, cfg.IsProduction(), log),
		Metrics:   metrics.New(),
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
		CSRFKey:   cfg.CSRFKey(),
		Secure:    cfg.IsProduction(),
		Logger:    log,
	}

	switch cfg.StoreDriver {
	case "json":
		deps.Orders = repository.NewJSONOrderRepository(files)
		deps.Users = repository.NewJSONUserRepository(files)
	case "mysql":
		database, err := db.InitDB(cfg.DBUrl, log)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.RunMigrations(database, log); err != nil {
			return err
		}
		deps.Orders = db.NewOrderRepository(database, log)
		deps.Users = db.NewUserRepository(database, log)
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	handler, err := router.SetupRouter(deps)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server error")
		return err
	case <-quit:
		log.Info().Msg("Shutdown signal received...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
