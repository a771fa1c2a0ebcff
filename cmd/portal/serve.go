package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/config"
	"github.com/papervault/portal/internal/db"
	"github.com/papervault/portal/internal/storage"
	"github.com/papervault/portal/internal/upload"
	"github.com/papervault/portal/internal/web"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a.cfg, a.logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		return err
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, logger); err != nil {
		logger.Error("database migration failed", "err", err)
		return err
	}

	store, files, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("object storage init failed", "driver", cfg.StorageDriver, "err", err)
		return err
	}

	// Wire dependencies: repository → service → handler
	repo := catalog.NewRepository(pool)
	catalogSvc := catalog.NewService(repo, store)
	uploadSvc := upload.NewService(repo, store, logger)

	pages, err := web.NewHandler(catalogSvc, uploadSvc, cfg.UploadMaxBytes, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(routerDeps{
			catalog: catalog.NewHandler(catalogSvc),
			upload:  upload.NewHandler(uploadSvc, cfg.UploadMaxBytes),
			web:     pages,
			files:   files,
			ready:   db.NewReadinessChecker(pool),
			logger:  logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv, "storage", cfg.StorageDriver)
		logger.Info(fmt.Sprintf("swagger UI at http://localhost:%s/swagger/index.html", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openStorage builds the configured object store. For the fs driver it also
// returns the handler serving stored files under /files.
func openStorage(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.Storage, http.Handler, error) {
	switch cfg.StorageDriver {
	case config.DriverFS:
		fs, err := storage.NewDirStorage(cfg.StorageFSRoot, cfg.StoragePublicBase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using local file storage", "root", cfg.StorageFSRoot, "public_base", cfg.StoragePublicBase)
		return fs, fs.Handler(), nil
	default:
		s, err := storage.NewMinioStorage(ctx, storage.MinioOptions{
			Endpoint:      cfg.StorageEndpoint,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Bucket:        cfg.StorageBucket,
			PublicBase:    cfg.StoragePublicBase,
			UseSSL:        cfg.StorageUseSSL,
			PresignExpiry: cfg.PresignExpiry(),
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}
