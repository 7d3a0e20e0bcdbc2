package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"share-safely/internal/adapters/eventbroker/nats"
	"share-safely/internal/adapters/handlers/http/chi"
	filehandler "share-safely/internal/adapters/handlers/http/chi/v1/file"
	linkhandler "share-safely/internal/adapters/handlers/http/chi/v1/link"
	"share-safely/internal/adapters/repository/postgres"
	"share-safely/internal/adapters/storage/local"
	"share-safely/internal/adapters/storage/minio"
	"share-safely/internal/config"
	"share-safely/internal/core/port"
	"share-safely/internal/core/service/audit"
	"share-safely/internal/core/service/link"
	"share-safely/internal/core/service/sweep"
	"share-safely/internal/core/service/upload"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/afero"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	// storage variant is chosen exactly once, here
	blobStorage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	logger.Info("storage initialized", "provider", cfg.Storage.Provider)

	var publisher port.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, pubErr := nats.NewPublisher(ctx, cfg.NATS, logger)
		if pubErr != nil {
			logger.Error("failed to init nats publisher", "error", pubErr)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	unitOfWork := postgres.NewUnitOfWork(db)
	recorder := audit.NewRecorder(unitOfWork, publisher, logger)

	fileService := upload.NewFileService(unitOfWork, blobStorage, recorder, cfg.Upload, logger)
	linkService := link.NewLinkService(unitOfWork, blobStorage, recorder, cfg.Link, logger)
	sweeper := sweep.NewSweeper(unitOfWork, blobStorage, recorder, logger)

	fileHandler := filehandler.NewFileHandlerV1(fileService, logger)
	linkHandler := linkhandler.NewLinkHandlerV1(linkService, blobStorage, logger)

	router := chi.NewRouter(logger, fileHandler, linkHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		initSweepTask(ctx, sweeper, cfg.Sweep.Every, logger)
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.BlobStorage, error) {
	switch cfg.Storage.Provider {
	case "minio":
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	case "local":
		return local.NewAdapter(afero.NewOsFs(), cfg.Storage.LocalPath, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Storage.Provider)
	}
}

func initSweepTask(ctx context.Context, sweeper port.Sweeper, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("sweep task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			summary, err := sweeper.Run(ctx, time.Now().UTC())
			if err != nil {
				logger.Error("sweep run failed", "error", err)
				continue
			}
			logger.Info("sweep run finished",
				"found", summary.Found,
				"deleted", summary.Deleted,
				"alreadyAbsent", summary.AlreadyAbsent,
				"errors", summary.Errors)
		case <-ctx.Done():
			logger.Info("sweep task stopped")
			return
		}
	}

}
