// Command server runs the download and dual-upload web service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/auth"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/config"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/db/repository"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/downloader"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/extractor"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/handler"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/uploader"
	"github.com/Unknowmyt1M/DIRECTTOYT/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	dbCfg := db.DefaultConfig()
	dbCfg.Host = cfg.Database.Host
	dbCfg.Port = cfg.Database.Port
	dbCfg.User = cfg.Database.User
	dbCfg.Password = cfg.Database.Password
	dbCfg.Database = cfg.Database.Name
	dbCfg.MaxConns = int32(cfg.Database.MaxConnections)
	dbCfg.MinConns = int32(cfg.Database.MinConnections)
	dbCfg.MaxConnIdleTime = cfg.Database.MaxIdleTime
	dbCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := db.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	logger.Log.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	videoRepo := repository.NewVideoRepository(pool)
	credRepo := repository.NewAPICredentialRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	backend := extractor.NewYtdlpBackend()
	backend.Path = cfg.Download.YtdlpPath
	probe := extractor.NewProbe(backend)
	pipeline := downloader.New(downloader.Config{
		TempDir:            cfg.Download.TempDir,
		YtdlpPath:          cfg.Download.YtdlpPath,
		Timeout:            cfg.Download.Timeout,
		MaxHeight:          cfg.Download.MaxHeight,
		PreferredContainer: cfg.Download.PreferredContainer,
	}, probe, downloader.NewStreamSource())

	oauthCfg := auth.NewOAuthConfig(cfg.Google)
	authSvc := auth.NewService(oauthCfg, tokenRepo)
	creds := uploader.NewCredentialManager(oauthCfg, tokenRepo)
	storage := uploader.NewStorageUploader(creds, uploader.NewDriveClient(oauthCfg), videoRepo)
	publisher := uploader.NewPublishUploader(creds, uploader.NewPublishClient(oauthCfg), videoRepo, probe)

	router := handler.NewRouter(handler.Handlers{
		Probe:      handler.NewProbeHandler(probe),
		Download:   handler.NewDownloadHandler(pipeline, videoRepo),
		Upload:     handler.NewUploadHandler(storage, publisher),
		File:       handler.NewFileHandler(cfg.Download.TempDir),
		History:    handler.NewHistoryHandler(videoRepo),
		Credential: handler.NewCredentialHandler(credRepo),
		Auth:       handler.NewAuthHandler(authSvc),
		Health:     handler.NewHealthHandler(pool),
	}, cfg.Server.APIKeys)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}

	logger.Log.Info("server stopped")
}
