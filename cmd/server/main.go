package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/poskasir/catalog-api/internal/config"
	"github.com/poskasir/catalog-api/internal/db"
	"github.com/poskasir/catalog-api/internal/events"
	"github.com/poskasir/catalog-api/internal/httpserver"
	"github.com/poskasir/catalog-api/internal/logging"
	"github.com/poskasir/catalog-api/internal/middleware"
	"github.com/poskasir/catalog-api/internal/repo"
	"github.com/poskasir/catalog-api/internal/service"
	"github.com/poskasir/catalog-api/internal/uploads"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}
	cleaner := uploads.NewCleaner(store, logger)

	producer := events.NewProducer(cfg.KafkaBrokers)

	repository := &repo.GormRepo{DB: gdb}
	catalogSvc := &service.CatalogService{
		Repo:    repository,
		Events:  producer,
		Files:   store,
		Cleaner: cleaner,
	}
	userSvc := &service.UserService{
		Repo:      repository,
		Events:    producer,
		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CategoryHandler: &httpserver.CategoryHTTP{Svc: catalogSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogSvc},
		UserHandler:     &httpserver.UserHTTP{Svc: userSvc},
		Auth:            middleware.NewAuthMiddleware(cfg.JWTSecret),
		UploadDir:       cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	cleaner.Close()

	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
