package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"eventhub/core/cache"
	"eventhub/core/config"
	"eventhub/core/constants"
	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/core/storage"
	"eventhub/modules/auth"
	"eventhub/modules/category"
	"eventhub/modules/engagement"
	"eventhub/modules/event"
	"eventhub/modules/rsvp"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires the whole service: config, logging, database, cache, storage,
// the modules, and a graceful shutdown on SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	uploader := storage.NewS3(cfg.Storage)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	authService, mw := auth.Init(e, db, redisCache, uploader)
	category.Init(e, db, mw)
	event.Init(e, db, mw, authService)
	rsvp.Init(e, db, mw)
	engagement.Init(e, db, mw)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := authService.EnsureAdminAccount(bootstrapCtx); err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
