package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"linkpulse/config"
	"linkpulse/internal/handler"
	"linkpulse/internal/maintenance"
	"linkpulse/internal/repository"
	"linkpulse/internal/router"
	"linkpulse/internal/service"
	"linkpulse/internal/storage"
	"linkpulse/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := storage.ConnectDB(&cfg.DB, log)
	if db == nil {
		log.Fatal("Не удалось подключиться к базе данных")
	}

	storage.Migrate(db, log)

	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	linkService := service.NewLinkService(linkRepo, clickRepo, userRepo, teamRepo, log)
	clickService := service.NewClickService(clickRepo, log, cfg.KafkaBrokers, cfg.KafkaTopic)
	analyticsService := service.NewAnalyticsService(linkRepo, clickRepo, userRepo, teamRepo, log)

	// wg держит незавершённые записи кликов до остановки сервера.
	var wg sync.WaitGroup
	redirectHandler := handler.NewRedirectHandler(linkService, clickService, log, &wg)
	linkHandler := handler.NewLinkHandler(linkService, cfg)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	adminHandler := handler.NewAdminHandler(analyticsService, clickService, log)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := maintenance.NewScheduler(log, clickRepo, cfg.RetentionDays)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("Не удалось запустить планировщик очистки", zap.Error(err))
	}

	r := router.Router(log, cfg, redirectHandler, linkHandler, analyticsHandler, adminHandler)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down HTTP server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	storage.CloseDB(db, log)
	log.Info("Server exiting")
}
