package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/backup"
	"github.com/tmms/tailor-master-service/internal/config"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/migrate"
	"github.com/tmms/tailor-master-service/internal/presentation"
	"github.com/tmms/tailor-master-service/internal/repository"
	"github.com/tmms/tailor-master-service/internal/storage"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	cfg := config.MustLoad()

	// DB
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("sqlite open failed", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := migrate.Up(store.DB()); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db ready", "path", cfg.DBPath)

	// Wiring
	customerRepo := repository.NewCustomerRepository(store)
	measurementRepo := repository.NewMeasurementRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	userRepo := repository.NewUserRepository(store)

	customersSvc := application.NewCustomersService(customerRepo)
	measurementsSvc := application.NewMeasurementsService(measurementRepo, customersSvc)
	ordersSvc := application.NewOrdersService(orderRepo, customersSvc)
	authSvc := application.NewAuthService(userRepo, cfg.SessionTTL)
	dashboardSvc := application.NewDashboardService(customerRepo, measurementRepo, orderRepo)
	transferSvc := application.NewTransferService(customerRepo, measurementRepo, orderRepo, customersSvc)
	demoSvc := application.NewDemoService(customersSvc, measurementsSvc, ordersSvc)

	ctx := context.Background()

	if err := authSvc.EnsureDefaultAdmin(ctx); err != nil {
		logger.Error("default admin setup failed", "err", err)
		os.Exit(1)
	}

	// Восстановить кеш из БД
	if err := customersSvc.RestoreCache(ctx); err != nil {
		logger.Warn("restore cache failed", "err", err)
	}

	// Backups: on-demand + periodic
	backupSvc := backup.NewService(store, cfg.BackupDir)
	backupSvc.StartAuto(ctx, cfg.BackupInterval, cfg.BackupKeep)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API
	h := presentation.NewHandler(customersSvc, measurementsSvc, ordersSvc,
		authSvc, dashboardSvc, transferSvc, demoSvc, backupSvc)
	h.Register(r)

	// STATIC (web/index.html)
	presentation.MountStatic(r)

	addr := ":" + cfg.HTTPPort
	logger.Info("starting http", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
}
