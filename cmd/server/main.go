package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/config"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/internal/repository/sheets"
	"github.com/mamadbah2/coldstore/internal/scheduler"
	"github.com/mamadbah2/coldstore/internal/server/handlers"
	"github.com/mamadbah2/coldstore/internal/server/router"
	catalogsvc "github.com/mamadbah2/coldstore/internal/service/catalog"
	dashboardsvc "github.com/mamadbah2/coldstore/internal/service/dashboard"
	reportingsvc "github.com/mamadbah2/coldstore/internal/service/reporting"
	salessvc "github.com/mamadbah2/coldstore/internal/service/sales"
	"github.com/mamadbah2/coldstore/pkg/clients/notify"
	"github.com/mamadbah2/coldstore/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	productStore := repo.Products()
	clientStore := repo.Clients()
	saleStore := repo.Sales()

	var notifier notify.Client
	if cfg.Alerts.Enabled() {
		notifier = notify.NewClient(cfg.Alerts)
		baseLogger.Info("low stock webhook alerts enabled")
	} else {
		baseLogger.Warn("low stock webhook url missing, alerts disabled")
	}

	productSvc := catalogsvc.NewProductService(productStore, baseLogger.Named("svc.products"))
	clientSvc := catalogsvc.NewClientService(clientStore, baseLogger.Named("svc.clients"))
	saleSvc := salessvc.NewService(productStore, clientStore, saleStore, notifier, baseLogger.Named("svc.sales"))
	dashboardSvc := dashboardsvc.NewService(productStore, clientStore, saleStore, baseLogger.Named("svc.dashboard"))

	productHandler := handlers.NewProductHandler(productSvc, baseLogger.Named("handlers.products"))
	clientHandler := handlers.NewClientHandler(clientSvc, baseLogger.Named("handlers.clients"))
	saleHandler := handlers.NewSaleHandler(saleSvc, baseLogger.Named("handlers.sales"))
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, baseLogger.Named("handlers.dashboard"))

	engine := router.New(productHandler, clientHandler, saleHandler, dashboardHandler, cfg.CORS, baseLogger.Named("router"))

	if cfg.Export.Enabled() {
		exporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Export, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		reportingSvc := reportingsvc.NewService(saleStore, productStore, repo, exporter, baseLogger.Named("svc.reporting"))
		sched := scheduler.NewScheduler(cfg.Export, reportingSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("sheets export unconfigured, daily summary job disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
