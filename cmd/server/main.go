package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/config"
	"github.com/pureclean/platform/internal/repository/mongodb"
	"github.com/pureclean/platform/internal/repository/sheets"
	"github.com/pureclean/platform/internal/scheduler"
	"github.com/pureclean/platform/internal/server/handlers"
	"github.com/pureclean/platform/internal/server/router"
	authsvc "github.com/pureclean/platform/internal/service/auth"
	companysvc "github.com/pureclean/platform/internal/service/company"
	orderssvc "github.com/pureclean/platform/internal/service/orders"
	reportingsvc "github.com/pureclean/platform/internal/service/reporting"
	staffsvc "github.com/pureclean/platform/internal/service/staff"
	"github.com/pureclean/platform/pkg/clients/gemini"
	"github.com/pureclean/platform/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("google sheets export enabled")
	}

	// Initialize AI client
	var aiClient gemini.Client = gemini.Disabled{}
	if cfg.AI.GeminiKey != "" {
		aiClient = gemini.NewClient(cfg.AI.GeminiKey)
		baseLogger.Info("gemini ai client enabled")
	} else {
		baseLogger.Warn("gemini api key missing, ai summaries will use static fallbacks")
	}

	tokens := authsvc.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	authSvc := authsvc.NewService(repo, tokens, baseLogger.Named("svc.auth"))
	companySvc := companysvc.NewService(repo, baseLogger.Named("svc.company"))
	ordersSvc := orderssvc.NewService(repo, baseLogger.Named("svc.orders"))
	staffSvc := staffsvc.NewService(repo, baseLogger.Named("svc.staff"))
	reportingSvc := reportingsvc.NewService(repo, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Intake:   handlers.NewIntakeHandler(ordersSvc, baseLogger.Named("handlers.intake")),
		Orders:   handlers.NewOrderHandler(ordersSvc, aiClient, baseLogger.Named("handlers.orders")),
		Company:  handlers.NewCompanyHandler(companySvc, baseLogger.Named("handlers.company")),
		Employee: handlers.NewEmployeeHandler(staffSvc, baseLogger.Named("handlers.employee")),
		Report:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.report")),
		Settings: handlers.NewSettingsHandler(repo, baseLogger.Named("handlers.settings")),
	}, authSvc, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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
