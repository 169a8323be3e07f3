package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskwire/backend/api/handler"
	"github.com/taskwire/backend/internal/config"
	"github.com/taskwire/backend/internal/infrastructure/monitor"
	sqliteInfra "github.com/taskwire/backend/internal/infrastructure/sqlite"
	"github.com/taskwire/backend/internal/middleware"
	"github.com/taskwire/backend/internal/router"
	"github.com/taskwire/backend/internal/services/lifecycle"
	"github.com/taskwire/backend/pkg/httpcontext"
	"github.com/taskwire/backend/pkg/logger"
	sqliteRepo "github.com/taskwire/backend/repository/sqlite"
	taskUC "github.com/taskwire/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	db, err := sqliteInfra.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("sqlite connection failed", zap.Error(err))
	}
	manager.Register("sqlite", func(ctx context.Context) error {
		return db.Close()
	})

	if err := sqliteInfra.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	mon := monitor.New(db, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := sqliteRepo.NewTaskRepository(db)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	accessLog := middleware.AccessLog(zapLogger)
	r := router.New(handlers, accessLog)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
