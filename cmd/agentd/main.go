package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/approval"
	"github.com/personaliz/agentd/internal/auth"
	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/executor"
	"github.com/personaliz/agentd/internal/infra"
	"github.com/personaliz/agentd/internal/llm"
	"github.com/personaliz/agentd/internal/metrics"
	"github.com/personaliz/agentd/internal/registry"
	"github.com/personaliz/agentd/internal/repository/postgres"
	"github.com/personaliz/agentd/internal/scheduler"
	"github.com/personaliz/agentd/internal/server"
	"github.com/personaliz/agentd/internal/server/handler"
	"github.com/personaliz/agentd/internal/settings"
	"github.com/personaliz/agentd/internal/topics"
)

func main() {
	// 1. Configuration and logger.
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Persistence. The database is the only hard dependency.
	store, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("database unreachable", zap.Error(err))
	}
	defer store.Close()
	store.Bootstrap(ctx)

	// 3. Redis, optional: decision pub/sub and the scheduler fire-guard.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	} else {
		logger.Info("redis disabled: no addr configured")
	}

	// 4. Metrics on a dedicated listener.
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	metricsSrv := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	go func() {
		logger.Info("metrics listener started", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", zap.Error(err))
		}
	}()

	// 5. Action log worker.
	actionLog := actionlog.New(store, logger)
	actionLog.SetBufferGauge(m.LogBufferFill)
	actionLog.Start()

	// 6. Domain services.
	kinds := domain.DefaultKinds()

	exec := executor.NewScriptRunner(cfg.Executor, m, logger)
	settingsSvc := settings.NewService(store, actionLog, logger)
	router := llm.NewRouter(cfg.LLM, store, actionLog, m, logger)
	registrySvc := registry.NewService(store, actionLog, logger)

	var publisher approval.Publisher
	if rdb != nil {
		publisher = rdb
	}
	approvalSvc := approval.NewService(store, exec, kinds, publisher, actionLog, m, logger)

	// 7. Scheduler loop.
	source := topics.NewCLISource(cfg.Executor.TopicsCmd, logger)
	var guard scheduler.FireGuard
	if rdb != nil {
		guard = scheduler.NewRedisFireGuard(rdb, logger)
	}
	sched := scheduler.New(cfg.Scheduler, store, approvalSvc, exec, kinds, source, guard, actionLog, m, logger)
	go sched.Run(ctx)

	// 8. HTTP command surface.
	authSvc, err := auth.NewService(cfg.Auth)
	if err != nil {
		logger.Fatal("auth setup failed", zap.Error(err))
	}

	srv := server.New(
		logger,
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewAgentHandler(registrySvc, sched),
		handler.NewApprovalHandler(approvalSvc),
		handler.NewSettingsHandler(settingsSvc),
		handler.NewLLMHandler(router),
		handler.NewLogsHandler(store),
	)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("api listener started", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api listener failed", zap.Error(err))
			stop()
		}
	}()

	// 9. Block until a shutdown signal, then drain.
	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api shutdown incomplete", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics shutdown incomplete", zap.Error(err))
	}

	// Flush pending audit entries last so late handlers still get recorded.
	actionLog.Stop()

	logger.Info("agentd stopped")
}
