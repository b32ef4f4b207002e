package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/scheduler"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer store.Close()

	// The cache is read first so the process can start offline.
	local, err := store.Cache.Load(ctx, envConfig.UserID)
	if err != nil {
		logger.WithError(err).Warn("main.cache.loadError")
	}
	snapshot := operator.Reconcile(ctx, logger, store.Remote, envConfig.UserID, local, envConfig.MigrationTimeout)
	operator.RefreshCache(ctx, logger, store.Cache, envConfig.UserID, local, snapshot, envConfig.MigrationTimeout)

	svc := service.NewService(ledger.NewBook(), logger)
	svc.Restore(snapshot)

	delegator := operator.NewDelegator(svc, operator.Options{
		UserID: envConfig.UserID,
		Delay:  envConfig.SaveDebounce,
		Cache:  store.Cache,
		Remote: store.Remote,
		Logger: logger,
	})
	svc.SetNotifier(delegator)
	delegator.Start()

	sched := scheduler.New(logger)
	maintenance := scheduler.NewMaintenanceJob(svc)
	if err := sched.RunNow(maintenance); err != nil {
		logger.WithError(err).Error("main.maintenance")
	}
	if err := sched.AddJob(envConfig.MaintenanceSchedule, maintenance); err != nil {
		logger.WithError(err).Fatal("scheduler.AddJob")
		return
	}
	sched.Start()

	httpRest := api.NewRest(logger, envConfig.Port, svc)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpRest.Serve()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			logger.WithError(err).Error("main.serve")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpRest.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("main.shutdown.http")
	}
	sched.Stop()
	if err := delegator.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("main.shutdown.operator")
	}
	logger.Info("finance-tracker stopped")
}
