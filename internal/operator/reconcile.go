package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Reconcile decides which snapshot the process starts from.
//
// A non-empty remote snapshot wins. When the remote has nothing and local
// does, local is written to the remote once, bounded by timeout. When the
// remote cannot be read, local is kept.
func Reconcile(ctx context.Context, logger *logrus.Logger, remote storage.Gateway, userID string, local *ledger.Snapshot, timeout time.Duration) *ledger.Snapshot {
	log := logger.WithField("userID", userID)

	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	remoteSnapshot, err := remote.Load(loadCtx, userID)
	cancel()
	if err != nil {
		log.WithError(err).Error("Operator.Reconcile.loadError")
		return local
	}

	if !remoteSnapshot.IsEmpty() {
		log.Info("Operator.Reconcile.remote")
		return remoteSnapshot
	}
	if local.IsEmpty() {
		log.Info("Operator.Reconcile.empty")
		return nil
	}

	saveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := remote.Save(saveCtx, userID, local); err != nil {
		log.WithError(err).Error("Operator.Reconcile.migrationError")
	} else {
		log.Info("Operator.Reconcile.migrated")
	}
	return local
}

// RefreshCache writes the snapshot Reconcile chose to the local cache when
// it is not the one the cache already held, so an offline restart before
// the next save does not start from stale data.
func RefreshCache(ctx context.Context, logger *logrus.Logger, cache storage.Gateway, userID string, local, chosen *ledger.Snapshot, timeout time.Duration) {
	if chosen == nil || chosen == local {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cache.Save(saveCtx, userID, chosen); err != nil {
		logger.WithField("userID", userID).WithError(err).Warn("Operator.RefreshCache.error")
	}
}
