package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

const saveTimeout = 30 * time.Second

// Operator is the worker that persists snapshots. Exits when done is closed.
type Operator struct {
	source  SnapshotSource
	userID  string
	delay   time.Duration
	cache   storage.Gateway
	remote  storage.Gateway
	logger  *logrus.Logger
	signals <-chan struct{}
	done    <-chan struct{}
}

func NewOperator(source SnapshotSource, opts Options, signals <-chan struct{}, done <-chan struct{}) *Operator {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Operator{
		source:  source,
		userID:  opts.UserID,
		delay:   opts.Delay,
		cache:   opts.Cache,
		remote:  opts.Remote,
		logger:  logger,
		signals: signals,
		done:    done,
	}
}

// Run waits for a signal, lets the debounce delay pass, then saves.
func (o *Operator) Run() {
	for {
		select {
		case <-o.signals:
			if !o.wait() {
				o.save()
				return
			}
			// Signals raised during the delay are covered by this save.
			select {
			case <-o.signals:
			default:
			}
			o.save()
		case <-o.done:
			select {
			case <-o.signals:
				o.save()
			default:
			}
			return
		}
	}
}

// wait reports false when the operator is stopped before the delay passes.
func (o *Operator) wait() bool {
	if o.delay <= 0 {
		return true
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-o.done:
		return false
	}
}

// save writes the current snapshot. Failures are logged and left for the
// next signal to retry.
func (o *Operator) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	start := time.Now()
	snapshot := o.source.Snapshot()
	log := o.logger.WithField("userID", o.userID)

	if o.cache != nil {
		if err := o.cache.Save(ctx, o.userID, snapshot); err != nil {
			log.WithError(err).Error("Operator.save.cacheError")
		}
	}
	if o.remote != nil {
		if err := o.remote.Save(ctx, o.userID, snapshot); err != nil {
			log.WithError(err).Error("Operator.save.remoteError")
			return
		}
	}

	log.WithField("saveMs", time.Since(start).Milliseconds()).Debug("Operator.save.complete")
}
