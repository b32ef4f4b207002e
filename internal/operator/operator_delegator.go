package operator

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// SnapshotSource provides the state to persist.
type SnapshotSource interface {
	Snapshot() *ledger.Snapshot
}

// Delegator coalesces dirty signals and hands them to a single Operator
// that writes the latest snapshot to the cache and the remote gateway.
type Delegator struct {
	operator *Operator
	signals  chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Options configures NewDelegator.
type Options struct {
	UserID string
	// Delay is how long the operator waits after the first signal before
	// saving, so a burst of mutations produces one write.
	Delay  time.Duration
	Cache  storage.Gateway
	Remote storage.Gateway
	Logger *logrus.Logger
}

func NewDelegator(source SnapshotSource, opts Options) *Delegator {
	d := &Delegator{
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	d.operator = NewOperator(source, opts, d.signals, d.done)
	return d
}

func (d *Delegator) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.operator.Run()
	}()
}

// MarkDirty never blocks. Signals sent while one is pending are merged.
func (d *Delegator) MarkDirty() {
	select {
	case d.signals <- struct{}{}:
	default:
	}
}

// Stop flushes a pending write and waits for the operator to exit, or for
// ctx to end.
func (d *Delegator) Stop(ctx context.Context) error {
	d.stopOnce.Do(func() {
		close(d.done)
	})

	exited := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(exited)
	}()

	select {
	case <-exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
