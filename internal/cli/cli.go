// Package cli implements the ledgerctl subcommands. Each command loads the
// user's snapshot from a gateway, runs one operation through the service
// layer and writes the snapshot back only if the operation changed it.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Env is what every command runs against.
type Env struct {
	Gateway storage.Gateway
	UserID  string
	Logger  *logrus.Logger
	Out     io.Writer
	// Clock overrides the current time, for tests.
	Clock func() time.Time
}

// Commands returns every ledgerctl subcommand bound to env.
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&importCmd{env: env},
		&repairCmd{env: env},
		&populateCmd{env: env},
		&balanceCmd{env: env},
	}
}

type dirtyFlag struct {
	dirty bool
}

func (d *dirtyFlag) MarkDirty() { d.dirty = true }

// session is one loaded snapshot and the service wrapped around it.
type session struct {
	env   *Env
	svc   *service.Service
	dirty *dirtyFlag
}

func (e *Env) open(ctx context.Context) (*session, error) {
	snapshot, err := e.Gateway.Load(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	var opts []ledger.Option
	if e.Clock != nil {
		opts = append(opts, ledger.WithClock(e.Clock))
	}
	svc := service.NewService(ledger.NewBook(opts...), e.Logger)
	svc.Restore(snapshot)

	dirty := &dirtyFlag{}
	svc.SetNotifier(dirty)
	return &session{env: e, svc: svc, dirty: dirty}, nil
}

// close saves the snapshot when a mutation succeeded.
func (s *session) close(ctx context.Context) error {
	if !s.dirty.dirty {
		return nil
	}
	return s.env.Gateway.Save(ctx, s.env.UserID, s.svc.Snapshot())
}
