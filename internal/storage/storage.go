package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/file"
	"github.com/carson-networks/finance-tracker/internal/storage/gcs"
	"github.com/carson-networks/finance-tracker/internal/storage/memory"
	"github.com/carson-networks/finance-tracker/internal/storage/postgres"
	"github.com/carson-networks/finance-tracker/internal/storage/s3"
)

// ErrPersistence wraps every error a Gateway returns.
var ErrPersistence = errors.New("persistence failure")

// Gateway loads and saves whole snapshots, one per user. Load returns
// (nil, nil) when the user has no data yet.
type Gateway interface {
	Load(ctx context.Context, userID string) (*ledger.Snapshot, error)
	Save(ctx context.Context, userID string, snapshot *ledger.Snapshot) error
}

// Storage pairs the local cache with the remote gateway.
type Storage struct {
	Cache  Gateway
	Remote Gateway
	closer io.Closer
}

// Close releases the remote backend's connections.
func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

type persistent struct {
	name  string
	inner Gateway
}

// Wrap makes every error of g match ErrPersistence.
func Wrap(name string, g Gateway) Gateway {
	return &persistent{name: name, inner: g}
}

func (p *persistent) Load(ctx context.Context, userID string) (*ledger.Snapshot, error) {
	snapshot, err := p.inner.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s load: %w", ErrPersistence, p.name, err)
	}
	return snapshot, nil
}

func (p *persistent) Save(ctx context.Context, userID string, snapshot *ledger.Snapshot) error {
	if err := p.inner.Save(ctx, userID, snapshot); err != nil {
		return fmt.Errorf("%w: %s save: %w", ErrPersistence, p.name, err)
	}
	return nil
}

// NewStorage builds the cache and the remote gateway selected by
// env.StoreBackend. Postgres schemas are migrated on connect.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	s := &Storage{Cache: Wrap("cache", file.NewStore(env.CacheDir))}

	switch env.StoreBackend {
	case "memory":
		s.Remote = Wrap("memory", memory.NewStore())
	case "file":
		s.Remote = Wrap("file", file.NewStore(env.DataDir))
	case "postgres":
		store, err := postgres.Open(env.PostgresURL())
		if err != nil {
			return nil, err
		}
		if _, err := postgres.Migrate(store.DB()); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		s.Remote, s.closer = Wrap("postgres", store), store
	case "gcs":
		store, err := gcs.Open(ctx, env.GCSBucket, env.GCSPrefix)
		if err != nil {
			return nil, err
		}
		s.Remote, s.closer = Wrap("gcs", store), store
	case "s3":
		store, err := s3.Open(ctx, s3.Options{
			Bucket:   env.S3Bucket,
			Prefix:   env.S3Prefix,
			Region:   env.S3Region,
			Endpoint: env.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		s.Remote = Wrap("s3", store)
	default:
		return nil, fmt.Errorf("unknown store backend %q", env.StoreBackend)
	}
	return s, nil
}
