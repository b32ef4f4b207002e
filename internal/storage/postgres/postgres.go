// Package postgres stores each user's document as one JSONB row.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/document"
)

const (
	tableName       = "user_snapshots"
	columnUserID    = "user_id"
	columnData      = "data"
	columnUpdatedAt = "updated_at"
)

type Store struct {
	db   *sql.DB
	exec bob.Executor
}

// Open connects to the database at url.
func Open(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewStore(db), nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, exec: bob.NewDB(db)}
}

// DB exposes the connection for migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func selectQuery(userID string) bob.Query {
	return psql.Select(
		sm.Columns(columnData),
		sm.From(tableName),
		sm.Where(psql.Quote(columnUserID).EQ(psql.Arg(userID))),
	)
}

func upsertQuery(userID string, data []byte, updatedAt time.Time) bob.Query {
	return psql.Insert(
		im.Into(tableName, columnUserID, columnData, columnUpdatedAt),
		im.Values(psql.Arg(userID, string(data), updatedAt)),
		im.OnConflict(columnUserID).DoUpdate(
			im.SetExcluded(columnData, columnUpdatedAt),
		),
	)
}

func (s *Store) Load(ctx context.Context, userID string) (*ledger.Snapshot, error) {
	data, err := bob.One(ctx, s.exec, selectQuery(userID), scan.SingleColumnMapper[[]byte])
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return document.Decode(data)
}

func (s *Store) Save(ctx context.Context, userID string, snapshot *ledger.Snapshot) error {
	now := time.Now()
	data, err := document.Encode(snapshot, now)
	if err != nil {
		return err
	}
	if _, err := bob.Exec(ctx, s.exec, upsertQuery(userID, data, now)); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
