package postgres

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuery(t *testing.T) {
	query, args, err := bob.Build(context.Background(), selectQuery("alex"))
	require.NoError(t, err)

	assert.Contains(t, query, "user_snapshots")
	assert.Contains(t, query, "$1")
	assert.Equal(t, []any{"alex"}, args)
}

func TestUpsertQuery(t *testing.T) {
	updatedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	query, args, err := bob.Build(context.Background(), upsertQuery("alex", []byte(`{"version":1}`), updatedAt))
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO")
	assert.Contains(t, query, "user_snapshots")
	assert.Contains(t, query, "ON CONFLICT")
	assert.Contains(t, query, "EXCLUDED")
	assert.Equal(t, []any{"alex", `{"version":1}`, updatedAt}, args)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_create_user_snapshots.down.sql",
		"migrations/000001_create_user_snapshots.up.sql",
	}, names)
}
