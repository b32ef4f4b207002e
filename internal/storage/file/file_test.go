package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

func TestStore_LoadMissingFile(t *testing.T) {
	snapshot, err := NewStore(t.TempDir()).Load(context.Background(), "alex")
	assert.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestStore_SaveThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	store := NewStore(dir)
	ctx := context.Background()

	on := date.MustParse("2025-03-02")
	saved := &ledger.Snapshot{
		Days: map[date.Date]ledger.DayBucket{
			on: {Spending: []ledger.Transaction{{ID: "t1", Type: ledger.TypeSpending, Amount: decimal.RequireFromString("4.50")}}},
		},
	}
	require.NoError(t, store.Save(ctx, "alex", saved))

	loaded, err := store.Load(ctx, "alex")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Days[on].Spending, 1)
	assert.True(t, loaded.Days[on].Spending[0].Amount.Equal(decimal.RequireFromString("4.5")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files are left behind")
	assert.Equal(t, "alex.json", entries[0].Name())
}

func TestStore_SaveReplaces(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alex", &ledger.Snapshot{Categories: map[string]ledger.Category{"a": {ID: "a", Name: "A"}}}))
	require.NoError(t, store.Save(ctx, "alex", &ledger.Snapshot{Categories: map[string]ledger.Category{"b": {ID: "b", Name: "B"}}}))

	loaded, err := store.Load(ctx, "alex")
	require.NoError(t, err)
	assert.Len(t, loaded.Categories, 1)
	assert.Contains(t, loaded.Categories, "b")
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alex.json"), []byte("not json"), 0o600))

	_, err := NewStore(dir).Load(context.Background(), "alex")
	assert.Error(t, err)
}
