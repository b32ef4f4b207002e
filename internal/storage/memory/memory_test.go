package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

func TestStore_LoadMissingUser(t *testing.T) {
	snapshot, err := NewStore().Load(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	saved := &ledger.Snapshot{Categories: map[string]ledger.Category{"food": {ID: "food", Name: "Food"}}}

	require.NoError(t, store.Save(ctx, "alex", saved))
	saved.Categories["food"] = ledger.Category{ID: "food", Name: "Changed"}

	loaded, err := store.Load(ctx, "alex")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Food", loaded.Categories["food"].Name)

	other, err := store.Load(ctx, "sam")
	require.NoError(t, err)
	assert.Nil(t, other)
}
