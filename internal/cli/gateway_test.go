package cli

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

type countingGateway struct {
	storage.Gateway
	saves int
}

func (c *countingGateway) Save(ctx context.Context, userID string, snapshot *ledger.Snapshot) error {
	c.saves++
	return c.Gateway.Save(ctx, userID, snapshot)
}
