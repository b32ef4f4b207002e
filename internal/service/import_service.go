package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// ImportService handles statement imports.
type ImportService struct {
	core *core
}

// Import adds the statement rows to an account, skipping rows already in
// the ledger.
func (s *ImportService) Import(ctx context.Context, accountID string, candidates []ledger.ImportCandidate) (ledger.ImportResult, error) {
	result, err := exclusive(s.core, func(b *ledger.Book) (ledger.ImportResult, error) {
		return b.Import(accountID, candidates)
	})
	if err != nil {
		return result, err
	}
	if result.Added > 0 {
		s.core.notifier.MarkDirty()
	}

	s.core.logger.WithContext(ctx).WithFields(logrus.Fields{
		"accountID": accountID,
		"added":     result.Added,
		"skipped":   result.Skipped,
		"rejected":  len(result.Rejected),
	}).Info("ImportService.Import.complete")
	return result, nil
}
