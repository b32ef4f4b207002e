package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// RecurringService handles recurring rules and their instances.
type RecurringService struct {
	core *core
}

// CreateRule creates a recurring rule. Instances appear on the next
// population of a month.
func (s *RecurringService) CreateRule(ctx context.Context, rule ledger.RecurringRule) (ledger.RecurringRule, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.RecurringRule, error) {
		return b.AddRule(rule)
	})
}

// UpdateRule applies a patch to a rule and propagates it to its instances.
func (s *RecurringService) UpdateRule(ctx context.Context, id string, patch ledger.RulePatch) (ledger.RecurringRule, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.RecurringRule, error) {
		return b.UpdateRule(id, patch)
	})
}

// DeleteRule deletes a rule along with its instances dated today or later.
func (s *RecurringService) DeleteRule(ctx context.Context, id string) ([]ledger.Entry, error) {
	return mutate(s.core, func(b *ledger.Book) ([]ledger.Entry, error) {
		return b.DeleteRule(id)
	})
}

// GetRule retrieves a rule by ID.
func (s *RecurringService) GetRule(ctx context.Context, id string) (ledger.RecurringRule, error) {
	return query(s.core, func(b *ledger.Book) (ledger.RecurringRule, error) {
		return b.Rule(id)
	})
}

// ListRules returns every rule.
func (s *RecurringService) ListRules(ctx context.Context) ([]ledger.RecurringRule, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.RecurringRule, error) {
		return b.Rules(), nil
	})
}

// PopulateMonth materializes the instances of every active rule in a month
// and returns the ones it added.
func (s *RecurringService) PopulateMonth(ctx context.Context, year int, month time.Month) ([]ledger.Entry, error) {
	added, err := exclusive(s.core, func(b *ledger.Book) ([]ledger.Entry, error) {
		return b.PopulateForMonth(year, month)
	})
	if len(added) > 0 {
		s.core.notifier.MarkDirty()
	}
	if err != nil {
		return added, err
	}

	s.core.logger.WithContext(ctx).WithFields(logrus.Fields{
		"year":  year,
		"month": int(month),
		"added": len(added),
	}).Info("RecurringService.PopulateMonth.complete")
	return added, nil
}
