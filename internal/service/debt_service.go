package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// DebtService handles debts and debt payments.
type DebtService struct {
	core *core
}

// CreateDebt creates a debt. A debt linked to a credit account starts in
// sync with that account's balance.
func (s *DebtService) CreateDebt(ctx context.Context, debt ledger.Debt) (ledger.Debt, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Debt, error) {
		return b.AddDebt(debt)
	})
}

// UpdateDebt applies a patch to a debt.
func (s *DebtService) UpdateDebt(ctx context.Context, id string, patch ledger.DebtPatch) (ledger.Debt, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Debt, error) {
		return b.UpdateDebt(id, patch)
	})
}

// DeleteDebt deletes a debt and its payment records.
func (s *DebtService) DeleteDebt(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteDebt(id)
	})
	return err
}

// GetDebt retrieves a debt by ID.
func (s *DebtService) GetDebt(ctx context.Context, id string) (ledger.Debt, error) {
	return query(s.core, func(b *ledger.Book) (ledger.Debt, error) {
		return b.Debt(id)
	})
}

// ListDebts returns every debt.
func (s *DebtService) ListDebts(ctx context.Context) ([]ledger.Debt, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.Debt, error) {
		return b.Debts(), nil
	})
}

// RecordPayment records a payment against a debt, paid from fromAccountID
// when it is not empty.
func (s *DebtService) RecordPayment(ctx context.Context, debtID string, amount decimal.Decimal, on date.Date, fromAccountID string) (ledger.DebtPayment, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.DebtPayment, error) {
		return b.RecordDebtPayment(debtID, amount, on, fromAccountID)
	})
}

// DeletePayment reverses a payment.
func (s *DebtService) DeletePayment(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteDebtPayment(id)
	})
	return err
}

// ListPayments returns the payments recorded against a debt.
func (s *DebtService) ListPayments(ctx context.Context, debtID string) ([]ledger.DebtPayment, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.DebtPayment, error) {
		if _, err := b.Debt(debtID); err != nil {
			return nil, err
		}
		return b.Payments(debtID), nil
	})
}

// SyncDebt re-derives one debt balance from its linked account.
func (s *DebtService) SyncDebt(ctx context.Context, id string) (ledger.Debt, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Debt, error) {
		return b.SyncDebt(id)
	})
}

// SyncAll re-derives every linked debt balance and returns the ids of the
// debts whose stored balance had drifted.
func (s *DebtService) SyncAll(ctx context.Context) []string {
	repaired, _ := exclusive(s.core, func(b *ledger.Book) ([]string, error) {
		return b.SyncAllDebts(), nil
	})

	if len(repaired) > 0 {
		s.core.logger.WithContext(ctx).WithField("debtIDs", repaired).Info("DebtService.SyncAll.repaired")
		s.core.notifier.MarkDirty()
	}
	return repaired
}
