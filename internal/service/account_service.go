package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// AccountService handles accounts and categories.
type AccountService struct {
	core *core
}

// CreateAccount creates a new account.
func (s *AccountService) CreateAccount(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Account, error) {
		return b.AddAccount(account)
	})
}

// CreateAccountWithDebt creates a credit account together with the debt
// tracking it.
func (s *AccountService) CreateAccountWithDebt(ctx context.Context, account ledger.Account, debt ledger.Debt) (ledger.Account, ledger.Debt, error) {
	type created struct {
		account ledger.Account
		debt    ledger.Debt
	}
	result, err := mutate(s.core, func(b *ledger.Book) (created, error) {
		a, d, err := b.AddAccountWithDebt(account, debt)
		return created{a, d}, err
	})
	return result.account, result.debt, err
}

// UpdateAccount applies a patch to an account.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, patch ledger.AccountPatch) (ledger.Account, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Account, error) {
		return b.UpdateAccount(id, patch)
	})
}

// DeleteAccount deletes an account and detaches everything referencing it.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteAccount(id)
	})
	return err
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id string) (ledger.Account, error) {
	return query(s.core, func(b *ledger.Book) (ledger.Account, error) {
		return b.Account(id)
	})
}

// ListAccounts returns every account in creation order.
func (s *AccountService) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.Account, error) {
		return b.Accounts(), nil
	})
}

// Balance returns the balance of an account at the end of asOf. A zero date
// means today.
func (s *AccountService) Balance(ctx context.Context, id string, asOf date.Date) (decimal.Decimal, error) {
	return query(s.core, func(b *ledger.Book) (decimal.Decimal, error) {
		if asOf.IsZero() {
			return b.CurrentBalance(id)
		}
		return b.Balance(id, asOf)
	})
}

// CreateCategory creates a new category.
func (s *AccountService) CreateCategory(ctx context.Context, category ledger.Category) (ledger.Category, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Category, error) {
		return b.AddCategory(category)
	})
}

// DeleteCategory deletes a category and its budgets.
func (s *AccountService) DeleteCategory(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteCategory(id)
	})
	return err
}

// ListCategories returns every category.
func (s *AccountService) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.Category, error) {
		return b.Categories(), nil
	})
}
