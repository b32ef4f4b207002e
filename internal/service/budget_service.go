package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// BudgetService handles budgets.
type BudgetService struct {
	core *core
}

// CreateBudget creates a budget for an existing category.
func (s *BudgetService) CreateBudget(ctx context.Context, budget ledger.Budget) (ledger.Budget, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Budget, error) {
		return b.AddBudget(budget)
	})
}

// UpdateBudget applies a patch to a budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, id string, patch ledger.BudgetPatch) (ledger.Budget, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.Budget, error) {
		return b.UpdateBudget(id, patch)
	})
}

// DeleteBudget deletes a budget.
func (s *BudgetService) DeleteBudget(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteBudget(id)
	})
	return err
}

// ListBudgets returns every budget.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]ledger.Budget, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.Budget, error) {
		return b.Budgets(), nil
	})
}

// Status computes the spending of a budget in the given month. Yearly
// budgets ignore the month.
func (s *BudgetService) Status(ctx context.Context, id string, year int, month time.Month) (ledger.BudgetStatus, error) {
	return query(s.core, func(b *ledger.Book) (ledger.BudgetStatus, error) {
		return b.BudgetStatus(id, year, month)
	})
}

// GoalService handles savings goals.
type GoalService struct {
	core *core
}

// CreateGoal creates a savings goal.
func (s *GoalService) CreateGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.SavingsGoal, error) {
		return b.AddGoal(goal)
	})
}

// DeleteGoal deletes a savings goal.
func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	_, err := mutate(s.core, func(b *ledger.Book) (struct{}, error) {
		return struct{}{}, b.DeleteGoal(id)
	})
	return err
}

// ListGoals returns every savings goal.
func (s *GoalService) ListGoals(ctx context.Context) ([]ledger.SavingsGoal, error) {
	return query(s.core, func(b *ledger.Book) ([]ledger.SavingsGoal, error) {
		return b.Goals(), nil
	})
}

// Contribute adds to a goal, funded from fromAccountID when it is not empty.
func (s *GoalService) Contribute(ctx context.Context, id string, amount decimal.Decimal, on date.Date, fromAccountID string) (ledger.SavingsGoal, error) {
	return mutate(s.core, func(b *ledger.Book) (ledger.SavingsGoal, error) {
		return b.AddToSavingsGoal(id, amount, on, fromAccountID)
	})
}

// Progress reports how far a goal is from its target.
func (s *GoalService) Progress(ctx context.Context, id string) (ledger.GoalProgress, error) {
	return query(s.core, func(b *ledger.Book) (ledger.GoalProgress, error) {
		return b.GoalProgress(id)
	})
}
