package ledger

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// GoalContributionCategory tags the ledger transactions produced by goal
// contributions.
const GoalContributionCategory = "savings_goal"

// GoalProgress reports a goal's completion. Percentage may exceed 100;
// DisplayPercentage is clamped to [0, 100].
type GoalProgress struct {
	Current           decimal.Decimal `json:"current"`
	Target            decimal.Decimal `json:"target"`
	Remaining         decimal.Decimal `json:"remaining"`
	Percentage        decimal.Decimal `json:"percentage"`
	DisplayPercentage decimal.Decimal `json:"displayPercentage"`
}

func (b *Book) AddGoal(g SavingsGoal) (SavingsGoal, error) {
	if strings.TrimSpace(g.Name) == "" {
		return SavingsGoal{}, invalid("name", "is required")
	}
	if !g.TargetAmount.IsPositive() {
		return SavingsGoal{}, invalid("targetAmount", "must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return SavingsGoal{}, invalid("currentAmount", "must not be negative")
	}
	if err := b.requireAccounts(g.AccountID); err != nil {
		return SavingsGoal{}, err
	}
	g.ID = b.id(g.ID)
	if _, ok := b.goals[g.ID]; ok {
		return SavingsGoal{}, invalid("id", "already used")
	}
	b.goals[g.ID] = &g
	return g, nil
}

func (b *Book) DeleteGoal(id string) error {
	if _, ok := b.goals[id]; !ok {
		return notFound("savings goal", id)
	}
	delete(b.goals, id)
	return nil
}

func (b *Book) Goal(id string) (SavingsGoal, error) {
	g, ok := b.goals[id]
	if !ok {
		return SavingsGoal{}, notFound("savings goal", id)
	}
	return *g, nil
}

func (b *Book) Goals() []SavingsGoal {
	return sortedValues(b.goals, func(x, y SavingsGoal) int {
		return cmp.Or(strings.Compare(x.Name, y.Name), strings.Compare(x.ID, y.ID))
	})
}

// AddToSavingsGoal increases a goal's running total. With a source account
// the contribution is also a ledger event: a transfer into the goal's
// account when it has one, otherwise spending from the source.
func (b *Book) AddToSavingsGoal(id string, amount decimal.Decimal, on date.Date, fromAccountID string) (SavingsGoal, error) {
	g, ok := b.goals[id]
	if !ok {
		return SavingsGoal{}, notFound("savings goal", id)
	}
	if !amount.IsPositive() {
		return SavingsGoal{}, invalid("amount", "must be greater than zero")
	}
	if on.IsZero() {
		on = b.Today()
	}

	if fromAccountID != "" {
		tx := Transaction{
			Type:        TypeSpending,
			Amount:      amount,
			Description: "Savings: " + g.Name,
			AccountID:   fromAccountID,
			Category:    GoalContributionCategory,
		}
		if g.AccountID != "" {
			tx.Type = TypeTransfer
			tx.TransferToAccountID = g.AccountID
		}
		if _, err := b.AddTransaction(on, tx); err != nil {
			return SavingsGoal{}, err
		}
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	return *g, nil
}

// GoalProgress computes completion of a goal.
func (b *Book) GoalProgress(id string) (GoalProgress, error) {
	g, ok := b.goals[id]
	if !ok {
		return GoalProgress{}, notFound("savings goal", id)
	}
	percentage := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(1)
	return GoalProgress{
		Current:           g.CurrentAmount,
		Target:            g.TargetAmount,
		Remaining:         decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount)),
		Percentage:        percentage,
		DisplayPercentage: decimal.Min(hundred, decimal.Max(decimal.Zero, percentage)),
	}, nil
}
