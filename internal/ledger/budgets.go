package ledger

import (
	"cmp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

var hundred = decimal.NewFromInt(100)

// BudgetState classifies spending against a limit.
type BudgetState string

const (
	OnTrack BudgetState = "on-track"
	AtRisk  BudgetState = "at-risk"
	Over    BudgetState = "over"
)

// Classify maps a spent percentage to a state: up to 80 is on track, up to
// 100 at risk, anything above is over.
func Classify(percentage decimal.Decimal) BudgetState {
	switch {
	case percentage.LessThanOrEqual(decimal.NewFromInt(80)):
		return OnTrack
	case percentage.LessThanOrEqual(hundred):
		return AtRisk
	default:
		return Over
	}
}

// BudgetStatus is spending against a budget for one period. Percentage is
// rounded to one decimal place; State is classified on the exact value.
type BudgetStatus struct {
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	State      BudgetState     `json:"state"`
}

// BudgetPatch holds the fields UpdateBudget changes.
type BudgetPatch struct {
	Amount *decimal.Decimal
	Period *Period
}

func validateBudget(bg Budget) error {
	if !bg.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	switch bg.Period {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
	default:
		return invalid("period", "must be weekly, monthly or yearly")
	}
	if bg.Year < 1 {
		return invalid("year", "is required")
	}
	if bg.Month < 0 || bg.Month > time.December {
		return invalid("month", "must be 1 to 12")
	}
	return nil
}

func (b *Book) AddBudget(bg Budget) (Budget, error) {
	if err := validateBudget(bg); err != nil {
		return Budget{}, err
	}
	if _, ok := b.categories[bg.CategoryID]; !ok {
		return Budget{}, notFound("category", bg.CategoryID)
	}
	bg.ID = b.id(bg.ID)
	if _, ok := b.budgets[bg.ID]; ok {
		return Budget{}, invalid("id", "already used")
	}
	b.budgets[bg.ID] = &bg
	return bg, nil
}

func (b *Book) UpdateBudget(id string, patch BudgetPatch) (Budget, error) {
	bg, ok := b.budgets[id]
	if !ok {
		return Budget{}, notFound("budget", id)
	}
	updated := *bg
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Period != nil {
		updated.Period = *patch.Period
	}
	if err := validateBudget(updated); err != nil {
		return Budget{}, err
	}
	*bg = updated
	return updated, nil
}

func (b *Book) DeleteBudget(id string) error {
	if _, ok := b.budgets[id]; !ok {
		return notFound("budget", id)
	}
	delete(b.budgets, id)
	return nil
}

func (b *Book) Budget(id string) (Budget, error) {
	bg, ok := b.budgets[id]
	if !ok {
		return Budget{}, notFound("budget", id)
	}
	return *bg, nil
}

func (b *Book) Budgets() []Budget {
	return sortedValues(b.budgets, func(x, y Budget) int {
		return cmp.Or(strings.Compare(x.CategoryID, y.CategoryID), strings.Compare(x.ID, y.ID))
	})
}

// BudgetStatus sums spending tagged with the budget's category over the
// period window. Monthly budgets use the given month and yearly budgets the
// whole year. Weekly budgets also use the month window, so weeks crossing a
// month boundary are only partly counted.
func (b *Book) BudgetStatus(id string, year int, month time.Month) (BudgetStatus, error) {
	bg, ok := b.budgets[id]
	if !ok {
		return BudgetStatus{}, notFound("budget", id)
	}

	var inWindow func(date.Date) bool
	if bg.Period == PeriodYearly {
		inWindow = func(on date.Date) bool { return on.Year() == year }
	} else {
		if month < time.January || month > time.December {
			return BudgetStatus{}, invalid("month", "is required for "+string(bg.Period)+" budgets")
		}
		inWindow = func(on date.Date) bool { return on.SameMonth(year, month) }
	}

	spent := decimal.Zero
	for on, bucket := range b.days {
		if !inWindow(on) {
			continue
		}
		for _, tx := range bucket.Spending {
			if tx.Category == bg.CategoryID {
				spent = spent.Add(tx.Amount)
			}
		}
	}

	percentage := spent.Div(bg.Amount).Mul(hundred)
	return BudgetStatus{
		Limit:      bg.Amount,
		Spent:      spent,
		Remaining:  bg.Amount.Sub(spent),
		Percentage: percentage.Round(1),
		State:      Classify(percentage),
	}, nil
}
