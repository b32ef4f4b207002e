package ledger

import (
	"github.com/carson-networks/finance-tracker/internal/date"
)

// Snapshot is the full persisted state of a Book, keyed by date or id.
type Snapshot struct {
	Days           map[date.Date]DayBucket  `json:"days"`
	Accounts       map[string]Account       `json:"accounts"`
	Categories     map[string]Category      `json:"categories"`
	Budgets        map[string]Budget        `json:"budgets"`
	Goals          map[string]SavingsGoal   `json:"savingsGoals"`
	Debts          map[string]Debt          `json:"debts"`
	DebtPayments   map[string]DebtPayment   `json:"debtPayments"`
	RecurringRules map[string]RecurringRule `json:"recurringRules"`
}

// IsEmpty reports whether the snapshot holds no data at all.
func (s *Snapshot) IsEmpty() bool {
	return s == nil ||
		len(s.Days) == 0 &&
			len(s.Accounts) == 0 &&
			len(s.Categories) == 0 &&
			len(s.Budgets) == 0 &&
			len(s.Goals) == 0 &&
			len(s.Debts) == 0 &&
			len(s.DebtPayments) == 0 &&
			len(s.RecurringRules) == 0
}

func copyOut[T any](m map[string]*T) map[string]T {
	out := make(map[string]T, len(m))
	for id, v := range m {
		out[id] = *v
	}
	return out
}

func copyIn[T any](m map[string]T, setID func(*T, string)) map[string]*T {
	out := make(map[string]*T, len(m))
	for id, v := range m {
		setID(&v, id)
		out[id] = &v
	}
	return out
}

// Snapshot returns a deep copy of the book's state.
func (b *Book) Snapshot() *Snapshot {
	days := make(map[date.Date]DayBucket, len(b.days))
	for on, bucket := range b.days {
		days[on] = bucket.clone()
	}
	return &Snapshot{
		Days:           days,
		Accounts:       copyOut(b.accounts),
		Categories:     copyOut(b.categories),
		Budgets:        copyOut(b.budgets),
		Goals:          copyOut(b.goals),
		Debts:          copyOut(b.debts),
		DebtPayments:   copyOut(b.payments),
		RecurringRules: copyOut(b.rules),
	}
}

// Restore replaces the book's state with s. Map keys are authoritative for
// entity ids and empty day buckets are dropped. A nil snapshot empties the book.
func (b *Book) Restore(s *Snapshot) {
	if s == nil {
		s = &Snapshot{}
	}
	b.days = make(map[date.Date]*DayBucket, len(s.Days))
	for on, bucket := range s.Days {
		if bucket.IsEmpty() {
			continue
		}
		clone := bucket.clone()
		b.days[on] = &clone
	}
	b.accounts = copyIn(s.Accounts, func(a *Account, id string) { a.ID = id })
	b.categories = copyIn(s.Categories, func(c *Category, id string) { c.ID = id })
	b.budgets = copyIn(s.Budgets, func(bg *Budget, id string) { bg.ID = id })
	b.goals = copyIn(s.Goals, func(g *SavingsGoal, id string) { g.ID = id })
	b.debts = copyIn(s.Debts, func(d *Debt, id string) { d.ID = id })
	b.payments = copyIn(s.DebtPayments, func(p *DebtPayment, id string) { p.ID = id })
	b.rules = copyIn(s.RecurringRules, func(r *RecurringRule, id string) { r.ID = id })
}
