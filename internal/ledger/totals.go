package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// Totals sums income and spending over a window. Transfers move money
// between accounts and are not counted.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}

func (b *Book) totals(from, to date.Date) Totals {
	t := Totals{Income: decimal.Zero, Spending: decimal.Zero}
	for on, bucket := range b.days {
		if on.Before(from) || on.After(to) {
			continue
		}
		for _, tx := range bucket.Income {
			t.Income = t.Income.Add(tx.Amount)
		}
		for _, tx := range bucket.Spending {
			t.Spending = t.Spending.Add(tx.Amount)
		}
	}
	t.Net = t.Income.Sub(t.Spending)
	return t
}

func (b *Book) DailyTotal(on date.Date) Totals {
	return b.totals(on, on)
}

// WeeklyTotal covers the Sunday-to-Saturday week containing on.
func (b *Book) WeeklyTotal(on date.Date) Totals {
	start := on.StartOfWeek()
	return b.totals(start, start.Add(6))
}

func (b *Book) MonthlyTotal(year int, month time.Month) Totals {
	start := date.New(year, month, 1)
	return b.totals(start, start.EndOfMonth())
}
