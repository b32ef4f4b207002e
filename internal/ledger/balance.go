package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// Balance derives the balance of an account as of the end of asOf.
func (b *Book) Balance(accountID string, asOf date.Date) (decimal.Decimal, error) {
	account, ok := b.accounts[accountID]
	if !ok {
		return decimal.Zero, notFound("account", accountID)
	}
	return replay(*account, b.days, b.sortedDates(), asOf), nil
}

// CurrentBalance is Balance as of today.
func (b *Book) CurrentBalance(accountID string) (decimal.Decimal, error) {
	return b.Balance(accountID, b.Today())
}

// replay folds every transaction referencing account, from its creation
// date through asOf, onto its initial balance. order must list the keys of
// days ascending. Credit accounts count owed money, so inflows reduce them.
func replay(account Account, days map[date.Date]*DayBucket, order []date.Date, asOf date.Date) decimal.Decimal {
	balance := account.InitialBalance
	opened := date.FromTime(account.CreatedAt)
	credit := account.Type.IsCredit()

	inflow := func(amount decimal.Decimal) {
		if credit {
			balance = balance.Sub(amount)
		} else {
			balance = balance.Add(amount)
		}
	}
	outflow := func(amount decimal.Decimal) {
		if credit {
			balance = balance.Add(amount)
		} else {
			balance = balance.Sub(amount)
		}
	}

	for _, on := range order {
		if on.After(asOf) {
			break
		}
		if on.Before(opened) {
			continue
		}
		bucket := days[on]
		for _, tx := range bucket.Income {
			if tx.AccountID == account.ID {
				inflow(tx.Amount)
			}
		}
		for _, tx := range bucket.Spending {
			if tx.AccountID == account.ID {
				outflow(tx.Amount)
			}
		}
		for _, tx := range bucket.Transfers {
			switch account.ID {
			case tx.AccountID:
				outflow(tx.Amount)
			case tx.TransferToAccountID:
				inflow(tx.Amount)
			}
		}
	}
	return balance
}
