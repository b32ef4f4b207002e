package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// ImportCandidate is one statement line. A negative amount is spending and
// a positive amount is income.
type ImportCandidate struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
}

// ImportRejection is a candidate that failed validation.
type ImportRejection struct {
	Row       int             `json:"row"`
	Candidate ImportCandidate `json:"candidate"`
	Reason    string          `json:"reason"`
}

type ImportResult struct {
	Added        int               `json:"added"`
	Skipped      int               `json:"skipped"`
	SkippedItems []ImportCandidate `json:"skippedItems"`
	Rejected     []ImportRejection `json:"rejected"`
}

// duplicateKey identifies a money movement by date, absolute amount and
// description, ignoring case and surrounding blanks.
func duplicateKey(on date.Date, amount decimal.Decimal, description string) string {
	return on.String() + "|" + amount.Abs().String() + "|" + strings.ToLower(strings.TrimSpace(description))
}

// Import records statement lines on one account. Lines matching an existing
// transaction, or an earlier line of the same batch, are skipped. Malformed
// dates, zero amounts and empty descriptions are rejected per line; the rest
// of the batch still imports.
func (b *Book) Import(accountID string, candidates []ImportCandidate) (ImportResult, error) {
	if _, ok := b.accounts[accountID]; !ok {
		return ImportResult{}, notFound("account", accountID)
	}

	seen := make(map[string]bool)
	for on, bucket := range b.days {
		for _, tx := range bucket.All() {
			seen[duplicateKey(on, tx.Amount, tx.Description)] = true
		}
	}

	result := ImportResult{}
	for i, c := range candidates {
		reject := func(reason string) {
			result.Rejected = append(result.Rejected, ImportRejection{Row: i + 1, Candidate: c, Reason: reason})
		}
		on, err := date.Parse(strings.TrimSpace(c.Date))
		if err != nil {
			reject(err.Error())
			continue
		}
		if c.Amount.IsZero() {
			reject("amount must not be zero")
			continue
		}
		description := strings.TrimSpace(c.Description)
		if description == "" {
			reject("description is required")
			continue
		}

		key := duplicateKey(on, c.Amount, description)
		if seen[key] {
			result.Skipped++
			result.SkippedItems = append(result.SkippedItems, c)
			continue
		}

		tx := Transaction{
			Type:        TypeIncome,
			Amount:      c.Amount.Abs(),
			Description: description,
			AccountID:   accountID,
			Category:    strings.TrimSpace(c.Category),
		}
		if c.Amount.IsNegative() {
			tx.Type = TypeSpending
		}
		if _, err := b.AddTransaction(on, tx); err != nil {
			reject(err.Error())
			continue
		}
		seen[key] = true
		result.Added++
	}
	return result, nil
}
