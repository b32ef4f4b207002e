package debt

import (
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Debt is the API response model for a debt.
type Debt struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	PrincipalAmount string `json:"principalAmount"`
	CurrentBalance  string `json:"currentBalance"`
	InterestRate    string `json:"interestRate,omitempty"`
	MinimumPayment  string `json:"minimumPayment"`
	DueDate         int    `json:"dueDate,omitempty"`
	AccountID       string `json:"accountID,omitempty"`
}

func toDebt(d ledger.Debt) Debt {
	out := Debt{
		ID:              d.ID,
		Name:            d.Name,
		Type:            string(d.Type),
		PrincipalAmount: d.PrincipalAmount.String(),
		CurrentBalance:  d.CurrentBalance.String(),
		MinimumPayment:  d.MinimumPayment.String(),
		DueDate:         d.DueDate,
		AccountID:       d.AccountID,
	}
	if d.InterestRate != nil {
		out.InterestRate = d.InterestRate.String()
	}
	return out
}

// Payment is the API response model for a debt payment.
type Payment struct {
	ID            string `json:"id"`
	DebtID        string `json:"debtID"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	AccountID     string `json:"accountID,omitempty"`
	TransactionID string `json:"transactionID,omitempty"`
}

func toPayment(p ledger.DebtPayment) Payment {
	return Payment{
		ID:            p.ID,
		DebtID:        p.DebtID,
		Amount:        p.Amount.String(),
		Date:          p.Date.String(),
		AccountID:     p.AccountID,
		TransactionID: p.TransactionID,
	}
}
