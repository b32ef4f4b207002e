package account

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account ID"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" doc:"Account type"`
	InitialBalance string `json:"initialBalance" doc:"Decimal balance when the account was opened"`
	Balance        string `json:"balance,omitempty" doc:"Decimal balance as of today"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAccount(a ledger.Account) Account {
	return Account{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance.String(),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}
