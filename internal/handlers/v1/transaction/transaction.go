package transaction

import (
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                  string `json:"id" doc:"Transaction ID"`
	Date                string `json:"date,omitempty" doc:"YYYY-MM-DD date the transaction is recorded on"`
	Type                string `json:"type" doc:"income, spending or transfer"`
	Amount              string `json:"amount" doc:"Positive decimal amount"`
	Description         string `json:"description" doc:"Description"`
	AccountID           string `json:"accountID,omitempty" doc:"Account ID"`
	Category            string `json:"category,omitempty" doc:"Category ID"`
	TransferToAccountID string `json:"transferToAccountID,omitempty" doc:"Destination account of a transfer"`
	IsRecurring         bool   `json:"isRecurring" doc:"Whether a recurring rule generated the transaction"`
	RecurringID         string `json:"recurringID,omitempty" doc:"Generating rule ID"`
}

func toTransaction(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:                  tx.ID,
		Type:                string(tx.Type),
		Amount:              tx.Amount.String(),
		Description:         tx.Description,
		AccountID:           tx.AccountID,
		Category:            tx.Category,
		TransferToAccountID: tx.TransferToAccountID,
		IsRecurring:         tx.IsRecurring,
		RecurringID:         tx.RecurringID,
	}
}

func toEntries(entries []ledger.Entry) []Transaction {
	out := make([]Transaction, len(entries))
	for i, e := range entries {
		out[i] = toTransaction(e.Transaction)
		out[i].Date = e.Date.String()
	}
	return out
}

// DayBucket is the API response model for the transactions of one date.
type DayBucket struct {
	Date      string        `json:"date" doc:"YYYY-MM-DD date"`
	Income    []Transaction `json:"income"`
	Spending  []Transaction `json:"spending"`
	Transfers []Transaction `json:"transfers"`
}

func toDayBucket(on string, bucket ledger.DayBucket) DayBucket {
	convert := func(txs []ledger.Transaction) []Transaction {
		out := make([]Transaction, len(txs))
		for i, tx := range txs {
			out[i] = toTransaction(tx)
		}
		return out
	}
	return DayBucket{
		Date:      on,
		Income:    convert(bucket.Income),
		Spending:  convert(bucket.Spending),
		Transfers: convert(bucket.Transfers),
	}
}
