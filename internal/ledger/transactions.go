package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// TransactionPatch holds the fields UpdateTransaction changes. Nil fields
// are left untouched.
type TransactionPatch struct {
	Amount              *decimal.Decimal
	Description         *string
	AccountID           *string
	Category            *string
	TransferToAccountID *string
}

func (b *DayBucket) locate(id string) (*[]Transaction, int) {
	for _, list := range []*[]Transaction{&b.Income, &b.Spending, &b.Transfers} {
		i := slices.IndexFunc(*list, func(tx Transaction) bool { return tx.ID == id })
		if i >= 0 {
			return list, i
		}
	}
	return nil, -1
}

func validateTransaction(tx Transaction) error {
	if !tx.Type.Valid() {
		return invalid("type", "must be income, spending or transfer")
	}
	if !tx.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if tx.Type == TypeTransfer {
		if tx.AccountID == "" || tx.TransferToAccountID == "" {
			return invalid("transferToAccountId", "a transfer needs a source and a destination account")
		}
		if tx.AccountID == tx.TransferToAccountID {
			return invalid("transferToAccountId", "source and destination must differ")
		}
	} else if tx.TransferToAccountID != "" {
		return invalid("transferToAccountId", "only transfers have a destination account")
	}
	return nil
}

func (b *Book) requireAccounts(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := b.accounts[id]; !ok {
			return notFound("account", id)
		}
	}
	return nil
}

// AddTransaction appends tx to the bucket of its date and list of its type.
// An empty id is generated. Debts linked to a touched account are synced
// before returning.
func (b *Book) AddTransaction(on date.Date, tx Transaction) (Transaction, error) {
	if on.IsZero() {
		return Transaction{}, invalid("date", "is required")
	}
	if err := validateTransaction(tx); err != nil {
		return Transaction{}, err
	}
	if err := b.requireAccounts(tx.AccountID, tx.TransferToAccountID); err != nil {
		return Transaction{}, err
	}
	tx.ID = b.id(tx.ID)
	if b.exists(on, tx.ID) {
		return Transaction{}, invalid("id", "already used on "+on.String())
	}

	b.insert(on, tx)
	b.syncAccounts(tx.AccountID, tx.TransferToAccountID)
	return tx, nil
}

// RemoveTransaction deletes a transaction. Removing a generated recurring
// instance also removes the instances of the same rule dated after it and
// ends the rule the day before, so population does not bring them back.
// Instances dated before it stay.
func (b *Book) RemoveTransaction(on date.Date, id string) ([]Entry, error) {
	tx, ok := b.delete(on, id)
	if !ok {
		return nil, notFound("transaction", id)
	}

	removed := []Entry{{Date: on, Transaction: tx}}
	if tx.IsRecurring && tx.RecurringID != "" {
		removed = append(removed, b.removeInstances(tx.RecurringID, on.Add(1))...)
		b.endRule(tx.RecurringID, on.Add(-1))
	}
	b.syncEntries(removed)
	return removed, nil
}

// UpdateTransaction patches a transaction in place and re-syncs the debts
// of both the previous and the new accounts.
func (b *Book) UpdateTransaction(on date.Date, id string, patch TransactionPatch) (Transaction, error) {
	bucket, ok := b.days[on]
	if !ok {
		return Transaction{}, notFound("transaction", id)
	}
	list, i := bucket.locate(id)
	if i < 0 {
		return Transaction{}, notFound("transaction", id)
	}

	old := (*list)[i]
	updated := old
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.AccountID != nil {
		updated.AccountID = *patch.AccountID
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.TransferToAccountID != nil {
		updated.TransferToAccountID = *patch.TransferToAccountID
	}
	if err := validateTransaction(updated); err != nil {
		return Transaction{}, err
	}
	// Unchanged references may point at deleted accounts and stay valid.
	var changed []string
	if updated.AccountID != old.AccountID {
		changed = append(changed, updated.AccountID)
	}
	if updated.TransferToAccountID != old.TransferToAccountID {
		changed = append(changed, updated.TransferToAccountID)
	}
	if err := b.requireAccounts(changed...); err != nil {
		return Transaction{}, err
	}

	(*list)[i] = updated
	b.syncAccounts(old.AccountID, old.TransferToAccountID, updated.AccountID, updated.TransferToAccountID)
	return updated, nil
}

// MoveTransaction re-dates a single transaction. A recurring instance
// becomes a manual transaction with a new id so population does not
// regenerate it at its old slot. A manual transaction keeps its id unless
// the target bucket already uses it.
func (b *Book) MoveTransaction(from date.Date, id string, to date.Date) (Transaction, error) {
	if to.IsZero() {
		return Transaction{}, invalid("date", "is required")
	}
	tx, ok := b.delete(from, id)
	if !ok {
		return Transaction{}, notFound("transaction", id)
	}

	if tx.IsRecurring || tx.RecurringID != "" {
		tx.ID = b.newID()
		tx.IsRecurring = false
		tx.RecurringID = ""
	} else if b.exists(to, tx.ID) {
		tx.ID = b.newID()
	}
	b.insert(to, tx)
	b.syncAccounts(tx.AccountID, tx.TransferToAccountID)
	return tx, nil
}

// Day returns a copy of the bucket for on. A missing bucket is empty.
func (b *Book) Day(on date.Date) DayBucket {
	bucket, ok := b.days[on]
	if !ok {
		return DayBucket{}
	}
	return bucket.clone()
}

// Transaction looks up one transaction by date and id.
func (b *Book) Transaction(on date.Date, id string) (Transaction, error) {
	if bucket, ok := b.days[on]; ok {
		if list, i := bucket.locate(id); i >= 0 {
			return (*list)[i], nil
		}
	}
	return Transaction{}, notFound("transaction", id)
}

// Dates returns every date holding at least one transaction, in order.
func (b *Book) Dates() []date.Date { return b.sortedDates() }

// Range returns the transactions dated within [from, to] in date order.
func (b *Book) Range(from, to date.Date) []Entry {
	var out []Entry
	for _, on := range b.sortedDates() {
		if on.Before(from) || on.After(to) {
			continue
		}
		for _, tx := range b.days[on].All() {
			out = append(out, Entry{Date: on, Transaction: tx})
		}
	}
	return out
}

func (b *Book) exists(on date.Date, id string) bool {
	bucket, ok := b.days[on]
	if !ok {
		return false
	}
	_, i := bucket.locate(id)
	return i >= 0
}

func (b *Book) insert(on date.Date, tx Transaction) {
	bucket, ok := b.days[on]
	if !ok {
		bucket = &DayBucket{}
		b.days[on] = bucket
	}
	list := bucket.list(tx.Type)
	*list = append(*list, tx)
}

// delete removes one transaction without cascading or syncing and drops
// the bucket once it is empty.
func (b *Book) delete(on date.Date, id string) (Transaction, bool) {
	bucket, ok := b.days[on]
	if !ok {
		return Transaction{}, false
	}
	list, i := bucket.locate(id)
	if i < 0 {
		return Transaction{}, false
	}
	tx := (*list)[i]
	*list = slices.Delete(*list, i, i+1)
	if bucket.IsEmpty() {
		delete(b.days, on)
	}
	return tx, true
}

// removeInstances deletes the generated instances of a rule dated on or
// after since. Callers sync.
func (b *Book) removeInstances(ruleID string, since date.Date) []Entry {
	var removed []Entry
	for _, on := range b.sortedDates() {
		if on.Before(since) {
			continue
		}
		for _, tx := range b.days[on].All() {
			if !isInstanceOf(tx, ruleID, on) {
				continue
			}
			if gone, ok := b.delete(on, tx.ID); ok {
				removed = append(removed, Entry{Date: on, Transaction: gone})
			}
		}
	}
	return removed
}

func (b *Book) syncEntries(entries []Entry) {
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.Transaction.AccountID, e.Transaction.TransferToAccountID)
	}
	b.syncAccounts(ids...)
}
