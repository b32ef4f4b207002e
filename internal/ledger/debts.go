package ledger

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// DebtPaymentCategory tags the ledger transactions produced by debt payments.
const DebtPaymentCategory = "debt_payment"

// DebtPatch holds the fields UpdateDebt changes. Nil fields are left
// untouched; an empty AccountID unlinks the debt.
type DebtPatch struct {
	Name            *string
	Type            *DebtType
	PrincipalAmount *decimal.Decimal
	CurrentBalance  *decimal.Decimal
	InterestRate    *decimal.Decimal
	MinimumPayment  *decimal.Decimal
	DueDate         *int
	AccountID       *string
}

func validateDebt(d Debt) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name", "is required")
	}
	switch d.Type {
	case DebtCreditCard, DebtLoan, DebtMortgage, DebtStudentLoan, DebtOther:
	default:
		return invalid("type", "unknown debt type "+string(d.Type))
	}
	if d.PrincipalAmount.IsNegative() {
		return invalid("principalAmount", "must not be negative")
	}
	if d.CurrentBalance.IsNegative() {
		return invalid("currentBalance", "must not be negative")
	}
	if d.MinimumPayment.IsNegative() {
		return invalid("minimumPayment", "must not be negative")
	}
	if d.InterestRate != nil && d.InterestRate.IsNegative() {
		return invalid("interestRate", "must not be negative")
	}
	if d.DueDate < 0 || d.DueDate > 31 {
		return invalid("dueDate", "must be a day of month")
	}
	return nil
}

// AddDebt records a debt. A debt linked to a credit account takes its
// balance from the account immediately.
func (b *Book) AddDebt(d Debt) (Debt, error) {
	if d.Type == "" {
		d.Type = DebtOther
	}
	if err := validateDebt(d); err != nil {
		return Debt{}, err
	}
	if err := b.requireAccounts(d.AccountID); err != nil {
		return Debt{}, err
	}
	d.ID = b.id(d.ID)
	if _, ok := b.debts[d.ID]; ok {
		return Debt{}, invalid("id", "already used")
	}

	b.debts[d.ID] = &d
	b.syncDebt(&d)
	return d, nil
}

// UpdateDebt patches a debt and re-syncs it. CurrentBalance only sticks on
// debts that are not derived from a credit account.
func (b *Book) UpdateDebt(id string, patch DebtPatch) (Debt, error) {
	d, ok := b.debts[id]
	if !ok {
		return Debt{}, notFound("debt", id)
	}
	updated := *d
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.PrincipalAmount != nil {
		updated.PrincipalAmount = *patch.PrincipalAmount
	}
	if patch.CurrentBalance != nil {
		updated.CurrentBalance = *patch.CurrentBalance
	}
	if patch.InterestRate != nil {
		rate := *patch.InterestRate
		updated.InterestRate = &rate
	}
	if patch.MinimumPayment != nil {
		updated.MinimumPayment = *patch.MinimumPayment
	}
	if patch.DueDate != nil {
		updated.DueDate = *patch.DueDate
	}
	if patch.AccountID != nil {
		updated.AccountID = *patch.AccountID
	}
	if err := validateDebt(updated); err != nil {
		return Debt{}, err
	}
	if updated.AccountID != d.AccountID {
		if err := b.requireAccounts(updated.AccountID); err != nil {
			return Debt{}, err
		}
	}

	*d = updated
	b.syncDebt(d)
	return *d, nil
}

// DeleteDebt removes a debt and its payment records. Ledger transactions
// produced by the payments stay.
func (b *Book) DeleteDebt(id string) error {
	if _, ok := b.debts[id]; !ok {
		return notFound("debt", id)
	}
	delete(b.debts, id)
	for pid, p := range b.payments {
		if p.DebtID == id {
			delete(b.payments, pid)
		}
	}
	return nil
}

func (b *Book) Debt(id string) (Debt, error) {
	d, ok := b.debts[id]
	if !ok {
		return Debt{}, notFound("debt", id)
	}
	return *d, nil
}

// Debts returns every debt ordered by name.
func (b *Book) Debts() []Debt {
	return sortedValues(b.debts, func(x, y Debt) int {
		return cmp.Or(strings.Compare(x.Name, y.Name), strings.Compare(x.ID, y.ID))
	})
}

// linkedCredit returns the credit account a debt derives its balance from.
func (b *Book) linkedCredit(d *Debt) (*Account, bool) {
	if d.AccountID == "" {
		return nil, false
	}
	account, ok := b.accounts[d.AccountID]
	if !ok || !account.Type.IsCredit() {
		return nil, false
	}
	return account, true
}

// syncDebt sets the balance of a credit-linked debt to the absolute derived
// balance of its account as of today and reports whether it changed.
func (b *Book) syncDebt(d *Debt) bool {
	account, ok := b.linkedCredit(d)
	if !ok {
		return false
	}
	balance := replay(*account, b.days, b.sortedDates(), b.Today()).Abs()
	if balance.Equal(d.CurrentBalance) {
		return false
	}
	d.CurrentBalance = balance
	return true
}

// syncAccounts syncs every debt linked to one of the accounts.
func (b *Book) syncAccounts(accountIDs ...string) {
	for _, d := range b.debts {
		if d.AccountID != "" && slices.Contains(accountIDs, d.AccountID) {
			b.syncDebt(d)
		}
	}
}

// SyncDebt re-derives one debt balance.
func (b *Book) SyncDebt(id string) (Debt, error) {
	d, ok := b.debts[id]
	if !ok {
		return Debt{}, notFound("debt", id)
	}
	b.syncDebt(d)
	return *d, nil
}

// SyncAllDebts repairs drift on every credit-linked debt and returns the
// ids of the debts it corrected.
func (b *Book) SyncAllDebts() []string {
	var repaired []string
	for id, d := range b.debts {
		if b.syncDebt(d) {
			repaired = append(repaired, id)
		}
	}
	slices.Sort(repaired)
	return repaired
}

// RecordDebtPayment pays down a debt.
//
// For a credit-linked debt the payment is a ledger event: a transfer from
// fromAccountID to the card, or income on the card when no source is given,
// after which the balance is re-derived. Any other debt has the amount
// subtracted directly, floored at zero, and a spending transaction is
// recorded on fromAccountID when one is given.
func (b *Book) RecordDebtPayment(debtID string, amount decimal.Decimal, on date.Date, fromAccountID string) (DebtPayment, error) {
	d, ok := b.debts[debtID]
	if !ok {
		return DebtPayment{}, notFound("debt", debtID)
	}
	if !amount.IsPositive() {
		return DebtPayment{}, invalid("amount", "must be greater than zero")
	}
	if on.IsZero() {
		on = b.Today()
	}

	payment := DebtPayment{
		ID:        b.newID(),
		DebtID:    debtID,
		Amount:    amount,
		Date:      on,
		AccountID: fromAccountID,
	}
	tx := Transaction{
		Amount:      amount,
		Description: "Payment: " + d.Name,
		Category:    DebtPaymentCategory,
	}

	if account, linked := b.linkedCredit(d); linked {
		if fromAccountID != "" {
			tx.Type = TypeTransfer
			tx.AccountID = fromAccountID
			tx.TransferToAccountID = account.ID
		} else {
			tx.Type = TypeIncome
			tx.AccountID = account.ID
		}
		added, err := b.AddTransaction(on, tx)
		if err != nil {
			return DebtPayment{}, err
		}
		payment.TransactionID = added.ID
	} else {
		if fromAccountID != "" {
			tx.Type = TypeSpending
			tx.AccountID = fromAccountID
			added, err := b.AddTransaction(on, tx)
			if err != nil {
				return DebtPayment{}, err
			}
			payment.TransactionID = added.ID
		}
		delta := decimal.Max(decimal.Zero, decimal.Min(amount, d.CurrentBalance))
		d.CurrentBalance = d.CurrentBalance.Sub(delta)
		payment.BalanceDelta = delta
	}

	b.payments[payment.ID] = &payment
	return payment, nil
}

// DeleteDebtPayment reverses a payment: its ledger transaction is removed,
// a directly applied delta is added back, and the debt is re-synced.
func (b *Book) DeleteDebtPayment(id string) error {
	p, ok := b.payments[id]
	if !ok {
		return notFound("debt payment", id)
	}
	if p.TransactionID != "" {
		if tx, ok := b.delete(p.Date, p.TransactionID); ok {
			b.syncAccounts(tx.AccountID, tx.TransferToAccountID)
		}
	}
	if d, ok := b.debts[p.DebtID]; ok {
		d.CurrentBalance = d.CurrentBalance.Add(p.BalanceDelta)
		b.syncDebt(d)
	}
	delete(b.payments, id)
	return nil
}

// Payments returns the payments of a debt in date order.
func (b *Book) Payments(debtID string) []DebtPayment {
	var out []DebtPayment
	for _, p := range b.payments {
		if p.DebtID == debtID {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(x, y DebtPayment) int {
		return cmp.Or(x.Date.Compare(y.Date), strings.Compare(x.ID, y.ID))
	})
	return out
}
