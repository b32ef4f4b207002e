package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// TransactionType is the kind of money movement a transaction records.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeSpending TransactionType = "spending"
	TypeTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeSpending, TypeTransfer:
		return true
	}
	return false
}

// Transaction is one ledger event recorded against a day bucket.
type Transaction struct {
	ID                  string          `json:"id"`
	Type                TransactionType `json:"type"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	AccountID           string          `json:"accountId,omitempty"`
	Category            string          `json:"category,omitempty"`
	TransferToAccountID string          `json:"transferToAccountId,omitempty"`
	IsRecurring         bool            `json:"isRecurring,omitempty"`
	RecurringID         string          `json:"recurringId,omitempty"`
}

// Touches reports whether the transaction references the account as source
// or destination.
func (t Transaction) Touches(accountID string) bool {
	return accountID != "" && (t.AccountID == accountID || t.TransferToAccountID == accountID)
}

// DayBucket holds the transactions of one calendar date, split by type.
type DayBucket struct {
	Income    []Transaction `json:"income"`
	Spending  []Transaction `json:"spending"`
	Transfers []Transaction `json:"transfers"`
}

// All returns every transaction of the bucket: income, spending, then transfers.
func (b DayBucket) All() []Transaction {
	all := make([]Transaction, 0, len(b.Income)+len(b.Spending)+len(b.Transfers))
	all = append(all, b.Income...)
	all = append(all, b.Spending...)
	return append(all, b.Transfers...)
}

func (b DayBucket) IsEmpty() bool {
	return len(b.Income) == 0 && len(b.Spending) == 0 && len(b.Transfers) == 0
}

func (b *DayBucket) list(t TransactionType) *[]Transaction {
	switch t {
	case TypeIncome:
		return &b.Income
	case TypeSpending:
		return &b.Spending
	default:
		return &b.Transfers
	}
}

func (b DayBucket) clone() DayBucket {
	return DayBucket{
		Income:    append([]Transaction(nil), b.Income...),
		Spending:  append([]Transaction(nil), b.Spending...),
		Transfers: append([]Transaction(nil), b.Transfers...),
	}
}

// Entry is a transaction together with the date it is recorded on.
type Entry struct {
	Date        date.Date   `json:"date"`
	Transaction Transaction `json:"transaction"`
}

// AccountType represents the kind of account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountIRA        AccountType = "ira"
	Account401k       AccountType = "401k"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard, AccountIRA,
		Account401k, AccountInvestment, AccountOther:
		return true
	}
	return false
}

// IsCredit reports whether balances of this type count owed money, which
// inverts the sign convention of the balance replay.
func (t AccountType) IsCredit() bool { return t == AccountCreditCard }

// Account is a money container. Its balance is never stored; it is replayed
// from InitialBalance and the ledger.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CategoryKind separates income categories from expense categories.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
)

type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Kind CategoryKind `json:"kind"`
}

// RuleKind selects the transaction type a recurring rule generates.
type RuleKind string

const (
	RuleExpense RuleKind = "expense"
	RuleIncome  RuleKind = "income"
)

func (k RuleKind) transactionType() TransactionType {
	if k == RuleIncome {
		return TypeIncome
	}
	return TypeSpending
}

// Frequency is how often a recurring rule repeats.
type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

// Pattern describes when a recurring rule fires.
//
// DayOfMonth anchors monthly and yearly rules and is clamped to the month
// length. DayOfWeek anchors weekly rules. Biweekly rules repeat every 14
// days from StartDate, or from the rule creation date when StartDate is unset.
type Pattern struct {
	Frequency  Frequency    `json:"frequency"`
	DayOfMonth int          `json:"dayOfMonth,omitempty"`
	DayOfWeek  time.Weekday `json:"dayOfWeek,omitempty"`
	Month      time.Month   `json:"month,omitempty"`
	StartDate  *date.Date   `json:"startDate,omitempty"`
	EndDate    *date.Date   `json:"endDate,omitempty"`
}

// RecurringRule is the template materialized into ledger transactions.
type RecurringRule struct {
	ID          string          `json:"id"`
	Kind        RuleKind        `json:"kind"`
	Pattern     Pattern         `json:"pattern"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DebtType is informational; only the linked account type drives behavior.
type DebtType string

const (
	DebtCreditCard  DebtType = "credit_card"
	DebtLoan        DebtType = "loan"
	DebtMortgage    DebtType = "mortgage"
	DebtStudentLoan DebtType = "student_loan"
	DebtOther       DebtType = "other"
)

type Debt struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            DebtType         `json:"type"`
	PrincipalAmount decimal.Decimal  `json:"principalAmount"`
	CurrentBalance  decimal.Decimal  `json:"currentBalance"`
	InterestRate    *decimal.Decimal `json:"interestRate,omitempty"`
	MinimumPayment  decimal.Decimal  `json:"minimumPayment"`
	DueDate         int              `json:"dueDate,omitempty"`
	AccountID       string           `json:"accountId,omitempty"`
}

// DebtPayment records a payment and what it changed, so it can be reversed.
// BalanceDelta is the amount subtracted directly from an unlinked debt.
type DebtPayment struct {
	ID            string          `json:"id"`
	DebtID        string          `json:"debtId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          date.Date       `json:"date"`
	AccountID     string          `json:"accountId,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	BalanceDelta  decimal.Decimal `json:"balanceDelta"`
}

// Period is the window a budget limit applies to.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     Period          `json:"period"`
	Year       int             `json:"year"`
	Month      time.Month      `json:"month,omitempty"`
}

type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *date.Date      `json:"targetDate,omitempty"`
	AccountID     string          `json:"accountId,omitempty"`
}
