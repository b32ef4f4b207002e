package ledger

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountPatch holds the fields UpdateAccount changes.
type AccountPatch struct {
	Name           *string
	Type           *AccountType
	InitialBalance *decimal.Decimal
}

func validateAccount(a Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("name", "is required")
	}
	if !a.Type.Valid() {
		return invalid("type", "unknown account type "+string(a.Type))
	}
	return nil
}

func (b *Book) prepareAccount(a Account) (Account, error) {
	if err := validateAccount(a); err != nil {
		return Account{}, err
	}
	a.ID = b.id(a.ID)
	if _, ok := b.accounts[a.ID]; ok {
		return Account{}, invalid("id", "already used")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = b.now()
	}
	return a, nil
}

// AddAccount creates an account. CreatedAt defaults to now.
func (b *Book) AddAccount(a Account) (Account, error) {
	a, err := b.prepareAccount(a)
	if err != nil {
		return Account{}, err
	}
	b.accounts[a.ID] = &a
	return a, nil
}

// AddAccountWithDebt creates a credit account together with the debt that
// tracks it. The debt balance is derived at once.
func (b *Book) AddAccountWithDebt(a Account, d Debt) (Account, Debt, error) {
	if !a.Type.IsCredit() {
		return Account{}, Debt{}, invalid("type", "only credit accounts can carry a linked debt")
	}
	a, err := b.prepareAccount(a)
	if err != nil {
		return Account{}, Debt{}, err
	}
	if d.Name == "" {
		d.Name = a.Name
	}
	if d.Type == "" {
		d.Type = DebtCreditCard
	}
	d.AccountID = a.ID
	if err := validateDebt(d); err != nil {
		return Account{}, Debt{}, err
	}

	b.accounts[a.ID] = &a
	d, err = b.AddDebt(d)
	if err != nil {
		delete(b.accounts, a.ID)
		return Account{}, Debt{}, err
	}
	return a, d, nil
}

// UpdateAccount patches an account and re-syncs the debts linked to it.
func (b *Book) UpdateAccount(id string, patch AccountPatch) (Account, error) {
	a, ok := b.accounts[id]
	if !ok {
		return Account{}, notFound("account", id)
	}
	updated := *a
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.InitialBalance != nil {
		updated.InitialBalance = *patch.InitialBalance
	}
	if err := validateAccount(updated); err != nil {
		return Account{}, err
	}

	*a = updated
	b.syncAccounts(id)
	return *a, nil
}

// DeleteAccount removes an account. Rules and goals pointing at it lose the
// reference and linked debts are detached with their last balance.
// Transactions keep their historical account id.
func (b *Book) DeleteAccount(id string) error {
	if _, ok := b.accounts[id]; !ok {
		return notFound("account", id)
	}
	delete(b.accounts, id)

	for _, r := range b.rules {
		if r.AccountID == id {
			r.AccountID = ""
		}
	}
	for _, d := range b.debts {
		if d.AccountID == id {
			d.AccountID = ""
		}
	}
	for _, g := range b.goals {
		if g.AccountID == id {
			g.AccountID = ""
		}
	}
	return nil
}

func (b *Book) Account(id string) (Account, error) {
	a, ok := b.accounts[id]
	if !ok {
		return Account{}, notFound("account", id)
	}
	return *a, nil
}

// Accounts returns every account in creation order.
func (b *Book) Accounts() []Account {
	return sortedValues(b.accounts, func(x, y Account) int {
		return cmp.Or(x.CreatedAt.Compare(y.CreatedAt), strings.Compare(x.ID, y.ID))
	})
}

// AddCategory creates a category. Kind defaults to expense.
func (b *Book) AddCategory(c Category) (Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Category{}, invalid("name", "is required")
	}
	if c.Kind == "" {
		c.Kind = CategoryExpense
	}
	if c.Kind != CategoryExpense && c.Kind != CategoryIncome {
		return Category{}, invalid("kind", "must be income or expense")
	}
	c.ID = b.id(c.ID)
	if _, ok := b.categories[c.ID]; ok {
		return Category{}, invalid("id", "already used")
	}
	b.categories[c.ID] = &c
	return c, nil
}

// DeleteCategory removes a category and the budgets tracking it.
// Transactions keep their category tag.
func (b *Book) DeleteCategory(id string) error {
	if _, ok := b.categories[id]; !ok {
		return notFound("category", id)
	}
	delete(b.categories, id)
	for bid, budget := range b.budgets {
		if budget.CategoryID == id {
			delete(b.budgets, bid)
		}
	}
	return nil
}

// Categories returns every category ordered by name.
func (b *Book) Categories() []Category {
	return sortedValues(b.categories, func(x, y Category) int {
		return cmp.Or(strings.Compare(x.Name, y.Name), strings.Compare(x.ID, y.ID))
	})
}
