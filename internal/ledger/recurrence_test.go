package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/date"
)

func dates(ds []date.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func datePtr(s string) *date.Date {
	d := day(s)
	return &d
}

func TestOccurrences(t *testing.T) {
	testCases := []struct {
		name    string
		pattern Pattern
		created string
		year    int
		month   time.Month
		want    []string
	}{
		{
			name:    "monthly",
			pattern: Pattern{Frequency: Monthly, DayOfMonth: 15},
			year:    2025, month: time.March,
			want: []string{"2025-03-15"},
		},
		{
			name:    "monthly clamps to month end",
			pattern: Pattern{Frequency: Monthly, DayOfMonth: 31},
			year:    2025, month: time.February,
			want: []string{"2025-02-28"},
		},
		{
			name:    "weekly on tuesdays",
			pattern: Pattern{Frequency: Weekly, DayOfWeek: time.Tuesday},
			year:    2025, month: time.March,
			want: []string{"2025-03-04", "2025-03-11", "2025-03-18", "2025-03-25"},
		},
		{
			name:    "biweekly from start date",
			pattern: Pattern{Frequency: Biweekly, StartDate: datePtr("2025-02-21")},
			year:    2025, month: time.March,
			want: []string{"2025-03-07", "2025-03-21"},
		},
		{
			name:    "biweekly from creation",
			pattern: Pattern{Frequency: Biweekly},
			created: "2025-03-02",
			year:    2025, month: time.March,
			want: []string{"2025-03-02", "2025-03-16", "2025-03-30"},
		},
		{
			name:    "yearly only in its month",
			pattern: Pattern{Frequency: Yearly, Month: time.April, DayOfMonth: 1},
			year:    2025, month: time.March,
			want: []string{},
		},
		{
			name:    "yearly leap day",
			pattern: Pattern{Frequency: Yearly, Month: time.February, DayOfMonth: 29},
			year:    2025, month: time.February,
			want: []string{"2025-02-28"},
		},
		{
			name:    "daily bounded",
			pattern: Pattern{Frequency: Daily, StartDate: datePtr("2025-03-29"), EndDate: datePtr("2025-04-02")},
			year:    2025, month: time.March,
			want: []string{"2025-03-29", "2025-03-30", "2025-03-31"},
		},
		{
			name:    "after end date",
			pattern: Pattern{Frequency: Monthly, DayOfMonth: 1, EndDate: datePtr("2025-02-28")},
			year:    2025, month: time.March,
			want: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			createdOn := tc.created
			if createdOn == "" {
				createdOn = "2025-01-01"
			}
			rule := RecurringRule{Pattern: tc.pattern, CreatedAt: created(createdOn)}
			assert.Equal(t, tc.want, dates(Occurrences(rule, tc.year, tc.month)))
		})
	}
}

func TestAddRule_Validation(t *testing.T) {
	testCases := []struct {
		name string
		rule RecurringRule
	}{
		{name: "zero amount", rule: RecurringRule{Amount: dec("0"), Pattern: Pattern{Frequency: Daily}}},
		{name: "unknown frequency", rule: RecurringRule{Amount: dec("1"), Pattern: Pattern{Frequency: "hourly"}}},
		{name: "monthly without day", rule: RecurringRule{Amount: dec("1"), Pattern: Pattern{Frequency: Monthly}}},
		{name: "yearly without month", rule: RecurringRule{Amount: dec("1"), Pattern: Pattern{Frequency: Yearly, DayOfMonth: 3}}},
		{name: "end before start", rule: RecurringRule{Amount: dec("1"), Pattern: Pattern{
			Frequency: Daily, StartDate: datePtr("2025-03-02"), EndDate: datePtr("2025-03-01"),
		}}},
		{name: "unknown kind", rule: RecurringRule{Kind: "gift", Amount: dec("1"), Pattern: Pattern{Frequency: Daily}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := newTestBook(t, "2025-03-10")
			_, err := b.AddRule(tc.rule)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, b.Rules())
		})
	}
}

func monthlyRent(t *testing.T, b *Book, accountID string) RecurringRule {
	t.Helper()
	r, err := b.AddRule(RecurringRule{
		ID:          "rent",
		Kind:        RuleExpense,
		Pattern:     Pattern{Frequency: Monthly, DayOfMonth: 15},
		Amount:      dec("50"),
		Description: "Rent",
		AccountID:   accountID,
		Category:    "housing",
		IsActive:    true,
	})
	require.NoError(t, err)
	return r
}

func TestPopulateForMonth_MonthlyScenario(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	monthlyRent(t, b, "")

	added, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "2025-03-15", added[0].Date.String())

	tx := added[0].Transaction
	assert.Equal(t, "rent-2025-03-15", tx.ID)
	assert.Equal(t, TypeSpending, tx.Type)
	assert.True(t, tx.IsRecurring)
	assert.Equal(t, "rent", tx.RecurringID)
	assert.Equal(t, "housing", tx.Category)

	added, err = b.PopulateForMonth(2025, time.April)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "2025-04-15", added[0].Date.String())
}

func TestPopulateForMonth_Idempotent(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-01")
	_, err := b.AddRule(RecurringRule{Amount: dec("3"), Pattern: Pattern{Frequency: Weekly, DayOfWeek: time.Monday}, IsActive: true})
	require.NoError(t, err)

	first, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	assert.Len(t, first, 5)

	second, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, b.Range(day("2025-03-01"), day("2025-03-31")), 5)
}

func TestPopulateForMonth_SkipsDatesBeforeCutoff(t *testing.T) {
	b, clock := newTestBook(t, "2025-03-20")
	monthlyRent(t, b, "")

	added, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	assert.Empty(t, added, "a rule created after the 15th does not backfill")

	added, err = b.PopulateForMonth(2025, time.February)
	require.NoError(t, err)
	assert.Empty(t, added)

	clock.Set("2025-04-02")
	added, err = b.PopulateForMonth(2025, time.April)
	require.NoError(t, err)
	assert.Len(t, added, 1)
}

func TestPopulateForMonth_DedupesOnRecurringID(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	monthlyRent(t, b, "")
	mustAdd(t, b, "2025-03-15", Transaction{ID: "legacy", Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "rent"})

	added, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestPopulateForMonth_SkipsInactive(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	monthlyRent(t, b, "")
	inactive := false
	_, err := b.UpdateRule("rent", RulePatch{IsActive: &inactive})
	require.NoError(t, err)

	added, err := b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	assert.Empty(t, added)

	_, err = b.PopulateForMonth(2025, 13)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPopulateForMonth_SyncsLinkedDebt(t *testing.T) {
	b, clock := newTestBook(t, "2025-03-01")
	_, debt, err := b.AddAccountWithDebt(Account{ID: "card", Name: "Visa", Type: AccountCreditCard}, Debt{})
	require.NoError(t, err)
	_, err = b.AddRule(RecurringRule{Amount: dec("9.99"), AccountID: "card", Pattern: Pattern{Frequency: Monthly, DayOfMonth: 1}, IsActive: true})
	require.NoError(t, err)

	_, err = b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
	debt, _ = b.Debt(debt.ID)
	assertDecimal(t, "9.99", debt.CurrentBalance)

	clock.Set("2025-04-01")
	_, err = b.PopulateForMonth(2025, time.April)
	require.NoError(t, err)
	debt, _ = b.Debt(debt.ID)
	assertDecimal(t, "19.98", debt.CurrentBalance)
}

func TestDeleteRule_KeepsPastInstances(t *testing.T) {
	b, clock := newTestBook(t, "2025-01-01")
	monthlyRent(t, b, "")
	for _, m := range []time.Month{time.January, time.February, time.March, time.April} {
		_, err := b.PopulateForMonth(2025, m)
		require.NoError(t, err)
	}
	require.Len(t, b.Range(day("2025-01-01"), day("2025-12-31")), 4)

	clock.Set("2025-03-15")
	removed, err := b.DeleteRule("rent")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-15", "2025-04-15"}, []string{removed[0].Date.String(), removed[1].Date.String()})

	remaining := b.Range(day("2025-01-01"), day("2025-12-31"))
	require.Len(t, remaining, 2)
	assert.Equal(t, "2025-01-15", remaining[0].Date.String())
	assert.Equal(t, "2025-02-15", remaining[1].Date.String())

	_, err = b.DeleteRule("rent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRule_Propagates(t *testing.T) {
	b, clock := newTestBook(t, "2025-01-01")
	mustAccount(t, b, "old", AccountChecking, "0", "2024-12-01")
	monthlyRent(t, b, "old")
	for _, m := range []time.Month{time.January, time.February, time.March} {
		_, err := b.PopulateForMonth(2025, m)
		require.NoError(t, err)
	}

	clock.Set("2025-02-10")
	mustAccount(t, b, "new", AccountChecking, "0", "2025-02-10")

	amount := dec("75")
	description := "Rent (new lease)"
	newAccount := "new"
	updated, err := b.UpdateRule("rent", RulePatch{Amount: &amount, Description: &description, AccountID: &newAccount})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.AccountID)

	jan, _ := b.Transaction(day("2025-01-15"), "rent-2025-01-15")
	feb, _ := b.Transaction(day("2025-02-15"), "rent-2025-02-15")
	mar, _ := b.Transaction(day("2025-03-15"), "rent-2025-03-15")

	assert.Equal(t, "old", jan.AccountID, "instance older than the new account keeps its account")
	assert.Equal(t, "new", feb.AccountID)
	assert.Equal(t, "new", mar.AccountID)
	for _, tx := range []Transaction{jan, feb, mar} {
		assertDecimal(t, "75", tx.Amount)
		assert.Equal(t, description, tx.Description)
	}

	missing := "missing"
	_, err = b.UpdateRule("rent", RulePatch{AccountID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.UpdateRule("nope", RulePatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupPastRecurringInstances(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-10")
	monthlyRent(t, b, "")
	mustAdd(t, b, "2025-02-15", Transaction{ID: "rent-2025-02-15", Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "rent"})
	mustAdd(t, b, "2025-02-16", Transaction{ID: "orphan", Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "deleted-rule"})
	mustAdd(t, b, "2025-03-15", Transaction{ID: "rent-2025-03-15", Type: TypeSpending, Amount: dec("50"), IsRecurring: true, RecurringID: "rent"})

	removed := b.CleanupPastRecurringInstances()
	require.Len(t, removed, 1)
	assert.Equal(t, "rent-2025-02-15", removed[0].Transaction.ID)
	assert.Len(t, b.Dates(), 2)
}

func TestUpdateRule_ResyncsDebtOfEarlierAccount(t *testing.T) {
	b, clock := newTestBook(t, "2025-03-01")
	_, debt, err := b.AddAccountWithDebt(Account{ID: "old-card", Name: "Old Visa", Type: AccountCreditCard}, Debt{})
	require.NoError(t, err)
	_, err = b.AddRule(RecurringRule{ID: "stream", Amount: dec("50"), AccountID: "old-card", Pattern: Pattern{Frequency: Monthly, DayOfMonth: 1}, IsActive: true})
	require.NoError(t, err)
	_, err = b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)

	clock.Set("2025-03-10")
	mustAccount(t, b, "new-card", AccountCreditCard, "0", "2025-03-10")
	newCard := "new-card"
	_, err = b.UpdateRule("stream", RulePatch{AccountID: &newCard})
	require.NoError(t, err)

	amount := dec("80")
	_, err = b.UpdateRule("stream", RulePatch{Amount: &amount})
	require.NoError(t, err)

	// The 2025-03-01 instance predates the new card and stays on the old one.
	assertDecimal(t, "80", balanceOf(t, b, "old-card", "2025-03-10"))
	debt, _ = b.Debt(debt.ID)
	assertDecimal(t, "80", debt.CurrentBalance)
}

func weeklyGym(t *testing.T, b *Book) {
	t.Helper()
	_, err := b.AddRule(RecurringRule{
		ID:          "gym",
		Pattern:     Pattern{Frequency: Weekly, DayOfWeek: time.Monday},
		Amount:      dec("12"),
		Description: "Gym",
		IsActive:    true,
	})
	require.NoError(t, err)
	_, err = b.PopulateForMonth(2025, time.March)
	require.NoError(t, err)
}

func TestRemoveTransaction_RecurringStaysRemovedAfterPopulate(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-01")
	weeklyGym(t, b)

	removed, err := b.RemoveTransaction(day("2025-03-10"), InstanceID("gym", day("2025-03-10")))
	require.NoError(t, err)
	assert.Len(t, removed, 4)

	rule, err := b.Rule("gym")
	require.NoError(t, err)
	require.NotNil(t, rule.Pattern.EndDate)
	assert.Equal(t, "2025-03-09", rule.Pattern.EndDate.String())
	assert.True(t, rule.IsActive)

	for _, m := range []time.Month{time.March, time.April} {
		added, err := b.PopulateForMonth(2025, m)
		require.NoError(t, err)
		assert.Empty(t, added)
	}
	assert.Equal(t, []string{"2025-03-03"}, dates(b.Dates()))
}

func TestRemoveTransaction_FirstRecurringInstanceDeactivatesRule(t *testing.T) {
	b, _ := newTestBook(t, "2025-03-03")
	weeklyGym(t, b)

	removed, err := b.RemoveTransaction(day("2025-03-03"), InstanceID("gym", day("2025-03-03")))
	require.NoError(t, err)
	assert.Len(t, removed, 5)

	rule, err := b.Rule("gym")
	require.NoError(t, err)
	assert.False(t, rule.IsActive)
	assert.Nil(t, rule.Pattern.EndDate)

	added, err := b.PopulateForMonth(2025, time.April)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, b.Dates())
}
