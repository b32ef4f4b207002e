package ledger

import (
	"cmp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
)

// RulePatch holds the fields UpdateRule changes. Amount, Description,
// Category and AccountID propagate to materialized instances.
type RulePatch struct {
	Amount      *decimal.Decimal
	Description *string
	AccountID   *string
	Category    *string
	IsActive    *bool
	Pattern     *Pattern
}

// InstanceID is the deterministic id of the instance of a rule on a date.
func InstanceID(ruleID string, on date.Date) string {
	return ruleID + "-" + on.String()
}

func isInstanceOf(tx Transaction, ruleID string, on date.Date) bool {
	return tx.RecurringID == ruleID || tx.ID == InstanceID(ruleID, on)
}

func validatePattern(p Pattern) error {
	switch p.Frequency {
	case Daily, Biweekly:
	case Weekly:
		if p.DayOfWeek < time.Sunday || p.DayOfWeek > time.Saturday {
			return invalid("pattern.dayOfWeek", "must be 0 (Sunday) to 6 (Saturday)")
		}
	case Monthly:
		if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
			return invalid("pattern.dayOfMonth", "must be 1 to 31")
		}
	case Yearly:
		if p.Month < time.January || p.Month > time.December {
			return invalid("pattern.month", "must be 1 to 12")
		}
		if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
			return invalid("pattern.dayOfMonth", "must be 1 to 31")
		}
	default:
		return invalid("pattern.frequency", "unknown frequency "+string(p.Frequency))
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return invalid("pattern.endDate", "is before the start date")
	}
	return nil
}

func validateRule(r RecurringRule) error {
	if r.Kind != RuleExpense && r.Kind != RuleIncome {
		return invalid("kind", "must be expense or income")
	}
	if !r.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	return validatePattern(r.Pattern)
}

// Occurrences lists the dates a rule fires on within a month, bounded by
// the pattern's start and end dates. The creation cutoff is not applied.
func Occurrences(r RecurringRule, year int, month time.Month) []date.Date {
	p := r.Pattern
	anchor := date.FromTime(r.CreatedAt)
	if p.StartDate != nil {
		anchor = *p.StartDate
	}

	var out []date.Date
	for on := range date.MonthDays(year, month) {
		if p.StartDate != nil && on.Before(*p.StartDate) {
			continue
		}
		if p.EndDate != nil && on.After(*p.EndDate) {
			continue
		}
		if p.firesOn(on, anchor) {
			out = append(out, on)
		}
	}
	return out
}

func (p Pattern) firesOn(on, anchor date.Date) bool {
	switch p.Frequency {
	case Daily:
		return true
	case Weekly:
		return on.Weekday() == p.DayOfWeek
	case Biweekly:
		n := anchor.DaysUntil(on)
		return n >= 0 && n%14 == 0
	case Monthly:
		return on.Day() == clampDay(p.DayOfMonth, on)
	case Yearly:
		return on.Month() == p.Month && on.Day() == clampDay(p.DayOfMonth, on)
	}
	return false
}

// clampDay maps day 31 to the last day of shorter months.
func clampDay(day int, in date.Date) int {
	return min(day, date.DaysIn(in.Year(), in.Month()))
}

// AddRule stores a recurring rule. CreatedAt defaults to now.
func (b *Book) AddRule(r RecurringRule) (RecurringRule, error) {
	if r.Kind == "" {
		r.Kind = RuleExpense
	}
	if err := validateRule(r); err != nil {
		return RecurringRule{}, err
	}
	if err := b.requireAccounts(r.AccountID); err != nil {
		return RecurringRule{}, err
	}
	r.ID = b.id(r.ID)
	if _, ok := b.rules[r.ID]; ok {
		return RecurringRule{}, invalid("id", "already used")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = b.now()
	}
	b.rules[r.ID] = &r
	return r, nil
}

// UpdateRule patches a rule and rewrites its materialized instances. A new
// account is only applied to instances dated on or after that account's
// creation so older instances stay attributed to the account valid then.
// Clearing the account leaves instances untouched.
func (b *Book) UpdateRule(id string, patch RulePatch) (RecurringRule, error) {
	r, ok := b.rules[id]
	if !ok {
		return RecurringRule{}, notFound("recurring rule", id)
	}
	updated := *r
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
	if patch.IsActive != nil {
		updated.IsActive = *patch.IsActive
	}
	if patch.Pattern != nil {
		updated.Pattern = *patch.Pattern
	}
	if err := validateRule(updated); err != nil {
		return RecurringRule{}, err
	}
	accountChanged := updated.AccountID != r.AccountID
	var accountFrom date.Date
	if accountChanged && updated.AccountID != "" {
		account, ok := b.accounts[updated.AccountID]
		if !ok {
			return RecurringRule{}, notFound("account", updated.AccountID)
		}
		accountFrom = date.FromTime(account.CreatedAt)
	}

	touched := []string{r.AccountID, updated.AccountID}
	for on, bucket := range b.days {
		for _, list := range []*[]Transaction{&bucket.Income, &bucket.Spending, &bucket.Transfers} {
			for i := range *list {
				tx := &(*list)[i]
				if tx.RecurringID != id {
					continue
				}
				// Instances can still sit on an earlier account.
				touched = append(touched, tx.AccountID, tx.TransferToAccountID)
				tx.Amount = updated.Amount
				tx.Description = updated.Description
				tx.Category = updated.Category
				if accountChanged && updated.AccountID != "" && !on.Before(accountFrom) {
					tx.AccountID = updated.AccountID
				}
			}
		}
	}

	*r = updated
	b.syncAccounts(touched...)
	return *r, nil
}

// endRule stops a rule after last. A rule that can no longer fire is
// deactivated instead, leaving its pattern valid.
func (b *Book) endRule(id string, last date.Date) {
	r, ok := b.rules[id]
	if !ok {
		return
	}
	if r.Pattern.EndDate != nil && !r.Pattern.EndDate.After(last) {
		return
	}
	first := date.FromTime(r.CreatedAt)
	if r.Pattern.StartDate != nil {
		first = *r.Pattern.StartDate
	}
	if last.Before(first) {
		r.IsActive = false
		return
	}
	r.Pattern.EndDate = &last
}

// DeleteRule removes a rule and its instances dated today or later.
// Earlier instances are history and stay.
func (b *Book) DeleteRule(id string) ([]Entry, error) {
	if _, ok := b.rules[id]; !ok {
		return nil, notFound("recurring rule", id)
	}
	delete(b.rules, id)
	removed := b.removeInstances(id, b.Today())
	b.syncEntries(removed)
	return removed, nil
}

func (b *Book) Rule(id string) (RecurringRule, error) {
	r, ok := b.rules[id]
	if !ok {
		return RecurringRule{}, notFound("recurring rule", id)
	}
	return *r, nil
}

// Rules returns every rule in creation order.
func (b *Book) Rules() []RecurringRule {
	return sortedValues(b.rules, func(x, y RecurringRule) int {
		return cmp.Or(x.CreatedAt.Compare(y.CreatedAt), strings.Compare(x.ID, y.ID))
	})
}

// PopulateForMonth materializes the occurrences of every active rule in the
// month. Occurrences before the later of the rule's creation date and today
// are skipped, as are dates already holding an instance of the rule, so
// repeated calls add nothing new.
func (b *Book) PopulateForMonth(year int, month time.Month) ([]Entry, error) {
	if month < time.January || month > time.December {
		return nil, invalid("month", "must be 1 to 12")
	}
	today := b.Today()

	var added []Entry
	for _, r := range b.Rules() {
		if !r.IsActive {
			continue
		}
		minDate := date.Max(date.FromTime(r.CreatedAt), today)
		for _, on := range Occurrences(r, year, month) {
			if on.Before(minDate) || b.hasInstance(r.ID, on) {
				continue
			}
			tx, err := b.AddTransaction(on, Transaction{
				ID:          InstanceID(r.ID, on),
				Type:        r.Kind.transactionType(),
				Amount:      r.Amount,
				Description: r.Description,
				AccountID:   r.AccountID,
				Category:    r.Category,
				IsRecurring: true,
				RecurringID: r.ID,
			})
			if err != nil {
				return added, err
			}
			added = append(added, Entry{Date: on, Transaction: tx})
		}
	}
	return added, nil
}

func (b *Book) hasInstance(ruleID string, on date.Date) bool {
	bucket, ok := b.days[on]
	if !ok {
		return false
	}
	for _, tx := range bucket.All() {
		if isInstanceOf(tx, ruleID, on) {
			return true
		}
	}
	return false
}

// CleanupPastRecurringInstances removes instances dated before the creation
// date of the rule that generated them. Instances of deleted rules are kept.
func (b *Book) CleanupPastRecurringInstances() []Entry {
	var removed []Entry
	for _, on := range b.sortedDates() {
		for _, tx := range b.days[on].All() {
			if !tx.IsRecurring || tx.RecurringID == "" {
				continue
			}
			r, ok := b.rules[tx.RecurringID]
			if !ok || !on.Before(date.FromTime(r.CreatedAt)) {
				continue
			}
			if gone, ok := b.delete(on, tx.ID); ok {
				removed = append(removed, Entry{Date: on, Transaction: gone})
			}
		}
	}
	b.syncEntries(removed)
	return removed
}
