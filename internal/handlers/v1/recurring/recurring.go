package recurring

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// PatternBody describes when a rule fires.
type PatternBody struct {
	Frequency  string `json:"frequency" enum:"daily,weekly,biweekly,monthly,yearly" doc:"How often the rule repeats"`
	DayOfMonth int    `json:"dayOfMonth,omitempty" minimum:"0" maximum:"31" doc:"Day of month for monthly and yearly rules"`
	DayOfWeek  int    `json:"dayOfWeek,omitempty" minimum:"0" maximum:"6" doc:"Day of week for weekly rules, 0 is Sunday"`
	Month      int    `json:"month,omitempty" minimum:"0" maximum:"12" doc:"Month for yearly rules"`
	StartDate  string `json:"startDate,omitempty" doc:"YYYY-MM-DD first date the rule may fire"`
	EndDate    string `json:"endDate,omitempty" doc:"YYYY-MM-DD last date the rule may fire"`
}

func parsePattern(body PatternBody) (ledger.Pattern, error) {
	start, err := request.OptionalDate("startDate", body.StartDate)
	if err != nil {
		return ledger.Pattern{}, err
	}
	end, err := request.OptionalDate("endDate", body.EndDate)
	if err != nil {
		return ledger.Pattern{}, err
	}
	return ledger.Pattern{
		Frequency:  ledger.Frequency(body.Frequency),
		DayOfMonth: body.DayOfMonth,
		DayOfWeek:  time.Weekday(body.DayOfWeek),
		Month:      time.Month(body.Month),
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// Rule is the API response model for a recurring rule.
type Rule struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Pattern     PatternBody `json:"pattern"`
	Amount      string      `json:"amount"`
	Description string      `json:"description"`
	AccountID   string      `json:"accountID,omitempty"`
	Category    string      `json:"category,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   string      `json:"createdAt" format:"date-time"`
}

func toRule(r ledger.RecurringRule) Rule {
	return Rule{
		ID:   r.ID,
		Kind: string(r.Kind),
		Pattern: PatternBody{
			Frequency:  string(r.Pattern.Frequency),
			DayOfMonth: r.Pattern.DayOfMonth,
			DayOfWeek:  int(r.Pattern.DayOfWeek),
			Month:      int(r.Pattern.Month),
			StartDate:  request.FormatDate(r.Pattern.StartDate),
			EndDate:    request.FormatDate(r.Pattern.EndDate),
		},
		Amount:      r.Amount.String(),
		Description: r.Description,
		AccountID:   r.AccountID,
		Category:    r.Category,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// Instance is a transaction a rule materialized or removed.
type Instance struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

func toInstances(entries []ledger.Entry) []Instance {
	out := make([]Instance, len(entries))
	for i, e := range entries {
		out[i] = Instance{ID: e.Transaction.ID, Date: e.Date.String(), Amount: e.Transaction.Amount.String()}
	}
	return out
}
