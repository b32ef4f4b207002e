package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// CreateRuleBody is the request body for creating a recurring rule.
type CreateRuleBody struct {
	Kind        string      `json:"kind,omitempty" enum:"expense,income" doc:"expense or income, defaults to expense"`
	Pattern     PatternBody `json:"pattern"`
	Amount      string      `json:"amount" doc:"Positive decimal amount"`
	Description string      `json:"description" doc:"Description copied onto each instance"`
	AccountID   string      `json:"accountID,omitempty" doc:"Account the instances are recorded against"`
	Category    string      `json:"category,omitempty" doc:"Category ID"`
	IsActive    *bool       `json:"isActive,omitempty" doc:"Whether the rule generates instances, defaults to true"`
}

// CreateRuleInput is the Huma input for creating a rule.
type CreateRuleInput struct {
	Body CreateRuleBody
}

// RuleOutput returns one rule.
type RuleOutput struct {
	Status int
	Body   Rule
}

// UpdateRuleBody holds the fields to change. Absent fields are kept.
type UpdateRuleBody struct {
	Amount      *string      `json:"amount,omitempty"`
	Description *string      `json:"description,omitempty"`
	AccountID   *string      `json:"accountID,omitempty"`
	Category    *string      `json:"category,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
	Pattern     *PatternBody `json:"pattern,omitempty"`
}

// UpdateRuleInput is the Huma input for updating a rule.
type UpdateRuleInput struct {
	ID   string `path:"id" doc:"Rule ID"`
	Body UpdateRuleBody
}

// RulePath identifies one rule.
type RulePath struct {
	ID string `path:"id" doc:"Rule ID"`
}

// InstancesOutput lists materialized or removed instances.
type InstancesOutput struct {
	Body struct {
		Instances []Instance `json:"instances"`
	}
}

// ListRulesOutput lists every rule.
type ListRulesOutput struct {
	Body struct {
		Rules []Rule `json:"rules"`
	}
}

// PopulateInput selects the month to materialize.
type PopulateInput struct {
	Body struct {
		Year  int `json:"year" minimum:"1" doc:"Calendar year"`
		Month int `json:"month" minimum:"1" maximum:"12" doc:"Calendar month"`
	}
}

// ruleService is the interface for the recurring rule operations.
type ruleService interface {
	CreateRule(ctx context.Context, rule ledger.RecurringRule) (ledger.RecurringRule, error)
	UpdateRule(ctx context.Context, id string, patch ledger.RulePatch) (ledger.RecurringRule, error)
	DeleteRule(ctx context.Context, id string) ([]ledger.Entry, error)
	ListRules(ctx context.Context) ([]ledger.RecurringRule, error)
	PopulateMonth(ctx context.Context, year int, month time.Month) ([]ledger.Entry, error)
}

// Handler serves the /v1/recurring endpoints.
type Handler struct {
	RecurringService ruleService
}

// NewHandler creates a new recurring Handler.
func NewHandler(svc ruleService) *Handler {
	return &Handler{RecurringService: svc}
}

// Register registers the recurring endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-recurring-rule",
		Method:      http.MethodPost,
		Path:        "/v1/recurring",
		Summary:     "Create recurring rule",
		Tags:        []string{"Recurring"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-rules",
		Method:      http.MethodGet,
		Path:        "/v1/recurring",
		Summary:     "List recurring rules",
		Tags:        []string{"Recurring"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "update-recurring-rule",
		Method:      http.MethodPatch,
		Path:        "/v1/recurring/{id}",
		Summary:     "Update recurring rule",
		Description: "Changes a rule and rewrites the instances it already materialized.",
		Tags:        []string{"Recurring"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID: "delete-recurring-rule",
		Method:      http.MethodDelete,
		Path:        "/v1/recurring/{id}",
		Summary:     "Delete recurring rule",
		Description: "Deletes a rule and its instances dated today or later. Past instances are kept.",
		Tags:        []string{"Recurring"},
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "populate-recurring",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/populate",
		Summary:     "Populate month",
		Description: "Materializes the instances every active rule has in a month. Existing instances are never duplicated.",
		Tags:        []string{"Recurring"},
	}, h.populate)
}

// parseCreateRuleInput parses and validates the API input.
func parseCreateRuleInput(input *CreateRuleInput) (ledger.RecurringRule, error) {
	pattern, err := parsePattern(input.Body.Pattern)
	if err != nil {
		return ledger.RecurringRule{}, err
	}
	amount, err := request.Amount("amount", input.Body.Amount)
	if err != nil {
		return ledger.RecurringRule{}, err
	}
	active := true
	if input.Body.IsActive != nil {
		active = *input.Body.IsActive
	}
	return ledger.RecurringRule{
		Kind:        ledger.RuleKind(input.Body.Kind),
		Pattern:     pattern,
		Amount:      amount,
		Description: input.Body.Description,
		AccountID:   input.Body.AccountID,
		Category:    input.Body.Category,
		IsActive:    active,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateRuleInput) (*RuleOutput, error) {
	rule, err := parseCreateRuleInput(input)
	if err != nil {
		return nil, err
	}
	created, err := h.RecurringService.CreateRule(ctx, rule)
	if err != nil {
		return nil, request.Error("failed to create recurring rule", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("ruleID", created.ID)
	}
	return &RuleOutput{Status: http.StatusCreated, Body: toRule(created)}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListRulesOutput, error) {
	rules, err := h.RecurringService.ListRules(ctx)
	if err != nil {
		return nil, request.Error("failed to list recurring rules", err)
	}
	out := &ListRulesOutput{}
	out.Body.Rules = make([]Rule, len(rules))
	for i, r := range rules {
		out.Body.Rules[i] = toRule(r)
	}
	return out, nil
}

// parseUpdateRuleInput parses and validates the API input.
func parseUpdateRuleInput(input *UpdateRuleInput) (ledger.RulePatch, error) {
	patch := ledger.RulePatch{
		Description: input.Body.Description,
		AccountID:   input.Body.AccountID,
		Category:    input.Body.Category,
		IsActive:    input.Body.IsActive,
	}
	if input.Body.Amount != nil {
		amount, err := request.Amount("amount", *input.Body.Amount)
		if err != nil {
			return ledger.RulePatch{}, err
		}
		patch.Amount = &amount
	}
	if input.Body.Pattern != nil {
		pattern, err := parsePattern(*input.Body.Pattern)
		if err != nil {
			return ledger.RulePatch{}, err
		}
		patch.Pattern = &pattern
	}
	return patch, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateRuleInput) (*RuleOutput, error) {
	patch, err := parseUpdateRuleInput(input)
	if err != nil {
		return nil, err
	}
	updated, err := h.RecurringService.UpdateRule(ctx, input.ID, patch)
	if err != nil {
		return nil, request.Error("failed to update recurring rule", err)
	}
	return &RuleOutput{Status: http.StatusOK, Body: toRule(updated)}, nil
}

func (h *Handler) delete(ctx context.Context, input *RulePath) (*InstancesOutput, error) {
	removed, err := h.RecurringService.DeleteRule(ctx, input.ID)
	if err != nil {
		return nil, request.Error("failed to delete recurring rule", err)
	}
	out := &InstancesOutput{}
	out.Body.Instances = toInstances(removed)
	return out, nil
}

func (h *Handler) populate(ctx context.Context, input *PopulateInput) (*InstancesOutput, error) {
	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("populateMs")
	}
	added, err := h.RecurringService.PopulateMonth(ctx, input.Body.Year, time.Month(input.Body.Month))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, request.Error("failed to populate month", err)
	}
	if logData != nil {
		logData.AddData("addedCount", len(added))
	}
	out := &InstancesOutput{}
	out.Body.Instances = toInstances(added)
	return out, nil
}
