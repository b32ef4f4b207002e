package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryID"`
	Amount     string `json:"amount"`
	Period     string `json:"period"`
	Year       int    `json:"year"`
	Month      int    `json:"month,omitempty"`
}

func toBudget(b ledger.Budget) Budget {
	return Budget{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount.String(),
		Period:     string(b.Period),
		Year:       b.Year,
		Month:      int(b.Month),
	}
}

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	CategoryID string `json:"categoryID" minLength:"1" doc:"Expense category the limit applies to"`
	Amount     string `json:"amount" doc:"Spending limit"`
	Period     string `json:"period" enum:"weekly,monthly,yearly" doc:"Window the limit covers"`
	Year       int    `json:"year" minimum:"1" doc:"Year the budget belongs to"`
	Month      int    `json:"month,omitempty" minimum:"0" maximum:"12" doc:"Month the budget belongs to"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	Body CreateBudgetBody
}

// BudgetOutput returns one budget.
type BudgetOutput struct {
	Status int
	Body   Budget
}

// UpdateBudgetInput is the Huma input for updating a budget.
type UpdateBudgetInput struct {
	ID   string `path:"id" doc:"Budget ID"`
	Body struct {
		Amount *string `json:"amount,omitempty" doc:"Spending limit"`
		Period *string `json:"period,omitempty" enum:"weekly,monthly,yearly" doc:"Window the limit covers"`
	}
}

// BudgetPath identifies one budget.
type BudgetPath struct {
	ID string `path:"id" doc:"Budget ID"`
}

// ListBudgetsOutput lists every budget.
type ListBudgetsOutput struct {
	Body struct {
		Budgets []Budget `json:"budgets"`
	}
}

// StatusInput selects the budget and month to evaluate.
type StatusInput struct {
	ID    string `path:"id" doc:"Budget ID"`
	Year  int    `query:"year" minimum:"1" required:"true" doc:"Calendar year"`
	Month int    `query:"month" minimum:"1" maximum:"12" required:"true" doc:"Calendar month"`
}

// Status is the spending of a budget against its limit.
type Status struct {
	Limit      string `json:"limit"`
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Percentage string `json:"percentage" doc:"Spent as a percentage of the limit, one decimal place"`
	State      string `json:"state" enum:"on-track,at-risk,over"`
}

// StatusOutput is the Huma output for a budget status.
type StatusOutput struct {
	Body Status
}

// NoContentOutput carries only a status.
type NoContentOutput struct {
	Status int
}

type budgetService interface {
	CreateBudget(ctx context.Context, budget ledger.Budget) (ledger.Budget, error)
	UpdateBudget(ctx context.Context, id string, patch ledger.BudgetPatch) (ledger.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]ledger.Budget, error)
	Status(ctx context.Context, id string, year int, month time.Month) (ledger.BudgetStatus, error)
}

// Handler serves the /v1/budget endpoints.
type Handler struct {
	BudgetService budgetService
}

// NewHandler creates a new budget Handler.
func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

// Register registers the budget endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create budget",
		Tags:        []string{"Budgets"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets",
		Tags:        []string{"Budgets"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPatch,
		Path:        "/v1/budget/{id}",
		Summary:     "Update budget",
		Tags:        []string{"Budgets"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID: "delete-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budget/{id}",
		Summary:     "Delete budget",
		Tags:        []string{"Budgets"},
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-status",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}/status",
		Summary:     "Get budget status",
		Description: "Compares spending in the budget's category against its limit for a month.",
		Tags:        []string{"Budgets"},
	}, h.status)
}

// parseCreateBudgetInput parses and validates the API input.
func parseCreateBudgetInput(input *CreateBudgetInput) (ledger.Budget, error) {
	amount, err := request.Amount("amount", input.Body.Amount)
	if err != nil {
		return ledger.Budget{}, err
	}
	return ledger.Budget{
		CategoryID: input.Body.CategoryID,
		Amount:     amount,
		Period:     ledger.Period(input.Body.Period),
		Year:       input.Body.Year,
		Month:      time.Month(input.Body.Month),
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateBudgetInput) (*BudgetOutput, error) {
	budget, err := parseCreateBudgetInput(input)
	if err != nil {
		return nil, err
	}
	created, err := h.BudgetService.CreateBudget(ctx, budget)
	if err != nil {
		return nil, request.Error("failed to create budget", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("budgetID", created.ID)
	}
	return &BudgetOutput{Status: http.StatusCreated, Body: toBudget(created)}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	budgets, err := h.BudgetService.ListBudgets(ctx)
	if err != nil {
		return nil, request.Error("failed to list budgets", err)
	}
	out := &ListBudgetsOutput{}
	out.Body.Budgets = make([]Budget, len(budgets))
	for i, b := range budgets {
		out.Body.Budgets[i] = toBudget(b)
	}
	return out, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateBudgetInput) (*BudgetOutput, error) {
	var patch ledger.BudgetPatch
	if input.Body.Amount != nil {
		amount, err := request.Amount("amount", *input.Body.Amount)
		if err != nil {
			return nil, err
		}
		patch.Amount = &amount
	}
	if input.Body.Period != nil {
		period := ledger.Period(*input.Body.Period)
		patch.Period = &period
	}
	updated, err := h.BudgetService.UpdateBudget(ctx, input.ID, patch)
	if err != nil {
		return nil, request.Error("failed to update budget", err)
	}
	return &BudgetOutput{Status: http.StatusOK, Body: toBudget(updated)}, nil
}

func (h *Handler) delete(ctx context.Context, input *BudgetPath) (*NoContentOutput, error) {
	if err := h.BudgetService.DeleteBudget(ctx, input.ID); err != nil {
		return nil, request.Error("failed to delete budget", err)
	}
	return &NoContentOutput{Status: http.StatusNoContent}, nil
}

func (h *Handler) status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	st, err := h.BudgetService.Status(ctx, input.ID, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, request.Error("failed to compute budget status", err)
	}
	return &StatusOutput{Body: Status{
		Limit:      st.Limit.String(),
		Spent:      st.Spent.String(),
		Remaining:  st.Remaining.String(),
		Percentage: st.Percentage.StringFixed(1),
		State:      string(st.State),
	}}, nil
}
