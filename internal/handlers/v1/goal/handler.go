package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// Goal is the API response model for a savings goal.
type Goal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	TargetDate    string `json:"targetDate,omitempty"`
	AccountID     string `json:"accountID,omitempty"`
}

func toGoal(g ledger.SavingsGoal) Goal {
	return Goal{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		TargetDate:    request.FormatDate(g.TargetDate),
		AccountID:     g.AccountID,
	}
}

// CreateGoalBody is the request body for creating a savings goal.
type CreateGoalBody struct {
	Name          string `json:"name" minLength:"1" doc:"Display name"`
	TargetAmount  string `json:"targetAmount" doc:"Amount to save"`
	CurrentAmount string `json:"currentAmount,omitempty" doc:"Amount already saved, defaults to zero"`
	TargetDate    string `json:"targetDate,omitempty" doc:"YYYY-MM-DD date the goal should be reached by"`
	AccountID     string `json:"accountID,omitempty" doc:"Savings account contributions are moved into"`
}

// CreateGoalInput is the Huma input for creating a goal.
type CreateGoalInput struct {
	Body CreateGoalBody
}

// GoalOutput returns one goal.
type GoalOutput struct {
	Status int
	Body   Goal
}

// GoalPath identifies one goal.
type GoalPath struct {
	ID string `path:"id" doc:"Goal ID"`
}

// ListGoalsOutput lists every goal.
type ListGoalsOutput struct {
	Body struct {
		Goals []Goal `json:"goals"`
	}
}

// ContributeInput is the Huma input for adding to a goal.
type ContributeInput struct {
	ID   string `path:"id" doc:"Goal ID"`
	Body struct {
		Amount        string `json:"amount" doc:"Positive contribution"`
		Date          string `json:"date,omitempty" doc:"YYYY-MM-DD date of the transfer, defaults to today"`
		FromAccountID string `json:"fromAccountID,omitempty" doc:"Account the money leaves"`
	}
}

// Progress reports how far a goal is from its target.
type Progress struct {
	Current           string `json:"current"`
	Target            string `json:"target"`
	Remaining         string `json:"remaining"`
	Percentage        string `json:"percentage" doc:"Exact progress, may exceed 100"`
	DisplayPercentage string `json:"displayPercentage" doc:"Progress capped at 100"`
}

// ProgressOutput is the Huma output for goal progress.
type ProgressOutput struct {
	Body Progress
}

// NoContentOutput carries only a status.
type NoContentOutput struct {
	Status int
}

type goalService interface {
	CreateGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error)
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]ledger.SavingsGoal, error)
	Contribute(ctx context.Context, id string, amount decimal.Decimal, on date.Date, fromAccountID string) (ledger.SavingsGoal, error)
	Progress(ctx context.Context, id string) (ledger.GoalProgress, error)
}

// Handler serves the /v1/goal endpoints.
type Handler struct {
	GoalService goalService
	today       func() date.Date
}

// NewHandler creates a new goal Handler. today supplies the default contribution date.
func NewHandler(svc goalService, today func() date.Date) *Handler {
	return &Handler{GoalService: svc, today: today}
}

// Register registers the goal endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal",
		Summary:     "Create savings goal",
		Tags:        []string{"Goals"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        "/v1/goals",
		Summary:     "List savings goals",
		Tags:        []string{"Goals"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "delete-goal",
		Method:      http.MethodDelete,
		Path:        "/v1/goal/{id}",
		Summary:     "Delete savings goal",
		Tags:        []string{"Goals"},
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "contribute-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/contribution",
		Summary:     "Contribute to goal",
		Description: "Adds to a goal. When both accounts are known the money is also moved with a transfer.",
		Tags:        []string{"Goals"},
	}, h.contribute)

	huma.Register(api, huma.Operation{
		OperationID: "get-goal-progress",
		Method:      http.MethodGet,
		Path:        "/v1/goal/{id}/progress",
		Summary:     "Get goal progress",
		Tags:        []string{"Goals"},
	}, h.progress)
}

// parseCreateGoalInput parses and validates the API input.
func parseCreateGoalInput(input *CreateGoalInput) (ledger.SavingsGoal, error) {
	target, err := request.Amount("targetAmount", input.Body.TargetAmount)
	if err != nil {
		return ledger.SavingsGoal{}, err
	}
	current, err := request.AmountOr("currentAmount", input.Body.CurrentAmount, decimal.Zero)
	if err != nil {
		return ledger.SavingsGoal{}, err
	}
	targetDate, err := request.OptionalDate("targetDate", input.Body.TargetDate)
	if err != nil {
		return ledger.SavingsGoal{}, err
	}
	return ledger.SavingsGoal{
		Name:          input.Body.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		AccountID:     input.Body.AccountID,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateGoalInput) (*GoalOutput, error) {
	goal, err := parseCreateGoalInput(input)
	if err != nil {
		return nil, err
	}
	created, err := h.GoalService.CreateGoal(ctx, goal)
	if err != nil {
		return nil, request.Error("failed to create goal", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("goalID", created.ID)
	}
	return &GoalOutput{Status: http.StatusCreated, Body: toGoal(created)}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListGoalsOutput, error) {
	goals, err := h.GoalService.ListGoals(ctx)
	if err != nil {
		return nil, request.Error("failed to list goals", err)
	}
	out := &ListGoalsOutput{}
	out.Body.Goals = make([]Goal, len(goals))
	for i, g := range goals {
		out.Body.Goals[i] = toGoal(g)
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *GoalPath) (*NoContentOutput, error) {
	if err := h.GoalService.DeleteGoal(ctx, input.ID); err != nil {
		return nil, request.Error("failed to delete goal", err)
	}
	return &NoContentOutput{Status: http.StatusNoContent}, nil
}

func (h *Handler) contribute(ctx context.Context, input *ContributeInput) (*GoalOutput, error) {
	amount, err := request.Amount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	on := h.today()
	if input.Body.Date != "" {
		if on, err = request.Date("date", input.Body.Date); err != nil {
			return nil, err
		}
	}
	updated, err := h.GoalService.Contribute(ctx, input.ID, amount, on, input.Body.FromAccountID)
	if err != nil {
		return nil, request.Error("failed to contribute to goal", err)
	}
	return &GoalOutput{Status: http.StatusOK, Body: toGoal(updated)}, nil
}

func (h *Handler) progress(ctx context.Context, input *GoalPath) (*ProgressOutput, error) {
	p, err := h.GoalService.Progress(ctx, input.ID)
	if err != nil {
		return nil, request.Error("failed to compute goal progress", err)
	}
	return &ProgressOutput{Body: Progress{
		Current:           p.Current.String(),
		Target:            p.Target.String(),
		Remaining:         p.Remaining.String(),
		Percentage:        p.Percentage.String(),
		DisplayPercentage: p.DisplayPercentage.String(),
	}}, nil
}
