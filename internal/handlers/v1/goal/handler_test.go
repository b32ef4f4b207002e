package goal

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/ledger"
)

type mockGoalService struct {
	mock.Mock
}

func (m *mockGoalService) CreateGoal(ctx context.Context, goal ledger.SavingsGoal) (ledger.SavingsGoal, error) {
	args := m.Called(ctx, goal)
	return args.Get(0).(ledger.SavingsGoal), args.Error(1)
}

func (m *mockGoalService) DeleteGoal(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGoalService) ListGoals(ctx context.Context) ([]ledger.SavingsGoal, error) {
	args := m.Called(ctx)
	goals, _ := args.Get(0).([]ledger.SavingsGoal)
	return goals, args.Error(1)
}

func (m *mockGoalService) Contribute(ctx context.Context, id string, amount decimal.Decimal, on date.Date, fromAccountID string) (ledger.SavingsGoal, error) {
	args := m.Called(ctx, id, amount, on, fromAccountID)
	return args.Get(0).(ledger.SavingsGoal), args.Error(1)
}

func (m *mockGoalService) Progress(ctx context.Context, id string) (ledger.GoalProgress, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.GoalProgress), args.Error(1)
}

var testToday = date.New(2025, 9, 1)

func newTestAPI(t *testing.T, svc *mockGoalService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc, func() date.Date { return testToday }).Register(api)
	return api
}

func TestParseCreateGoalInput(t *testing.T) {
	goal, err := parseCreateGoalInput(&CreateGoalInput{Body: CreateGoalBody{
		Name:         "Vacation",
		TargetAmount: "3000",
		TargetDate:   "2026-06-01",
	}})

	assert.NoError(t, err)
	assert.True(t, goal.CurrentAmount.IsZero())
	if assert.NotNil(t, goal.TargetDate) {
		assert.Equal(t, date.New(2026, 6, 1), *goal.TargetDate)
	}
}

func TestParseCreateGoalInput_BadTargetDate(t *testing.T) {
	_, err := parseCreateGoalInput(&CreateGoalInput{Body: CreateGoalBody{
		Name:         "Vacation",
		TargetAmount: "3000",
		TargetDate:   "June",
	}})
	assert.Error(t, err)
}

func TestHTTP_CreateGoal(t *testing.T) {
	svc := new(mockGoalService)
	svc.On("CreateGoal", mock.Anything, mock.Anything).
		Return(ledger.SavingsGoal{ID: "g1", Name: "Vacation", TargetAmount: decimal.RequireFromString("3000")}, nil)

	resp := newTestAPI(t, svc).Post("/v1/goal", CreateGoalBody{Name: "Vacation", TargetAmount: "3000"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Goal
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "g1", body.ID)
	assert.Equal(t, "0", body.CurrentAmount)
}

func TestHTTP_Contribute(t *testing.T) {
	svc := new(mockGoalService)
	svc.On("Contribute", mock.Anything, "g1", decimal.RequireFromString("200"), testToday, "checking").
		Return(ledger.SavingsGoal{ID: "g1", CurrentAmount: decimal.RequireFromString("700")}, nil)

	resp := newTestAPI(t, svc).Post("/v1/goal/g1/contribution", map[string]string{
		"amount":        "200",
		"fromAccountID": "checking",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Goal
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "700", body.CurrentAmount)
	svc.AssertExpectations(t)
}

func TestHTTP_Contribute_Invalid(t *testing.T) {
	svc := new(mockGoalService)
	svc.On("Contribute", mock.Anything, "g1", mock.Anything, mock.Anything, mock.Anything).
		Return(ledger.SavingsGoal{}, &ledger.ValidationError{Field: "amount", Reason: "must be greater than zero"})

	resp := newTestAPI(t, svc).Post("/v1/goal/g1/contribution", map[string]string{"amount": "-5"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Progress(t *testing.T) {
	svc := new(mockGoalService)
	svc.On("Progress", mock.Anything, "g1").Return(ledger.GoalProgress{
		Current:           decimal.RequireFromString("1200"),
		Target:            decimal.RequireFromString("1000"),
		Remaining:         decimal.Zero,
		Percentage:        decimal.RequireFromString("120"),
		DisplayPercentage: decimal.RequireFromString("100"),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/goal/g1/progress")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Progress
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "120", body.Percentage)
	assert.Equal(t, "100", body.DisplayPercentage)
	assert.Equal(t, "0", body.Remaining)
}

func TestHTTP_DeleteGoal_NotFound(t *testing.T) {
	svc := new(mockGoalService)
	svc.On("DeleteGoal", mock.Anything, "gone").Return(&ledger.NotFoundError{Kind: "savings goal", ID: "gone"})

	assert.Equal(t, http.StatusNotFound, newTestAPI(t, svc).Delete("/v1/goal/gone").Code)
}
