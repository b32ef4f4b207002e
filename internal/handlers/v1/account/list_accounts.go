package account

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

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct{}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"Accounts in creation order"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts with their balances.
type accountLister interface {
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	Balance(ctx context.Context, id string, asOf date.Date) (decimal.Decimal, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every account with its balance as of today.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.AccountService.ListAccounts(ctx)
	if err != nil {
		if stopTimer != nil {
			stopTimer()
		}
		return nil, request.Error("failed to list accounts", err)
	}

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	for i, acc := range accounts {
		balance, err := h.AccountService.Balance(ctx, acc.ID, date.Date{})
		if err != nil {
			return nil, request.Error("failed to compute balance", err)
		}
		resp.Accounts[i] = toAccount(acc)
		resp.Accounts[i].Balance = balance.String()
	}
	if stopTimer != nil {
		stopTimer()
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	return &ListAccountsOutput{Body: resp}, nil
}
