package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
)

// AccountBalanceInput is the Huma input for reading a balance.
type AccountBalanceInput struct {
	ID   string `path:"id" doc:"Account ID"`
	AsOf string `query:"asOf" doc:"YYYY-MM-DD date the balance is computed at the end of, defaults to today"`
}

// AccountBalanceResponse is the response body for reading a balance.
type AccountBalanceResponse struct {
	AccountID string `json:"accountID" doc:"Account ID"`
	AsOf      string `json:"asOf,omitempty" doc:"Date the balance applies to, empty for today"`
	Balance   string `json:"balance" doc:"Decimal balance"`
}

// AccountBalanceOutput is the Huma output for reading a balance.
type AccountBalanceOutput struct {
	Body AccountBalanceResponse
}

type balanceReader interface {
	Balance(ctx context.Context, id string, asOf date.Date) (decimal.Decimal, error)
}

// AccountBalanceHandler handles GET /v1/account/{id}/balance.
type AccountBalanceHandler struct {
	AccountService balanceReader
}

func NewAccountBalanceHandler(svc balanceReader) *AccountBalanceHandler {
	return &AccountBalanceHandler{AccountService: svc}
}

func (h *AccountBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account-balance",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/balance",
		Summary:     "Account balance",
		Description: "Replays the ledger to compute an account balance at the end of a date.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *AccountBalanceHandler) handle(ctx context.Context, input *AccountBalanceInput) (*AccountBalanceOutput, error) {
	var asOf date.Date
	if input.AsOf != "" {
		var err error
		if asOf, err = request.Date("asOf", input.AsOf); err != nil {
			return nil, err
		}
	}

	balance, err := h.AccountService.Balance(ctx, input.ID, asOf)
	if err != nil {
		return nil, request.Error("failed to compute balance", err)
	}
	return &AccountBalanceOutput{Body: AccountBalanceResponse{
		AccountID: input.ID,
		AsOf:      input.AsOf,
		Balance:   balance.String(),
	}}, nil
}
