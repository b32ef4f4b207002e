package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// LinkedDebtBody describes the debt created alongside a credit card account.
type LinkedDebtBody struct {
	Name           string `json:"name,omitempty" doc:"Debt name, defaults to the account name"`
	InterestRate   string `json:"interestRate,omitempty" doc:"Annual interest rate in percent"`
	MinimumPayment string `json:"minimumPayment,omitempty" doc:"Minimum monthly payment"`
	DueDate        int    `json:"dueDate,omitempty" minimum:"0" maximum:"31" doc:"Day of month the payment is due"`
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name           string          `json:"name" minLength:"1" doc:"Account name"`
	Type           string          `json:"type" enum:"checking,savings,credit_card,ira,401k,investment,other" doc:"Account type"`
	InitialBalance string          `json:"initialBalance,omitempty" doc:"Balance when the account is opened (e.g. '0' or '1234.56'), defaults to 0"`
	Debt           *LinkedDebtBody `json:"debt,omitempty" doc:"Create a debt linked to this credit card account"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID     string `json:"id" doc:"Created account ID"`
	DebtID string `json:"debtID,omitempty" doc:"Created debt ID, when one was requested"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, account ledger.Account) (ledger.Account, error)
	CreateAccountWithDebt(ctx context.Context, account ledger.Account, debt ledger.Debt) (ledger.Account, ledger.Debt, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account. Credit card accounts may create their linked debt in the same call.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (ledger.Account, *ledger.Debt, error) {
	initialBalance, err := request.AmountOr("initialBalance", input.Body.InitialBalance, decimal.Zero)
	if err != nil {
		return ledger.Account{}, nil, err
	}
	account := ledger.Account{
		Name:           input.Body.Name,
		Type:           ledger.AccountType(input.Body.Type),
		InitialBalance: initialBalance,
	}

	body := input.Body.Debt
	if body == nil {
		return account, nil, nil
	}
	if !account.Type.IsCredit() {
		return ledger.Account{}, nil, huma.NewError(http.StatusBadRequest, "only credit_card accounts can carry a linked debt")
	}
	rate, err := request.OptionalAmount("debt.interestRate", body.InterestRate)
	if err != nil {
		return ledger.Account{}, nil, err
	}
	minimum, err := request.AmountOr("debt.minimumPayment", body.MinimumPayment, decimal.Zero)
	if err != nil {
		return ledger.Account{}, nil, err
	}
	return account, &ledger.Debt{
		Name:           body.Name,
		InterestRate:   rate,
		MinimumPayment: minimum,
		DueDate:        body.DueDate,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	account, debt, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	var resp CreateAccountResponse
	if debt != nil {
		var created ledger.Account
		var createdDebt ledger.Debt
		created, createdDebt, err = h.AccountService.CreateAccountWithDebt(ctx, account, *debt)
		resp = CreateAccountResponse{ID: created.ID, DebtID: createdDebt.ID}
	} else {
		var created ledger.Account
		created, err = h.AccountService.CreateAccount(ctx, account)
		resp = CreateAccountResponse{ID: created.ID}
	}
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, request.Error("failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", resp.ID)
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   resp,
	}, nil
}
