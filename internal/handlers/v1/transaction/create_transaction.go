package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Date                string `json:"date,omitempty" format:"date" doc:"YYYY-MM-DD date, defaults to today"`
	Type                string `json:"type" enum:"income,spending,transfer" doc:"Transaction type"`
	Amount              string `json:"amount" doc:"Positive decimal amount"`
	Description         string `json:"description,omitempty" doc:"Description"`
	AccountID           string `json:"accountID,omitempty" doc:"Account ID"`
	Category            string `json:"category,omitempty" doc:"Category ID"`
	TransferToAccountID string `json:"transferToAccountID,omitempty" doc:"Destination account, required for transfers"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID   string `json:"id" doc:"Created transaction ID"`
	Date string `json:"date" doc:"Date the transaction was recorded on"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, on date.Date, tx ledger.Transaction) (ledger.Transaction, error)
	Today() date.Date
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a transaction on a date and re-syncs the debts of the accounts it touches.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input. A zero
// date means the caller did not send one.
func parseCreateTransactionInput(input *CreateTransactionInput) (date.Date, ledger.Transaction, error) {
	var on date.Date
	if input.Body.Date != "" {
		var err error
		if on, err = request.Date("date", input.Body.Date); err != nil {
			return date.Date{}, ledger.Transaction{}, err
		}
	}
	amount, err := request.Amount("amount", input.Body.Amount)
	if err != nil {
		return date.Date{}, ledger.Transaction{}, err
	}
	return on, ledger.Transaction{
		Type:                ledger.TransactionType(input.Body.Type),
		Amount:              amount,
		Description:         input.Body.Description,
		AccountID:           input.Body.AccountID,
		Category:            input.Body.Category,
		TransferToAccountID: input.Body.TransferToAccountID,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	on, tx, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}
	if on.IsZero() {
		on = h.TransactionService.Today()
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, on, tx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, request.Error("failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID)
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: created.ID, Date: on.String()},
	}, nil
}
