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

// DayPath identifies one date.
type DayPath struct {
	Date string `path:"date" format:"date" doc:"YYYY-MM-DD date"`
}

// TransactionPath identifies one transaction on a date.
type TransactionPath struct {
	Date string `path:"date" format:"date" doc:"YYYY-MM-DD date"`
	ID   string `path:"id" doc:"Transaction ID"`
}

// GetDayOutput is the Huma output for reading a date.
type GetDayOutput struct {
	Body DayBucket
}

// UpdateTransactionBody holds the fields to change. Absent fields are kept.
type UpdateTransactionBody struct {
	Amount              *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Description         *string `json:"description,omitempty" doc:"Description"`
	AccountID           *string `json:"accountID,omitempty" doc:"Account ID"`
	Category            *string `json:"category,omitempty" doc:"Category ID"`
	TransferToAccountID *string `json:"transferToAccountID,omitempty" doc:"Destination account of a transfer"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	TransactionPath
	Body UpdateTransactionBody
}

// TransactionOutput returns a single transaction.
type TransactionOutput struct {
	Body Transaction
}

// DeleteTransactionResponse lists every entry the deletion removed.
type DeleteTransactionResponse struct {
	Removed []Transaction `json:"removed" doc:"Removed transactions, including later instances of a recurring rule"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Body DeleteTransactionResponse
}

// MoveTransactionInput is the Huma input for moving a transaction to another date.
type MoveTransactionInput struct {
	TransactionPath
	Body struct {
		To string `json:"to" format:"date" doc:"YYYY-MM-DD destination date"`
	}
}

// dayService is the interface for the date-scoped transaction operations.
type dayService interface {
	GetDay(ctx context.Context, on date.Date) (ledger.DayBucket, error)
	UpdateTransaction(ctx context.Context, on date.Date, id string, patch ledger.TransactionPatch) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, on date.Date, id string) ([]ledger.Entry, error)
	MoveTransaction(ctx context.Context, from date.Date, id string, to date.Date) (ledger.Transaction, error)
}

// DayHandler handles the /v1/day endpoints.
type DayHandler struct {
	TransactionService dayService
}

// NewDayHandler creates a new DayHandler.
func NewDayHandler(svc dayService) *DayHandler {
	return &DayHandler{TransactionService: svc}
}

// Register registers the date-scoped endpoints with the Huma API.
func (h *DayHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-day",
		Method:      http.MethodGet,
		Path:        "/v1/day/{date}",
		Summary:     "Get day",
		Description: "Returns the income, spending and transfers recorded on a date.",
		Tags:        []string{"Transactions"},
	}, h.getDay)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/day/{date}/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Changes fields of a transaction in place. The type and date cannot change here.",
		Tags:        []string{"Transactions"},
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/day/{date}/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Removes a transaction. Removing a recurring instance also removes the later instances of its rule.",
		Tags:        []string{"Transactions"},
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "move-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/day/{date}/transaction/{id}/move",
		Summary:     "Move transaction",
		Description: "Moves a transaction to another date.",
		Tags:        []string{"Transactions"},
	}, h.move)
}

func (h *DayHandler) getDay(ctx context.Context, input *DayPath) (*GetDayOutput, error) {
	on, err := request.Date("date", input.Date)
	if err != nil {
		return nil, err
	}
	bucket, err := h.TransactionService.GetDay(ctx, on)
	if err != nil {
		return nil, request.Error("failed to read day", err)
	}
	return &GetDayOutput{Body: toDayBucket(on.String(), bucket)}, nil
}

// parseUpdateTransactionInput parses and validates the API input.
func parseUpdateTransactionInput(input *UpdateTransactionInput) (date.Date, ledger.TransactionPatch, error) {
	on, err := request.Date("date", input.Date)
	if err != nil {
		return date.Date{}, ledger.TransactionPatch{}, err
	}
	patch := ledger.TransactionPatch{
		Description:         input.Body.Description,
		AccountID:           input.Body.AccountID,
		Category:            input.Body.Category,
		TransferToAccountID: input.Body.TransferToAccountID,
	}
	if input.Body.Amount != nil {
		amount, err := request.Amount("amount", *input.Body.Amount)
		if err != nil {
			return date.Date{}, ledger.TransactionPatch{}, err
		}
		patch.Amount = &amount
	}
	return on, patch, nil
}

func (h *DayHandler) update(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	on, patch, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}
	updated, err := h.TransactionService.UpdateTransaction(ctx, on, input.ID, patch)
	if err != nil {
		return nil, request.Error("failed to update transaction", err)
	}
	out := toTransaction(updated)
	out.Date = on.String()
	return &TransactionOutput{Body: out}, nil
}

func (h *DayHandler) delete(ctx context.Context, input *TransactionPath) (*DeleteTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	on, err := request.Date("date", input.Date)
	if err != nil {
		return nil, err
	}
	removed, err := h.TransactionService.DeleteTransaction(ctx, on, input.ID)
	if err != nil {
		return nil, request.Error("failed to delete transaction", err)
	}
	if logData != nil {
		logData.AddData("removedCount", len(removed))
	}
	return &DeleteTransactionOutput{Body: DeleteTransactionResponse{Removed: toEntries(removed)}}, nil
}

func (h *DayHandler) move(ctx context.Context, input *MoveTransactionInput) (*TransactionOutput, error) {
	from, err := request.Date("date", input.Date)
	if err != nil {
		return nil, err
	}
	to, err := request.Date("to", input.Body.To)
	if err != nil {
		return nil, err
	}
	moved, err := h.TransactionService.MoveTransaction(ctx, from, input.ID, to)
	if err != nil {
		return nil, request.Error("failed to move transaction", err)
	}
	out := toTransaction(moved)
	out.Date = to.String()
	return &TransactionOutput{Body: out}, nil
}
