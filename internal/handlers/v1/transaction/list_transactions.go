package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ListTransactionsCursor is the paging position echoed between requests.
type ListTransactionsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	From   string                  `json:"from" format:"date" doc:"First YYYY-MM-DD date of the range"`
	To     string                  `json:"to" format:"date" doc:"Last YYYY-MM-DD date of the range, inclusive"`
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

type transactionLister interface {
	ListTransactions(ctx context.Context, from, to date.Date, cursor *service.TransactionCursor) ([]ledger.Entry, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a page of the transactions dated within a range, oldest date first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input. A nil
// cursor lets the service pick its default page size.
func parseListTransactionsInput(input *ListTransactionsInput) (from, to date.Date, cursor *service.TransactionCursor, err error) {
	if from, err = request.Date("from", input.Body.From); err != nil {
		return
	}
	if to, err = request.Date("to", input.Body.To); err != nil {
		return
	}
	if to.Before(from) {
		err = huma.NewError(http.StatusBadRequest, "to must not be before from")
		return
	}
	if c := input.Body.Cursor; c != nil {
		if c.Position < 0 {
			err = huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
			return
		}
		cursor = &service.TransactionCursor{Position: c.Position, Limit: c.Limit}
	}
	return
}

func toListCursor(c *service.TransactionCursor) *ListTransactionsCursor {
	if c == nil {
		return nil
	}
	return &ListTransactionsCursor{Position: c.Position, Limit: c.Limit}
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	from, to, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("from", from.String())
		logData.AddData("to", to.String())
		defer logData.AddTiming("listTransactionsMs")()
	}

	entries, nextCursor, err := h.TransactionService.ListTransactions(ctx, from, to, requestCursor)
	if err != nil {
		return nil, request.Error("failed to list transactions", err)
	}
	if logData != nil {
		logData.AddData("transactionCount", len(entries))
	}

	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: toEntries(entries),
		NextCursor:   toListCursor(nextCursor),
	}}, nil
}
