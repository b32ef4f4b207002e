package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Totals is income, spending and their difference over a window.
type Totals struct {
	Income   string `json:"income"`
	Spending string `json:"spending"`
	Net      string `json:"net"`
}

func toTotals(t ledger.Totals) Totals {
	return Totals{Income: t.Income.String(), Spending: t.Spending.String(), Net: t.Net.String()}
}

// TotalsResponse holds the totals of the day, its Sunday-started week and its month.
type TotalsResponse struct {
	Date  string `json:"date"`
	Day   Totals `json:"day"`
	Week  Totals `json:"week"`
	Month Totals `json:"month"`
}

// TotalsOutput is the Huma output for totals.
type TotalsOutput struct {
	Body TotalsResponse
}

type totalsReader interface {
	Totals(ctx context.Context, on date.Date) (service.DayTotals, error)
}

// TotalsHandler handles GET /v1/totals/{date}.
type TotalsHandler struct {
	TransactionService totalsReader
}

// NewTotalsHandler creates a new TotalsHandler.
func NewTotalsHandler(svc totalsReader) *TotalsHandler {
	return &TotalsHandler{TransactionService: svc}
}

// Register registers the totals endpoint with the Huma API.
func (h *TotalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-totals",
		Method:      http.MethodGet,
		Path:        "/v1/totals/{date}",
		Summary:     "Get totals",
		Description: "Returns income, spending and net for the day, week and month around a date.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *TotalsHandler) handle(ctx context.Context, input *DayPath) (*TotalsOutput, error) {
	on, err := request.Date("date", input.Date)
	if err != nil {
		return nil, err
	}
	totals, err := h.TransactionService.Totals(ctx, on)
	if err != nil {
		return nil, request.Error("failed to compute totals", err)
	}
	return &TotalsOutput{Body: TotalsResponse{
		Date:  on.String(),
		Day:   toTotals(totals.Day),
		Week:  toTotals(totals.Week),
		Month: toTotals(totals.Month),
	}}, nil
}
