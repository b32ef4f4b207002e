package statement

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/request"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// Line is one statement line. Negative amounts are spending.
type Line struct {
	Date        string `json:"date" doc:"YYYY-MM-DD date of the line"`
	Amount      string `json:"amount" doc:"Signed decimal amount, negative for spending"`
	Description string `json:"description" doc:"Statement description"`
	Category    string `json:"category,omitempty" doc:"Category ID"`
}

// ImportBody is the request body for importing a statement.
type ImportBody struct {
	AccountID string `json:"accountID" minLength:"1" doc:"Account the lines are recorded against"`
	Lines     []Line `json:"lines" maxItems:"5000" doc:"Statement lines"`
}

// ImportInput is the Huma input for importing a statement.
type ImportInput struct {
	Body ImportBody
}

// Rejection is a line that could not be imported.
type Rejection struct {
	Row    int    `json:"row" doc:"Zero-based index of the line"`
	Line   Line   `json:"line"`
	Reason string `json:"reason"`
}

// ImportResponse summarizes an import.
type ImportResponse struct {
	Added        int         `json:"added"`
	Skipped      int         `json:"skipped"`
	SkippedLines []Line      `json:"skippedLines" doc:"Lines matching an existing transaction"`
	Rejected     []Rejection `json:"rejected"`
}

// ImportOutput is the Huma output for importing a statement.
type ImportOutput struct {
	Body ImportResponse
}

type importer interface {
	Import(ctx context.Context, accountID string, candidates []ledger.ImportCandidate) (ledger.ImportResult, error)
}

// ImportHandler handles POST /v1/import.
type ImportHandler struct {
	ImportService importer
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(svc importer) *ImportHandler {
	return &ImportHandler{ImportService: svc}
}

// Register registers the import endpoint with the Huma API.
func (h *ImportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-statement",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Import statement",
		Description: "Records statement lines on an account, skipping lines that duplicate existing transactions.",
		Tags:        []string{"Import"},
	}, h.handle)
}

// parseImportInput converts lines into candidates. An unparsable amount
// rejects the whole request since its row cannot be reported back faithfully.
func parseImportInput(input *ImportInput) ([]ledger.ImportCandidate, error) {
	candidates := make([]ledger.ImportCandidate, len(input.Body.Lines))
	for i, line := range input.Body.Lines {
		amount, err := request.Amount("amount", line.Amount)
		if err != nil {
			return nil, err
		}
		candidates[i] = ledger.ImportCandidate{
			Date:        line.Date,
			Amount:      amount,
			Description: line.Description,
			Category:    line.Category,
		}
	}
	return candidates, nil
}

func toLine(c ledger.ImportCandidate) Line {
	return Line{Date: c.Date, Amount: c.Amount.String(), Description: c.Description, Category: c.Category}
}

func (h *ImportHandler) handle(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	logData := logging.GetLogData(ctx)
	candidates, err := parseImportInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importMs")
	}
	result, err := h.ImportService.Import(ctx, input.Body.AccountID, candidates)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, request.Error("failed to import statement", err)
	}

	if logData != nil {
		logData.AddData("added", result.Added)
		logData.AddData("skipped", result.Skipped)
	}

	resp := ImportResponse{
		Added:        result.Added,
		Skipped:      result.Skipped,
		SkippedLines: make([]Line, len(result.SkippedItems)),
		Rejected:     make([]Rejection, len(result.Rejected)),
	}
	for i, c := range result.SkippedItems {
		resp.SkippedLines[i] = toLine(c)
	}
	for i, r := range result.Rejected {
		resp.Rejected[i] = Rejection{Row: r.Row, Line: toLine(r.Candidate), Reason: r.Reason}
	}
	return &ImportOutput{Body: resp}, nil
}
