package debt

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

// CreateDebtBody is the request body for creating a debt.
type CreateDebtBody struct {
	Name            string `json:"name" minLength:"1" doc:"Display name"`
	Type            string `json:"type" enum:"credit_card,loan,mortgage,student_loan,other" doc:"Kind of debt"`
	PrincipalAmount string `json:"principalAmount" doc:"Original amount borrowed"`
	CurrentBalance  string `json:"currentBalance,omitempty" doc:"Amount owed now, defaults to the principal"`
	InterestRate    string `json:"interestRate,omitempty" doc:"Annual interest rate in percent"`
	MinimumPayment  string `json:"minimumPayment,omitempty" doc:"Minimum monthly payment"`
	DueDate         int    `json:"dueDate,omitempty" minimum:"0" maximum:"31" doc:"Day of month the payment is due"`
	AccountID       string `json:"accountID,omitempty" doc:"Credit card account whose balance drives the debt"`
}

// CreateDebtInput is the Huma input for creating a debt.
type CreateDebtInput struct {
	Body CreateDebtBody
}

// DebtOutput returns one debt.
type DebtOutput struct {
	Status int
	Body   Debt
}

// DebtPath identifies one debt.
type DebtPath struct {
	ID string `path:"id" doc:"Debt ID"`
}

// ListDebtsOutput lists every debt.
type ListDebtsOutput struct {
	Body struct {
		Debts []Debt `json:"debts"`
	}
}

// RecordPaymentInput is the Huma input for paying a debt.
type RecordPaymentInput struct {
	ID   string `path:"id" doc:"Debt ID"`
	Body struct {
		Amount        string `json:"amount" doc:"Positive payment amount"`
		Date          string `json:"date,omitempty" doc:"YYYY-MM-DD payment date, defaults to today"`
		FromAccountID string `json:"fromAccountID,omitempty" doc:"Account the payment is drawn from"`
	}
}

// PaymentOutput returns one payment.
type PaymentOutput struct {
	Status int
	Body   Payment
}

// PaymentPath identifies one payment.
type PaymentPath struct {
	ID string `path:"id" doc:"Payment ID"`
}

// ListPaymentsOutput lists the payments of a debt.
type ListPaymentsOutput struct {
	Body struct {
		Payments []Payment `json:"payments"`
	}
}

// NoContentOutput carries only a status.
type NoContentOutput struct {
	Status int
}

// SyncOutput lists the debts whose balance was corrected.
type SyncOutput struct {
	Body struct {
		Repaired []string `json:"repaired"`
	}
}

// debtService is the interface for the debt operations.
type debtService interface {
	CreateDebt(ctx context.Context, debt ledger.Debt) (ledger.Debt, error)
	DeleteDebt(ctx context.Context, id string) error
	GetDebt(ctx context.Context, id string) (ledger.Debt, error)
	ListDebts(ctx context.Context) ([]ledger.Debt, error)
	RecordPayment(ctx context.Context, debtID string, amount decimal.Decimal, on date.Date, fromAccountID string) (ledger.DebtPayment, error)
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, debtID string) ([]ledger.DebtPayment, error)
	SyncDebt(ctx context.Context, id string) (ledger.Debt, error)
	SyncAll(ctx context.Context) []string
}

// Handler serves the /v1/debt endpoints.
type Handler struct {
	DebtService debtService
	today       func() date.Date
}

// NewHandler creates a new debt Handler. today supplies the default payment date.
func NewHandler(svc debtService, today func() date.Date) *Handler {
	return &Handler{DebtService: svc, today: today}
}

// Register registers the debt endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-debt",
		Method:      http.MethodPost,
		Path:        "/v1/debt",
		Summary:     "Create debt",
		Tags:        []string{"Debts"},
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-debts",
		Method:      http.MethodGet,
		Path:        "/v1/debts",
		Summary:     "List debts",
		Tags:        []string{"Debts"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "get-debt",
		Method:      http.MethodGet,
		Path:        "/v1/debt/{id}",
		Summary:     "Get debt",
		Tags:        []string{"Debts"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "delete-debt",
		Method:      http.MethodDelete,
		Path:        "/v1/debt/{id}",
		Summary:     "Delete debt",
		Tags:        []string{"Debts"},
	}, h.delete)

	huma.Register(api, huma.Operation{
		OperationID: "record-debt-payment",
		Method:      http.MethodPost,
		Path:        "/v1/debt/{id}/payment",
		Summary:     "Record payment",
		Description: "Pays down a debt. A debt linked to a credit card account gets a transfer into that account.",
		Tags:        []string{"Debts"},
	}, h.pay)

	huma.Register(api, huma.Operation{
		OperationID: "list-debt-payments",
		Method:      http.MethodGet,
		Path:        "/v1/debt/{id}/payments",
		Summary:     "List payments",
		Tags:        []string{"Debts"},
	}, h.payments)

	huma.Register(api, huma.Operation{
		OperationID: "delete-debt-payment",
		Method:      http.MethodDelete,
		Path:        "/v1/debt/payment/{id}",
		Summary:     "Delete payment",
		Description: "Reverses a payment and removes the transfer it created.",
		Tags:        []string{"Debts"},
	}, h.deletePayment)

	huma.Register(api, huma.Operation{
		OperationID: "sync-debt",
		Method:      http.MethodPost,
		Path:        "/v1/debt/{id}/sync",
		Summary:     "Sync debt",
		Description: "Recomputes one debt balance from its linked account.",
		Tags:        []string{"Debts"},
	}, h.syncOne)

	huma.Register(api, huma.Operation{
		OperationID: "sync-debts",
		Method:      http.MethodPost,
		Path:        "/v1/debts/sync",
		Summary:     "Sync debts",
		Description: "Recomputes every linked debt balance from its account.",
		Tags:        []string{"Debts"},
	}, h.sync)
}

// parseCreateDebtInput parses and validates the API input.
func parseCreateDebtInput(input *CreateDebtInput) (ledger.Debt, error) {
	principal, err := request.Amount("principalAmount", input.Body.PrincipalAmount)
	if err != nil {
		return ledger.Debt{}, err
	}
	current, err := request.AmountOr("currentBalance", input.Body.CurrentBalance, principal)
	if err != nil {
		return ledger.Debt{}, err
	}
	rate, err := request.OptionalAmount("interestRate", input.Body.InterestRate)
	if err != nil {
		return ledger.Debt{}, err
	}
	minimum, err := request.AmountOr("minimumPayment", input.Body.MinimumPayment, decimal.Zero)
	if err != nil {
		return ledger.Debt{}, err
	}
	return ledger.Debt{
		Name:            input.Body.Name,
		Type:            ledger.DebtType(input.Body.Type),
		PrincipalAmount: principal,
		CurrentBalance:  current,
		InterestRate:    rate,
		MinimumPayment:  minimum,
		DueDate:         input.Body.DueDate,
		AccountID:       input.Body.AccountID,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *CreateDebtInput) (*DebtOutput, error) {
	debt, err := parseCreateDebtInput(input)
	if err != nil {
		return nil, err
	}
	created, err := h.DebtService.CreateDebt(ctx, debt)
	if err != nil {
		return nil, request.Error("failed to create debt", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("debtID", created.ID)
	}
	return &DebtOutput{Status: http.StatusCreated, Body: toDebt(created)}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListDebtsOutput, error) {
	debts, err := h.DebtService.ListDebts(ctx)
	if err != nil {
		return nil, request.Error("failed to list debts", err)
	}
	out := &ListDebtsOutput{}
	out.Body.Debts = make([]Debt, len(debts))
	for i, d := range debts {
		out.Body.Debts[i] = toDebt(d)
	}
	return out, nil
}

func (h *Handler) get(ctx context.Context, input *DebtPath) (*DebtOutput, error) {
	debt, err := h.DebtService.GetDebt(ctx, input.ID)
	if err != nil {
		return nil, request.Error("failed to read debt", err)
	}
	return &DebtOutput{Status: http.StatusOK, Body: toDebt(debt)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DebtPath) (*NoContentOutput, error) {
	if err := h.DebtService.DeleteDebt(ctx, input.ID); err != nil {
		return nil, request.Error("failed to delete debt", err)
	}
	return &NoContentOutput{Status: http.StatusNoContent}, nil
}

func (h *Handler) pay(ctx context.Context, input *RecordPaymentInput) (*PaymentOutput, error) {
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
	payment, err := h.DebtService.RecordPayment(ctx, input.ID, amount, on, input.Body.FromAccountID)
	if err != nil {
		return nil, request.Error("failed to record payment", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("paymentID", payment.ID)
	}
	return &PaymentOutput{Status: http.StatusCreated, Body: toPayment(payment)}, nil
}

func (h *Handler) payments(ctx context.Context, input *DebtPath) (*ListPaymentsOutput, error) {
	payments, err := h.DebtService.ListPayments(ctx, input.ID)
	if err != nil {
		return nil, request.Error("failed to list payments", err)
	}
	out := &ListPaymentsOutput{}
	out.Body.Payments = make([]Payment, len(payments))
	for i, p := range payments {
		out.Body.Payments[i] = toPayment(p)
	}
	return out, nil
}

func (h *Handler) deletePayment(ctx context.Context, input *PaymentPath) (*NoContentOutput, error) {
	if err := h.DebtService.DeletePayment(ctx, input.ID); err != nil {
		return nil, request.Error("failed to delete payment", err)
	}
	return &NoContentOutput{Status: http.StatusNoContent}, nil
}

func (h *Handler) syncOne(ctx context.Context, input *DebtPath) (*DebtOutput, error) {
	debt, err := h.DebtService.SyncDebt(ctx, input.ID)
	if err != nil {
		return nil, request.Error("failed to sync debt", err)
	}
	return &DebtOutput{Status: http.StatusOK, Body: toDebt(debt)}, nil
}

func (h *Handler) sync(ctx context.Context, _ *struct{}) (*SyncOutput, error) {
	out := &SyncOutput{}
	out.Body.Repaired = h.DebtService.SyncAll(ctx)
	if out.Body.Repaired == nil {
		out.Body.Repaired = []string{}
	}
	return out, nil
}
