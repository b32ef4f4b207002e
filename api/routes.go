package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/debt"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/goal"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/recurring"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/statement"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type registrar interface {
	Register(api huma.API)
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service

	server *http.Server
}

func NewRest(logger *logrus.Logger, port string, svc *service.Service) *Rest {
	r := &Rest{Logger: logger, Port: port, Service: svc}
	r.server = &http.Server{
		Addr:              ":" + port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}
	return r
}

// Handler builds the router. /status stays a plain handler so load
// balancers can probe it without going through the API layer.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Service.Transaction)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Finance Tracker API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	today := svc.Transaction.Today
	handlers := []registrar{
		account.NewCreateAccountHandler(svc.Account),
		account.NewListAccountsHandler(svc.Account),
		account.NewDeleteAccountHandler(svc.Account),
		account.NewAccountBalanceHandler(svc.Account),
		account.NewCategoryHandler(svc.Account),
		transaction.NewCreateTransactionHandler(svc.Transaction),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewDayHandler(svc.Transaction),
		transaction.NewTotalsHandler(svc.Transaction),
		recurring.NewHandler(svc.Recurring),
		debt.NewHandler(svc.Debt, today),
		budget.NewHandler(svc.Budget),
		goal.NewHandler(svc.Goal, today),
		statement.NewImportHandler(svc.Import),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return mux
}

// Serve blocks until the server stops. A server closed by Shutdown is not
// an error.
func (r *Rest) Serve() error {
	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := r.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}

func (r *Rest) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
