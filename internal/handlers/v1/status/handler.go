package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/finance-tracker/internal/date"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// Clock reports the calendar date the ledger currently treats as today.
type Clock interface {
	Today() date.Date
}

// Response is the body of GET /status.
type Response struct {
	Status string `json:"status"`
	Today  string `json:"today"`
}

type Handler struct {
	clock Clock
}

func NewHandler(clock Clock) Handler {
	return Handler{clock: clock}
}

// Handler answers liveness probes. It reports the ledger's notion of today
// so a probe can tell a clock or timezone misconfiguration apart from an
// outage.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return errors.New("status: method not GET")
	}

	today := h.clock.Today().String()
	logData.AddData("today", today)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Response{Status: "ok", Today: today})
}
