package scheduler

import (
	"context"
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

const maintenanceTimeout = time.Minute

type repairer interface {
	Repair(ctx context.Context, monthsAhead int) (service.RepairReport, error)
}

// MaintenanceJob keeps a long-running process consistent across day and
// month boundaries. It re-syncs debts, drops recurring instances dated
// before their rule's creation and materializes the current and next month.
// The server also runs it once at startup.
type MaintenanceJob struct {
	svc repairer
}

func NewMaintenanceJob(svc repairer) *MaintenanceJob {
	return &MaintenanceJob{svc: svc}
}

func (j *MaintenanceJob) Name() string { return "maintenance" }

func (j *MaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()
	_, err := j.svc.Repair(ctx, 1)
	return err
}
