package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ledger"
)

// Notifier is told after every successful mutation so the snapshot can be
// persisted.
type Notifier interface {
	MarkDirty()
}

type noopNotifier struct{}

func (noopNotifier) MarkDirty() {}

// core serializes access to the book. Reads share the lock; mutations take
// it exclusively and signal the notifier once they succeed.
type core struct {
	mu       sync.RWMutex
	book     *ledger.Book
	notifier Notifier
	logger   *logrus.Logger
}

// exclusive runs fn holding the write lock.
func exclusive[T any](c *core, fn func(b *ledger.Book) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.book)
}

func mutate[T any](c *core, fn func(b *ledger.Book) (T, error)) (T, error) {
	result, err := exclusive(c, fn)
	if err != nil {
		return result, err
	}
	c.notifier.MarkDirty()
	return result, nil
}

func query[T any](c *core, fn func(b *ledger.Book) (T, error)) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.book)
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Recurring   *RecurringService
	Debt        *DebtService
	Budget      *BudgetService
	Goal        *GoalService
	Import      *ImportService

	core *core
}

// NewService creates a new Service over the given book.
func NewService(book *ledger.Book, logger *logrus.Logger) *Service {
	c := &core{book: book, notifier: noopNotifier{}, logger: logger}
	return &Service{
		Account:     &AccountService{core: c},
		Transaction: &TransactionService{core: c},
		Recurring:   &RecurringService{core: c},
		Debt:        &DebtService{core: c},
		Budget:      &BudgetService{core: c},
		Goal:        &GoalService{core: c},
		Import:      &ImportService{core: c},
		core:        c,
	}
}

// SetNotifier replaces the dirty notifier. It must be called before the
// service is shared between goroutines.
func (s *Service) SetNotifier(n Notifier) {
	if n == nil {
		n = noopNotifier{}
	}
	s.core.notifier = n
}

// Snapshot returns a deep copy of the persistent state.
func (s *Service) Snapshot() *ledger.Snapshot {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()
	return s.core.book.Snapshot()
}

// Restore replaces the whole state. It does not mark the state dirty: the
// snapshot came from storage.
func (s *Service) Restore(snapshot *ledger.Snapshot) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.book.Restore(snapshot)
}

// RepairReport summarizes one maintenance pass.
type RepairReport struct {
	RepairedDebts    []string
	RemovedInstances int
	AddedInstances   int
}

func (r RepairReport) changed() bool {
	return len(r.RepairedDebts) > 0 || r.RemovedInstances > 0 || r.AddedInstances > 0
}

// Repair re-derives every debt balance, drops recurring instances dated
// before their rule's creation and populates the current month plus
// monthsAhead following months.
func (s *Service) Repair(ctx context.Context, monthsAhead int) (RepairReport, error) {
	log := s.core.logger.WithContext(ctx)
	start := time.Now()

	report, err := exclusive(s.core, func(book *ledger.Book) (RepairReport, error) {
		report := RepairReport{RepairedDebts: book.SyncAllDebts()}
		report.RemovedInstances = len(book.CleanupPastRecurringInstances())

		month := book.Today().StartOfMonth()
		for i := 0; i <= monthsAhead; i++ {
			target := month.AddMonths(i)
			added, err := book.PopulateForMonth(target.Year(), target.Month())
			report.AddedInstances += len(added)
			if err != nil {
				return report, err
			}
		}
		return report, nil
	})

	if len(report.RepairedDebts) > 0 {
		log.WithField("debtIDs", report.RepairedDebts).Info("DebtService.SyncAll.repaired")
	}
	if report.changed() {
		s.core.notifier.MarkDirty()
	}
	if err != nil {
		log.WithError(err).Error("Service.Repair.populate")
		return report, err
	}

	log.WithFields(logrus.Fields{
		"repairedDebts":    len(report.RepairedDebts),
		"removedInstances": report.RemovedInstances,
		"addedInstances":   report.AddedInstances,
		"durationMs":       time.Since(start).Milliseconds(),
	}).Info("Service.Repair.complete")
	return report, nil
}
