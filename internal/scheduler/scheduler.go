package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of background work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Entry
}

func New(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  logger.WithField("component", "scheduler"),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler.Start")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler.Stop")
}

// AddJob registers job under a standard five-field expression or a descriptor
// such as "@daily" or "@every 6h".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"schedule": schedule,
		"job":      job.Name(),
	}).Info("Scheduler.AddJob")
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.WithField("job", job.Name()).Info("Scheduler.RunNow")
	return job.Run()
}

func (s *Scheduler) run(job Job) {
	log := s.log.WithField("job", job.Name())
	log.Debug("Scheduler.job.start")
	if err := job.Run(); err != nil {
		log.WithError(err).Error("Scheduler.job.failed")
		return
	}
	log.Debug("Scheduler.job.complete")
}
