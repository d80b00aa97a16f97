package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/shared"
	"library-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerAutoExitJob(); err != nil {
		return err
	}

	if err := s.registerOverdueSweepJob(); err != nil {
		return err
	}

	if err := s.registerPurgeAnnouncementsJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Auto-exit open entries (Every minute)
// ================================================
// The gate does not force an exit scan, so students who leave after
// close would stay "inside" forever. Checking every minute keeps the
// occupancy count honest within a minute of closing time.
func (s *Scheduler) registerAutoExitJob() error {
	task := asynq.NewTask(shared.TypeLibraryAutoExit, nil)

	_, err := s.scheduler.Register(
		"* * * * *", // every minute
		task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("failed to register auto-exit job", err)
		return err
	}

	logger.Info("registered auto-exit job: every minute", nil)
	return nil
}

// ================================================
// JOB 2: Overdue fine sweep (Daily at 1 AM)
// ================================================
func (s *Scheduler) registerOverdueSweepJob() error {
	task := asynq.NewTask(shared.TypeOverdueSweep, nil)

	_, err := s.scheduler.Register(
		"0 1 * * *", // daily at 1 AM
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register overdue sweep job", err)
		return err
	}

	logger.Info("registered overdue sweep job: daily at 1 AM", nil)
	return nil
}

// ================================================
// JOB 3: Purge expired announcements (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerPurgeAnnouncementsJob() error {
	task := asynq.NewTask(shared.TypePurgeExpiredAnnouncements, nil)

	_, err := s.scheduler.Register(
		"0 3 * * *", // daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		logger.Error("failed to register announcement purge job", err)
		return err
	}

	logger.Info("registered announcement purge job: daily at 3 AM", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
