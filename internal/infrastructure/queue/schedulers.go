package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"elearn-backend/internal/config"
	"elearn-backend/internal/ordering/job"
	"elearn-backend/internal/shared"
	"elearn-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerCompactPositionsJob()
}

// Nightly position compaction. Deletes leave gaps and legacy rows carry
// position 0; reconciling every scope with no desired order squeezes the
// lists back to dense 1..N during low traffic.
func (s *Scheduler) registerCompactPositionsJob() error {
	payload, err := json.Marshal(job.CompactPositionsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCompactPositions, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.CompactPositionsCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CompactPositions job", err)
		return err
	}

	logger.Info("Registered CompactPositions", map[string]interface{}{
		"cron": s.jobConfig.CompactPositionsCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
