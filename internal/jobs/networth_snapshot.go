// File: internal/jobs/networth_snapshot.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"thrive_backend/internal/config"
	"thrive_backend/internal/finance"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NetWorthSnapshotJob writes nightly net worth snapshots for every user
// that holds at least one account.
type NetWorthSnapshotJob struct {
	financeService finance.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewNetWorthSnapshotJob creates a new NetWorthSnapshotJob.
func NewNetWorthSnapshotJob(
	financeService finance.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *NetWorthSnapshotJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &NetWorthSnapshotJob{
		financeService: financeService,
		logger:         logger.Named("NetWorthSnapshotJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *NetWorthSnapshotJob) SetupAndStart() error {
	jobSpec := j.cfg.NetWorthSnapshotJobSchedule // e.g., "@daily", "0 1 * * *"
	if jobSpec == "" {
		j.logger.Warn("Net worth snapshot job schedule not defined (NET_WORTH_SNAPSHOT_JOB_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule net worth snapshot job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Net worth snapshot job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *NetWorthSnapshotJob) runJob() {
	j.logger.Info("Starting net worth snapshot job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	written, err := j.financeService.SnapshotAllUsers(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("Net worth snapshot job run failed", zap.Error(err))
	} else {
		j.logger.Info("Net worth snapshot job run completed", zap.Int("snapshots_written", written))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *NetWorthSnapshotJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping net worth snapshot job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Net worth snapshot job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Net worth snapshot job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
