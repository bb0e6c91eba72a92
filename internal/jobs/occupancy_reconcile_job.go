package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	occupancyReconcileJobName = "occupancy_reconcile"
	defaultReconcileDeadline  = time.Minute
)

type OccupancyReconcileHandler interface {
	Handle(ctx context.Context, command commands.ReconcileVehicleOccupancyCommand) (int, error)
}

// OccupancyReconcileJob repairs derived vehicle statuses on a schedule.
type OccupancyReconcileJob struct {
	schedule string
	handler  OccupancyReconcileHandler
	metrics  *metrics.JobMetrics
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewOccupancyReconcileJob(
	schedule string,
	handler OccupancyReconcileHandler,
	jobMetrics *metrics.JobMetrics,
	logger zerolog.Logger,
) *OccupancyReconcileJob {
	return &OccupancyReconcileJob{
		schedule: schedule,
		handler:  handler,
		metrics:  jobMetrics,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "occupancy_reconcile_job").Logger(),
	}
}

func (j *OccupancyReconcileJob) Name() string { return occupancyReconcileJobName }

func (j *OccupancyReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultReconcileDeadline)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("occupancy reconcile job started")
	return nil
}

func (j *OccupancyReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("occupancy reconcile job stopped")
}

func (j *OccupancyReconcileJob) RunOnce(ctx context.Context) (changed int, err error) {
	started := time.Now()
	defer func() { j.metrics.Observe(occupancyReconcileJobName, started, err) }()

	changed, err = j.handler.Handle(ctx, commands.NewReconcileVehicleOccupancyCommand())
	if err != nil {
		j.logger.Error().Err(err).Msg("occupancy reconcile failed")
		return changed, err
	}
	if changed > 0 {
		j.logger.Info().Int("changed", changed).Msg("vehicle statuses repaired")
	}
	return changed, nil
}
