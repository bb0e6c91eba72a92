package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	redispatchJobName         = "redispatch"
	defaultRedispatchBatch    = 50
	defaultRedispatchDeadline = 30 * time.Second
	defaultRedispatchBackoff  = time.Minute
	defaultRedispatchMaxDelay = 30 * time.Minute
)

// RedispatchBackoff spaces out retries of shipments that keep finding no
// vehicle or driver. The delay doubles per failed attempt up to Max.
// Zero values select one minute and thirty minutes.
type RedispatchBackoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (b RedispatchBackoff) withDefaults() RedispatchBackoff {
	if b.Initial <= 0 {
		b.Initial = defaultRedispatchBackoff
	}
	if b.Max < b.Initial {
		b.Max = max(defaultRedispatchMaxDelay, b.Initial)
	}
	return b
}

func (b RedispatchBackoff) delay(attempts int) time.Duration {
	d := b.Initial
	for i := 1; i < attempts && d < b.Max; i++ {
		d *= 2
	}
	return min(d, b.Max)
}

type retryState struct {
	attempts int
	nextAt   time.Time
}

type PendingShipmentLister interface {
	ListPending(ctx context.Context, limit int) ([]*shipment.Shipment, error)
}

type ShipmentDispatchHandler interface {
	Handle(ctx context.Context, command commands.DispatchShipmentCommand) (commands.AssignedShipment, error)
}

// RedispatchJob retries dispatch for the oldest pending shipments.
// Shipments that still find no vehicle or driver stay pending and are backed
// off, so a few stuck shipments cannot take every slot of the batch.
type RedispatchJob struct {
	schedule string
	batch    int
	backoff  RedispatchBackoff
	pending  PendingShipmentLister
	handler  ShipmentDispatchHandler
	metrics  *metrics.JobMetrics
	cron     *cron.Cron
	logger   zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	retries map[kernel.UUID]retryState
}

func NewRedispatchJob(
	schedule string,
	batch int,
	backoff RedispatchBackoff,
	pending PendingShipmentLister,
	handler ShipmentDispatchHandler,
	jobMetrics *metrics.JobMetrics,
	logger zerolog.Logger,
) *RedispatchJob {
	if batch <= 0 {
		batch = defaultRedispatchBatch
	}
	return &RedispatchJob{
		schedule: schedule,
		batch:    batch,
		backoff:  backoff.withDefaults(),
		pending:  pending,
		handler:  handler,
		metrics:  jobMetrics,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "redispatch_job").Logger(),
		now:      time.Now,
		retries:  make(map[kernel.UUID]retryState),
	}
}

// WithClock replaces the clock used for backoff deadlines.
func (j *RedispatchJob) WithClock(now func() time.Time) *RedispatchJob {
	j.now = now
	return j
}

func (j *RedispatchJob) Name() string { return redispatchJobName }

func (j *RedispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRedispatchDeadline)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Int("batch", j.batch).Msg("redispatch job started")
	return nil
}

func (j *RedispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("redispatch job stopped")
}

// RunOnce dispatches one batch and returns how many shipments were assigned.
// Shipments still in backoff are skipped and do not count against the batch.
// The returned error is the listing failure or the first unexpected dispatch failure.
func (j *RedispatchJob) RunOnce(ctx context.Context) (assigned int, err error) {
	started := time.Now()
	defer func() { j.metrics.Observe(redispatchJobName, started, err) }()

	j.mu.Lock()
	defer j.mu.Unlock()

	limit := j.batch + len(j.retries)
	listed, err := j.pending.ListPending(ctx, limit)
	if err != nil {
		j.logger.Error().Err(err).Msg("list pending shipments")
		return 0, err
	}
	now := j.now()
	j.forgetMissing(listed, len(listed) < limit, now)

	attempted, deferred := 0, 0
	for _, s := range listed {
		if attempted == j.batch {
			break
		}
		if ctx.Err() != nil {
			return assigned, ctx.Err()
		}
		if state, ok := j.retries[s.ID()]; ok && now.Before(state.nextAt) {
			deferred++
			continue
		}
		attempted++

		command, cmdErr := commands.NewDispatchShipmentCommand(s.ID(), nil, nil, nil)
		if cmdErr != nil {
			return assigned, cmdErr
		}

		result, dispatchErr := j.handler.Handle(ctx, command)
		switch {
		case dispatchErr == nil:
			assigned++
			delete(j.retries, s.ID())
			j.logger.Info().
				Str("tracking_number", result.TrackingNumber).
				Str("plate", result.Plate).
				Msg("pending shipment dispatched")
		case errors.Is(dispatchErr, services.ErrNoCapacityAvailable),
			errors.Is(dispatchErr, services.ErrNoDriverAvailable):
			state := j.retries[s.ID()]
			state.attempts++
			state.nextAt = now.Add(j.backoff.delay(state.attempts))
			j.retries[s.ID()] = state
			j.logger.Debug().
				Err(dispatchErr).
				Str("tracking_number", s.TrackingNumber()).
				Int("attempts", state.attempts).
				Time("next_attempt", state.nextAt).
				Msg("shipment still pending")
		default:
			j.logger.Warn().Err(dispatchErr).Str("tracking_number", s.TrackingNumber()).Msg("redispatch failed")
			if err == nil {
				err = dispatchErr
			}
		}
	}

	if deferred > 0 {
		j.logger.Debug().Int("deferred", deferred).Msg("pending shipments in backoff")
	}
	return assigned, err
}

// forgetMissing drops backoff state for shipments that are no longer pending.
// Absence only proves that when the listing was complete; otherwise entries
// are kept until they have been idle for a full maximum delay.
func (j *RedispatchJob) forgetMissing(listed []*shipment.Shipment, complete bool, now time.Time) {
	seen := make(map[kernel.UUID]struct{}, len(listed))
	for _, s := range listed {
		seen[s.ID()] = struct{}{}
	}
	for id, state := range j.retries {
		if _, ok := seen[id]; ok {
			continue
		}
		if complete || now.After(state.nextAt.Add(j.backoff.Max)) {
			delete(j.retries, id)
		}
	}
}
