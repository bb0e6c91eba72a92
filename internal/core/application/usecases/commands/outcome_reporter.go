package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

const (
	dispatchModeAuto   = "auto"
	dispatchModeManual = "manual"
)

// outcomeReporter runs the side effects that follow a committed (or
// rejected) assignment. Nothing here can fail the command.
type outcomeReporter struct {
	notifier ports.Notifier
	alerts   ports.AlertRecorder
	metrics  *metrics.DispatchMetrics
	logger   zerolog.Logger
}

func (r outcomeReporter) assigned(ctx context.Context, mode string, actorID *kernel.UUID, a AssignedShipment) {
	r.metrics.ObserveDispatch(mode, metrics.OutcomeAssigned)
	r.metrics.ObserveTransition(shipment.Assigned.String())
	r.logger.Info().
		Str("mode", mode).
		Str("tracking_number", a.TrackingNumber).
		Str("vehicle", a.Plate).
		Str("driver_id", a.DriverID.String()).
		Str("actor_id", actorString(actorID)).
		Msg("shipment assigned")

	r.notify(ctx, ports.Notification{
		UserID:  a.DriverID,
		Kind:    ports.NotificationAssignment,
		Title:   "New Shipment Assigned",
		Message: fmt.Sprintf("Shipment %s assigned to you", a.TrackingNumber),
		At:      a.AssignedAt,
	})
}

// rejected classifies a failed assignment. s may be nil when the shipment
// could not be loaded.
func (r outcomeReporter) rejected(ctx context.Context, mode string, actorID *kernel.UUID, s *shipment.Shipment, err error) {
	now := time.Now().UTC()
	var (
		trackingNumber string
		capacityErr    *vehicle.CapacityExceededError
	)
	if s != nil {
		trackingNumber = s.TrackingNumber()
	}

	switch {
	case errors.Is(err, services.ErrNoCapacityAvailable):
		r.metrics.ObserveDispatch(mode, metrics.OutcomeNoCapacity)
		r.logger.Warn().Str("tracking_number", trackingNumber).Msg("no vehicle with sufficient capacity")
		message := fmt.Sprintf("No vehicle with sufficient capacity for shipment %s", trackingNumber)
		r.alert(ctx, ports.AlertNoCapacity, s, actorID, message, now)
		if actorID != nil {
			r.notify(ctx, ports.Notification{
				UserID:  *actorID,
				Kind:    ports.NotificationOverload,
				Title:   "No Vehicle Available",
				Message: message,
				At:      now,
			})
		}

	case errors.Is(err, services.ErrNoDriverAvailable):
		r.metrics.ObserveDispatch(mode, metrics.OutcomeNoDriver)
		r.logger.Warn().Str("tracking_number", trackingNumber).Msg("no available driver")
		message := fmt.Sprintf("No available driver for shipment %s", trackingNumber)
		r.alert(ctx, ports.AlertNoDriver, s, actorID, message, now)
		if actorID != nil {
			r.notify(ctx, ports.Notification{
				UserID:  *actorID,
				Kind:    ports.NotificationAlert,
				Title:   "No Driver Available",
				Message: message,
				At:      now,
			})
		}

	case errors.As(err, &capacityErr):
		r.metrics.ObserveDispatch(mode, metrics.OutcomeCapacityExceeded)

	case isRejection(err):
		r.metrics.ObserveDispatch(mode, metrics.OutcomeRejected)

	default:
		r.metrics.ObserveDispatch(mode, metrics.OutcomeError)
		r.logger.Error().Err(err).Str("tracking_number", trackingNumber).Msg("dispatch failed")
	}
}

func (r outcomeReporter) notify(ctx context.Context, n ports.Notification) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(ctx, n)
}

func (r outcomeReporter) alert(ctx context.Context, kind ports.AlertKind, s *shipment.Shipment, actorID *kernel.UUID, message string, at time.Time) {
	if r.alerts == nil || s == nil {
		return
	}
	r.alerts.RecordAlert(ctx, ports.SystemAlert{
		Kind:       kind,
		ShipmentID: s.ID(),
		ActorID:    actorID,
		Message:    message,
		At:         at,
	})
}

func actorString(actorID *kernel.UUID) string {
	if actorID == nil {
		return "system"
	}
	return actorID.String()
}

// isRejection reports errors caused by the request or by current state
// rather than by infrastructure.
func isRejection(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrInvalidState) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrUnauthorized) ||
		errors.Is(err, errs.ErrConcurrentModification) ||
		errors.Is(err, shipment.ErrInvalidTransition)
}
