// Package errs provides the typed errors shared by the logistics engine.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrInvalidState, ...) for errors.Is checks
//   - a struct carrying the details (ParamName, ID, Cause, ...)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers classify errors without string matching
//
// Domain packages declare their own rich errors (shipment.InvalidTransitionError,
// vehicle.CapacityExceededError) on top of these.
package errs
