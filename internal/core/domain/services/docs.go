// Package services holds the domain services of the dispatch engine: logic
// that spans shipments, vehicles, zones and drivers and so belongs to no
// single aggregate.
//
// The package includes:
//   - ZoneMatcher: resolves a pickup coordinate to the first active zone containing it
//   - CapacityLedger: reserve/release/isAvailable over vehicle usage, with anomaly reporting
//   - ShipmentDispatcher: candidate ranking, driver selection and the in-memory
//     commit of an assignment
//
// Services are pure: loading, locking and persisting aggregates is the
// application layer's job.
package services
