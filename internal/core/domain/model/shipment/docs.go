// Package shipment contains the Shipment aggregate and its lifecycle state machine.
//
// Lifecycle:
//
//	PENDING ──> ASSIGNED ──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED ──> CONFIRMED
//	   │            │
//	   └────────────┴──> CANCELLED
//
// CONFIRMED and CANCELLED are terminal. Every accepted transition stamps the
// matching milestone (once; milestones are never cleared) and yields a
// TransitionEvent for the timeline. Rejected transitions leave the aggregate untouched.
package shipment
