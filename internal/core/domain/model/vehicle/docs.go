// Package vehicle contains the Vehicle aggregate: static capacity limits,
// mutable usage counters and the derived occupancy status.
//
// Usage only changes through Reserve (dispatch) and Release (delivery or
// cancellation). Reserve refuses any load that would push usage past the
// limits; Release floors usage at zero and reports when it had to.
package vehicle
