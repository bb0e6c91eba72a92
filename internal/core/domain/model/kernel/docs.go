// Package kernel holds the value objects shared by every logistics aggregate.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Point and Polygon: geographic coordinates and the ray-casting containment test
//     used by zone matching
//   - Load: a weight/volume pair backed by shopspring/decimal so that capacity
//     bookkeeping never accumulates floating point drift
//
// All values are immutable and safe for concurrent use.
package kernel
