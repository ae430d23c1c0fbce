// Package shelf implements the stock-reservation engine of a storage shelf.
//
// The shelf owns the authoritative stock count. Dispatch intents only reserve
// stock: quantities are appended to a FIFO queue and deducted when the
// assigned robot is physically observed picking at the shelf. A robot dwells
// at a location across several ticks and repeats its status, so deduction is
// guarded by a processed set making it exactly-once per visit. A stall of a
// still-pending robot cancels the oldest reservation.
//
// The reservation queue is positional, reflecting dispatch order rather than
// robot identity. With several reservations outstanding at once, a stall can
// therefore cancel a different robot's reservation; see the regression test
// pinning this behavior.
package shelf
