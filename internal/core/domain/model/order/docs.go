// Package order implements the pick-and-deliver order aggregate.
//
// An order asks for a quantity of one item to be delivered to a packing
// station. Orders are created on intake, held in the coordinator's pending
// queue until they can be matched, and cease to exist once dispatched. When a
// robot stalls mid-task the originating order is re-inserted at the head of
// the pending queue so failed work is retried before new work.
package order
