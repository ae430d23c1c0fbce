// Package robot implements the AMR task-lifecycle state machine.
//
// A robot progresses through a fixed cycle of timed states
// (IDLE -> MOVING_TO_PICK -> PICKING -> MOVING_TO_DROP -> DROPPING -> IDLE)
// driven by discrete ticks, with a separate charging branch
// (MOVING_TO_CHARGE -> CHARGING -> IDLE) entered via the FORCE_CHARGE
// override. While in a movement state, each tick carries a configurable
// probability of a simulated mechanical stall. A stalled robot freezes its
// timers and battery and reports the synthetic status "STALLED" until the
// stall is cleared by FORCE_CHARGE - the only recovery path.
//
// The aggregate is mutated exclusively by its own tick and command handlers;
// other actors only ever observe the status it publishes.
package robot
