package robot

import (
	"errors"
	"math/rand"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

const (
	// fullBattery is the battery level of a fresh or fully recharged robot.
	fullBattery = 100.0

	// DefaultBatteryDecay is the battery drain per active tick.
	DefaultBatteryDecay = 0.5
	// DefaultLowBatteryThreshold is the minimum battery level for task acceptance.
	DefaultLowBatteryThreshold = 20.0
	// DefaultStallProbability is the per-tick stall chance while moving.
	DefaultStallProbability = 0.05
)

// Domain errors for robot operations.
var (
	// ErrRandIsRequired is returned when constructing a robot without a random source.
	ErrRandIsRequired = errs.NewValueIsRequiredError("rand")
	// ErrRobotIsNotConstructed is returned when using a Robot that bypassed NewRobot.
	ErrRobotIsNotConstructed = errors.New("Robot must be created via NewRobot constructor")
)

// Params configures the physical model of a robot.
type Params struct {
	// BatteryDecay is the battery drain applied each active, non-stalled tick.
	BatteryDecay float64
	// LowBatteryThreshold is the minimum battery for EXECUTE_TASK acceptance.
	LowBatteryThreshold float64
	// StallProbability is the per-tick chance of a mechanical stall while moving.
	StallProbability float64
}

// DefaultParams returns the standard physical model.
func DefaultParams() Params {
	return Params{
		BatteryDecay:        DefaultBatteryDecay,
		LowBatteryThreshold: DefaultLowBatteryThreshold,
		StallProbability:    DefaultStallProbability,
	}
}

// Robot is the AMR aggregate: a task-lifecycle state machine with a battery
// model and randomized stall injection.
//
// Key invariants:
//   - Battery stays within [0, 100]; it decays only on active, non-stalled
//     ticks and resets to 100 when charging completes
//   - The stall flag latches until cleared by ForceCharge
//   - While stalled, timers and battery freeze and the reported status is
//     "STALLED" regardless of the underlying state
//   - Location is a pure function of state (and target shelf while picking)
//
// Robot is not safe for concurrent use; the owning agent must serialize
// command handling and ticks.
type Robot struct {
	// id uniquely identifies the robot on the wire
	id kernel.RobotID
	// state is the current FSM state
	state State
	// location is the reported location label, derived from state
	location string
	// battery is the charge level in percent, tracked fractionally
	battery float64
	// targetShelf and targetStation are the numeric ids of the current task
	targetShelf   int
	targetStation int
	// stateTimer counts ticks spent in the current state
	stateTimer int
	// stalled latches true on simulated mechanical failure
	stalled bool
	// params is the physical model
	params Params
	// rng drives stall injection; injectable for deterministic tests
	rng *rand.Rand
	// guard ensures the robot was properly constructed
	guard guard.ConstructorGuard
}

// NewRobot creates a robot in the IDLE state at the dock with a full battery.
// The random source drives stall injection and must be non-nil; tests pass a
// seeded source to force or forbid stalls deterministically.
func NewRobot(id kernel.RobotID, params Params, rng *rand.Rand) (*Robot, error) {
	r := &Robot{
		state:    Idle,
		location: LocationDock,
		battery:  fullBattery,
		params:   params,
		rng:      rng,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.validateParams(params),
		r.validateRand(rng),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Robot instance was properly constructed through NewRobot.
func (r *Robot) Validate() error {
	if r == nil {
		return ErrRobotIsNotConstructed
	}
	return r.guard.Validate(ErrRobotIsNotConstructed)
}

// ID returns the robot's identifier.
func (r *Robot) ID() kernel.RobotID {
	return r.id
}

// State returns the current FSM state.
func (r *Robot) State() State {
	return r.state
}

// Location returns the currently reported location label.
func (r *Robot) Location() string {
	return r.location
}

// Battery returns the exact battery level.
func (r *Robot) Battery() float64 {
	return r.battery
}

// BatteryPercent returns the battery level as reported on the wire:
// truncated to an integer.
func (r *Robot) BatteryPercent() int {
	return int(r.battery)
}

// Stalled reports whether the stall flag is set.
func (r *Robot) Stalled() bool {
	return r.stalled
}

// ReportedStatus returns the status name published every tick: "STALLED"
// while the stall flag is set, the FSM state name otherwise.
func (r *Robot) ReportedStatus() string {
	if r.stalled {
		return StatusStalled
	}
	return r.state.String()
}

// TargetShelf returns the numeric shelf id of the current task.
func (r *Robot) TargetShelf() int {
	return r.targetShelf
}

// TargetStation returns the numeric station id of the current task.
func (r *Robot) TargetStation() int {
	return r.targetStation
}

// ExecuteTask handles the EXECUTE_TASK command for the given numeric shelf and
// station ids. The command is accepted only when the robot is ready: not
// stalled, battery at or above the low-battery threshold, and currently IDLE.
// An ineligible robot drops the command silently - the command channel is
// one-way, so there is no negative acknowledgment. The return value exists
// for the agent's debug logging only.
func (r *Robot) ExecuteTask(shelfNum, stationNum int) bool {
	if r.stalled {
		return false
	}
	if r.battery < r.params.LowBatteryThreshold {
		return false
	}
	if r.state != Idle {
		return false
	}

	r.targetShelf = shelfNum
	r.targetStation = stationNum
	r.transitionTo(MovingToPick)
	return true
}

// ForceCharge handles the FORCE_CHARGE override: it clears the stall flag
// unconditionally and forces a transition to MOVING_TO_CHARGE regardless of
// the current state. This is the only recovery path for a stalled robot.
func (r *Robot) ForceCharge() {
	r.stalled = false
	r.transitionTo(MovingToCharge)
}

// Tick advances the state machine by one discrete time unit:
//
//  1. Battery decays if the state is active and the robot is not stalled.
//  2. While moving and not already stalled, a uniform random draw below the
//     stall probability latches the stall flag (independent event per tick).
//  3. If stalled, all timer progression stops.
//  4. Otherwise the per-state timer advances and fires the timed transition
//     once the state's duration is reached. Completing CHARGING resets the
//     battery to full.
//
// Returns true if the stall flag latched on this tick.
func (r *Robot) Tick() bool {
	if r.state.IsActive() && !r.stalled {
		r.battery -= r.params.BatteryDecay
		if r.battery < 0 {
			r.battery = 0
		}
	}

	stalledNow := false
	if r.state.IsMoving() && !r.stalled {
		if r.rng.Float64() < r.params.StallProbability {
			r.stalled = true
			stalledNow = true
		}
	}

	if r.stalled {
		return stalledNow
	}

	r.stateTimer++

	if d := r.state.duration(); d > 0 && r.stateTimer >= d {
		completed := r.state
		r.transitionTo(r.state.next())
		if completed == Charging {
			r.battery = fullBattery
		}
	}

	return stalledNow
}

// transitionTo enters a new state, resetting the state timer and deriving the
// reported location.
func (r *Robot) transitionTo(next State) {
	r.state = next
	r.stateTimer = 0

	switch next {
	case Idle:
		r.location = LocationDock
	case MovingToPick, MovingToDrop, MovingToCharge:
		r.location = LocationTransit
	case Picking:
		r.location = kernel.ShelfIDFromNumber(r.targetShelf).PickLocation()
	case Dropping:
		r.location = LocationPackingZone
	case Charging:
		r.location = LocationChargingStation
	}
}

func (r *Robot) setID(id kernel.RobotID) error {
	if id == "" {
		return kernel.ErrRobotIDIsRequired
	}
	r.id = id
	return nil
}

func (r *Robot) validateParams(params Params) error {
	if params.BatteryDecay < 0 {
		return errs.NewValueIsOutOfRangeError("batteryDecay", params.BatteryDecay, 0.0, fullBattery)
	}
	if params.LowBatteryThreshold < 0 || params.LowBatteryThreshold > fullBattery {
		return errs.NewValueIsOutOfRangeError("lowBatteryThreshold", params.LowBatteryThreshold, 0.0, fullBattery)
	}
	if params.StallProbability < 0 || params.StallProbability > 1 {
		return errs.NewValueIsOutOfRangeError("stallProbability", params.StallProbability, 0.0, 1.0)
	}
	return nil
}

func (r *Robot) validateRand(rng *rand.Rand) error {
	if rng == nil {
		return ErrRandIsRequired
	}
	return nil
}
