package robot

// State represents a position in the robot's task-lifecycle state machine.
//
// State transitions:
//
//	IDLE ──EXECUTE_TASK──> MOVING_TO_PICK ──> PICKING ──> MOVING_TO_DROP ──> DROPPING ──> IDLE
//	 any ──FORCE_CHARGE──> MOVING_TO_CHARGE ──> CHARGING ──> IDLE (battery reset)
//
// Timed transitions fire once the per-state tick counter reaches the state's
// duration. The timer freezes while the robot is stalled.
type State int

const (
	// Idle means the robot is docked and ready for a task.
	Idle State = iota
	// MovingToPick means the robot is in transit to its target shelf.
	MovingToPick
	// Picking means the robot is physically picking at its target shelf.
	Picking
	// MovingToDrop means the robot is in transit to the packing zone.
	MovingToDrop
	// Dropping means the robot is delivering at the packing zone.
	Dropping
	// MovingToCharge means the robot is in transit to the charging station.
	MovingToCharge
	// Charging means the robot is recharging at the charging station.
	Charging
)

// State durations in ticks.
const (
	durationMovingToPick   = 3
	durationPicking        = 1
	durationMovingToDrop   = 2
	durationDropping       = 1
	durationMovingToCharge = 2
	durationCharging       = 10
)

// Location labels reported in status messages.
const (
	LocationDock            = "DOCK"
	LocationTransit         = "TRANSIT"
	LocationPackingZone     = "PACKING_ZONE"
	LocationChargingStation = "CHARGING_STATION"
)

// StatusStalled is the status name reported while the stall flag is set,
// regardless of the underlying state.
const StatusStalled = "STALLED"

// String returns the wire status name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case MovingToPick:
		return "MOVING_TO_PICK"
	case Picking:
		return "PICKING"
	case MovingToDrop:
		return "MOVING_TO_DROP"
	case Dropping:
		return "DROPPING"
	case MovingToCharge:
		return "MOVING_TO_CHARGE"
	case Charging:
		return "CHARGING"
	default:
		return "UNKNOWN"
	}
}

// IsActive reports whether the state consumes battery. Idle and Charging do not.
func (s State) IsActive() bool {
	switch s {
	case MovingToPick, Picking, MovingToDrop, Dropping, MovingToCharge:
		return true
	default:
		return false
	}
}

// IsMoving reports whether the state denotes movement. Only moving states are
// subject to stall injection.
func (s State) IsMoving() bool {
	switch s {
	case MovingToPick, MovingToDrop, MovingToCharge:
		return true
	default:
		return false
	}
}

// duration returns the number of ticks the state lasts before its timed
// transition fires, or 0 for states without one.
func (s State) duration() int {
	switch s {
	case MovingToPick:
		return durationMovingToPick
	case Picking:
		return durationPicking
	case MovingToDrop:
		return durationMovingToDrop
	case Dropping:
		return durationDropping
	case MovingToCharge:
		return durationMovingToCharge
	case Charging:
		return durationCharging
	default:
		return 0
	}
}

// next returns the state entered when the timed transition fires.
func (s State) next() State {
	switch s {
	case MovingToPick:
		return Picking
	case Picking:
		return MovingToDrop
	case MovingToDrop:
		return Dropping
	case Dropping:
		return Idle
	case MovingToCharge:
		return Charging
	case Charging:
		return Idle
	default:
		return s
	}
}
