package fleet

// InternalState is the coordinator's derived lifecycle classification of a
// robot, distinct from the robot's self-reported raw status.
//
// Reachable transitions:
//
//	FREE ──dispatch──> ASSIGNED ──active status──> WORKING ──IDLE──> FREE
//	ASSIGNED/WORKING ──STALLED status──> STALLED ──IDLE──> FREE
type InternalState int

const (
	// Free means the robot can take a new assignment.
	Free InternalState = iota
	// Assigned means a dispatch was committed but no active status seen yet.
	Assigned
	// Working means the robot confirmed the task with an active status.
	Working
	// Stalled means the robot failed mid-assignment and awaits recovery.
	Stalled
)

// String returns the display name of the internal state.
func (s InternalState) String() string {
	switch s {
	case Free:
		return "FREE"
	case Assigned:
		return "ASSIGNED"
	case Working:
		return "WORKING"
	case Stalled:
		return "STALLED"
	default:
		return "UNKNOWN"
	}
}
