package fleet

import (
	"errors"
	"sort"
	"sync"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/robot"
	"warehouse/internal/pkg/errs"
)

// ErrNoEligibleRobots is returned by a RobotSelector when no robot qualifies.
var ErrNoEligibleRobots = errors.New("no eligible robots")

// statusAssigned is the raw status the coordinator writes into a robot mirror
// optimistically at dispatch time. The next authoritative report overwrites it.
const statusAssigned = "ASSIGNED"

// RobotMirror is the coordinator's best-effort copy of one robot's state plus
// the derived internal lifecycle classification.
type RobotMirror struct {
	ID       kernel.RobotID
	Location string
	Battery  int
	Status   string
	Internal InternalState
}

// ShelfMirror is the coordinator's read mirror of one shelf. The
// authoritative stock lives in the shelf's reservation engine; this copy may
// run ahead optimistically after a restock intent and is corrected by the
// next shelf status report.
type ShelfMirror struct {
	ID    kernel.ShelfID
	Item  kernel.ItemID
	Stock float64
	Unit  string
}

// Assignment records one committed dispatch. Exactly one assignment may
// exist per robot, and exactly one per locked station.
type Assignment struct {
	Robot    kernel.RobotID
	Station  kernel.StationID
	Shelf    kernel.ShelfID
	Quantity int
	Order    *order.Order
}

// Dispatch is the effect of one successful match: the task to emit, plus the
// number of RESTOCK intents (each for the nominal stock) that must precede it
// because the mirrored stock did not cover the order.
type Dispatch struct {
	Robot    kernel.RobotID
	Shelf    kernel.ShelfID
	Station  kernel.StationID
	Quantity int
	Order    *order.Order

	// Restocks is the number of RESTOCK intents to emit before the task,
	// each for RestockQuantity units.
	Restocks        int
	RestockQuantity int
}

// StallRecovery is the effect of compensating a stalled assignment. RefundShelf
// is empty when no refund is due (the robot stalled before confirming work).
// The order requeue itself happens inside the state; the record reports it.
type StallRecovery struct {
	Robot           kernel.RobotID
	RefundShelf     kernel.ShelfID
	RefundQuantity  int
	RequeuedOrder   *order.Order
	ReleasedStation kernel.StationID
}

// RobotSelector chooses one robot among the eligible candidates. The
// production implementation selects uniformly at random from a seedable
// source; see the services package.
type RobotSelector interface {
	Select(eligible []kernel.RobotID) (kernel.RobotID, error)
}

// Snapshot is a point-in-time view of the world state for logging and the
// read-side API.
type Snapshot struct {
	PendingOrders  int
	NextOrderID    string
	LockedStations []string
	RobotsBusy     int
	Robots         []RobotMirror
	Shelves        []ShelfMirror
}

// State is the coordinator-owned world state. All mutation goes through its
// methods, which serialize internally: the coordinator never processes two
// order-matching attempts concurrently, and message handling interleaves
// safely with the matching tick.
type State struct {
	mu sync.Mutex

	// nominalStock is the quantity added per proactive RESTOCK intent.
	nominalStock int

	robots     map[kernel.RobotID]*RobotMirror
	shelves    map[kernel.ShelfID]*ShelfMirror
	shelfOrder []kernel.ShelfID

	// pending is the order queue: FIFO, except stall compensation
	// re-inserts at the head.
	pending []*order.Order

	lockedStations map[kernel.StationID]struct{}
	assignments    map[kernel.RobotID]*Assignment
}

// NewState creates an empty world state. nominalStock is the per-shelf full
// stock level used for proactive restock intents.
func NewState(nominalStock int) (*State, error) {
	if nominalStock <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("nominalStock", nominalStock, 1, int(^uint(0)>>1))
	}
	return &State{
		nominalStock:   nominalStock,
		robots:         make(map[kernel.RobotID]*RobotMirror),
		shelves:        make(map[kernel.ShelfID]*ShelfMirror),
		lockedStations: make(map[kernel.StationID]struct{}),
		assignments:    make(map[kernel.RobotID]*Assignment),
	}, nil
}

// EnqueueOrder appends an order to the tail of the pending queue.
func (s *State) EnqueueOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, o)
	return nil
}

// PendingOrders returns the current length of the pending queue.
func (s *State) PendingOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// ApplyShelfStatus overwrites the shelf mirror with an authoritative report.
// Unknown shelves are added; insertion order is preserved for matching scans.
func (s *State) ApplyShelfStatus(id kernel.ShelfID, item kernel.ItemID, stock float64, unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.shelves[id]
	if !ok {
		m = &ShelfMirror{ID: id}
		s.shelves[id] = m
		s.shelfOrder = append(s.shelfOrder, id)
	}
	m.Item = item
	m.Stock = stock
	m.Unit = unit
}

// ApplyRobotStatus reconciles one robot status report against the mirror and
// the derived internal state, returning a StallRecovery record when the
// report triggered compensation.
//
// Transitions:
//   - STALLED while ASSIGNED or WORKING compensates the assignment: refund
//     intent if the robot had confirmed work, priority requeue of the order,
//     station unlock, assignment removal - applied together, atomically with
//     respect to the state's serialized processing of this one report.
//   - Any active-task status confirms ASSIGNED into WORKING.
//   - IDLE completes WORKING (releasing the station) and recovers STALLED;
//     both return the robot to FREE.
//
// Duplicate or out-of-order reports are tolerated: a repeated STALLED finds
// the internal state already STALLED and does nothing, a late IDLE for a
// free robot is a plain mirror refresh.
func (s *State) ApplyRobotStatus(id kernel.RobotID, status, location string, battery int) *StallRecovery {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.robots[id]
	if !ok {
		m = &RobotMirror{ID: id, Internal: Free}
		s.robots[id] = m
	}

	var recovery *StallRecovery

	switch {
	case status == robot.StatusStalled:
		if m.Internal == Assigned || m.Internal == Working {
			recovery = s.compensateStall(id, m.Internal)
			m.Internal = Stalled
		}

	case m.Internal == Assigned:
		if isActiveTaskStatus(status) {
			m.Internal = Working
		}

	case m.Internal == Working:
		if status == robot.Idle.String() {
			s.releaseStation(id)
			m.Internal = Free
		}

	case m.Internal == Stalled:
		if status == robot.Idle.String() {
			m.Internal = Free
		}
	}

	m.Status = status
	m.Location = location
	m.Battery = battery

	return recovery
}

// compensateStall applies the three compensations for a stalled assignment.
// Callers hold the lock.
func (s *State) compensateStall(id kernel.RobotID, wasInternal InternalState) *StallRecovery {
	a, ok := s.assignments[id]
	if !ok {
		return nil
	}

	recovery := &StallRecovery{Robot: id, RequeuedOrder: a.Order}

	// Refund only when the robot may already have physically completed the
	// pick; the shelf engine cannot otherwise know whether deduction occurred.
	if wasInternal == Working {
		recovery.RefundShelf = a.Shelf
		recovery.RefundQuantity = a.Quantity
	}

	// Failed work retries before new work.
	if a.Order != nil {
		s.pending = append([]*order.Order{a.Order}, s.pending...)
	}

	if _, locked := s.lockedStations[a.Station]; locked {
		delete(s.lockedStations, a.Station)
		recovery.ReleasedStation = a.Station
	}

	delete(s.assignments, id)
	return recovery
}

// releaseStation unlocks the station held by the robot's assignment, if any,
// and removes the assignment. Callers hold the lock.
func (s *State) releaseStation(id kernel.RobotID) {
	a, ok := s.assignments[id]
	if !ok {
		return
	}
	delete(s.assignments, id)
	delete(s.lockedStations, a.Station)
}

// isActiveTaskStatus reports whether a raw status confirms task execution.
func isActiveTaskStatus(status string) bool {
	switch status {
	case robot.MovingToPick.String(), robot.Picking.String(),
		robot.MovingToDrop.String(), robot.Dropping.String():
		return true
	default:
		return false
	}
}

// MatchOrders runs one matching pass, draining at most as many orders as
// were pending when the call started so that re-appended orders do not cause
// unbounded iteration within one tick. Unmatchable orders return to the tail
// of the queue.
//
// For each matched order the returned Dispatch records the committed effect:
// station locked, assignment created, robot mirror optimistically marked
// ASSIGNED, and mirrored shelf stock optimistically raised when restock
// intents are due. The caller is responsible for publishing the intents.
func (s *State) MatchOrders(selector RobotSelector) []Dispatch {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.pending)
	var dispatches []Dispatch

	for range count {
		o := s.pending[0]
		s.pending = s.pending[1:]

		d, ok := s.tryMatch(o, selector)
		if !ok {
			s.pending = append(s.pending, o)
			continue
		}
		dispatches = append(dispatches, d)
	}

	return dispatches
}

// tryMatch attempts to commit one order. Callers hold the lock.
func (s *State) tryMatch(o *order.Order, selector RobotSelector) (Dispatch, bool) {
	station := o.Station()
	if _, locked := s.lockedStations[station]; locked {
		return Dispatch{}, false
	}

	// First shelf in insertion order whose item matches with stock on the
	// mirror. No further tie-break policy.
	var shelfID kernel.ShelfID
	found := false
	for _, id := range s.shelfOrder {
		m := s.shelves[id]
		if m.Item == o.Item() && m.Stock > 0 {
			shelfID = id
			found = true
			break
		}
	}
	if !found {
		return Dispatch{}, false
	}

	eligible := s.eligibleRobots()
	if len(eligible) == 0 {
		return Dispatch{}, false
	}

	robotID, err := selector.Select(eligible)
	if err != nil {
		return Dispatch{}, false
	}

	// Proactively raise the mirror with restock intents until it covers the
	// order. Short-term inconsistency with the shelf's authoritative count is
	// accepted; the next shelf report corrects the mirror.
	shelfMirror := s.shelves[shelfID]
	restocks := 0
	for shelfMirror.Stock < float64(o.Quantity()) {
		shelfMirror.Stock += float64(s.nominalStock)
		restocks++
	}

	s.lockedStations[station] = struct{}{}
	s.assignments[robotID] = &Assignment{
		Robot:    robotID,
		Station:  station,
		Shelf:    shelfID,
		Quantity: o.Quantity(),
		Order:    o,
	}

	robotMirror := s.robots[robotID]
	robotMirror.Status = statusAssigned
	robotMirror.Internal = Assigned

	return Dispatch{
		Robot:           robotID,
		Shelf:           shelfID,
		Station:         station,
		Quantity:        o.Quantity(),
		Order:           o,
		Restocks:        restocks,
		RestockQuantity: s.nominalStock,
	}, true
}

// eligibleRobots lists robots whose raw status is IDLE and whose internal
// state is FREE, in stable identifier order. Callers hold the lock.
func (s *State) eligibleRobots() []kernel.RobotID {
	var eligible []kernel.RobotID
	for id, m := range s.robots {
		if m.Status == robot.Idle.String() && m.Internal == Free {
			eligible = append(eligible, id)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })
	return eligible
}

// RobotMirror returns a copy of the mirror for one robot.
func (s *State) RobotMirror(id kernel.RobotID) (RobotMirror, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.robots[id]
	if !ok {
		return RobotMirror{}, false
	}
	return *m, true
}

// ShelfMirror returns a copy of the mirror for one shelf.
func (s *State) ShelfMirror(id kernel.ShelfID) (ShelfMirror, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.shelves[id]
	if !ok {
		return ShelfMirror{}, false
	}
	return *m, true
}

// Assignment returns a copy of the active assignment for one robot.
func (s *State) Assignment(id kernel.RobotID) (Assignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return Assignment{}, false
	}
	return *a, true
}

// StationLocked reports whether a station is committed to an assignment.
func (s *State) StationLocked(id kernel.StationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, locked := s.lockedStations[id]
	return locked
}

// Snapshot returns a point-in-time view of the world state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{PendingOrders: len(s.pending)}
	if len(s.pending) > 0 {
		snap.NextOrderID = s.pending[0].ID()
	}

	for station := range s.lockedStations {
		snap.LockedStations = append(snap.LockedStations, station.String())
	}
	sort.Strings(snap.LockedStations)

	var robotIDs []kernel.RobotID
	for id := range s.robots {
		robotIDs = append(robotIDs, id)
	}
	sort.Slice(robotIDs, func(i, j int) bool { return robotIDs[i] < robotIDs[j] })
	for _, id := range robotIDs {
		m := *s.robots[id]
		snap.Robots = append(snap.Robots, m)
		if m.Status != robot.Idle.String() {
			snap.RobotsBusy++
		}
	}

	for _, id := range s.shelfOrder {
		snap.Shelves = append(snap.Shelves, *s.shelves[id])
	}

	return snap
}
