package shelf

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/robot"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
	"warehouse/internal/wire"
)

// refillThresholdRatio triggers replenishment when stock falls below this
// share of the nominal stock.
const refillThresholdRatio = 0.25

// Zone identifiers determining the shelf's reporting unit.
const (
	ZoneStorageA = "storage-a"
	ZoneStorageB = "storage-b"
)

// Units reported in shelf status messages.
const (
	UnitPieces    = "units"
	UnitKilograms = "kg"
)

// Domain errors for shelf operations.
var (
	// ErrZoneIsRequired is returned when attempting to create a shelf without a zone.
	ErrZoneIsRequired = errs.NewValueIsRequiredError("zone")
	// ErrShelfIsNotConstructed is returned when using a Shelf that bypassed NewShelf.
	ErrShelfIsNotConstructed = errors.New("Shelf must be created via NewShelf constructor")
)

// Shelf is the aggregate root for one storage shelf: the authoritative stock
// counter plus the reconciliation state between optimistic reservations and
// physically observed picks.
//
// Key invariants:
//   - Stock never goes negative (clamped at zero on deduction)
//   - At most one deduction per physical robot visit (processed set)
//   - Reservations are consumed strictly in dispatch (FIFO) order
//
// Shelf is not safe for concurrent use; the owning engine serializes message
// handling and publish ticks.
type Shelf struct {
	// id is the shelf's wire identifier (e.g. "S1")
	id kernel.ShelfID
	// zone determines the reporting unit
	zone string
	// item is the stock-keeping item derived from the shelf number
	item kernel.ItemID
	// unit is the wire unit label for this shelf's stock
	unit string
	// nominalStock is the full stock level, restored on replenishment
	nominalStock int
	// stock is the current authoritative stock count
	stock int
	// reservations holds reserved quantities, FIFO by dispatch order
	reservations []int
	// pending tracks robots dispatched here that have not yet picked
	pending map[kernel.RobotID]struct{}
	// processed guards against double deduction while a robot dwells
	processed map[kernel.RobotID]struct{}
	// guard ensures the shelf was properly constructed
	guard guard.ConstructorGuard
}

// NewShelf creates a shelf with full nominal stock. The stored item is
// derived from the shelf's numeric id (S1 stores item_A, S2 item_B, ...) and
// the unit from the zone (storage-b reports kilograms, anything else units).
func NewShelf(id kernel.ShelfID, zone string, nominalStock int) (*Shelf, error) {
	s := &Shelf{
		pending:   make(map[kernel.RobotID]struct{}),
		processed: make(map[kernel.RobotID]struct{}),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setZone(zone),
		s.setNominalStock(nominalStock),
	); err != nil {
		return nil, err
	}

	num := id.Number()
	if num < 1 {
		num = 1
	}
	s.item = kernel.ItemForShelfNumber(num)
	s.unit = UnitPieces
	if zone == ZoneStorageB {
		s.unit = UnitKilograms
	}
	s.stock = nominalStock

	return s, nil
}

// Validate ensures the Shelf instance was properly constructed through NewShelf.
func (s *Shelf) Validate() error {
	if s == nil {
		return ErrShelfIsNotConstructed
	}
	return s.guard.Validate(ErrShelfIsNotConstructed)
}

// ID returns the shelf's identifier.
func (s *Shelf) ID() kernel.ShelfID {
	return s.id
}

// Zone returns the zone the shelf is installed in.
func (s *Shelf) Zone() string {
	return s.zone
}

// Item returns the stock-keeping item this shelf stores.
func (s *Shelf) Item() kernel.ItemID {
	return s.item
}

// Stock returns the current authoritative stock count.
func (s *Shelf) Stock() int {
	return s.stock
}

// NominalStock returns the configured full stock level.
func (s *Shelf) NominalStock() int {
	return s.nominalStock
}

// ReservationCount returns the number of outstanding reservations.
func (s *Shelf) ReservationCount() int {
	return len(s.reservations)
}

// PendingCount returns the number of robots en route that have not picked yet.
func (s *Shelf) PendingCount() int {
	return len(s.pending)
}

// ApplyDispatch reconciles a dispatch intent addressed to this shelf.
//
// RESTOCK adds the quantity directly to stock: immediate and authoritative.
// Any other command is a task dispatch reserving stock for a pickup: the
// quantity joins the FIFO reservation queue and the robot the pending set.
// No stock is deducted at reservation time; deduction waits for the physical
// pick observation.
//
// Intents addressed to other shelves are ignored. Returns true when stock
// changed and a status publication is due.
func (s *Shelf) ApplyDispatch(msg wire.DispatchMessage) bool {
	if msg.TargetShelfID != s.id.String() {
		return false
	}

	if msg.Command == wire.CommandRestock {
		s.stock += msg.Quantity
		return true
	}

	if msg.RobotID != "" {
		s.pending[kernel.RobotID(msg.RobotID)] = struct{}{}
	}
	s.reservations = append(s.reservations, msg.Quantity)
	return false
}

// ApplyRobotStatus reconciles one observed robot status report.
//
// A robot PICKING at this shelf's location consumes the oldest reservation
// and deducts it from stock, floored at zero - exactly once per visit,
// guarded by the processed set, because the robot repeats the same status
// while dwelling. A STALLED report for a still-pending robot cancels the
// oldest reservation (positional compensation). Any other status clears the
// robot from the processed set, so a future revisit deducts again.
//
// Returns true when stock changed and a status publication is due.
func (s *Shelf) ApplyRobotStatus(robotID kernel.RobotID, status, location string) bool {
	if robotID == "" {
		return false
	}

	switch {
	case status == robot.Picking.String() && location == s.id.PickLocation():
		if _, done := s.processed[robotID]; done {
			return false
		}
		deducted := s.deductOldestReservation()
		s.processed[robotID] = struct{}{}
		delete(s.pending, robotID)
		return deducted

	case status == robot.StatusStalled:
		if _, waiting := s.pending[robotID]; waiting {
			delete(s.pending, robotID)
			if len(s.reservations) > 0 {
				s.reservations = s.reservations[1:]
			}
		}
		return false

	default:
		delete(s.processed, robotID)
		return false
	}
}

// deductOldestReservation pops the head of the reservation queue and deducts
// it from stock. Returns false when no reservation was outstanding.
func (s *Shelf) deductOldestReservation() bool {
	if len(s.reservations) == 0 {
		return false
	}
	qty := s.reservations[0]
	s.reservations = s.reservations[1:]

	s.stock -= qty
	if s.stock < 0 {
		s.stock = 0
	}
	return true
}

// LowStock reports whether stock has fallen below the replenishment
// threshold (25% of nominal).
func (s *Shelf) LowStock() bool {
	return float64(s.stock) < float64(s.nominalStock)*refillThresholdRatio
}

// Refill restores the stock to its nominal level, modeling the completion of
// a physical restock cycle.
func (s *Shelf) Refill() {
	s.stock = s.nominalStock
}

// Status returns the shelf's wire status report.
func (s *Shelf) Status() wire.ShelfStatus {
	return wire.ShelfStatus{
		AssetID: s.id.String(),
		Type:    "SHELF",
		ItemID:  s.item.String(),
		Stock:   float64(s.stock),
		Unit:    s.unit,
	}
}

func (s *Shelf) setID(id kernel.ShelfID) error {
	if id == "" {
		return kernel.ErrShelfIDIsRequired
	}
	s.id = id
	return nil
}

func (s *Shelf) setZone(zone string) error {
	if zone == "" {
		return ErrZoneIsRequired
	}
	s.zone = zone
	return nil
}

func (s *Shelf) setNominalStock(nominal int) error {
	if nominal <= 0 {
		return errs.NewValueIsOutOfRangeError("nominalStock", nominal, 1, int(^uint(0)>>1))
	}
	s.nominalStock = nominal
	return nil
}
