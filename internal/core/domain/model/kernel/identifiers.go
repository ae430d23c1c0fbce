package kernel

import (
	"strconv"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Identifier validation errors.
var (
	// ErrRobotIDIsRequired is returned when a robot identifier is empty.
	ErrRobotIDIsRequired = errs.NewValueIsRequiredError("robotID")
	// ErrShelfIDIsRequired is returned when a shelf identifier is empty.
	ErrShelfIDIsRequired = errs.NewValueIsRequiredError("shelfID")
	// ErrStationIDIsRequired is returned when a station identifier is empty.
	ErrStationIDIsRequired = errs.NewValueIsRequiredError("stationID")
	// ErrItemIDIsInvalid is returned when an item identifier does not use the item_ prefix.
	ErrItemIDIsInvalid = errs.NewValueIsInvalidError("itemID")
)

// RobotID uniquely identifies an AMR within a deployment group (e.g. "AMR-1").
// It is a value object; the empty string is invalid.
type RobotID string

// NewRobotID creates a RobotID from its wire representation.
// Leading and trailing whitespace is trimmed; the result must be non-empty.
func NewRobotID(value string) (RobotID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrRobotIDIsRequired
	}
	return RobotID(value), nil
}

// String returns the wire representation of the robot identifier.
func (id RobotID) String() string {
	return string(id)
}

// ShelfID identifies a storage shelf (e.g. "S1"). The numeric suffix links the
// shelf to its binary command encoding and to the item it stores.
type ShelfID string

// NewShelfID creates a ShelfID from its wire representation.
func NewShelfID(value string) (ShelfID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrShelfIDIsRequired
	}
	return ShelfID(value), nil
}

// ShelfIDFromNumber builds the canonical shelf identifier for a numeric id,
// as carried in the 3-byte command encoding (1 -> "S1").
func ShelfIDFromNumber(n int) ShelfID {
	return ShelfID("S" + strconv.Itoa(n))
}

// String returns the wire representation of the shelf identifier.
func (id ShelfID) String() string {
	return string(id)
}

// Number extracts the numeric portion of the shelf identifier ("S12" -> 12).
// Returns 0 when the identifier carries no digits.
func (id ShelfID) Number() int {
	return ExtractNumber(string(id))
}

// PickLocation returns the location label a robot reports while physically
// picking at this shelf ("S1" -> "SHELF-S1").
func (id ShelfID) PickLocation() string {
	return "SHELF-" + string(id)
}

// StationID identifies a packing station (e.g. "P1"). Stations are the
// exclusively locked resource of the coordinator.
type StationID string

// NewStationID creates a StationID from its wire representation.
func NewStationID(value string) (StationID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrStationIDIsRequired
	}
	return StationID(value), nil
}

// StationIDFromNumber builds the canonical station identifier for a numeric id
// (1 -> "P1").
func StationIDFromNumber(n int) StationID {
	return StationID("P" + strconv.Itoa(n))
}

// String returns the wire representation of the station identifier.
func (id StationID) String() string {
	return string(id)
}

// Number extracts the numeric portion of the station identifier ("P3" -> 3).
// Returns 0 when the identifier carries no digits.
func (id StationID) Number() int {
	return ExtractNumber(string(id))
}

// ItemID identifies a stock-keeping item (e.g. "item_B").
type ItemID string

// NewItemID creates an ItemID from its wire representation.
// Item identifiers must use the "item_" prefix.
func NewItemID(value string) (ItemID, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "item_") {
		return "", ErrItemIDIsInvalid
	}
	return ItemID(value), nil
}

// ItemForShelfNumber derives the item stored on a shelf from the shelf's
// numeric id: shelf S1 stores item_A, S2 stores item_B, and so on.
func ItemForShelfNumber(n int) ItemID {
	if n < 1 {
		n = 1
	}
	return ItemID("item_" + string(rune('A'+(n-1)%26)))
}

// String returns the wire representation of the item identifier.
func (id ItemID) String() string {
	return string(id)
}

// ExtractNumber returns the first run of decimal digits in s as an integer,
// or 0 when s contains none. Used to map identifiers such as "S1" or "P3"
// onto the single-byte fields of the binary command format.
func ExtractNumber(s string) int {
	start := -1
	for i, r := range s {
		isDigit := r >= '0' && r <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start < 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[start:])
	return n
}
