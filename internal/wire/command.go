package wire

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Binary robot command opcodes. Any other value is ignored by the robot.
const (
	// OpExecuteTask starts a pick-and-deliver task for the encoded shelf and station.
	OpExecuteTask byte = 0x01
	// OpForceCharge clears a stall and forces the robot to the charger.
	// Shelf and station fields are ignored and conventionally zero.
	OpForceCharge byte = 0x03
)

// commandSize is the exact length of a binary robot command.
const commandSize = 3

// ErrCommandSize is returned when a command payload is not exactly 3 bytes.
var ErrCommandSize = errs.NewValueIsInvalidError("command payload must be exactly 3 bytes")

// Command is the decoded form of the 3-byte robot command
// [opcode, shelfNum, stationNum].
type Command struct {
	Op      byte
	Shelf   byte
	Station byte
}

// EncodeCommand packs a command into its 3-byte wire form.
func EncodeCommand(op byte, shelf, station int) []byte {
	return []byte{op, byte(shelf), byte(station)}
}

// DecodeCommand parses a binary command payload. Payloads that are not
// exactly 3 bytes are rejected; unknown opcodes are left to the caller,
// which must ignore them.
func DecodeCommand(payload []byte) (Command, error) {
	if len(payload) != commandSize {
		return Command{}, fmt.Errorf("decoding robot command of %d bytes: %w", len(payload), ErrCommandSize)
	}
	return Command{Op: payload[0], Shelf: payload[1], Station: payload[2]}, nil
}
