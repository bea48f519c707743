package pulse

import (
	"errors"
	"fmt"

	"github.com/pali/mideair/internal/protocol"
)

var (
	// ErrBadStart reports a buffer that does not open with the 8T/8T start
	// condition.
	ErrBadStart = errors.New("missing start condition")
	// ErrBadSlots reports a slot sequence that is not a valid bit encoding.
	ErrBadSlots = errors.New("invalid slot sequence")
)

// Decode recovers the 6 payload bytes from a compiled slot buffer. It
// validates the start condition, every bit gap, and the trailing stop bit.
// Decode is the reference inverse of Compile and backs the round-trip
// checks in the test suite.
func Decode(b *SlotBuffer) ([protocol.FrameSize]byte, error) {
	var raw [protocol.FrameSize]byte

	if b.Len() < startSlots {
		return raw, fmt.Errorf("%w: buffer has %d slots", ErrBadStart, b.Len())
	}
	for i := 0; i < startSlots; i++ {
		if b.Active(i) != (i < startSlots/2) {
			return raw, fmt.Errorf("%w: slot %d", ErrBadStart, i)
		}
	}

	cur := startSlots
	const payloadBits = protocol.FrameSize * 8

	// payloadBits data bits plus the stop bit
	for bit := 0; bit <= payloadBits; bit++ {
		if !b.Active(cur) {
			return raw, fmt.Errorf("%w: expected carrier at slot %d", ErrBadSlots, cur)
		}
		cur++

		gap := 0
		for cur < b.Len() && !b.Active(cur) {
			gap++
			cur++
		}

		if bit == payloadBits {
			// stop bit is a "1" followed by the tail padding
			if gap != 3+tailSlots || cur != b.Len() {
				return raw, fmt.Errorf("%w: bad stop bit (gap %d)", ErrBadSlots, gap)
			}
			break
		}

		switch gap {
		case 1:
			// zero bit, nothing to set
		case 3:
			raw[bit/8] |= 0x80 >> (bit % 8)
		default:
			return raw, fmt.Errorf("%w: bit %d has gap %d", ErrBadSlots, bit, gap)
		}
	}

	return raw, nil
}
