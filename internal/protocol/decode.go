package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrBadComplement reports a frame byte whose successor is not its
	// bitwise complement.
	ErrBadComplement = errors.New("frame byte does not match its complement")
	// ErrBadMagic reports a frame that does not start with the Midea magic
	// byte.
	ErrBadMagic = errors.New("frame does not start with magic byte 0xB2")
)

// Decode validates a 6-byte frame and unpacks it into a Packet. It is the
// inverse of Bytes+Expand and exists for captured-signal inspection and the
// test suite; the transmitter itself never decodes.
func Decode(raw [FrameSize]byte) (Packet, error) {
	for i := 0; i < PacketSize; i++ {
		if raw[2*i+1] != ^raw[2*i] {
			return Packet{}, fmt.Errorf("%w: byte %d is %#02x, byte %d is %#02x",
				ErrBadComplement, 2*i, raw[2*i], 2*i+1, raw[2*i+1])
		}
	}
	if raw[0] != Magic {
		return Packet{}, fmt.Errorf("%w: got %#02x", ErrBadMagic, raw[0])
	}
	return Packet{
		State: raw[2] & 0x0F,
		Fan:   raw[2] >> 4,
		Cmd:   raw[4] & 0x0F,
		Temp:  raw[4] >> 4,
	}, nil
}

// On reports whether the packet's state nibble encodes powered-on.
func (p Packet) On() bool {
	return p.State == stateOn
}

// Temperature converts the temperature nibble back to Celsius. ok is false
// for the none marker and any nibble outside the table. The invalid marker
// shares a nibble with 24 C and reads back as 24 C.
func (p Packet) Temperature() (celsius int, ok bool) {
	for i, n := range temperatureTable {
		if n == p.Temp {
			return TempMin + i, true
		}
	}
	return 0, false
}

// FanLevel converts the fan nibble back to a FanLevel. The alternate
// automatic nibble some units transmit maps to FanAuto. ok is false for
// the power-off nibble and anything unknown.
func (p Packet) FanLevel() (f FanLevel, ok bool) {
	if p.Fan == fanNibbleAutoAlt {
		return FanAuto, true
	}
	for i, n := range fanTable {
		if n == p.Fan {
			return FanLevel(i), true
		}
	}
	return 0, false
}

// Describe renders a decoded packet for the CLI decode command.
func (p Packet) Describe() string {
	if !p.On() {
		return "power off"
	}

	mode := Mode(p.Cmd).String()

	fan := "auto-mode"
	if f, ok := p.FanLevel(); ok {
		fan = f.String()
	}

	// TempInvalid shares a nibble with 24 C in the table, so the Celsius
	// reading wins when both match.
	if p.Temp == TempNone {
		return fmt.Sprintf("power on, mode %s, fan %s, no temperature", mode, fan)
	}
	if t, ok := p.Temperature(); ok {
		return fmt.Sprintf("power on, mode %s, fan %s, %d C", mode, fan, t)
	}
	return fmt.Sprintf("power on, mode %s, fan %s, temp nibble 0b%04b", mode, fan, p.Temp)
}
