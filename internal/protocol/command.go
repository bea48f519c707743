package protocol

import "fmt"

// Mode is an operating mode of the air conditioner. The numeric values are
// the command nibbles the protocol uses on the wire.
type Mode uint8

const (
	ModeCool Mode = 0b0000
	ModeHeat Mode = 0b1100
	ModeAuto Mode = 0b1000
	ModeFan  Mode = 0b0100

	// ModeDehumidify shares a command code with ModeAuto on this remote.
	ModeDehumidify Mode = 0b1000
)

// String returns the lowercase mode name used by the CLI and control server.
func (m Mode) String() string {
	switch m {
	case ModeCool:
		return "cool"
	case ModeHeat:
		return "heat"
	case ModeAuto:
		return "auto"
	case ModeFan:
		return "fan"
	default:
		return fmt.Sprintf("unknown(0b%04b)", uint8(m))
	}
}

// ParseMode converts a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cool":
		return ModeCool, nil
	case "heat":
		return ModeHeat, nil
	case "auto":
		return ModeAuto, nil
	case "fan":
		return ModeFan, nil
	case "dry", "dehumidify":
		return ModeDehumidify, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want cool, heat, auto, fan or dry)", s)
	}
}

// FanLevel selects the fan speed. Meaningful only when the mode is not
// ModeAuto; auto mode forces a fixed fan nibble regardless of this value.
type FanLevel uint8

const (
	FanAuto FanLevel = iota
	FanLow
	FanMedium
	FanHigh
)

// String returns the lowercase fan level name.
func (f FanLevel) String() string {
	switch f {
	case FanAuto:
		return "auto"
	case FanLow:
		return "low"
	case FanMedium:
		return "medium"
	case FanHigh:
		return "high"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFanLevel converts a fan level name to its FanLevel value.
func ParseFanLevel(s string) (FanLevel, error) {
	switch s {
	case "auto":
		return FanAuto, nil
	case "low":
		return FanLow, nil
	case "medium", "med":
		return FanMedium, nil
	case "high":
		return FanHigh, nil
	default:
		return 0, fmt.Errorf("unknown fan level %q (want auto, low, medium or high)", s)
	}
}

// Temperature limits of the remote, in Celsius.
const (
	TempMin = 17
	TempMax = 30
)

// Command is the logical state of the remote control that the application
// mutates before requesting a transmission. Temperature values outside
// [TempMin, TempMax] are not clamped; they encode to a distinct invalid
// marker so a receiver ignores them.
type Command struct {
	Enabled     bool
	Mode        Mode
	Temperature int
	FanLevel    FanLevel
}

// String renders the command for log lines and the TUI status row.
func (c Command) String() string {
	if !c.Enabled {
		return "off"
	}
	if c.Mode == ModeFan {
		return fmt.Sprintf("on mode=fan fan=%s", c.FanLevel)
	}
	return fmt.Sprintf("on mode=%s temp=%dC fan=%s", c.Mode, c.Temperature, c.FanLevel)
}
