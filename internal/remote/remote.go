// Package remote ties the command model, encoder, and playback engine into
// the surface the CLI, TUI, and control server share.
package remote

import (
	"go.uber.org/zap"

	"github.com/pali/mideair/internal/logging"
	"github.com/pali/mideair/internal/player"
	"github.com/pali/mideair/internal/protocol"
)

// Repeat counts fixed by the protocol: state commands go out twice for
// extra receiver-side checking, deflector moves only once.
const (
	commandRepeats   = 2
	deflectorRepeats = 1
)

// Remote owns the logical remote-control state and the player that emits
// it. Mutate the command via the setters, then call Send.
type Remote struct {
	cmd    protocol.Command
	player *player.Player
}

// New returns a Remote in the power-on default state: 24 C, off, auto mode,
// fan level auto. The player's emitter is already forced off by its
// constructor.
func New(p *player.Player) *Remote {
	r := &Remote{player: p}
	r.Initialize()
	return r
}

// Initialize resets the command model to its defaults.
func (r *Remote) Initialize() {
	r.cmd = protocol.Command{
		Temperature: 24,
		Enabled:     false,
		Mode:        protocol.ModeAuto,
		FanLevel:    protocol.FanAuto,
	}
}

// Command returns a copy of the current command state.
func (r *Remote) Command() protocol.Command {
	return r.cmd
}

// SetCommand replaces the whole command state.
func (r *Remote) SetCommand(c protocol.Command) {
	r.cmd = c
}

// SetEnabled sets the power state.
func (r *Remote) SetEnabled(on bool) {
	r.cmd.Enabled = on
}

// SetMode sets the operating mode.
func (r *Remote) SetMode(m protocol.Mode) {
	r.cmd.Mode = m
}

// SetTemperature sets the target temperature in Celsius. Out-of-range
// values are kept as-is and encode to the invalid marker.
func (r *Remote) SetTemperature(celsius int) {
	r.cmd.Temperature = celsius
}

// SetFanLevel sets the fan speed.
func (r *Remote) SetFanLevel(f protocol.FanLevel) {
	r.cmd.FanLevel = f
}

// Send encodes the current command and starts its transmission. It returns
// player.ErrBusy when a transmission is already in flight; completion is
// observed via Busy.
func (r *Remote) Send() error {
	pkt := protocol.Encode(r.cmd)
	data := pkt.Bytes()
	raw := protocol.Expand(data)

	if err := r.player.Start(raw, commandRepeats); err != nil {
		logging.Warn("Send rejected", zap.Error(err), zap.String("command", r.cmd.String()))
		return err
	}

	logging.LogTransmission("command", raw[:], commandRepeats)
	logging.LogRawBytes("Packet bytes", data[:])
	logging.Debug("Command encoded", zap.String("command", r.cmd.String()))
	return nil
}

// MoveDeflector transmits the fixed deflector-sweep frame, independent of
// the command state.
func (r *Remote) MoveDeflector() error {
	raw := protocol.Expand(protocol.DeflectorFrame())

	if err := r.player.Start(raw, deflectorRepeats); err != nil {
		logging.Warn("Deflector move rejected", zap.Error(err))
		return err
	}

	logging.LogTransmission("deflector", raw[:], deflectorRepeats)
	return nil
}

// Busy reports whether a transmission is in flight.
func (r *Remote) Busy() bool {
	return r.player.Busy()
}
