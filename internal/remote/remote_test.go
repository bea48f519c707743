package remote

import (
	"errors"
	"testing"

	"github.com/pali/mideair/internal/player"
	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/pulse"
)

type fakeEmitter struct {
	level bool
}

func (e *fakeEmitter) Set(active bool) { e.level = active }

// countingGate runs the player to completion synchronously and counts the
// ticks it took, so repeat counts are observable from slot arithmetic.
type countingGate struct {
	tick    func()
	enabled bool
	ticks   int
}

func (g *countingGate) Enable() {
	g.enabled = true
	g.ticks = 0
	for g.enabled {
		g.tick()
		g.ticks++
	}
}

func (g *countingGate) Disable() { g.enabled = false }

// idleGate never ticks, so the player stays busy after Start.
type idleGate struct{}

func (idleGate) Enable()  {}
func (idleGate) Disable() {}

func newTestRemote() (*Remote, *countingGate) {
	p := player.New(&fakeEmitter{})
	g := &countingGate{tick: p.Tick}
	p.AttachGate(g)
	return New(p), g
}

func TestInitializeDefaults(t *testing.T) {
	r, _ := newTestRemote()

	want := protocol.Command{
		Temperature: 24,
		Enabled:     false,
		Mode:        protocol.ModeAuto,
		FanLevel:    protocol.FanAuto,
	}
	if got := r.Command(); got != want {
		t.Errorf("Command() after New = %+v, want %+v", got, want)
	}
}

func TestSendRepeatsTwice(t *testing.T) {
	r, g := newTestRemote()
	r.SetCommand(protocol.Command{Enabled: true, Mode: protocol.ModeCool, Temperature: 24})

	raw := protocol.Expand(protocol.Encode(r.Command()).Bytes())
	buf := pulse.Compile(raw)
	slots := buf.Len()

	if err := r.Send(); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	want := 2 * slots * player.SubTicksPerSlot
	if g.ticks != want {
		t.Errorf("Send() took %d ticks, want %d (2 repeats)", g.ticks, want)
	}
	if r.Busy() {
		t.Error("remote busy after synchronous playback")
	}
}

func TestMoveDeflectorRepeatsOnce(t *testing.T) {
	r, g := newTestRemote()

	raw := protocol.Expand(protocol.DeflectorFrame())
	buf := pulse.Compile(raw)
	slots := buf.Len()

	if err := r.MoveDeflector(); err != nil {
		t.Fatalf("MoveDeflector() error = %v", err)
	}

	want := slots * player.SubTicksPerSlot
	if g.ticks != want {
		t.Errorf("MoveDeflector() took %d ticks, want %d (1 repeat)", g.ticks, want)
	}
}

func TestMoveDeflectorIgnoresCommandState(t *testing.T) {
	r, g := newTestRemote()
	r.SetCommand(protocol.Command{Enabled: true, Mode: protocol.ModeHeat, Temperature: 30, FanLevel: protocol.FanHigh})

	if err := r.MoveDeflector(); err != nil {
		t.Fatalf("MoveDeflector() error = %v", err)
	}

	raw := protocol.Expand(protocol.DeflectorFrame())
	buf := pulse.Compile(raw)
	want := buf.Len() * player.SubTicksPerSlot
	if g.ticks != want {
		t.Errorf("MoveDeflector() took %d ticks, want %d regardless of command state", g.ticks, want)
	}
}

func TestSendWhileBusy(t *testing.T) {
	p := player.New(&fakeEmitter{})
	p.AttachGate(idleGate{})
	r := New(p)
	r.SetEnabled(true)

	if err := r.Send(); err != nil {
		t.Fatalf("first Send() error = %v", err)
	}
	if !r.Busy() {
		t.Fatal("remote not busy while gate is idle")
	}
	if err := r.Send(); !errors.Is(err, player.ErrBusy) {
		t.Errorf("second Send() error = %v, want ErrBusy", err)
	}
	if err := r.MoveDeflector(); !errors.Is(err, player.ErrBusy) {
		t.Errorf("MoveDeflector() while busy error = %v, want ErrBusy", err)
	}
}

func TestSetters(t *testing.T) {
	r, _ := newTestRemote()

	r.SetEnabled(true)
	r.SetMode(protocol.ModeHeat)
	r.SetTemperature(28)
	r.SetFanLevel(protocol.FanHigh)

	want := protocol.Command{
		Enabled:     true,
		Mode:        protocol.ModeHeat,
		Temperature: 28,
		FanLevel:    protocol.FanHigh,
	}
	if got := r.Command(); got != want {
		t.Errorf("Command() = %+v, want %+v", got, want)
	}

	r.Initialize()
	if r.Command().Enabled {
		t.Error("Initialize() left the command enabled")
	}
}
