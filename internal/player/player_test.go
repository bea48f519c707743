package player

import (
	"errors"
	"testing"

	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/pulse"
)

// fakeEmitter records the driven levels.
type fakeEmitter struct {
	level  bool
	levels []bool
}

func (e *fakeEmitter) Set(active bool) {
	e.level = active
	e.levels = append(e.levels, active)
}

// fakeGate counts enable/disable calls.
type fakeGate struct {
	enables  int
	disables int
}

func (g *fakeGate) Enable()  { g.enables++ }
func (g *fakeGate) Disable() { g.disables++ }

func testFrame() [protocol.FrameSize]byte {
	return protocol.Expand(protocol.Encode(protocol.Command{
		Enabled: true, Mode: protocol.ModeCool, Temperature: 24,
	}).Bytes())
}

func TestNewForcesEmitterOff(t *testing.T) {
	e := &fakeEmitter{level: true}
	p := New(e)

	if e.level {
		t.Error("emitter still active after New")
	}
	if p.Busy() {
		t.Error("new player is busy")
	}
}

func TestStartEnablesGate(t *testing.T) {
	e := &fakeEmitter{}
	g := &fakeGate{}
	p := New(e)
	p.AttachGate(g)

	if err := p.Start(testFrame(), 2); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if g.enables != 1 {
		t.Errorf("gate enables = %d, want 1", g.enables)
	}
	if !p.Busy() {
		t.Error("player not busy after Start")
	}
}

func TestStartWhileBusy(t *testing.T) {
	p := New(&fakeEmitter{})
	p.AttachGate(&fakeGate{})

	if err := p.Start(testFrame(), 2); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if err := p.Start(testFrame(), 1); !errors.Is(err, ErrBusy) {
		t.Errorf("second Start() error = %v, want ErrBusy", err)
	}
}

func TestStartInvalidRepeats(t *testing.T) {
	p := New(&fakeEmitter{})

	for _, repeats := range []int{0, -1, 256} {
		if err := p.Start(testFrame(), repeats); err == nil {
			t.Errorf("Start(repeats=%d) error = nil", repeats)
		}
		if p.Busy() {
			t.Errorf("player busy after rejected Start(repeats=%d)", repeats)
		}
	}
}

func TestTerminationTickCount(t *testing.T) {
	raw := testFrame()
	buf := pulse.Compile(raw)
	slots := buf.Len()

	for _, repeats := range []int{1, 2, 3} {
		e := &fakeEmitter{}
		g := &fakeGate{}
		p := New(e)
		p.AttachGate(g)

		if err := p.Start(raw, repeats); err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		total := repeats * slots * SubTicksPerSlot
		for i := 0; i < total-1; i++ {
			p.Tick()
		}
		if !p.Busy() {
			t.Fatalf("repeats=%d: idle after %d ticks, want playing", repeats, total-1)
		}

		p.Tick()
		if p.Busy() {
			t.Errorf("repeats=%d: still playing after %d ticks", repeats, total)
		}
		if e.level {
			t.Errorf("repeats=%d: emitter active after completion", repeats)
		}
		if g.disables != 1 {
			t.Errorf("repeats=%d: gate disables = %d, want 1", repeats, g.disables)
		}
	}
}

func TestCarrierModulation(t *testing.T) {
	e := &fakeEmitter{}
	p := New(e)
	p.AttachGate(&fakeGate{})

	if err := p.Start(testFrame(), 1); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	e.levels = nil // drop the force-off from New

	// First slot of the start condition is active: the line must alternate
	// on/off at every tick for the whole slot.
	for i := 0; i < SubTicksPerSlot; i++ {
		p.Tick()
	}
	if len(e.levels) != SubTicksPerSlot {
		t.Fatalf("recorded %d levels, want %d", len(e.levels), SubTicksPerSlot)
	}
	for i, level := range e.levels {
		if want := i%2 == 0; level != want {
			t.Errorf("active slot tick %d level = %v, want %v", i, level, want)
		}
	}

	// Skip ahead to the inactive half of the start condition.
	for i := 0; i < 7*SubTicksPerSlot; i++ {
		p.Tick()
	}
	e.levels = nil
	for i := 0; i < SubTicksPerSlot; i++ {
		p.Tick()
	}
	for i, level := range e.levels {
		if level {
			t.Errorf("inactive slot tick %d drove the emitter", i)
		}
	}
}

func TestTickWhileIdle(t *testing.T) {
	e := &fakeEmitter{}
	p := New(e)
	e.levels = nil

	p.Tick()
	p.Tick()

	if len(e.levels) != 0 {
		t.Errorf("idle Tick drove the emitter %d times", len(e.levels))
	}
}
