package hal

import (
	"testing"
	"time"

	"github.com/pali/mideair/internal/player"
	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/pulse"
)

func TestSimEmitterRecordsEdges(t *testing.T) {
	e := NewSimEmitter()

	e.Set(false) // no change from the initial level
	e.Set(true)
	e.Set(true) // repeated level, no edge
	e.Set(false)

	if e.Sets() != 4 {
		t.Errorf("Sets() = %d, want 4", e.Sets())
	}
	want := []Edge{{Tick: 1, Level: true}, {Tick: 3, Level: false}}
	edges := e.Edges()
	if len(edges) != len(want) {
		t.Fatalf("Edges() = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
	if e.Level() {
		t.Error("Level() = true after final Set(false)")
	}
}

func TestSimEmitterReset(t *testing.T) {
	e := NewSimEmitter()
	e.Set(true)
	e.Reset()

	if e.Level() || e.Sets() != 0 || len(e.Edges()) != 0 {
		t.Errorf("Reset() left state: level=%v sets=%d edges=%d",
			e.Level(), e.Sets(), len(e.Edges()))
	}
}

func TestBurstGateStopsOnDisable(t *testing.T) {
	g := &BurstGate{}
	g.tick = func() {
		if g.Ticks == 9 {
			g.Disable()
		}
	}

	g.Enable()
	if g.Ticks != 10 {
		t.Errorf("Ticks = %d, want 10", g.Ticks)
	}
}

func TestBurstGatePlaysFullTransmission(t *testing.T) {
	e := NewSimEmitter()
	p := player.New(e)
	g := NewBurstGate(p.Tick)
	p.AttachGate(g)

	cmd := protocol.Command{Enabled: true, Mode: protocol.ModeCool, Temperature: 24}
	raw := protocol.Expand(protocol.Encode(cmd).Bytes())

	if err := p.Start(raw, 2); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	buf := pulse.Compile(raw)
	want := 2 * buf.Len() * player.SubTicksPerSlot
	if g.Ticks != want {
		t.Errorf("Ticks = %d, want %d", g.Ticks, want)
	}
	if p.Busy() {
		t.Error("player busy after burst playback")
	}
	if e.Level() {
		t.Error("emitter left active after playback")
	}
}

func TestBurstGateLimitBoundsRunawayLoop(t *testing.T) {
	g := NewBurstGate(func() {}) // never disables the gate
	g.Enable()
	if g.Ticks != burstTickLimit {
		t.Errorf("Ticks = %d, want limit %d", g.Ticks, burstTickLimit)
	}
}

func TestTickRunnerDisableFromTick(t *testing.T) {
	var r *TickRunner
	ticks := 0
	r = NewTickRunner(time.Microsecond, func() {
		ticks++
		if ticks == 5 {
			r.Disable()
		}
	})

	r.Enable()

	deadline := time.Now().Add(time.Second)
	for r.running.Load() {
		if time.Now().After(deadline) {
			t.Fatal("runner still running")
		}
		time.Sleep(time.Millisecond)
	}
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
}

func TestSimBusCopiesData(t *testing.T) {
	b := &SimBus{}
	buf := []byte{0xAA, 0x55}
	if err := b.Transfer(buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 0 // caller may reuse the buffer

	if len(b.Transfers) != 1 {
		t.Fatalf("Transfers = %d, want 1", len(b.Transfers))
	}
	if got := b.Transfers[0]; got[0] != 0xAA || got[1] != 0x55 {
		t.Errorf("recorded transfer = %v, want [aa 55]", got)
	}
}
