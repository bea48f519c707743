package player

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/pulse"
)

// Carrier timing. One slot (T) is 21 carrier cycles; every carrier cycle
// needs a rising and a falling tick, so a slot spans 42 ticks.
const (
	CarrierHz            = 38000
	TickHz               = 2 * CarrierHz
	CarrierCyclesPerSlot = 21
	SubTicksPerSlot      = 2 * CarrierCyclesPerSlot
)

// TickInterval is the period of the tick source (one carrier half-period).
const TickInterval = time.Second / TickHz

// ErrBusy is returned by Start while a transmission is in flight.
var ErrBusy = errors.New("transmission already in progress")

// Emitter is the single digital output line driving the IR LED. Set(true)
// forward-biases the emitter; polarity mapping is the implementation's
// concern.
type Emitter interface {
	Set(active bool)
}

// TimerGate enables and disables the periodic tick source. These are the
// only two operations the player needs from it.
type TimerGate interface {
	Enable()
	Disable()
}

// nopGate lets a Player be exercised by calling Tick directly.
type nopGate struct{}

func (nopGate) Enable()  {}
func (nopGate) Disable() {}

// Player walks a compiled slot buffer from a periodic tick. The tick
// context is the sole mutator of the cursor state once playback starts;
// the foreground only writes the buffer and arms the repeat counter, and
// only reads the counter to observe completion.
type Player struct {
	emitter Emitter
	gate    TimerGate

	buf     pulse.SlotBuffer
	current int
	subTick int

	// repeat is zero when idle. The buffer and cursors must be fully
	// written before the store that makes it non-zero, because the first
	// tick may fire immediately after the gate opens.
	repeat atomic.Int32
}

// New returns an idle player and forces the emitter to its inactive level.
func New(emitter Emitter) *Player {
	emitter.Set(false)
	return &Player{
		emitter: emitter,
		gate:    nopGate{},
	}
}

// AttachGate wires the tick source's gate. Must be called before Start and
// never while playing.
func (p *Player) AttachGate(g TimerGate) {
	p.gate = g
}

// Start compiles raw into a slot buffer and begins playback, repeating the
// whole buffer repeats times. It returns immediately; the emission happens
// entirely inside subsequent Tick calls. Returns ErrBusy if a transmission
// is already playing.
func (p *Player) Start(raw [protocol.FrameSize]byte, repeats int) error {
	if repeats < 1 || repeats > 255 {
		return fmt.Errorf("repeat count %d out of range", repeats)
	}

	// Arming the counter first reserves the player; the gate is still
	// closed, so no tick can observe the buffer until it is written below.
	if !p.repeat.CompareAndSwap(0, int32(repeats)) {
		return ErrBusy
	}

	p.buf = pulse.Compile(raw)
	p.current = 0
	p.subTick = 0

	p.gate.Enable()
	return nil
}

// Tick advances the state machine by one carrier half-period. The tick
// source calls it once per TickInterval while the gate is open; calling it
// while idle is a no-op.
func (p *Player) Tick() {
	if p.repeat.Load() == 0 {
		return
	}

	active := p.buf.Active(p.current)
	p.emitter.Set(active && p.subTick%2 == 0)
	p.subTick++

	if p.subTick < SubTicksPerSlot {
		return
	}

	// slot finished
	p.subTick = 0
	p.current++
	if p.current < p.buf.Len() {
		return
	}

	p.current = 0
	if p.repeat.Add(-1) == 0 {
		p.gate.Disable()
		p.emitter.Set(false)
	}
}

// Busy reports whether a transmission is in flight.
func (p *Player) Busy() bool {
	return p.repeat.Load() != 0
}

// Wait polls until the player is idle or the context is done. Foreground
// convenience only; the tick context must never call it.
func (p *Player) Wait(ctx context.Context) error {
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	for p.Busy() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
