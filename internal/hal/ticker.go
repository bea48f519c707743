package hal

import (
	"sync/atomic"
	"time"
)

// TickRunner paces a tick callback at a fixed interval in its own
// goroutine, standing in for the hardware timer interrupt. Enable and
// Disable implement player.TimerGate; Disable may be called from inside
// the tick callback itself, which is how the player stops its own clock.
//
// Sleep granularity on a general-purpose kernel is the fidelity limit:
// slipped ticks are made up by re-anchoring rather than bursting.
type TickRunner struct {
	tick     func()
	interval time.Duration
	running  atomic.Bool
}

// NewTickRunner returns a runner calling tick every interval while enabled.
func NewTickRunner(interval time.Duration, tick func()) *TickRunner {
	return &TickRunner{tick: tick, interval: interval}
}

// Enable starts the tick goroutine. Enabling an enabled runner is a no-op.
func (r *TickRunner) Enable() {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	go r.run()
}

// Disable stops the tick goroutine after the tick in flight, if any.
func (r *TickRunner) Disable() {
	r.running.Store(false)
}

func (r *TickRunner) run() {
	next := time.Now()
	for r.running.Load() {
		r.tick()
		next = next.Add(r.interval)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else {
			next = time.Now()
		}
	}
}

// burstTickLimit bounds a BurstGate run so a playback bug cannot hang the
// caller. Far above any legal transmission (255 repeats of a full buffer).
const burstTickLimit = 256 * 232 * 42 * 2

// BurstGate runs the player to completion synchronously: Enable ticks in a
// tight loop until the player disables the gate. Simulations, tests, and
// the CLI dry-run mode use it instead of real-time pacing.
type BurstGate struct {
	tick    func()
	enabled bool

	// Ticks counts callbacks during the last Enable.
	Ticks int
}

// NewBurstGate returns a gate driving tick.
func NewBurstGate(tick func()) *BurstGate {
	return &BurstGate{tick: tick}
}

// Enable runs the tick loop until Disable is called from within a tick.
func (g *BurstGate) Enable() {
	g.enabled = true
	g.Ticks = 0
	for g.enabled && g.Ticks < burstTickLimit {
		g.tick()
		g.Ticks++
	}
}

// Disable stops the loop.
func (g *BurstGate) Disable() {
	g.enabled = false
}
