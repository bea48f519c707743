package hal

import (
	"fmt"

	"github.com/davecheney/gpio"
)

// Edge is one recorded emitter level change.
type Edge struct {
	Tick  int // index of the Set call that produced the change
	Level bool
}

// SimEmitter records every level the player drives, for tests and dry runs.
// Not safe for concurrent use; pair it with BurstGate.
type SimEmitter struct {
	level bool
	sets  int
	edges []Edge
}

// NewSimEmitter returns a recorder starting at the inactive level.
func NewSimEmitter() *SimEmitter {
	return &SimEmitter{}
}

// Set records the driven level.
func (e *SimEmitter) Set(active bool) {
	if active != e.level {
		e.edges = append(e.edges, Edge{Tick: e.sets, Level: active})
		e.level = active
	}
	e.sets++
}

// Level returns the currently driven level.
func (e *SimEmitter) Level() bool {
	return e.level
}

// Sets returns how many times the player drove the line.
func (e *SimEmitter) Sets() int {
	return e.sets
}

// Edges returns the recorded level changes in order.
func (e *SimEmitter) Edges() []Edge {
	return e.edges
}

// Reset clears the recording and forces the level inactive.
func (e *SimEmitter) Reset() {
	e.level = false
	e.sets = 0
	e.edges = nil
}

// GPIOEmitter drives the IR LED through a GPIO line. ActiveLow matches
// boards that sink the LED current into the pin.
type GPIOEmitter struct {
	pin       gpio.Pin
	activeLow bool
}

// OpenGPIOEmitter opens the given GPIO line for output and forces it to
// the inactive level.
func OpenGPIOEmitter(pinNumber int, activeLow bool) (*GPIOEmitter, error) {
	pin, err := gpio.OpenPin(pinNumber, gpio.ModeOutput)
	if err != nil {
		return nil, fmt.Errorf("open gpio pin %d: %w", pinNumber, err)
	}
	e := &GPIOEmitter{pin: pin, activeLow: activeLow}
	e.Set(false)
	return e, nil
}

// Set drives the line to the level encoding active.
func (e *GPIOEmitter) Set(active bool) {
	if active != e.activeLow {
		e.pin.Set()
	} else {
		e.pin.Clear()
	}
}

// Close releases the GPIO line, leaving it inactive.
func (e *GPIOEmitter) Close() error {
	e.Set(false)
	return e.pin.Close()
}
