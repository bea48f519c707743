// Package player drives the infrared emitter through a compiled slot
// buffer, one carrier half-period at a time.
//
// The original hardware runs this logic from a timer interrupt firing at
// twice the carrier frequency (76 kHz for the 38 kHz carrier). Here the
// same two-level state machine lives behind Tick: the tick source calls
// Tick once per half-period, the player toggles the emitter to reproduce
// the carrier during active slots, and when the final repeat of the buffer
// completes it disables its gate and forces the emitter off.
//
// Exactly one transmission can be in flight. Start rejects callers with
// ErrBusy while a buffer is playing; completion is observed by polling
// Busy or with Wait.
package player
