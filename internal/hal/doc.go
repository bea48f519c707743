// Package hal provides the hardware backends behind the player and display
// abstractions: a GPIO-driven emitter and bit-banged display bus for real
// boards, plus simulated implementations that capture output for tests and
// dry runs.
//
// Tick sources implement player.TimerGate. TickRunner paces Tick calls off
// the monotonic clock in a goroutine, standing in for the hardware timer
// interrupt; BurstGate runs a transmission to completion synchronously,
// which is what simulations and the CLI dry-run mode want.
package hal
