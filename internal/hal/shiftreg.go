package hal

import (
	"fmt"

	"github.com/davecheney/gpio"
)

// ShiftRegisterBus bit-bangs bytes into the display's shift register over
// three GPIO lines: serial data, shift clock, and the output latch. Bits
// go out MSB first; a latch pulse after the last byte moves the shifted
// bits to the register outputs.
type ShiftRegisterBus struct {
	data  gpio.Pin
	clock gpio.Pin
	latch gpio.Pin
}

// OpenShiftRegisterBus opens the three GPIO lines for output.
func OpenShiftRegisterBus(dataPin, clockPin, latchPin int) (*ShiftRegisterBus, error) {
	data, err := gpio.OpenPin(dataPin, gpio.ModeOutput)
	if err != nil {
		return nil, fmt.Errorf("open data pin %d: %w", dataPin, err)
	}
	clock, err := gpio.OpenPin(clockPin, gpio.ModeOutput)
	if err != nil {
		_ = data.Close()
		return nil, fmt.Errorf("open clock pin %d: %w", clockPin, err)
	}
	latch, err := gpio.OpenPin(latchPin, gpio.ModeOutput)
	if err != nil {
		_ = data.Close()
		_ = clock.Close()
		return nil, fmt.Errorf("open latch pin %d: %w", latchPin, err)
	}

	b := &ShiftRegisterBus{data: data, clock: clock, latch: latch}
	b.clock.Clear()
	b.latch.Clear()
	return b, nil
}

// Transfer shifts all bytes out and latches the register outputs.
func (b *ShiftRegisterBus) Transfer(data []byte) error {
	for _, v := range data {
		for i := 0; i < 8; i++ {
			if v&0x80 != 0 {
				b.data.Set()
			} else {
				b.data.Clear()
			}
			b.clock.Set()
			b.clock.Clear()
			v <<= 1
		}
	}
	b.latch.Set()
	b.latch.Clear()
	return nil
}

// Close releases the GPIO lines.
func (b *ShiftRegisterBus) Close() error {
	err := b.data.Close()
	if cerr := b.clock.Close(); err == nil {
		err = cerr
	}
	if lerr := b.latch.Close(); err == nil {
		err = lerr
	}
	return err
}

// SimBus records display transfers for tests and dry runs.
type SimBus struct {
	Transfers [][]byte
}

// Transfer appends a copy of data to the recording.
func (b *SimBus) Transfer(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	b.Transfers = append(b.Transfers, cp)
	return nil
}
