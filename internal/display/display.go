// Package display renders values on the two-digit 7-segment display hung
// off a shift register on a synchronous serial bus.
//
// Segment lines are active-low, so every pattern is bitwise inverted
// before it is shifted out. The bus itself is abstracted behind BusWriter;
// internal/hal provides a bit-banged GPIO implementation and a recorder
// for tests.
package display

// BusWriter shifts bytes out to the display register and latches them.
type BusWriter interface {
	Transfer(data []byte) error
}

// patterns holds the segment bits for digits 0-9, hex A-F, and blank.
var patterns = [17]uint8{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
	0x77, // A
	0x7C, // b
	0x39, // C
	0x5E, // d
	0x79, // E
	0x71, // F
	0x00, // blank
}

// Display drives one two-digit module.
type Display struct {
	bus BusWriter
}

// New returns a Display writing to bus.
func New(bus BusWriter) *Display {
	return &Display{bus: bus}
}

// RenderDecimal shows a value 0-99 as two decimal digits. Larger values
// wrap modulo 100.
func (d *Display) RenderDecimal(value uint8) error {
	digits := [2]uint8{0, value}
	for digits[1] >= 10 {
		digits[1] -= 10
		digits[0]++
		if digits[0] >= 10 {
			digits[0] -= 10
		}
	}
	digits[0] = 0xFF - patterns[digits[0]]
	digits[1] = 0xFF - patterns[digits[1]]
	return d.bus.Transfer(digits[:])
}

// RenderHex shows a byte as two hex digits.
func (d *Display) RenderHex(value uint8) error {
	data := [2]uint8{
		0xFF - patterns[(value>>4)&0x0F],
		0xFF - patterns[value&0x0F],
	}
	return d.bus.Transfer(data[:])
}

// Off blanks the display by clearing the register outputs.
func (d *Display) Off() error {
	data := [2]uint8{0, 0}
	return d.bus.Transfer(data[:])
}
