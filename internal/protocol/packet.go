package protocol

// Magic is the constant first byte of every packet.
const Magic = 0xB2

// Sizes of the packed packet and the complement-expanded frame.
const (
	PacketSize = 3
	FrameSize  = 6
)

// Wire nibble constants.
const (
	stateOn  = 0b1111
	stateOff = 0b1011

	fanNibbleAuto = 0b0001 // automatic fan; also forced for the whole auto mode
	fanNibbleOff  = 0b0111 // power-off encoding

	// TempNone marks a temperature that does not apply (fan mode, power off).
	TempNone = 0b1110
	// TempInvalid marks an out-of-range temperature request.
	TempInvalid = 0b0100

	cmdOff = 0b0000
)

// temperatureTable converts a temperature in Celsius to the remote's
// non-linear nibble values, indexed by celsius - TempMin.
var temperatureTable = [TempMax - TempMin + 1]uint8{
	0b0000, // 17 C
	0b0001, // 18 C
	0b0011, // 19 C
	0b0010, // 20 C
	0b0110, // 21 C
	0b0111, // 22 C
	0b0101, // 23 C
	0b0100, // 24 C
	0b1100, // 25 C
	0b1101, // 26 C
	0b1001, // 27 C
	0b1000, // 28 C
	0b1010, // 29 C
	0b1011, // 30 C
}

// fanTable converts a FanLevel to its wire nibble. Captures of some units
// show 0b1011 for automatic fan instead; Decode accepts both.
var fanTable = [4]uint8{
	fanNibbleAuto, // auto
	0b1001,        // low
	0b0101,        // medium
	0b0011,        // high
}

// fanNibbleAutoAlt is the alternate automatic-fan nibble seen in captures.
const fanNibbleAutoAlt = 0b1011

// Packet is a decoded 3-byte command packet. Each field holds one wire
// nibble. Packets are built fresh per transmission and never mutated.
type Packet struct {
	State uint8
	Fan   uint8
	Cmd   uint8
	Temp  uint8
}

// Encode maps a Command to its wire packet. Encode is pure: every input has
// a defined encoding, with out-of-range temperatures mapped to TempInvalid
// rather than rejected.
func Encode(c Command) Packet {
	if !c.Enabled {
		return Packet{
			State: stateOff,
			Fan:   fanNibbleOff,
			Cmd:   cmdOff,
			Temp:  TempNone,
		}
	}

	p := Packet{
		State: stateOn,
		Cmd:   uint8(c.Mode),
	}

	if c.Mode == ModeAuto {
		p.Fan = fanNibbleAuto
	} else {
		p.Fan = fanTable[c.FanLevel&0b11]
	}

	switch {
	case c.Mode == ModeFan:
		p.Temp = TempNone
	case c.Temperature >= TempMin && c.Temperature <= TempMax:
		p.Temp = temperatureTable[c.Temperature-TempMin]
	default:
		p.Temp = TempInvalid
	}

	return p
}

// Bytes packs the packet into its 3-byte wire form: magic, fan<<4|state,
// temp<<4|cmd.
func (p Packet) Bytes() [PacketSize]byte {
	return [PacketSize]byte{
		Magic,
		p.Fan<<4 | p.State&0x0F,
		p.Temp<<4 | p.Cmd&0x0F,
	}
}

// Expand produces the error-checked 6-byte frame: each data byte followed
// by its bitwise complement.
func Expand(data [PacketSize]byte) [FrameSize]byte {
	var raw [FrameSize]byte
	for i, b := range data {
		raw[2*i] = b
		raw[2*i+1] = ^b
	}
	return raw
}

// DeflectorFrame is the fixed packet that makes the unit sweep its air
// deflector. It bypasses the command model entirely and is transmitted with
// a single repeat.
func DeflectorFrame() [PacketSize]byte {
	return [PacketSize]byte{0xB2, 0x0F, 0xE0}
}
