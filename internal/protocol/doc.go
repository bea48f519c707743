// Package protocol implements the Midea air-conditioner remote frame format.
//
// This package handles construction, validation, and decoding of the 3-byte
// command packets understood by Midea split-unit air conditioners, and their
// expansion into the 6-byte error-checked frames that actually go on the air.
//
// # Packet Format
//
// A command packet is 3 data bytes:
//
//	[1010 0010] [ffff ssss] [tttt cccc]
//
//	0xB2 - constant magic byte
//	ffff - fan nibble: 0001 auto, 1001 low, 0101 medium, 0011 high,
//	       0111 in the power-off packet (1011 appears as an alternate
//	       automatic nibble in some captures and is accepted on decode)
//	ssss - state nibble: 1111 on, 1011 off
//	tttt - temperature nibble (non-linear table, 17-30 Celsius), 1110 when
//	       the temperature does not apply
//	cccc - command nibble: 0000 cool, 1100 heat, 1000 auto, 0100 fan
//
// Within each packed byte the low nibble holds the field written first in
// the notation above's right-hand group: byte1 = fan<<4 | state and
// byte2 = temp<<4 | cmd. This matches captures of the original remote
// (power-on cool 24C auto-fan produces byte1 0x1F, byte2 0x40).
//
// # Error Checking
//
// Each data byte is transmitted followed by its bitwise complement, so a
// 3-byte packet becomes a 6-byte frame. The receiver rejects any frame
// where a byte and its successor are not complements.
//
// # Usage
//
//	pkt := protocol.Encode(protocol.Command{
//	    Enabled:     true,
//	    Mode:        protocol.ModeCool,
//	    Temperature: 24,
//	})
//	raw := protocol.Expand(pkt.Bytes())
//	// hand raw to the pulse compiler
package protocol
