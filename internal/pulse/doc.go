// Package pulse compiles Midea frames into the bit-level slot buffers the
// playback engine walks.
//
// # Slot Encoding
//
// All durations are multiples of T, the minimum pulse time (21 carrier
// cycles at 38 kHz). One slot in the buffer is one T: an active slot means
// "emit carrier", an inactive slot means silence.
//
//	start condition:  8 active slots, 8 inactive slots
//	bit 0:            1 active slot,  1 inactive slot   (2T)
//	bit 1:            1 active slot,  3 inactive slots  (4T)
//	stop:             a "1" bit, then 8 inactive tail slots
//
// Payload bits go out most-significant-bit first, byte by byte:
//
//	              ________          _     _   _
//	signal:     _|        |________| |___| |_| | ...  (without carrier)
//	meaning:     "start condition"   "1"  "0"
//	slots:        11111111 00000000 1 000 1 0 1
//
// The buffer capacity is sized for exactly one 6-byte frame with every
// payload bit set; compiling anything longer is out of contract.
package pulse
