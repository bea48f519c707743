package pulse

import "github.com/pali/mideair/internal/protocol"

// capacityBytes holds the worst case for one frame: 8T + 8T start, 4T per
// payload bit, a 4T stop bit and an 8T tail, rounded up to whole bytes.
const capacityBytes = 29

// Capacity is the total number of slots a buffer can hold.
const Capacity = capacityBytes * 8

// Slot duration counts for the fixed parts of a frame.
const (
	startSlots = 16 // 8 active + 8 inactive
	tailSlots  = 8
)

// SlotBuffer is a fixed-capacity bit array of transmit slots. Bit i set
// means "emit carrier during slot i". Buffers are built once by Compile and
// are read-only during playback.
type SlotBuffer struct {
	bits [capacityBytes]byte
	used int
}

// Len returns the number of slots written by Compile.
func (b *SlotBuffer) Len() int {
	return b.used
}

// Active reports whether slot i is a carrier slot. Out-of-range slots read
// as inactive.
func (b *SlotBuffer) Active(i int) bool {
	if i < 0 || i >= b.used {
		return false
	}
	return b.bits[i/8]&(1<<(i%8)) != 0
}

// mark sets slot i active. The buffer starts zeroed, so inactive slots are
// produced by just advancing the cursor.
func (b *SlotBuffer) mark(i int) {
	b.bits[i/8] |= 1 << (i % 8)
}

func (b *SlotBuffer) addStart() {
	for i := 0; i < startSlots/2; i++ {
		b.mark(i)
	}
	b.used = startSlots
}

func (b *SlotBuffer) addBit(bit bool) {
	b.mark(b.used)
	b.used++
	if bit {
		b.used += 3 // 1000
	} else {
		b.used++ // 10
	}
}

func (b *SlotBuffer) addStop() {
	b.addBit(true)
	b.used += tailSlots
}

// Compile converts a 6-byte frame into its slot buffer. Payload bits go out
// MSB first across the bytes in order.
func Compile(raw [protocol.FrameSize]byte) SlotBuffer {
	var b SlotBuffer
	b.addStart()

	for _, v := range raw {
		for i := 0; i < 8; i++ {
			b.addBit(v&0x80 != 0)
			v <<= 1
		}
	}

	b.addStop()
	return b
}
