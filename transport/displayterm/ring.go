package displayterm

// rxCap is the input queue capacity. It must divide 256 so the free
// running uint8 head and tail stay consistent across wraparound.
const rxCap = 64

// ring is a fixed-size single-owner byte queue.
type ring struct {
	head uint8
	tail uint8
	buf  [rxCap]byte
}

func (r *ring) len() int { return int(r.head - r.tail) }

func (r *ring) push(b byte) bool {
	if int(r.head-r.tail) >= rxCap {
		return false
	}
	r.buf[r.head%rxCap] = b
	r.head++
	return true
}

func (r *ring) pop() (byte, bool) {
	if r.head == r.tail {
		return 0, false
	}
	b := r.buf[r.tail%rxCap]
	r.tail++
	return b, true
}
