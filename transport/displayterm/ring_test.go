package displayterm

import "testing"

func TestRingWraparound(t *testing.T) {
	var r ring
	// Ten full cycles push head and tail past the uint8 wrap.
	for round := 0; round < 10; round++ {
		for i := 0; i < rxCap; i++ {
			if !r.push(byte(i)) {
				t.Fatalf("round %d: push %d failed", round, i)
			}
		}
		if r.push(0xff) {
			t.Fatalf("round %d: push succeeded on a full ring", round)
		}
		for i := 0; i < rxCap; i++ {
			b, ok := r.pop()
			if !ok || b != byte(i) {
				t.Fatalf("round %d: pop %d = (%d, %v); want (%d, true)", round, i, b, ok, i)
			}
		}
		if _, ok := r.pop(); ok {
			t.Fatalf("round %d: pop succeeded on an empty ring", round)
		}
	}
}
