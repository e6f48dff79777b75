package slave

import (
	"bytes"
	"testing"
)

func TestGrinderZeroProbabilityUsuallyCorrupts(t *testing.T) {
	// Probability=0 forces every draw into the "insert" branch (case 0); it
	// can still reproduce the original bytes if it happens to insert zero
	// bytes, so assert it corrupts most of the time rather than every time.
	g := NewGrinder(0, 1)
	data := []byte{0x10, 0x40, 0x01, 0x41, 0x16}
	unchanged := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		out := g.Apply(append([]byte(nil), data...))
		if len(out) == len(data) && bytes.Equal(out, data) {
			unchanged++
		}
	}
	if unchanged > trials/4 {
		t.Errorf("Apply() with probability=0 left data unchanged in %d/%d trials", unchanged, trials)
	}
}

func TestGrinderNeverMutatesInputSlice(t *testing.T) {
	g := NewGrinder(16, 2)
	data := []byte{0x10, 0x40, 0x01, 0x41, 0x16}
	orig := append([]byte(nil), data...)
	g.Apply(data)
	if !bytes.Equal(data, orig) {
		t.Fatalf("Apply() mutated its input slice in place")
	}
}

func TestGrinderEmptyInputPassesThrough(t *testing.T) {
	g := NewGrinder(16, 3)
	if out := g.Apply(nil); out != nil {
		t.Errorf("Apply(nil) = %v, want nil", out)
	}
}

func TestGrinderNilReceiverPassesThrough(t *testing.T) {
	var g *Grinder
	data := []byte{0x01, 0x02}
	if out := g.Apply(data); !bytes.Equal(out, data) {
		t.Errorf("(*Grinder)(nil).Apply() = %v, want %v unchanged", out, data)
	}
}
