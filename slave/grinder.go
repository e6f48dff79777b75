// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import "math/rand"

// Grinder is the fault-injection postprocess hook (spec.md §4.7, "a.k.a.
// the grinder"): insert up to 32 random bytes at a random offset, delete a
// random contiguous range, flip one random byte, or pass through unchanged.
// Grounded on original_source/server-async.py's grinder().
type Grinder struct {
	// Probability is the grinder() source's PROBABILITY: selection draws
	// uniformly from [0, Probability], and only draws 0..2 corrupt; any
	// other draw passes data through unchanged. Larger values make
	// corruption rarer.
	Probability int
	rng         *rand.Rand
}

// NewGrinder returns a Grinder seeded from seed.
func NewGrinder(probability int, seed int64) *Grinder {
	return &Grinder{Probability: probability, rng: rand.New(rand.NewSource(seed))}
}

// Apply returns data, possibly corrupted. data is never retained.
func (g *Grinder) Apply(data []byte) []byte {
	if g == nil || len(data) == 0 {
		return data
	}

	switch g.rng.Intn(g.Probability + 1) {
	case 0: // insert random bytes at a random offset
		at := g.rng.Intn(len(data) + 1)
		n := g.rng.Intn(33)
		ins := make([]byte, n)
		_, _ = g.rng.Read(ins)
		out := make([]byte, 0, len(data)+n)
		out = append(out, data[:at]...)
		out = append(out, ins...)
		out = append(out, data[at:]...)
		return out

	case 1: // delete a random contiguous range
		at := g.rng.Intn(len(data) + 1)
		end := at + g.rng.Intn(len(data)+1-at)
		out := make([]byte, 0, len(data)-(end-at))
		out = append(out, data[:at]...)
		out = append(out, data[end:]...)
		return out

	case 2: // flip one random byte
		out := append([]byte(nil), data...)
		out[g.rng.Intn(len(out))] = byte(g.rng.Intn(256))
		return out

	default: // pass through
		return data
	}
}
