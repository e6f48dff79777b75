package simulate

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/point"
)

func TestMeasuredFiresImmediatelyThenWaitsForRearm(t *testing.T) {
	p := point.New(asdu.M_ME_NC_1, 1001)
	m := NewMeasured(p, 0, time.Hour, 2*time.Hour, 1)

	t0 := time.Now()
	m.Check(t0)
	v := p.Value()
	if v.F == nil {
		t.Fatal("first Check() did not set a value")
	}
	first := *v.F

	m.Check(t0.Add(time.Second))
	if *p.Value().F != first {
		t.Errorf("Check() before re-arm mutated the value: got %v, want %v", *p.Value().F, first)
	}

	m.Check(t0.Add(3 * time.Hour))
	if *p.Value().F == first {
		t.Errorf("Check() after re-arm left the value unchanged")
	}
}

func TestMeasuredFollowsDecayFormula(t *testing.T) {
	p := point.New(asdu.M_ME_NC_1, 1001)
	qds := asdu.QDSGood
	seedTime := time.Now()
	p.Set(point.FloatValue(100), &qds, &seedTime)

	m := NewMeasured(p, 0, time.Hour, 2*time.Hour, 42)
	m.Check(seedTime)
	got := float64(*p.Value().F)
	// v*0.99 + gauss(0, 0.1): the noise term is small, so the result must
	// stay close to the decayed base value.
	if math.Abs(got-99.0) > 1.0 {
		t.Errorf("Check() = %v, want close to 99.0 (100*0.99 plus small noise)", got)
	}
}

func TestDiscreteFiresImmediatelyThenWaitsForRearm(t *testing.T) {
	p := point.New(asdu.M_SP_NA_1, 1)
	d := NewDiscrete(p, 0, time.Hour, 2*time.Hour, 1)

	t0 := time.Now()
	d.Check(t0)
	if p.Value().B == nil {
		t.Fatal("first Check() did not set a value")
	}
	if p.Time() == nil {
		t.Fatal("first Check() did not set a timestamp")
	}

	d.Check(t0.Add(time.Second))
	if !p.Time().Equal(t0) {
		t.Errorf("Check() before re-arm mutated the point: time = %v, want %v", *p.Time(), t0)
	}

	d.Check(t0.Add(3 * time.Hour))
	if !p.Time().Equal(t0.Add(3 * time.Hour)) {
		t.Errorf("Check() after re-arm left the point unchanged: time = %v, want %v", *p.Time(), t0.Add(3*time.Hour))
	}
}

func TestRandDurationStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	min, max := time.Second, 10*time.Second
	for i := 0; i < 100; i++ {
		d := randDuration(rng, min, max)
		if d < min || d >= max {
			t.Fatalf("randDuration() = %v, want within [%v, %v)", d, min, max)
		}
	}
}

func TestRandDurationDegenerateRangeReturnsMin(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	if got := randDuration(rng, 5*time.Second, time.Second); got != 5*time.Second {
		t.Errorf("randDuration(min>max) = %v, want min", got)
	}
}
