// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package simulate supplies the process-data generator spec.md's non-goals
// mention only at the Point.Set contract level: a random walk for measured
// points and a random bit flip for discrete points, each on its own
// randomized re-arm interval.
package simulate

import (
	"math/rand"
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/point"
)

// Generator mutates one Point on a randomized interval.
type Generator interface {
	// Check mutates the point if its re-arm time has elapsed.
	Check(now time.Time)
}

// Measured walks a short-float point: v*0.99 + gauss(0, 0.1), re-arming
// uniformly within [minUpdate, maxUpdate). Grounded on
// original_source/server-async.py's Meas.check().
type Measured struct {
	Point               *point.Point
	TimezoneOffset      time.Duration
	MinUpdate, MaxUpdate time.Duration

	next time.Time
	rng  *rand.Rand
}

// NewMeasured returns a Measured generator with its first re-arm due
// immediately.
func NewMeasured(p *point.Point, timezone time.Duration, minUpdate, maxUpdate time.Duration, seed int64) *Measured {
	return &Measured{
		Point:          p,
		TimezoneOffset: timezone,
		MinUpdate:      minUpdate,
		MaxUpdate:      maxUpdate,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// Check implements Generator.
func (m *Measured) Check(now time.Time) {
	if m.next.After(now) {
		return
	}
	var old float32
	if v := m.Point.Value(); v.F != nil {
		old = *v.F
	}
	next := old*0.99 + float32(m.rng.NormFloat64()*0.10)
	qds := asdu.QDSGood
	ts := now.Add(m.TimezoneOffset)
	m.Point.Set(point.FloatValue(next), &qds, &ts)
	m.next = now.Add(randDuration(m.rng, m.MinUpdate, m.MaxUpdate))
}

// Discrete flips a single-point's state to a fresh random bit, re-arming
// uniformly within [minUpdate, maxUpdate). Grounded on
// original_source/server-async.py's Discr.check().
type Discrete struct {
	Point                *point.Point
	TimezoneOffset       time.Duration
	MinUpdate, MaxUpdate time.Duration

	next time.Time
	rng  *rand.Rand
}

// NewDiscrete returns a Discrete generator with its first re-arm due
// immediately.
func NewDiscrete(p *point.Point, timezone time.Duration, minUpdate, maxUpdate time.Duration, seed int64) *Discrete {
	return &Discrete{
		Point:          p,
		TimezoneOffset: timezone,
		MinUpdate:      minUpdate,
		MaxUpdate:      maxUpdate,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// Check implements Generator.
func (d *Discrete) Check(now time.Time) {
	if d.next.After(now) {
		return
	}
	qds := asdu.QDSGood
	ts := now.Add(d.TimezoneOffset)
	d.Point.Set(point.BoolValue(d.rng.Intn(2) == 1), &qds, &ts)
	d.next = now.Add(randDuration(d.rng, d.MinUpdate, d.MaxUpdate))
}

func randDuration(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)))
}

// Run drives every generator's Check once per tick until stop is closed or
// receives a value, mirroring
// original_source/server-async.py's process() polling loop.
func Run(gens []Generator, tick time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			for _, g := range gens {
				g.Check(now)
			}
		}
	}
}
