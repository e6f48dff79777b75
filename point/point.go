// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package point models the addressable process variables a server exposes:
// their current state, who is subscribed to their changes, and the events a
// mutation produces for those subscribers.
package point

import (
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
)

// Value is a point's process value, tagged by the point's ASDU type. Exactly
// one field is set for a meaningful value; the zero Value is "unset" and is
// distinguishable from both false and 0.0.
type Value struct {
	B *bool
	F *float32
}

// IsSet reports whether either alternative carries a value.
func (v Value) IsSet() bool {
	return v.B != nil || v.F != nil
}

// BoolValue returns a set single-point Value.
func BoolValue(b bool) Value {
	return Value{B: &b}
}

// FloatValue returns a set measured Value.
func FloatValue(f float32) Value {
	return Value{F: &f}
}

// Subscriber receives events produced by a point mutation. slave.Server
// implements this to feed its own EventQueue.
type Subscriber interface {
	Enqueue(ev *Event)
}

// Point is an addressable process variable: a discrete (M_SP_NA_1) or
// measured (M_ME_NC_1) value, its quality flags, an optional timestamp, and
// the servers subscribed to its changes.
type Point struct {
	Type  asdu.TypeID
	Ioa   asdu.InfoObjAddr
	value Value
	flags *asdu.QualityDescriptor
	time  *time.Time

	// subscribers is a multiset: double registration is idempotent on
	// deregistration (it removes every occurrence) but produces duplicate
	// events, per spec.md §9 "Multiset subscribers".
	subscribers []Subscriber
}

// New returns a Point with no value, flags or time set yet.
func New(t asdu.TypeID, ioa asdu.InfoObjAddr) *Point {
	return &Point{Type: t, Ioa: ioa}
}

// Register appends sub to the subscriber multiset.
func (p *Point) Register(sub Subscriber) {
	p.subscribers = append(p.subscribers, sub)
}

// Deregister removes every occurrence of sub. A sub that was never
// registered is a no-op.
func (p *Point) Deregister(sub Subscriber) {
	kept := p.subscribers[:0]
	for _, s := range p.subscribers {
		if s != sub {
			kept = append(kept, s)
		}
	}
	p.subscribers = kept
}

// Value returns the point's current value, possibly unset.
func (p *Point) Value() Value { return p.value }

// Flags returns the point's current quality flags, nil if never set.
func (p *Point) Flags() *asdu.QualityDescriptor { return p.flags }

// Time returns the point's current timestamp, nil if never set.
func (p *Point) Time() *time.Time { return p.time }

// Set overwrites whichever of value/flags/time is supplied, leaving the
// others intact, then enqueues one SPONT Event per subscriber capturing the
// post-mutation state — even when every argument is omitted, matching the
// source's behavior of notifying on every call.
func (p *Point) Set(value Value, flags *asdu.QualityDescriptor, t *time.Time) {
	if value.IsSet() {
		p.value = value
	}
	if flags != nil {
		p.flags = flags
	}
	if t != nil {
		p.time = t
	}
	for _, sub := range p.subscribers {
		sub.Enqueue(snapshot(p, asdu.CauseOfTransmission{Cause: asdu.Spontaneous}))
	}
}

// snapshot freezes p's current (value, flags, time) into a new Event under
// cot, so a later mutation cannot alter an already-queued/packed event.
func snapshot(p *Point, cot asdu.CauseOfTransmission) *Event {
	return &Event{
		Point: p,
		Cot:   cot,
		value: p.value,
		flags: p.flags,
		time:  p.time,
	}
}
