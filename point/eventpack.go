// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package point

import (
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
)

// EventPack is a transport-ready grouping the dispatcher consumes: for this
// core it always carries at most one Event (single-IO, SQ=0). A pack with no
// surviving Event is Empty and forces the dispatcher to report "no data
// available".
type EventPack struct {
	Events []*Event
	Cot    asdu.CauseOfTransmission
	Type   asdu.TypeID
	Time   *time.Time
	Sq     byte
}

// Empty reports whether no Event survived construction.
func (p *EventPack) Empty() bool {
	return len(p.Events) == 0
}

// FromQueue dequeues the head Event of q and packs it. An Event that fails
// Exists (null value/flags/time) is dropped, yielding an empty pack.
func FromQueue(q *EventQueue) *EventPack {
	pack := &EventPack{Sq: 0}
	ev, ok := q.Dequeue()
	if !ok || !ev.Exists() {
		return pack
	}
	pack.Events = append(pack.Events, ev)
	pack.Cot = ev.Cot
	pack.Type = ev.Point.Type
	pack.Time = ev.time
	return pack
}

// FromPoints pops the first point off list and synthesizes one Event for it
// under cot, capturing the point's current state. An incomplete point (never
// fully Set) yields an empty pack.
func FromPoints(list *InterrogationList, cot asdu.CauseOfTransmission) *EventPack {
	now := time.Now()
	pack := &EventPack{Cot: cot, Sq: 0, Time: &now}
	pt, ok := list.Pop()
	if !ok {
		return pack
	}
	ev := snapshot(pt, cot)
	if !ev.Exists() {
		return pack
	}
	pack.Events = append(pack.Events, ev)
	pack.Type = ev.Point.Type
	return pack
}
