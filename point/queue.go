// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package point

// EventQueue is a per-server FIFO of pending spontaneous Events.
type EventQueue struct {
	items []*Event
}

// Enqueue appends ev to the tail.
func (q *EventQueue) Enqueue(ev *Event) {
	q.items = append(q.items, ev)
}

// Dequeue removes and returns the head Event, or ok=false if empty.
func (q *EventQueue) Dequeue() (*Event, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.items)
}

// InterrogationList is the ordered set of Points remaining in the current
// general-interrogation sweep. Union preserves existing order and is a set
// insert — a point already present is not re-added.
type InterrogationList struct {
	points []*Point
}

// Union appends every point in pts not already present, in pts's order.
func (l *InterrogationList) Union(pts []*Point) {
	for _, p := range pts {
		if !l.contains(p) {
			l.points = append(l.points, p)
		}
	}
}

func (l *InterrogationList) contains(p *Point) bool {
	for _, q := range l.points {
		if q == p {
			return true
		}
	}
	return false
}

// Pop removes and returns the first point, or ok=false if empty.
func (l *InterrogationList) Pop() (*Point, bool) {
	if len(l.points) == 0 {
		return nil, false
	}
	p := l.points[0]
	l.points = l.points[1:]
	return p, true
}

// Len reports the number of points remaining in the sweep.
func (l *InterrogationList) Len() int {
	return len(l.points)
}
