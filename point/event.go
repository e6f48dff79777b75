// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package point

import (
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
)

// Event is an immutable snapshot of one point transition, captured at
// mutation (or interrogation/background-scan synthesis) time. A later
// mutation of Point cannot alter an already-produced Event.
type Event struct {
	// Point is a relation back to the originating point, never ownership.
	Point *Point
	Cot   asdu.CauseOfTransmission

	value Value
	flags *asdu.QualityDescriptor
	time  *time.Time
}

// Exists reports whether every field this event needs to be sendable was
// actually present at capture time — true optionality, not a truthiness
// check on a zero value (spec.md §9 "Event.exists()").
func (e *Event) Exists() bool {
	return e != nil && e.Point != nil && e.value.IsSet() && e.flags != nil && e.time != nil
}

// Value returns the captured value.
func (e *Event) Value() Value { return e.value }

// Flags returns the captured quality flags, nil if the point had none set.
func (e *Event) Flags() *asdu.QualityDescriptor { return e.flags }

// Time returns the captured timestamp, nil if the point had none set.
func (e *Event) Time() *time.Time { return e.time }
