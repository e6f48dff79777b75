// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package slave implements the IEC 60870-5-101 unbalanced-mode controlled
// station: the FT 1.2 link-layer state machine, the ASDU dispatcher, the
// per-connection driver, and the fault-injection postprocess hook.
package slave

import (
	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/clog"
	"github.com/Tonygratta/iec101-srv/cs101"
	"github.com/Tonygratta/iec101-srv/point"
)

// linkState is the FT 1.2 unbalanced link layer's two-state model
// (spec.md §4.3).
type linkState int

const (
	stateNotReset linkState = iota
	stateReset
)

// Server holds one connection's protocol state (spec.md §3). One Server is
// created per accepted connection; the underlying Points are shared across
// every Server that attaches them.
type Server struct {
	clog.Clog

	params *asdu.Params
	cfg    Config

	state linkState
	fcb   bool // tracked, never validated — spec.md §9 Open Questions
	dfc   bool // reserved for future back-pressure, always false

	eventQueue  point.EventQueue
	inrgList    point.InterrogationList
	points      []*point.Point
	bgCursor    int
	announcedEI bool // M_EI_NA_1 sent once per reset transition

	postprocess func([]byte) []byte
}

// NewServer returns a Server in NotReset state with no points attached.
func NewServer(cfg Config, params *asdu.Params) *Server {
	s := &Server{cfg: cfg, params: params, state: stateNotReset}
	s.Clog = clog.NewLogger("slave")
	s.LogMode(true)
	return s
}

// Params returns the ASDU parameters this server frames its ASDUs with.
func (s *Server) Params() *asdu.Params { return s.params }

// Enqueue implements point.Subscriber: it is how an attached Point delivers
// a freshly produced Event into this server's event queue.
func (s *Server) Enqueue(ev *point.Event) {
	s.eventQueue.Enqueue(ev)
}

// AddPoint attaches p to this server and subscribes it to p's mutations.
func (s *Server) AddPoint(p *point.Point) {
	s.points = append(s.points, p)
	p.Register(s)
}

// AddPoints attaches every point in pts.
func (s *Server) AddPoints(pts []*point.Point) {
	for _, p := range pts {
		s.AddPoint(p)
	}
}

// RemoveAllPoints deregisters this server from every attached point and
// clears its point list, mirroring original_source/iec101srv.py's
// del_all_points (called on connection teardown).
func (s *Server) RemoveAllPoints() {
	for _, p := range s.points {
		p.Deregister(s)
	}
	s.points = nil
}

// SetPostprocess installs the fault-injection hook applied to outbound
// frame bytes (spec.md §4.7, "the grinder"). A nil hook passes bytes
// through unmodified.
func (s *Server) SetPostprocess(f func([]byte) []byte) {
	s.postprocess = f
}

// ctrlByte computes the outbound control byte: bit 0 = dfc, bit 1 = acd,
// acd always freshly computed from event-queue non-emptiness
// (Testable Property #9).
func (s *Server) ctrlByte() byte {
	var c byte
	if s.dfc {
		c |= cs101.DFC
	}
	if s.eventQueue.Len() > 0 {
		c |= cs101.ACD
	}
	return c
}

// nextBackgroundPoint returns the next point for a background scan in
// round-robin order, or nil if this server has no points. Grounded on
// original_source/iec101srv.py's get_next_point.
func (s *Server) nextBackgroundPoint() *point.Point {
	if len(s.points) == 0 {
		return nil
	}
	p := s.points[s.bgCursor]
	if s.bgCursor < len(s.points)-1 {
		s.bgCursor++
	} else {
		s.bgCursor = 0
	}
	return p
}
