// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import (
	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/cs101"
	"github.com/Tonygratta/iec101-srv/point"
)

// Step feeds one parsed inbound FT 1.2 frame through the link-layer state
// machine (spec.md §4.3) and returns the outbound frame, or nil to mean
// "silently drop". Only fr.Control's low nibble (the function code) and,
// for variable-length frames, fr.ASDU are consulted; fr.Kind only matters
// to distinguish a genuine frame from noise the caller already filtered.
func (s *Server) Step(fr cs101.Frame) []byte {
	fcode := fr.FCode()

	if s.state == stateNotReset {
		switch fcode {
		case cs101.FcReset:
			s.reset()
			return cs101.BuildFixed(cs101.FcAck|s.ctrlByte(), s.cfg.LinkAddr)
		case cs101.FcStatusRequest:
			return cs101.BuildFixed(cs101.FcLinkStatus|s.ctrlByte(), s.cfg.LinkAddr)
		default:
			return nil
		}
	}

	switch fcode {
	case cs101.FcReset:
		s.reset()
		return cs101.BuildFixed(cs101.FcAck|s.ctrlByte(), s.cfg.LinkAddr)

	case cs101.FcConfirmedData:
		return handleUserData(s, fr.ASDU)

	case cs101.FcStatusRequest:
		return cs101.BuildFixed(cs101.FcLinkStatus|s.ctrlByte(), s.cfg.LinkAddr)

	case cs101.FcReqClassTwo:
		// spec.md §4.3 names this "Request class-2 data", but the source
		// this core preserves swaps 10/11's standard FT 1.2 roles (spec.md
		// §9 Open Questions): fcode 10 tries the spontaneous event queue
		// first, then falls through to interrogation and background.
		return s.pollCascade(true)

	case cs101.FcReqClassOne:
		// Symmetric: fcode 11 prioritizes interrogation/background, then
		// falls through to spontaneous events.
		return s.pollCascade(false)

	default:
		return cs101.BuildSingleChar()
	}
}

// reset transitions the server into Reset, clearing fcb per spec.md §4.3.
func (s *Server) reset() {
	s.state = stateReset
	s.fcb = false
	s.announcedEI = false
}

// pollCascade answers an fcode-10/11 poll (spec.md §4.3). Both codes try
// the same three sources — spontaneous events, the interrogation sweep,
// background scan — in opposite order; eventsFirst picks which. The
// end-of-initialization announcement, when pending, always wins first.
func (s *Server) pollCascade(eventsFirst bool) []byte {
	if frame := s.announceInitIfPending(); frame != nil {
		return frame
	}

	tryEvents := func() []byte {
		if s.eventQueue.Len() == 0 {
			return nil
		}
		return dispatch(s, point.FromQueue(&s.eventQueue))
	}
	tryInterrogationOrBackground := func() []byte {
		if s.inrgList.Len() > 0 {
			return dispatch(s, point.FromPoints(&s.inrgList, asdu.CauseOfTransmission{Cause: asdu.InterrogatedByStation}))
		}
		if s.cfg.Background {
			if p := s.nextBackgroundPoint(); p != nil {
				list := &point.InterrogationList{}
				list.Union([]*point.Point{p})
				return dispatch(s, point.FromPoints(list, asdu.CauseOfTransmission{Cause: asdu.Background}))
			}
		}
		return nil
	}

	if eventsFirst {
		if frame := tryEvents(); frame != nil {
			return frame
		}
		if frame := tryInterrogationOrBackground(); frame != nil {
			return frame
		}
	} else {
		if frame := tryInterrogationOrBackground(); frame != nil {
			return frame
		}
		if frame := tryEvents(); frame != nil {
			return frame
		}
	}
	return noDataFrame(s)
}

// announceInitIfPending builds the one M_EI_NA_1 announcement due after the
// most recent reset (SPEC_FULL.md §4 "End-of-initialization announcement"),
// queued ahead of any other spontaneous traffic. Opt-in via
// Config.AnnounceInit, off by default so the default cascade matches
// spec.md §4.3 and scenarios S3-S5 exactly. Returns nil once already sent
// for this reset, or when the announcement is disabled.
func (s *Server) announceInitIfPending() []byte {
	if !s.cfg.AnnounceInit || s.announcedEI {
		return nil
	}
	s.announcedEI = true

	sink := &asduSink{params: s.params}
	coi := asdu.CauseOfInitial{Cause: asdu.COIRemoteReset}
	if err := asdu.EndOfInitialization(sink, asdu.CauseOfTransmission{}, s.cfg.AsduAddr, asdu.InfoObjAddrIrrelevant, coi); err != nil {
		s.Error("announceInit: build ASDU: %v", err)
		return nil
	}
	frame, err := cs101.BuildVariable(cs101.FcUserData|s.ctrlByte(), s.cfg.LinkAddr, sink.raw)
	if err != nil {
		s.Error("announceInit: build frame: %v", err)
		return nil
	}
	return frame
}
