// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import (
	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/cs101"
	"github.com/Tonygratta/iec101-srv/point"
)

// asduSink is a one-shot asdu.Connect: it captures the single ASDU a
// dispatcher build produces so it can be wrapped into an FT 1.2 variable
// frame. It never performs I/O itself.
type asduSink struct {
	params *asdu.Params
	raw    []byte
}

func (s *asduSink) Params() *asdu.Params { return s.params }

func (s *asduSink) Send(u *asdu.ASDU) error {
	raw, err := u.MarshalBinary()
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}

// noDataFrame returns the "requested data not available" short frame
// (link fcode 9), used whenever an EventPack is empty or carries a type the
// dispatcher doesn't know how to encode (spec.md §4.4).
func noDataFrame(s *Server) []byte {
	return cs101.BuildFixed(cs101.FcNoData|s.ctrlByte(), s.cfg.LinkAddr)
}

// dispatch turns pack into the single FT 1.2 frame spec.md §4.4 describes.
// An empty pack, or a pack of a type this dispatcher doesn't encode,
// produces noDataFrame.
func dispatch(s *Server, pack *point.EventPack) []byte {
	if pack.Empty() {
		return noDataFrame(s)
	}

	ev := pack.Events[0]
	sink := &asduSink{params: s.params}

	var err error
	switch pack.Type {
	case asdu.M_SP_NA_1:
		var b bool
		if v := ev.Value(); v.B != nil {
			b = *v.B
		}
		var qds asdu.QualityDescriptor
		if f := ev.Flags(); f != nil {
			qds = *f
		}
		err = asdu.Single(sink, false, pack.Cot, s.cfg.AsduAddr, asdu.SinglePointInfo{
			Ioa:   ev.Point.Ioa,
			Value: b,
			Qds:   qds,
		})
	case asdu.M_ME_NC_1:
		var f32 float32
		if v := ev.Value(); v.F != nil {
			f32 = *v.F
		}
		var qds asdu.QualityDescriptor
		if f := ev.Flags(); f != nil {
			qds = *f
		}
		err = asdu.MeasuredValueFloat(sink, false, pack.Cot, s.cfg.AsduAddr, asdu.MeasuredValueFloatInfo{
			Ioa:   ev.Point.Ioa,
			Value: f32,
			Qds:   qds,
		})
	default:
		// Any other type -> empty-pack behavior (spec.md §4.4).
		return noDataFrame(s)
	}
	if err != nil {
		s.Error("dispatch: build ASDU: %v", err)
		return noDataFrame(s)
	}

	frame, err := cs101.BuildVariable(cs101.FcUserData|s.ctrlByte(), s.cfg.LinkAddr, sink.raw)
	if err != nil {
		s.Error("dispatch: build frame: %v", err)
		return noDataFrame(s)
	}
	return frame
}
