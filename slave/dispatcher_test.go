package slave

import (
	"testing"
	"time"

	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/cs101"
	"github.com/Tonygratta/iec101-srv/point"
)

// parseFrame extracts the ASDU payload from a built variable-length frame.
func parseFrame(raw []byte) ([]byte, int, error) {
	fr, n, err := (cs101.Codec{}).Parse(raw)
	if err != nil {
		return nil, n, err
	}
	return fr.ASDU, n, nil
}

func TestDispatchEmptyPackIsNoData(t *testing.T) {
	s := newTestServer()
	pack := &point.EventPack{}
	out := dispatch(s, pack)
	want := noDataFrame(s)
	if string(out) != string(want) {
		t.Errorf("dispatch(empty) = % x, want % x", out, want)
	}
}

func TestDispatchSinglePointEncodesSIQ(t *testing.T) {
	tests := []struct {
		name    string
		value   bool
		qds     asdu.QualityDescriptor
		wantSIQ byte
	}{
		{"good, on", true, asdu.QDSGood, 0x01},
		{"good, off", false, asdu.QDSGood, 0x00},
		{"invalid, on", true, asdu.QDSInvalid, 0x81},
		{"invalid, off", false, asdu.QDSInvalid, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			p := point.New(asdu.M_SP_NA_1, 7)
			s.AddPoint(p)
			qds := tt.qds
			now := time.Now()
			p.Set(point.BoolValue(tt.value), &qds, &now)
			ev, _ := s.eventQueue.Dequeue()
			pack := &point.EventPack{Events: []*point.Event{ev}, Cot: ev.Cot, Type: asdu.M_SP_NA_1}

			out := dispatch(s, pack)
			fr, _, err := (parseFrame(out))
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			u := asdu.NewEmptyASDU(s.params)
			if err := u.UnmarshalBinary(fr); err != nil {
				t.Fatalf("UnmarshalBinary error = %v", err)
			}
			infos := u.GetSinglePoint()
			if len(infos) != 1 {
				t.Fatalf("GetSinglePoint() returned %d objects, want 1", len(infos))
			}
			siq := asdu.EncodeSIQ(infos[0].Value, infos[0].Qds)
			if siq != tt.wantSIQ {
				t.Errorf("SIQ = %#x, want %#x", siq, tt.wantSIQ)
			}
		})
	}
}

func TestDispatchMeasuredValueFloatRoundTrips(t *testing.T) {
	s := newTestServer()
	p := point.New(asdu.M_ME_NC_1, 1001)
	s.AddPoint(p)
	qds := asdu.QDSOverflow
	now := time.Now()
	p.Set(point.FloatValue(12.5), &qds, &now)
	ev, _ := s.eventQueue.Dequeue()
	pack := &point.EventPack{Events: []*point.Event{ev}, Cot: ev.Cot, Type: asdu.M_ME_NC_1}

	out := dispatch(s, pack)
	asduBytes, _, err := parseFrame(out)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	u := asdu.NewEmptyASDU(s.params)
	if err := u.UnmarshalBinary(asduBytes); err != nil {
		t.Fatalf("UnmarshalBinary error = %v", err)
	}
	infos := u.GetMeasuredValueFloat()
	if len(infos) != 1 {
		t.Fatalf("GetMeasuredValueFloat() returned %d objects, want 1", len(infos))
	}
	if infos[0].Value != 12.5 {
		t.Errorf("Value = %v, want 12.5", infos[0].Value)
	}
	if infos[0].Qds != asdu.QDSOverflow {
		t.Errorf("Qds = %#x, want %#x", infos[0].Qds, asdu.QDSOverflow)
	}
	if infos[0].Ioa != 1001 {
		t.Errorf("Ioa = %d, want 1001", infos[0].Ioa)
	}
}

func TestDispatchUnknownTypeIsNoData(t *testing.T) {
	s := newTestServer()
	pack := &point.EventPack{
		Events: []*point.Event{{}},
		Type:   asdu.C_IC_NA_1,
	}
	out := dispatch(s, pack)
	want := noDataFrame(s)
	if string(out) != string(want) {
		t.Errorf("dispatch(unknown type) = % x, want % x", out, want)
	}
}
