package asdu

import (
	"bytes"
	"testing"
)

// recordingConnect is a one-shot asdu.Connect: it captures the last ASDU
// built through it instead of performing any I/O.
type recordingConnect struct {
	params *Params
	sent   *ASDU
}

func (c *recordingConnect) Params() *Params { return c.params }
func (c *recordingConnect) Send(u *ASDU) error {
	c.sent = u
	return nil
}

func TestSingleRejectsBadCause(t *testing.T) {
	c := &recordingConnect{params: DefaultParams}
	err := Single(c, false, CauseOfTransmission{Cause: ActivationCon}, 1,
		SinglePointInfo{Ioa: 1, Value: true, Qds: QDSGood})
	if err != ErrCmdCause {
		t.Errorf("Single() with ActivationCon error = %v, want ErrCmdCause", err)
	}
}

func TestSingleMarshalUnmarshalRoundTrip(t *testing.T) {
	c := &recordingConnect{params: DefaultParams}
	if err := Single(c, false, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 7, Value: true, Qds: QDSInvalid}); err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	u := NewEmptyASDU(DefaultParams)
	if err := u.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if u.Type != M_SP_NA_1 {
		t.Fatalf("Type = %v, want M_SP_NA_1", u.Type)
	}
	infos := u.GetSinglePoint()
	if len(infos) != 1 {
		t.Fatalf("GetSinglePoint() returned %d, want 1", len(infos))
	}
	if infos[0].Ioa != 7 || !infos[0].Value || infos[0].Qds != QDSInvalid {
		t.Errorf("GetSinglePoint()[0] = %+v, want {7 true QDSInvalid}", infos[0])
	}
}

func TestEncodeSIQ(t *testing.T) {
	tests := []struct {
		name  string
		value bool
		qds   QualityDescriptor
		want  byte
	}{
		{"good, on", true, QDSGood, 0x01},
		{"good, off", false, QDSGood, 0x00},
		{"invalid, on", true, QDSInvalid, 0x81},
		{"invalid, off", false, QDSInvalid, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeSIQ(tt.value, tt.qds); got != tt.want {
				t.Errorf("EncodeSIQ(%v, %#x) = %#x, want %#x", tt.value, byte(tt.qds), got, tt.want)
			}
		})
	}
}

func TestMeasuredValueFloatMarshalUnmarshalRoundTrip(t *testing.T) {
	c := &recordingConnect{params: DefaultParams}
	if err := MeasuredValueFloat(c, false, CauseOfTransmission{Cause: Periodic}, 1,
		MeasuredValueFloatInfo{Ioa: 1001, Value: -12.75, Qds: QDSOverflow}); err != nil {
		t.Fatalf("MeasuredValueFloat() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	u := NewEmptyASDU(DefaultParams)
	if err := u.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	infos := u.GetMeasuredValueFloat()
	if len(infos) != 1 {
		t.Fatalf("GetMeasuredValueFloat() returned %d, want 1", len(infos))
	}
	if infos[0].Ioa != 1001 || infos[0].Value != -12.75 || infos[0].Qds != QDSOverflow {
		t.Errorf("GetMeasuredValueFloat()[0] = %+v, want {1001 -12.75 QDSOverflow}", infos[0])
	}
}

func TestMeasuredValueFloatQDSIsNotMasked(t *testing.T) {
	// The QDS octet for M_ME_NC_1 is a direct pass-through, unlike SIQ's
	// bit-0-carries-value formula; any flag combination must survive intact.
	c := &recordingConnect{params: DefaultParams}
	allFlags := QDSOverflow | QDSBlocked | QDSSubstituted | QDSNotTopical | QDSInvalid
	if err := MeasuredValueFloat(c, false, CauseOfTransmission{Cause: Spontaneous}, 1,
		MeasuredValueFloatInfo{Ioa: 1, Value: 1, Qds: allFlags}); err != nil {
		t.Fatalf("MeasuredValueFloat() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	u := NewEmptyASDU(DefaultParams)
	if err := u.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if got := u.GetMeasuredValueFloat()[0].Qds; got != allFlags {
		t.Errorf("Qds = %#x, want %#x unmasked", byte(got), byte(allFlags))
	}
}

func TestInterrogationCmdMarshalUnmarshalRoundTrip(t *testing.T) {
	c := &recordingConnect{params: DefaultParams}
	if err := InterrogationCmd(c, CauseOfTransmission{Cause: Activation}, 1, QOIStation); err != nil {
		t.Fatalf("InterrogationCmd() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	u := NewEmptyASDU(DefaultParams)
	if err := u.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if u.Type != C_IC_NA_1 {
		t.Fatalf("Type = %v, want C_IC_NA_1", u.Type)
	}
	ioa, qoi := u.GetInterrogationCmd()
	if ioa != InfoObjAddrIrrelevant || qoi != QOIStation {
		t.Errorf("GetInterrogationCmd() = (%d, %d), want (%d, %d)", ioa, qoi, InfoObjAddrIrrelevant, QOIStation)
	}
}

func TestEndOfInitializationMarshalUnmarshalRoundTrip(t *testing.T) {
	c := &recordingConnect{params: DefaultParams}
	coi := CauseOfInitial{Cause: COIRemoteReset, IsLocalChange: false}
	if err := EndOfInitialization(c, CauseOfTransmission{Cause: Initialized}, 1, InfoObjAddrIrrelevant, coi); err != nil {
		t.Fatalf("EndOfInitialization() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	u := NewEmptyASDU(DefaultParams)
	if err := u.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if u.Type != M_EI_NA_1 {
		t.Fatalf("Type = %v, want M_EI_NA_1", u.Type)
	}
}

func TestASDUSingleObjectWireLayoutMatchesTwoOctetIOA(t *testing.T) {
	// Grounded on original_source/iec101srv.py's gen_resp length_1=9 for
	// M_SP_NA_1 with DefaultParams.InfoObjAddrSize == 2: type(1) + vsq(1) +
	// cause(1) + addr(1) + ioa(2) + siq(1) == 7 bytes total.
	c := &recordingConnect{params: DefaultParams}
	if err := Single(c, false, CauseOfTransmission{Cause: InterrogatedByStation}, 1,
		SinglePointInfo{Ioa: 1, Value: true, Qds: QDSGood}); err != nil {
		t.Fatalf("Single() error = %v", err)
	}
	raw, err := c.sent.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	want := []byte{byte(M_SP_NA_1), 0x01, byte(InterrogatedByStation), 0x01, 0x01, 0x00, 0x01}
	if !bytes.Equal(raw, want) {
		t.Errorf("MarshalBinary() = % x, want % x", raw, want)
	}
}
