package cs101

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildFixedChecksum(t *testing.T) {
	tests := []struct {
		name            string
		control, address byte
		want            []byte
	}{
		{"reset of link", 0x40, 0x01, []byte{0x10, 0x40, 0x01, 0x41, 0x16}},
		{"status request", 0x49, 0x01, []byte{0x10, 0x49, 0x01, 0x4a, 0x16}},
		{"status response", 0x0b, 0x01, []byte{0x10, 0x0b, 0x01, 0x0c, 0x16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFixed(tt.control, tt.address)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildFixed() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestBuildVariableChecksum(t *testing.T) {
	asduBytes := []byte{0x01, 0x01, 0x14, 0x01, 0x01, 0x00, 0x01}
	frame, err := BuildVariable(0x08, 0x01, asduBytes)
	if err != nil {
		t.Fatalf("BuildVariable() error = %v", err)
	}
	want := []byte{0x68, 0x09, 0x09, 0x68, 0x08, 0x01, 0x01, 0x01, 0x14, 0x01, 0x01, 0x00, 0x01, 0x22, 0x16}
	if !bytes.Equal(frame, want) {
		t.Errorf("BuildVariable() = % x, want % x", frame, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	var codec Codec

	fixed := BuildFixed(0x00, 0x01)
	fr, n, err := codec.Parse(fixed)
	if err != nil {
		t.Fatalf("Parse(fixed) error = %v", err)
	}
	if n != len(fixed) || fr.Kind != KindFixed || fr.FCode() != 0 || fr.Address != 1 {
		t.Errorf("Parse(fixed) = %+v, n=%d", fr, n)
	}

	asduBytes := []byte{0x01, 0x01, 0x14, 0x01, 0x01, 0x00, 0x01}
	variable, err := BuildVariable(0x08, 0x01, asduBytes)
	if err != nil {
		t.Fatalf("BuildVariable() error = %v", err)
	}
	fr, n, err = codec.Parse(variable)
	if err != nil {
		t.Fatalf("Parse(variable) error = %v", err)
	}
	if n != len(variable) || fr.Kind != KindVariable || fr.FCode() != 8 || !bytes.Equal(fr.ASDU, asduBytes) {
		t.Errorf("Parse(variable) = %+v, n=%d", fr, n)
	}

	single := BuildSingleChar()
	fr, n, err = codec.Parse(single)
	if err != nil || n != 1 || fr.Kind != KindSingleChar {
		t.Errorf("Parse(single) = %+v, n=%d, err=%v", fr, n, err)
	}
}

func TestParseShortFrameAsksForMoreBytes(t *testing.T) {
	var codec Codec
	full := BuildFixed(0x00, 0x01)
	_, _, err := codec.Parse(full[:3])
	if !errors.Is(err, ErrShortFrame) {
		t.Errorf("Parse(truncated) error = %v, want ErrShortFrame", err)
	}
}

func TestParseBadChecksumIsBadFrame(t *testing.T) {
	var codec Codec
	full := BuildFixed(0x00, 0x01)
	full[3] ^= 0xff // corrupt the checksum byte
	_, _, err := codec.Parse(full)
	if !errors.Is(err, ErrBadFrame) {
		t.Errorf("Parse(bad checksum) error = %v, want ErrBadFrame", err)
	}
}

func TestParseUnknownStartByteIsBadFrame(t *testing.T) {
	var codec Codec
	_, _, err := codec.Parse([]byte{0xff, 0x00})
	if !errors.Is(err, ErrBadFrame) {
		t.Errorf("Parse(garbage) error = %v, want ErrBadFrame", err)
	}
}
