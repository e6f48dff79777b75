// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
	"time"
)

// ASDUSizeMax is the largest ASDU the monitored-information builders will
// produce (checkValid rejects larger ones) and the size of each ASDU's
// preallocated buffer. UnmarshalBinary does not enforce it.
const ASDUSizeMax = 249

// ASDU format
//       | data unit identification | information object <1..n> |
//
//       | <------------  data unit identification ------------>|
//       | typeID | variable struct | cause  |  common address  |
// bytes |    1   |      1          | [1,2]  |      [1,2]       |
//       | <------------  information object ------------------>|
//       | object address | element set                         |
// bytes |     [1,2,3]    |                                     |

// Params holds the ASDU-wide structure parameters.
// See companion standard 101, subclass 7.1.
type Params struct {
	// CauseSize is the cause-of-transmission field width, 1 or 2 octets.
	// 2 activates the originator address byte.
	CauseSize int
	// OrigAddress is the originator address, applicable when CauseSize == 2.
	OrigAddress OriginAddr
	// CommonAddrSize is the common address field width, 1 or 2 octets.
	CommonAddrSize int
	// InfoObjAddrSize is the information object address field width, 1..3 octets.
	InfoObjAddrSize int
	// InfoObjTimeZone controls time tag interpretation. This slave never sends
	// a time-tagged type, but parsers and test helpers still need a zone.
	InfoObjTimeZone *time.Location
}

// DefaultParams is this slave's wire configuration: one-octet cause of
// transmission, one-octet common address, two-octet information object
// address — the width original_source/iec101srv.py's ASDU length fields
// (length_1=9 for M_SP_NA_1, length_1=13 for M_ME_NC_1) imply. Not meant to
// vary per connection — every server instance shares it.
var DefaultParams = &Params{CauseSize: 1, CommonAddrSize: 1, InfoObjAddrSize: 2, InfoObjTimeZone: time.UTC}

// Valid reports whether the params fall within the ranges the standard allows.
func (sf Params) Valid() error {
	if (sf.CauseSize < 1 || sf.CauseSize > 2) ||
		(sf.CommonAddrSize < 1 || sf.CommonAddrSize > 2) ||
		(sf.InfoObjAddrSize < 1 || sf.InfoObjAddrSize > 3) ||
		(sf.InfoObjTimeZone == nil) {
		return ErrParam
	}
	return nil
}

// ValidCommonAddr reports whether addr fits the configured common address width.
func (sf Params) ValidCommonAddr(addr CommonAddr) error {
	if addr == InvalidCommonAddr {
		return ErrCommonAddrZero
	}
	if bits.Len(uint(addr)) > sf.CommonAddrSize*8 {
		return ErrCommonAddrFit
	}
	return nil
}

// IdentifierSize returns the data unit identification's octet size.
func (sf Params) IdentifierSize() int {
	return 2 + sf.CauseSize + sf.CommonAddrSize
}

// Identifier is the data unit identification shared by every information
// object in one ASDU.
type Identifier struct {
	Type       TypeID
	Variable   VariableStruct
	Coa        CauseOfTransmission
	OrigAddr   OriginAddr
	CommonAddr CommonAddr
}

// String returns "TID COT [orig@]addr".
func (id Identifier) String() string {
	if id.OrigAddr == 0 {
		return fmt.Sprintf("TID<%s> COT<%s> @%d", id.Type, id.Coa, id.CommonAddr)
	}
	return fmt.Sprintf("TID<%s> COT<%s> %d@%d", id.Type, id.Coa, id.OrigAddr, id.CommonAddr)
}

// ASDU (Application Service Data Unit) is one application message: a data
// unit identifier plus a run of same-typed information objects.
type ASDU struct {
	*Params
	Identifier
	infoObj   []byte            // serialized information object(s)
	bootstrap [ASDUSizeMax]byte // avoids an allocation per ASDU on the hot path
}

// Connect is what an ASDU needs to send a reply: the params it was framed
// with and a sink that carries another ASDU onward through the link layer.
type Connect interface {
	Params() *Params
	Send(u *ASDU) error
}

// NewEmptyASDU returns an ASDU with no information objects yet appended.
func NewEmptyASDU(p *Params) *ASDU {
	a := &ASDU{Params: p}
	lenDUI := a.IdentifierSize()
	a.infoObj = a.bootstrap[lenDUI:lenDUI]
	return a
}

// NewASDU returns an ASDU with the given identifier and no information objects.
func NewASDU(p *Params, identifier Identifier) *ASDU {
	a := NewEmptyASDU(p)
	a.Identifier = identifier
	return a
}

// Clone returns a deep copy of sf.
func (sf *ASDU) Clone() *ASDU {
	r := NewASDU(sf.Params, sf.Identifier)
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return r
}

// SetVariableNumber sets the information object count.
// See companion standard 101, subclass 7.2.2.
func (sf *ASDU) SetVariableNumber(n int) error {
	if n >= 128 {
		return ErrInfoObjIndexFit
	}
	sf.Variable.Number = byte(n)
	return nil
}

// Reply returns a new ASDU addressing addr, carrying sf's information
// objects under cause c.
func (sf *ASDU) Reply(c Cause, addr CommonAddr) *ASDU {
	sf.CommonAddr = addr
	r := NewASDU(sf.Params, sf.Identifier)
	r.Coa.Cause = c
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return r
}

// SendReplyMirror sends a copy of sf back out c under a different cause,
// echoing type, address and information objects unchanged.
func (sf *ASDU) SendReplyMirror(c Connect, cause Cause) error {
	r := NewASDU(sf.Params, sf.Identifier)
	r.Coa.Cause = cause
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return c.Send(r)
}

// String returns a human-readable summary without dumping raw bytes.
func (sf *ASDU) String() string {
	if sf == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(sf.Identifier.String())
	b.WriteByte(' ')
	b.WriteString("VSQ<" + sf.Variable.String() + ">")
	_, _ = fmt.Fprintf(&b, " IOA-Width=%d", sf.InfoObjAddrSize)

	if len(sf.infoObj) == 0 {
		return b.String()
	}

	saved := sf.infoObj
	defer func() { sf.infoObj = saved }()

	switch sf.Type {
	case M_SP_NA_1:
		infos := sf.GetSinglePoint()
		_, _ = fmt.Fprintf(&b, " items=%d", len(infos))
		for i, it := range infos {
			if i == 0 {
				b.WriteString(" [")
			} else {
				b.WriteString(", ")
			}
			_, _ = fmt.Fprintf(&b, "%d=%t", it.Ioa, it.Value)
			if it.Qds != QDSGood {
				_, _ = fmt.Fprintf(&b, " QDS=0x%02x", byte(it.Qds))
			}
		}
		if len(infos) > 0 {
			b.WriteByte(']')
		}
	case M_ME_NC_1:
		infos := sf.GetMeasuredValueFloat()
		_, _ = fmt.Fprintf(&b, " items=%d", len(infos))
		for i, it := range infos {
			if i == 0 {
				b.WriteString(" [")
			} else {
				b.WriteString(", ")
			}
			_, _ = fmt.Fprintf(&b, "%d=%g", it.Ioa, it.Value)
			if it.Qds != QDSGood {
				_, _ = fmt.Fprintf(&b, " QDS=0x%02x", byte(it.Qds))
			}
		}
		if len(infos) > 0 {
			b.WriteByte(']')
		}
	case C_IC_NA_1:
		ioa, qoi := sf.GetInterrogationCmd()
		_, _ = fmt.Fprintf(&b, " IOA=%d QOI=%d", ioa, byte(qoi))
	default:
		n := int(sf.Variable.Number)
		if n == 0 {
			n = 1
		}
		_, _ = fmt.Fprintf(&b, " items=%d payload=%dB", n, len(sf.infoObj))
	}

	return b.String()
}

// MarshalBinary honors encoding.BinaryMarshaler.
func (sf *ASDU) MarshalBinary() (data []byte, err error) {
	switch {
	case sf.Coa.Cause == Unused:
		return nil, ErrCauseZero
	case !(sf.CauseSize == 1 || sf.CauseSize == 2):
		return nil, ErrParam
	case sf.CauseSize == 1 && sf.OrigAddr != 0:
		return nil, ErrOriginAddrFit
	case sf.CommonAddr == InvalidCommonAddr:
		return nil, ErrCommonAddrZero
	case !(sf.CommonAddrSize == 1 || sf.CommonAddrSize == 2):
		return nil, ErrParam
	case sf.CommonAddrSize == 1 && sf.CommonAddr != GlobalCommonAddr && sf.CommonAddr >= 255:
		return nil, ErrParam
	}

	raw := sf.bootstrap[:(sf.IdentifierSize() + len(sf.infoObj))]
	raw[0] = byte(sf.Type)
	raw[1] = sf.Variable.Value()
	raw[2] = sf.Coa.Value()
	offset := 3
	if sf.CauseSize == 2 {
		raw[offset] = byte(sf.OrigAddr)
		offset++
	}
	if sf.CommonAddrSize == 1 {
		if sf.CommonAddr == GlobalCommonAddr {
			raw[offset] = 255
		} else {
			raw[offset] = byte(sf.CommonAddr)
		}
	} else {
		raw[offset] = byte(sf.CommonAddr)
		offset++
		raw[offset] = byte(sf.CommonAddr >> 8)
	}
	return raw, nil
}

// UnmarshalBinary honors encoding.BinaryUnmarshaler. Params must already be set.
func (sf *ASDU) UnmarshalBinary(rawAsdu []byte) error {
	if !(sf.CauseSize == 1 || sf.CauseSize == 2) ||
		!(sf.CommonAddrSize == 1 || sf.CommonAddrSize == 2) {
		return ErrParam
	}

	lenDUI := sf.IdentifierSize()
	if lenDUI > len(rawAsdu) {
		return io.EOF
	}

	sf.Type = TypeID(rawAsdu[0])
	sf.Variable = ParseVariableStruct(rawAsdu[1])
	sf.Coa = ParseCauseOfTransmission(rawAsdu[2])
	if sf.CauseSize == 1 {
		sf.OrigAddr = 0
	} else {
		sf.OrigAddr = OriginAddr(rawAsdu[3])
	}
	if sf.CommonAddrSize == 1 {
		sf.CommonAddr = CommonAddr(rawAsdu[lenDUI-1])
		if sf.CommonAddr == 255 {
			sf.CommonAddr = GlobalCommonAddr
		}
	} else {
		sf.CommonAddr = CommonAddr(rawAsdu[lenDUI-2]) | CommonAddr(rawAsdu[lenDUI-1])<<8
	}
	sf.infoObj = append(sf.bootstrap[lenDUI:lenDUI], rawAsdu[lenDUI:]...)
	return sf.fixInfoObjSize()
}

// fixInfoObjSize trims infoObj to the size the type/VSQ pair implies.
func (sf *ASDU) fixInfoObjSize() error {
	objSize, err := GetInfoObjSize(sf.Type)
	if err != nil {
		return err
	}

	var size int
	if sf.Variable.IsSequence {
		size = sf.InfoObjAddrSize + int(sf.Variable.Number)*objSize
	} else {
		size = int(sf.Variable.Number) * (sf.InfoObjAddrSize + objSize)
	}

	switch {
	case size == 0:
		return ErrInfoObjIndexFit
	case size > len(sf.infoObj):
		return io.EOF
	case size < len(sf.infoObj):
		sf.infoObj = sf.infoObj[:size]
	}

	return nil
}
