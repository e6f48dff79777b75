// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package asdu implements the Application Service Data Unit layer of
// IEC 60870-5-101: type identification, cause of transmission, addressing
// and the monitored-information encodings this slave needs.
package asdu

import "fmt"

// TypeID is the ASDU type identification.
// See companion standard 101, subclass 7.2.1.
type TypeID uint8

// The subset of the standard ASDU type identification this slave speaks.
// Unused type identifiers from the companion standard are intentionally
// not declared here; the codec library only grows to cover a type once a
// component sends or parses it.
const (
	// M_SP_NA_1: single-point information.
	// See companion standard 101, subclass 7.3.1.1.
	M_SP_NA_1 TypeID = 1
	// M_ME_NC_1: measured value, short floating point number.
	// See companion standard 101, subclass 7.3.1.13.
	M_ME_NC_1 TypeID = 13
	// C_IC_NA_1: interrogation command.
	// See companion standard 101, subclass 7.3.4.1.
	C_IC_NA_1 TypeID = 100
	// M_EI_NA_1: end of initialization.
	// See companion standard 101, subclass 7.3.3.1.
	M_EI_NA_1 TypeID = 70
)

func (sf TypeID) String() string {
	switch sf {
	case M_SP_NA_1:
		return "TID<M_SP_NA_1>"
	case M_ME_NC_1:
		return "TID<M_ME_NC_1>"
	case C_IC_NA_1:
		return "TID<C_IC_NA_1>"
	case M_EI_NA_1:
		return "TID<M_EI_NA_1>"
	default:
		return fmt.Sprintf("TID<%d>", uint8(sf))
	}
}

// infoObjSize maps the type identification to its fixed information-element
// octet size (excluding the information object address). Type extensions
// must register here.
var infoObjSize = map[TypeID]int{
	M_SP_NA_1: 1,
	M_ME_NC_1: 5,
	C_IC_NA_1: 1,
	M_EI_NA_1: 1,
}

// GetInfoObjSize returns the serial octet size of an information element for
// the given type identification.
func GetInfoObjSize(id TypeID) (int, error) {
	size, exists := infoObjSize[id]
	if !exists {
		return 0, ErrTypeIdentifier
	}
	return size, nil
}

// VariableStruct is the variable structure qualifier.
// See companion standard 101, subclass 7.2.2.
type VariableStruct struct {
	Number     byte
	IsSequence bool
}

// ParseVariableStruct parses a byte into a variable structure qualifier.
func ParseVariableStruct(b byte) VariableStruct {
	return VariableStruct{
		Number:     b & 0x7f,
		IsSequence: (b & 0x80) == 0x80,
	}
}

// Value encodes the variable structure qualifier to a byte.
func (sf VariableStruct) Value() byte {
	if sf.IsSequence {
		return sf.Number | 0x80
	}
	return sf.Number
}

func (sf VariableStruct) String() string {
	if sf.IsSequence {
		return fmt.Sprintf("VSQ<sq,%d>", sf.Number)
	}
	return fmt.Sprintf("VSQ<%d>", sf.Number)
}

// Cause is the cause of transmission, bits 5..0.
// See companion standard 101, subclass 7.2.3.
type Cause byte

// Cause of transmission values used by this slave.
const (
	Unused                Cause = iota // 0: unused
	Periodic                           // 1: periodic, cyclic
	Background                         // 2: background scan
	Spontaneous                        // 3: spontaneous
	Initialized                        // 4: initialized
	Request                            // 5: requested
	Activation                         // 6: activation
	ActivationCon                      // 7: activation confirmation
	Deactivation                       // 8: deactivation
	DeactivationCon                    // 9: deactivation confirmation
	ActivationTerm                     // 10: activation termination
	ReturnInfoRemote                   // 11: return info caused by remote command
	ReturnInfoLocal                    // 12: return info caused by local command
)

// InterrogatedByStation is the COT a general-interrogation sweep reports with.
const InterrogatedByStation Cause = 20

// CauseOfTransmission is the full cause-of-transmission octet.
type CauseOfTransmission struct {
	IsTest     bool
	IsNegative bool
	Cause      Cause
}

// ParseCauseOfTransmission parses a byte into a CauseOfTransmission.
func ParseCauseOfTransmission(b byte) CauseOfTransmission {
	return CauseOfTransmission{
		IsNegative: (b & 0x40) == 0x40,
		IsTest:     (b & 0x80) == 0x80,
		Cause:      Cause(b & 0x3f),
	}
}

// Value encodes the cause of transmission to a byte.
func (sf CauseOfTransmission) Value() byte {
	v := sf.Cause
	if sf.IsNegative {
		v |= 0x40
	}
	if sf.IsTest {
		v |= 0x80
	}
	return byte(v)
}

func (sf CauseOfTransmission) String() string {
	return fmt.Sprintf("COT<%d>", sf.Cause)
}

// OriginAddr is the originator address, applicable when Params.CauseSize == 2.
type OriginAddr byte

// InfoObjAddr is the information object address.
// See companion standard 101, subclass 7.2.5.
type InfoObjAddr uint

// InfoObjAddrIrrelevant marks an information object address as irrelevant.
const InfoObjAddrIrrelevant InfoObjAddr = 0

// CommonAddr is the ASDU common (station) address.
// The width is controlled by Params.CommonAddrSize.
type CommonAddr uint16

// Special common addresses.
const (
	// InvalidCommonAddr is the unused common address.
	InvalidCommonAddr CommonAddr = 0
	// GlobalCommonAddr is the broadcast address.
	GlobalCommonAddr CommonAddr = 65535
)
