// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// SinglePoint is a measured value of a switch.
// See companion standard 101, subclass 7.2.6.1.
type SinglePoint byte

// SinglePoint defined
const (
	SPIOff SinglePoint = iota // close
	SPIOn                     // open
)

// Value single point to byte
func (sf SinglePoint) Value() byte {
	return byte(sf & 0x01)
}

// QualityDescriptor Quality descriptor flags attribute measured values.
// See companion standard 101, subclass 7.2.6.3.
type QualityDescriptor byte

// QualityDescriptor defined.
const (
	// QDSOverflow marks whether the value is beyond a predefined range.
	QDSOverflow QualityDescriptor = 1 << iota
	_                             // reserve
	_                             // reserve
	_                             // reserve
	// QDSBlocked flags that the value is blocked for transmission; the
	// value remains in the state that was acquired before it was blocked.
	QDSBlocked
	// QDSSubstituted flags that the value was provided by the input of
	// an operator (dispatcher) instead of an automatic source.
	QDSSubstituted
	// QDSNotTopical flags that the most recent update was unsuccessful.
	QDSNotTopical
	// QDSInvalid flags that the value was incorrectly acquired.
	QDSInvalid

	// QDSGood means no flags, no problems.
	QDSGood QualityDescriptor = 0
)

// COICause is the cause of initialization.
// See companion standard 101, subclass 7.2.6.21.
type COICause byte

// COICause defined.
const (
	COILocalPowerOn  COICause = iota // local power switched on
	COILocalHandReset                // local manual reset
	COIRemoteReset                   // remote reset
)

// CauseOfInitial is the full cause-of-initialization octet: the reason the
// station (re)initialized, plus whether local parameters changed.
type CauseOfInitial struct {
	Cause         COICause
	IsLocalChange bool
}

// ParseCauseOfInitial parses a byte into a CauseOfInitial.
func ParseCauseOfInitial(b byte) CauseOfInitial {
	return CauseOfInitial{
		Cause:         COICause(b & 0x7f),
		IsLocalChange: b&0x80 == 0x80,
	}
}

// Value encodes the cause of initialization to a byte.
func (sf CauseOfInitial) Value() byte {
	if sf.IsLocalChange {
		return byte(sf.Cause | 0x80)
	}
	return byte(sf.Cause)
}

// QualifierOfInterrogation Qualifier Of Interrogation
// See companion standard 101, subclass 7.2.6.22.
type QualifierOfInterrogation byte

// QualifierOfInterrogation defined
const (
	// <1..19>: reserved for standard definitions
	QOIStation QualifierOfInterrogation = 20 + iota // interrogated by station interrogation
	QOIGroup1                                       // interrogated by group 1 interrogation
	QOIGroup2                                        // interrogated by group 2 interrogation
	QOIGroup3                                        // interrogated by group 3 interrogation
	QOIGroup4                                        // interrogated by group 4 interrogation
	QOIGroup5                                        // interrogated by group 5 interrogation
	QOIGroup6                                        // interrogated by group 6 interrogation
	QOIGroup7                                        // interrogated by group 7 interrogation
	QOIGroup8                                        // interrogated by group 8 interrogation
	QOIGroup9                                        // interrogated by group 9 interrogation
	QOIGroup10                                       // interrogated by group 10 interrogation
	QOIGroup11                                       // interrogated by group 11 interrogation
	QOIGroup12                                       // interrogated by group 12 interrogation
	QOIGroup13                                       // interrogated by group 13 interrogation
	QOIGroup14                                       // interrogated by group 14 interrogation
	QOIGroup15                                       // interrogated by group 15 interrogation
	QOIGroup16                                       // interrogated by group 16 interrogation

	// QOIUnused is the unused/default qualifier value.
	QOIUnused QualifierOfInterrogation = 0
)
