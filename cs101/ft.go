// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs101

// Using FT1.2 frame format
const (
	startVarFrame byte = 0x68 // variable length frame start character
	startFixFrame byte = 0x10 // fixed length frame start character
	endFrame      byte = 0x16
)

// Outbound (slave to master) control-byte bits, spec.md §4.3/§6. This core
// places DFC/ACD at bits 0/1 rather than the real standard's bits 4/5 for
// secondary stations — an intentional redesign spec.md spells out, not a
// bug carried over from the standard's bit layout.
const (
	DFC byte = 1 << 0 // data flow control: slave is backed up, stop sending
	ACD byte = 1 << 1 // access demand: slave has class-1 data pending
)

// Function codes, master to slave (PRM = 1), consulted by the link-layer
// state machine's fcode switch (link.go).
const (
	FcReset         byte = 0x00 // reset of remote link / reset of user process
	FcConfirmedData byte = 0x03 // user data, confirmation required
	FcStatusRequest byte = 0x09 // request link status
	FcReqClassTwo   byte = 0x0a // request class-2 (low priority) data
	FcReqClassOne   byte = 0x0b // request class-1 (high priority) data
)

// Function codes, slave to master (PRM = 0), used to build outbound fixed
// and variable frames.
const (
	FcAck           byte = 0x00 // confirm: positively acknowledged
	FcUserData      byte = 0x08 // user data response
	FcNoData        byte = 0x09 // requested data not available
	FcLinkStatus    byte = 0x0b // link status / access demand response
	FcNotSupported  byte = 0x0f // requested service not implemented
)
