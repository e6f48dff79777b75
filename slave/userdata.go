// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import (
	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/cs101"
)

// handleUserData processes the fcode-3 (confirmed user data) payload
// (spec.md §4.5). The only inbound ASDU type this slave accepts is 100
// (C_IC_NA_1, general interrogation); anything else gets "service not
// implemented".
func handleUserData(s *Server, asduBytes []byte) []byte {
	u := asdu.NewEmptyASDU(s.params)
	if err := u.UnmarshalBinary(asduBytes); err != nil {
		s.Warn("handleUserData: malformed ASDU: %v", err)
		return cs101.BuildFixed(cs101.FcNotSupported|s.ctrlByte(), s.cfg.LinkAddr)
	}

	if u.Type != asdu.C_IC_NA_1 {
		return cs101.BuildFixed(cs101.FcNotSupported|s.ctrlByte(), s.cfg.LinkAddr)
	}

	s.inrgList.Union(s.points)
	return cs101.BuildFixed(cs101.FcAck|s.ctrlByte(), s.cfg.LinkAddr)
}
