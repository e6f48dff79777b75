// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import "errors"

// Sentinel errors returned while building or parsing an ASDU.
var (
	ErrParam             = errors.New("asdu: invalid params")
	ErrInfoObjAddrFit    = errors.New("asdu: information object address does not fit configured width")
	ErrTypeIdentifier    = errors.New("asdu: unknown or unsupported type identifier")
	ErrCmdCause          = errors.New("asdu: invalid cause of transmission for a command")
	ErrNotAnyObjInfo     = errors.New("asdu: no information object appended")
	ErrLengthOutOfRange  = errors.New("asdu: apdu length out of range")
	ErrTypeIDNotMatch    = errors.New("asdu: type identifier does not match decoder")
	ErrCommonAddrZero    = errors.New("asdu: common address must not be zero")
	ErrCommonAddrFit     = errors.New("asdu: common address does not fit configured width")
	ErrOriginAddrFit     = errors.New("asdu: originator address not enabled by params")
	ErrCauseZero         = errors.New("asdu: cause of transmission must not be zero")
	ErrInfoObjIndexFit   = errors.New("asdu: information object index out of range")
)
