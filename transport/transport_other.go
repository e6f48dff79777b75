// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

//go:build !linux

package transport

import "errors"

// ErrSerialUnsupported is returned by OpenSerial on platforms other than
// Linux, where github.com/daedaluz/goserial's ioctl-based backend isn't
// built.
var ErrSerialUnsupported = errors.New("transport: serial backend only built on linux")

// OpenSerial is unavailable outside Linux builds.
func OpenSerial(name string) (Listener, error) {
	return nil, ErrSerialUnsupported
}
