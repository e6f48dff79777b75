// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

//go:build linux

package transport

import (
	"errors"

	"github.com/daedaluz/goserial"
)

// ErrSerialSingleUse is returned by a second Accept on a serialListener: a
// serial line has exactly one peer, unlike a TCP listener's many.
var ErrSerialSingleUse = errors.New("transport: serial device already accepted")

// serialListener wraps one already-opened serial device so it can be handed
// to the same ConnectionDriver a TCP Listener feeds. FT 1.2 unbalanced mode
// genuinely runs over a real serial line in the field; this is that path.
type serialListener struct {
	port   *serial.Port
	served bool
}

// OpenSerial opens the named serial device (e.g. "/dev/ttyUSB0") and returns
// a Listener whose single Accept yields it.
func OpenSerial(name string) (Listener, error) {
	port, err := serial.Open(name, serial.NewOptions())
	if err != nil {
		return nil, err
	}
	return &serialListener{port: port}, nil
}

func (s *serialListener) Accept() (Conn, error) {
	if s.served {
		return nil, ErrSerialSingleUse
	}
	s.served = true
	return s.port, nil
}

func (s *serialListener) Close() error {
	return s.port.Close()
}
