// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import (
	"errors"
	"io"

	"github.com/Tonygratta/iec101-srv/cs101"
)

// readChunk is the minimum read size spec.md §4.7 recommends: large enough
// to cover the longest possible FT 1.2 frame (a variable frame with a
// 253-octet ASDU is 261 bytes).
const readChunk = 512

// ConnectionDriver owns one accepted connection: it reads inbound bytes,
// feeds complete frames to Server.Step, finalizes each response's checksum,
// applies the grinder, and writes. One driver runs per connection
// (spec.md §4.7).
type ConnectionDriver struct {
	conn   io.ReadWriteCloser
	server *Server
	codec  cs101.Codec
	buf    []byte
}

// NewConnectionDriver returns a driver for conn, backed by server.
func NewConnectionDriver(conn io.ReadWriteCloser, server *Server) *ConnectionDriver {
	return &ConnectionDriver{conn: conn, server: server}
}

// Run reads and responds until the stream errors or is closed. On return,
// the server's link state has been reset to NotReset.
func (d *ConnectionDriver) Run() error {
	defer d.server.unreset()

	chunk := make([]byte, readChunk)
	for {
		n, err := d.conn.Read(chunk)
		if n > 0 {
			d.buf = append(d.buf, chunk[:n]...)
			d.drain()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// drain parses and answers every complete frame currently buffered,
// discarding one byte and retrying on a malformed frame
// (spec.md §7: frame-format errors are silently dropped, never
// error-framed back to the master).
func (d *ConnectionDriver) drain() {
	for {
		fr, n, err := d.codec.Parse(d.buf)
		switch {
		case err == nil:
			d.buf = d.buf[n:]
			d.respond(fr)
		case errors.Is(err, cs101.ErrShortFrame):
			return
		case errors.Is(err, cs101.ErrBadFrame):
			d.buf = d.buf[1:]
		default:
			return
		}
		if len(d.buf) == 0 {
			return
		}
	}
}

// respond runs fr through the link state machine — which finalizes the
// response's checksum as part of building it — applies the grinder, and
// writes whatever survives.
func (d *ConnectionDriver) respond(fr cs101.Frame) {
	out := d.server.Step(fr)
	if out == nil {
		return
	}
	if d.server.postprocess != nil {
		out = d.server.postprocess(out)
	}
	if len(out) == 0 {
		return
	}
	if _, err := d.conn.Write(out); err != nil {
		d.server.Error("write response: %v", err)
	}
}

// unreset transitions the server to NotReset on stream EOF or error,
// spec.md §4.7.
func (s *Server) unreset() {
	s.state = stateNotReset
}
