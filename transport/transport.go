// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package transport abstracts the byte stream a ConnectionDriver runs over.
// FT 1.2 is, per spec.md §1, "typically TCP, acting as a serial-line
// substitute" — Listener accepts either a TCP listener or (Linux-only) a
// literal serial device behind the same io.ReadWriteCloser shape.
package transport

import (
	"io"
	"net"
)

// Conn is the byte stream a ConnectionDriver reads and writes. Both a TCP
// connection and a serial port satisfy it.
type Conn interface {
	io.ReadWriteCloser
}

// Listener accepts Conns. Grounded on Yobol-go-iec104's server.go accept
// loop shape, generalized to also yield a single pre-opened serial Conn.
type Listener interface {
	Accept() (Conn, error)
	Close() error
}

// tcpListener adapts a net.Listener to Listener.
type tcpListener struct {
	ln net.Listener
}

// ListenTCP returns a Listener accepting TCP connections at addr.
func ListenTCP(addr string) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &tcpListener{ln: ln}, nil
}

func (t *tcpListener) Accept() (Conn, error) {
	return t.ln.Accept()
}

func (t *tcpListener) Close() error {
	return t.ln.Close()
}
