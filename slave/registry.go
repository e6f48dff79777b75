// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package slave

import (
	"sync"

	"github.com/Tonygratta/iec101-srv/clog"
)

// Registry enforces the connection admission limit (spec.md §5, grounded on
// original_source/server-async.py's MAX_CONNECTIONS / conn_accept check).
type Registry struct {
	clog.Clog

	mu      sync.Mutex
	max     int
	servers map[*Server]struct{}
}

// NewRegistry returns a Registry admitting up to max concurrent servers.
func NewRegistry(max int) *Registry {
	r := &Registry{max: max, servers: make(map[*Server]struct{})}
	r.Clog = clog.NewLogger("registry")
	r.LogMode(true)
	return r
}

// Admit registers s if under the admission limit. ok is false when the
// caller must close the connection without any protocol traffic.
func (r *Registry) Admit(s *Server) (ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.servers) >= r.max {
		r.Warn("connection rejected: at admission limit (%d)", r.max)
		return false
	}
	r.servers[s] = struct{}{}
	r.Debug("connection admitted, count=%d", len(r.servers))
	return true
}

// Release removes s, freeing one admission slot.
func (r *Registry) Release(s *Server) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.servers, s)
	r.Debug("connection released, count=%d", len(r.servers))
}
