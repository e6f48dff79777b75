// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Command iec101srv runs an IEC 60870-5-101 unbalanced-mode controlled
// station over TCP (or, on Linux, a real serial line), driving a
// process-data simulator against a configurable set of points. Grounded on
// original_source/server-async.py's main().
package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tonygratta/iec101-srv/asdu"
	"github.com/Tonygratta/iec101-srv/point"
	"github.com/Tonygratta/iec101-srv/simulate"
	"github.com/Tonygratta/iec101-srv/slave"
	"github.com/Tonygratta/iec101-srv/transport"
)

func main() {
	var (
		listenAddr    = flag.String("listen", "127.0.0.1:4001", "TCP address to listen on")
		serialDevice  = flag.String("serial", "", "serial device to use instead of TCP, e.g. /dev/ttyUSB0 (Linux only)")
		asduAddr      = flag.Uint("asdu-addr", 1, "common ASDU address")
		linkAddr      = flag.Uint("link-addr", 1, "link-layer address for all outbound frames")
		background    = flag.Bool("background", true, "enable cyclic background scanning")
		maxConns      = flag.Int("max-conns", 3, "maximum concurrent connections")
		discrCount    = flag.Int("discrete-count", 48, "number of M_SP_NA_1 discrete points to simulate")
		discrStart    = flag.Int("discrete-start", 1, "first discrete point IOA")
		measCount     = flag.Int("measured-count", 32, "number of M_ME_NC_1 measured points to simulate")
		measStart     = flag.Int("measured-start", 1001, "first measured point IOA")
		minUpdateSecs = flag.Int("min-update-seconds", 5, "minimum point re-arm interval")
		maxUpdateSecs = flag.Int("max-update-seconds", 300, "maximum point re-arm interval")
		timezoneSecs  = flag.Int("timezone-seconds", 3*3600, "offset added to point timestamps")
		grind         = flag.Bool("grind", false, "enable fault-injection postprocess hook")
		grindProb     = flag.Int("grind-probability", 16, "grinder corruption denominator")
	)
	flag.Parse()

	cfg := slave.DefaultConfig()
	cfg.ListenAddr = *listenAddr
	cfg.SerialDevice = *serialDevice
	cfg.AsduAddr = asdu.CommonAddr(*asduAddr)
	cfg.LinkAddr = byte(*linkAddr)
	cfg.Background = *background
	cfg.MaxConnections = *maxConns
	cfg.GrinderEnabled = *grind
	cfg.GrinderProbability = *grindProb
	cfg.Timezone = time.Duration(*timezoneSecs) * time.Second
	if err := cfg.Valid(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	points := buildPoints(*discrCount, *discrStart, *measCount, *measStart)
	gens := buildGenerators(points, cfg.Timezone, *minUpdateSecs, *maxUpdateSecs)

	stop := make(chan struct{})
	go simulate.Run(gens, 250*time.Millisecond, stop)

	ln, err := listen(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start listener")
	}
	logrus.Infof("iec101srv listening (asdu_addr=%d link_addr=%d)", cfg.AsduAddr, cfg.LinkAddr)

	registry := slave.NewRegistry(cfg.MaxConnections)
	params := asdu.DefaultParams
	for {
		conn, err := ln.Accept()
		if err != nil {
			logrus.WithError(err).Error("accept")
			continue
		}
		go serve(conn, cfg, params, points, registry)
	}
}

func serve(conn transport.Conn, cfg slave.Config, params *asdu.Params, points []*point.Point, registry *slave.Registry) {
	srv := slave.NewServer(cfg, params)
	if !registry.Admit(srv) {
		_ = conn.Close()
		return
	}
	defer registry.Release(srv)

	srv.AddPoints(points)
	defer srv.RemoveAllPoints()

	if cfg.GrinderEnabled {
		grinder := slave.NewGrinder(cfg.GrinderProbability, time.Now().UnixNano())
		srv.SetPostprocess(grinder.Apply)
	}

	driver := slave.NewConnectionDriver(conn, srv)
	if err := driver.Run(); err != nil {
		logrus.WithError(err).Warn("connection ended")
	}
}

func listen(cfg slave.Config) (transport.Listener, error) {
	if cfg.SerialDevice != "" {
		return transport.OpenSerial(cfg.SerialDevice)
	}
	return transport.ListenTCP(cfg.ListenAddr)
}

func buildPoints(discrCount, discrStart, measCount, measStart int) []*point.Point {
	points := make([]*point.Point, 0, discrCount+measCount)
	for i := 0; i < measCount; i++ {
		points = append(points, point.New(asdu.M_ME_NC_1, asdu.InfoObjAddr(measStart+i)))
	}
	for i := 0; i < discrCount; i++ {
		points = append(points, point.New(asdu.M_SP_NA_1, asdu.InfoObjAddr(discrStart+i)))
	}
	return points
}

func buildGenerators(points []*point.Point, timezone time.Duration, minUpdateSecs, maxUpdateSecs int) []simulate.Generator {
	min := time.Duration(minUpdateSecs) * time.Second
	max := time.Duration(maxUpdateSecs) * time.Second
	gens := make([]simulate.Generator, 0, len(points))
	for i, p := range points {
		seed := int64(i) + 1
		switch p.Type {
		case asdu.M_ME_NC_1:
			gens = append(gens, simulate.NewMeasured(p, timezone, min, max, seed))
		case asdu.M_SP_NA_1:
			gens = append(gens, simulate.NewDiscrete(p, timezone, min, max, seed))
		}
	}
	return gens
}
