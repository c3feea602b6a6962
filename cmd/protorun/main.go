// Copyright 2026 The protoCore-sub001 Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command protorun is the reference embedding of the runtime: it
// constructs a Space from a host-supplied config, starts the
// background collector, mints the initial thread with argc/argv as
// its positional arguments, and joins it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/numaes/protoCore-sub001/config"
	"github.com/numaes/protoCore-sub001/debug"
	"github.com/numaes/protoCore-sub001/gc"
	"github.com/numaes/protoCore-sub001/heap"
	"github.com/numaes/protoCore-sub001/plist"
	"github.com/numaes/protoCore-sub001/pstring"
	"github.com/numaes/protoCore-sub001/thread"
	"github.com/numaes/protoCore-sub001/tuple"
	"github.com/numaes/protoCore-sub001/value"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to built-in tunables if empty or missing)")
	gcSleep := flag.Duration("gc-sleep", 0, "override the collector's idle period (0 keeps the config/default value)")
	dumpHeap := flag.String("dump-heap", "", "on exit, write a zstd-compressed heap snapshot to this path")
	flag.Parse()

	logger := log.New(os.Stderr, "protorun: ", log.Lshortfile)

	cfg := heap.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			logger.Fatalf("loading config: %s", err)
		}
		cfg = loaded
	}
	if *gcSleep > 0 {
		cfg.GCSleepMilliseconds = int(gcSleep.Milliseconds())
	}

	space := heap.NewSpace(cfg, logger)

	gcCtx, cancelGC := context.WithCancel(context.Background())
	collector := gc.New(space, gc.Config{Logf: logger.Printf})
	go collector.Run(gcCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("signal received, stopping collector")
		cancelGC()
	}()

	name := uuid.NewString()
	mainThread := thread.New(space, name)
	ctx := mainThread.Context()

	args := flag.Args()
	argv := plist.Empty(ctx)
	for _, a := range args {
		argv = plist.AppendLast(ctx, argv, pstring.FromString(ctx, a))
	}
	posArgs := tuple.FromWords(ctx, []value.Word{value.FromSmallInt(int64(len(args))), argv})

	// A host embedding this runtime would resolve its guest program's
	// entry point here and call it with posArgs; protorun has no guest
	// program of its own, so it just demonstrates the handshake and
	// reports what it built.
	logger.Printf("thread %q started with %d positional arguments (%v)", name, len(args), tuple.Flatten(posArgs))
	mainThread.Exit()
	mainThread.Join()

	if *dumpHeap != "" {
		if err := writeHeapSnapshot(space, *dumpHeap); err != nil {
			logger.Printf("warning: heap snapshot failed: %s", err)
		}
	}

	cancelGC()
	time.Sleep(10 * time.Millisecond)
}

func writeHeapSnapshot(space *heap.Space, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	rep := debug.Snapshot(space)
	return debug.WriteSnapshot(f, rep)
}
