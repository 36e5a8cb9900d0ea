// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/ledgerstore/ledgerstored/background"
)

func TestStartStop(t *testing.T) {

	var started int32
	var stopped int32

	proc := func(args interface{}, shutdown <-chan struct{}) {
		atomic.AddInt32(&started, 1)
		<-shutdown
		atomic.AddInt32(&stopped, 1)
	}

	processes := background.Processes{proc, proc, proc}

	b := background.Start(processes, nil)

	// allow the goroutines to run
	time.Sleep(20 * time.Millisecond)

	if 3 != atomic.LoadInt32(&started) {
		t.Fatalf("started: %d  expected: 3", started)
	}

	b.Stop()

	if 3 != atomic.LoadInt32(&stopped) {
		t.Fatalf("stopped: %d  expected: 3", stopped)
	}
}

func TestArgsArePassed(t *testing.T) {

	result := make(chan string, 1)

	proc := func(args interface{}, shutdown <-chan struct{}) {
		result <- args.(string)
		<-shutdown
	}

	b := background.Start(background.Processes{proc}, "the-argument")
	defer b.Stop()

	select {
	case s := <-result:
		if "the-argument" != s {
			t.Fatalf("args: %q  expected: %q", s, "the-argument")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for process to start")
	}
}

func TestStopNil(t *testing.T) {
	var b *background.T
	b.Stop() // must not panic
}
