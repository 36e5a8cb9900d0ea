// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"sync"
	"testing"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/transaction"
)

func testInitiator(t *testing.T) owner.Address {
	address, _, err := owner.Generate()
	if nil != err {
		t.Fatalf("owner generate error: %s", err)
	}
	return address
}

func TestEmitAndDrainOrder(t *testing.T) {
	initiator := testInitiator(t)
	ctx := transaction.NewContext(initiator)

	if ctx.Initiator() != initiator {
		t.Fatal("initiator mismatch")
	}

	kinds := []transaction.EventKind{
		transaction.EventCreated,
		transaction.EventSplit,
		transaction.EventTransferred,
	}
	for _, kind := range kinds {
		err := ctx.Emit(transaction.Event{
			Kind:       kind,
			ResourceId: resourceid.New([]byte{byte(kind)}),
		})
		if nil != err {
			t.Fatalf("emit error: %s", err)
		}
	}

	if 3 != ctx.Pending() {
		t.Fatalf("pending: %d  expected: 3", ctx.Pending())
	}

	events, err := ctx.Drain()
	if nil != err {
		t.Fatalf("drain error: %s", err)
	}
	if 3 != len(events) {
		t.Fatalf("drained: %d events  expected: 3", len(events))
	}

	for i, event := range events {
		if event.Kind != kinds[i] {
			t.Errorf("event %d kind: %s  expected: %s", i, event.Kind, kinds[i])
		}
		if uint64(i+1) != event.Sequence {
			t.Errorf("event %d sequence: %d  expected: %d", i, event.Sequence, i+1)
		}
	}
}

func TestDrainIsReadOnce(t *testing.T) {
	ctx := transaction.NewContext(testInitiator(t))

	_ = ctx.Emit(transaction.Event{Kind: transaction.EventCreated})

	_, err := ctx.Drain()
	if nil != err {
		t.Fatalf("first drain error: %s", err)
	}

	_, err = ctx.Drain()
	if fault.EventLogDrained != err {
		t.Fatalf("second drain error: %v  expected: %v", err, fault.EventLogDrained)
	}

	err = ctx.Emit(transaction.Event{Kind: transaction.EventRemoved})
	if fault.EventLogDrained != err {
		t.Fatalf("emit after drain error: %v  expected: %v", err, fault.EventLogDrained)
	}
}

func TestEmitNilContext(t *testing.T) {
	var ctx *transaction.Context
	if err := ctx.Emit(transaction.Event{}); fault.TransactionIsNil != err {
		t.Fatalf("error: %v  expected: %v", err, fault.TransactionIsNil)
	}
}

func TestConcurrentEmitKeepsAllEvents(t *testing.T) {
	ctx := transaction.NewContext(testInitiator(t))

	const workers = 8
	const each = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j += 1 {
				_ = ctx.Emit(transaction.Event{Kind: transaction.EventCreated})
			}
		}()
	}
	wg.Wait()

	events, err := ctx.Drain()
	if nil != err {
		t.Fatalf("drain error: %s", err)
	}
	if workers*each != len(events) {
		t.Fatalf("drained: %d events  expected: %d", len(events), workers*each)
	}

	// sequences are unique and dense
	seen := make(map[uint64]bool)
	for _, event := range events {
		if seen[event.Sequence] {
			t.Fatalf("duplicate sequence: %d", event.Sequence)
		}
		seen[event.Sequence] = true
	}
	for i := uint64(1); i <= workers*each; i += 1 {
		if !seen[i] {
			t.Fatalf("missing sequence: %d", i)
		}
	}
}

func TestEventKindText(t *testing.T) {
	items := []struct {
		kind     transaction.EventKind
		expected string
	}{
		{transaction.EventCreated, "Created"},
		{transaction.EventTransferred, "Transferred"},
		{transaction.EventSplit, "Split"},
		{transaction.EventMerged, "Merged"},
		{transaction.EventRemoved, "Removed"},
		{transaction.EventCapabilityIssued, "CapabilityIssued"},
	}
	for i, item := range items {
		if item.expected != item.kind.String() {
			t.Errorf("%d: kind string: %q  expected: %q", i, item.kind.String(), item.expected)
		}
		text, err := item.kind.MarshalText()
		if nil != err {
			t.Errorf("%d: marshal error: %s", i, err)
		}
		if item.expected != string(text) {
			t.Errorf("%d: marshal text: %q  expected: %q", i, text, item.expected)
		}
	}
}
