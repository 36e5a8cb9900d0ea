// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - per transaction context and event log
//
// a context is created by the transaction driver before any operation
// runs and destroyed when the transaction ends, it carries the
// initiating address and accumulates events in emission order
package transaction

import (
	"sync"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
)

// Context - ephemeral per transaction state
type Context struct {
	sync.Mutex
	initiator owner.Address
	sequence  uint64
	events    []Event
	drained   bool
}

// NewContext - start a transaction for the given initiator
func NewContext(initiator owner.Address) *Context {
	return &Context{
		initiator: initiator,
		events:    make([]Event, 0, 4),
	}
}

// Initiator - the address that started this transaction
func (ctx *Context) Initiator() owner.Address {
	return ctx.initiator
}

// Emit - append an event to the log
//
// the sequence number is assigned here, events are write once and
// never reordered
func (ctx *Context) Emit(event Event) error {
	if nil == ctx {
		return fault.TransactionIsNil
	}

	ctx.Lock()
	defer ctx.Unlock()

	if ctx.drained {
		return fault.EventLogDrained
	}

	ctx.sequence += 1
	event.Sequence = ctx.sequence
	ctx.events = append(ctx.events, event)
	return nil
}

// Drain - return all accumulated events in emission order
//
// read once per transaction, the buffer is cleared and any further
// emit or drain fails
func (ctx *Context) Drain() ([]Event, error) {
	if nil == ctx {
		return nil, fault.TransactionIsNil
	}

	ctx.Lock()
	defer ctx.Unlock()

	if ctx.drained {
		return nil, fault.EventLogDrained
	}

	events := ctx.events
	ctx.events = nil
	ctx.drained = true
	return events, nil
}

// Pending - number of events not yet drained
func (ctx *Context) Pending() int {
	ctx.Lock()
	defer ctx.Unlock()
	return len(ctx.events)
}
