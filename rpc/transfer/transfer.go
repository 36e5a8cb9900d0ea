// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - RPC handler for ownership moves and fungible
// restructuring
package transfer

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/mode"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/rpc/ratelimit"
	"github.com/ledgerstore/ledgerstored/transaction"
	"github.com/ledgerstore/ledgerstored/transfer"
)

const (
	rateLimitTransfer = 200
	rateBurstTransfer = 100
)

// Transfer - type for RPC calls
type Transfer struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Transfer {
	return &Transfer{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTransfer, rateBurstTransfer),
	}
}

// check mode and the caller's authority over an address
func authorize(c capability.Capability, address owner.Address) error {
	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}
	if mode.IsReadOnly() {
		return fault.NotAvailableInReadOnlyMode
	}
	if !capability.Authorize(c, address) {
		return fault.Unauthorized
	}
	return nil
}

// SendArguments - arguments for a transfer
type SendArguments struct {
	Id         resourceid.ResourceId `json:"id"`
	From       owner.Address         `json:"from"`
	To         owner.Address         `json:"to"`
	Capability capability.Capability `json:"capability"`
}

// SendReply - result of a transfer
type SendReply struct {
	Events []transaction.Event `json:"events"`
}

// Send - move a resource to a new owner
func (t *Transfer) Send(arguments *SendArguments, reply *SendReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Send: id: %s  from: %s  to: %s", arguments.Id, arguments.From, arguments.To)

	if err := authorize(arguments.Capability, arguments.From); nil != err {
		return err
	}

	ctx := transaction.NewContext(arguments.From)
	if err := transfer.Transfer(ctx, arguments.Id, arguments.From, arguments.To); nil != err {
		return err
	}

	reply.Events, _ = ctx.Drain()
	return nil
}

// SplitArguments - arguments for a split
type SplitArguments struct {
	Id         resourceid.ResourceId `json:"id"`
	Amount     uint64                `json:"amount,string"`
	Owner      owner.Address         `json:"owner"`
	Capability capability.Capability `json:"capability"`
}

// SplitReply - result of a split
type SplitReply struct {
	Id     resourceid.ResourceId `json:"id"`
	Events []transaction.Event   `json:"events"`
}

// Split - carve an amount off a fungible resource
func (t *Transfer) Split(arguments *SplitArguments, reply *SplitReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Split: id: %s  amount: %d  owner: %s", arguments.Id, arguments.Amount, arguments.Owner)

	if err := authorize(arguments.Capability, arguments.Owner); nil != err {
		return err
	}

	ctx := transaction.NewContext(arguments.Owner)
	id, err := transfer.Split(ctx, arguments.Id, arguments.Amount, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Id = id
	reply.Events, _ = ctx.Drain()
	return nil
}

// MergeArguments - arguments for a merge
type MergeArguments struct {
	IdA        resourceid.ResourceId `json:"idA"`
	IdB        resourceid.ResourceId `json:"idB"`
	Owner      owner.Address         `json:"owner"`
	Capability capability.Capability `json:"capability"`
}

// MergeReply - result of a merge
type MergeReply struct {
	Id     resourceid.ResourceId `json:"id"`
	Events []transaction.Event   `json:"events"`
}

// Merge - combine two fungible resources, the first id survives
func (t *Transfer) Merge(arguments *MergeArguments, reply *MergeReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	t.Log.Infof("Transfer.Merge: idA: %s  idB: %s  owner: %s", arguments.IdA, arguments.IdB, arguments.Owner)

	if err := authorize(arguments.Capability, arguments.Owner); nil != err {
		return err
	}

	ctx := transaction.NewContext(arguments.Owner)
	id, err := transfer.Merge(ctx, arguments.IdA, arguments.IdB, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Id = id
	reply.Events, _ = ctx.Drain()
	return nil
}
