// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package capability - RPC handler for issuing and checking
// capabilities
package capability

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/mode"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/rpc/ratelimit"
	"github.com/ledgerstore/ledgerstored/transaction"
)

const (
	rateLimitCapability = 200
	rateBurstCapability = 100
)

// Capability - type for RPC calls
type Capability struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Capability {
	return &Capability{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCapability, rateBurstCapability),
	}
}

// IssueArguments - arguments for issuing a capability
//
// minting is restricted to holders of the administrator capability
type IssueArguments struct {
	Subject       owner.Address         `json:"subject"`
	Administrator capability.Capability `json:"administrator"`
}

// IssueReply - a freshly minted capability
type IssueReply struct {
	Capability capability.Capability `json:"capability"`
	Events     []transaction.Event   `json:"events"`
}

// Issue - mint a capability bound to one address
//
// the token only verifies on the process that minted it, the caller
// must present the administrator capability or nothing is issued
func (c *Capability) Issue(arguments *IssueArguments, reply *IssueReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	c.Log.Infof("Capability.Issue: subject: %s", arguments.Subject)

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}

	if !capability.IsAdministrator(arguments.Administrator) {
		return fault.Unauthorized
	}

	issued, err := capability.Issue(arguments.Subject)
	if nil != err {
		return err
	}

	ctx := transaction.NewContext(arguments.Subject)
	_ = ctx.Emit(transaction.Event{
		Kind: transaction.EventCapabilityIssued,
		To:   arguments.Subject,
	})

	reply.Capability = issued
	reply.Events, _ = ctx.Drain()
	return nil
}

// VerifyArguments - arguments for checking a capability
type VerifyArguments struct {
	Capability capability.Capability `json:"capability"`
	Subject    owner.Address         `json:"subject"`
}

// VerifyReply - whether the capability authorizes the subject
type VerifyReply struct {
	Valid bool `json:"valid"`
}

// Verify - check a capability against an address
func (c *Capability) Verify(arguments *VerifyArguments, reply *VerifyReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}

	reply.Valid = capability.Authorize(arguments.Capability, arguments.Subject)
	return nil
}
