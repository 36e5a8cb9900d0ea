// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resource - RPC handler for resource lifecycle calls
package resource

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/mode"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resource"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/rpc/ratelimit"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transaction"
)

const (
	rateLimitResource = 200
	rateBurstResource = 100

	maximumListCount = 100
)

// Resource - type for RPC calls
type Resource struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the handler
func New(log *logger.L) *Resource {
	return &Resource{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitResource, rateBurstResource),
	}
}

// CreateArguments - arguments for creating a resource
type CreateArguments struct {
	Tag        string                `json:"tag"`
	Amount     uint64                `json:"amount,string"`
	Payload    []byte                `json:"payload,omitempty"`
	Owner      owner.Address         `json:"owner"`
	Capability capability.Capability `json:"capability"`
}

// CreateReply - result of creating a resource
type CreateReply struct {
	Id     resourceid.ResourceId `json:"id"`
	Events []transaction.Event   `json:"events"`
}

// Create - validate and store a new resource
func (r *Resource) Create(arguments *CreateArguments, reply *CreateReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Resource.Create: tag: %q  owner: %s", arguments.Tag, arguments.Owner)

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}
	if mode.IsReadOnly() {
		return fault.NotAvailableInReadOnlyMode
	}
	if !capability.Authorize(arguments.Capability, arguments.Owner) {
		return fault.Unauthorized
	}

	tag, err := tagregistry.TagByName(arguments.Tag)
	if nil != err {
		return err
	}

	ctx := transaction.NewContext(arguments.Owner)
	id, err := table.Create(ctx, tag, arguments.Amount, arguments.Payload, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Id = id
	reply.Events, _ = ctx.Drain()
	return nil
}

// GetArguments - arguments for fetching a resource
type GetArguments struct {
	Id resourceid.ResourceId `json:"id"`
}

// GetReply - the current record of a resource
type GetReply struct {
	Resource *resource.Resource `json:"resource"`
	Tag      string             `json:"tag"`
}

// Get - fetch a live resource by id
func (r *Resource) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}

	record, err := table.Get(arguments.Id)
	if nil != err {
		return err
	}

	name, err := tagregistry.Name(record.Tag)
	if nil != err {
		return err
	}

	reply.Resource = record
	reply.Tag = name
	return nil
}

// RemoveArguments - arguments for removing a resource
type RemoveArguments struct {
	Id         resourceid.ResourceId `json:"id"`
	Owner      owner.Address         `json:"owner"`
	Capability capability.Capability `json:"capability"`
}

// RemoveReply - result of removing a resource
type RemoveReply struct {
	Removed *resource.Resource  `json:"removed"`
	Events  []transaction.Event `json:"events"`
}

// Remove - delete a resource, only its owner may do this
func (r *Resource) Remove(arguments *RemoveArguments, reply *RemoveReply) error {

	if err := ratelimit.Limit(r.Limiter); nil != err {
		return err
	}

	r.Log.Infof("Resource.Remove: id: %s  owner: %s", arguments.Id, arguments.Owner)

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}
	if mode.IsReadOnly() {
		return fault.NotAvailableInReadOnlyMode
	}
	if !capability.Authorize(arguments.Capability, arguments.Owner) {
		return fault.Unauthorized
	}

	ctx := transaction.NewContext(arguments.Owner)
	removed, err := table.Remove(ctx, arguments.Id, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Removed = removed
	reply.Events, _ = ctx.Drain()
	return nil
}

// ListArguments - arguments for listing owned resources
type ListArguments struct {
	Owner owner.Address `json:"owner"`
	Start uint64        `json:"start,string"`
	Count int           `json:"count"`
}

// ListReply - a page of owned resource ids
type ListReply struct {
	Records   []table.ListRecord `json:"records"`
	NextStart uint64             `json:"nextStart,string"`
}

// List - page through the ids owned by one address
func (r *Resource) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(r.Limiter, arguments.Count, maximumListCount); nil != err {
		return err
	}

	if mode.IsNot(mode.Normal) {
		return fault.NotAvailableWhenStopped
	}

	records, err := table.ListFor(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Records = records
	if 0 != len(records) {
		reply.NextStart = records[len(records)-1].Index + 1
	}
	return nil
}
