// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table

import (
	"encoding/binary"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resource"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transaction"
)

// Exclusive - take the serialization locks covering a set of ids
//
// for the transfer engine, every mutation of an id must happen under
// its lock
func Exclusive(ids ...resourceid.ResourceId) func() {
	return globalData.locks.Lock(ids...)
}

// NewId - derive a fresh identifier
//
// mixes the per-process nonce with a monotonic sequence so an id is
// never produced twice, not even across removals
func NewId(tag tagregistry.TypeTag, address owner.Address) resourceid.ResourceId {
	tagBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(tagBytes, uint64(tag))

	return resourceid.New(
		tagBytes,
		address.Bytes(),
		globalData.nonce[:],
		resourceid.Uint64Bytes(globalData.sequence.Increment()),
	)
}

// Create - validate and store a new resource
//
// the constructor invariant runs before anything is inserted so the
// table never holds an invalid instance, the returned id is never
// reused even after the resource is removed
func Create(ctx *transaction.Context, tag tagregistry.TypeTag, amount uint64, payload []byte, address owner.Address) (resourceid.ResourceId, error) {

	if !globalData.initialised {
		return resourceid.ResourceId{}, fault.NotInitialised
	}

	// constructor invariant, checked before any mutation
	if err := tagregistry.Validate(tag, amount, payload); nil != err {
		return resourceid.ResourceId{}, err
	}

	id := NewId(tag, address)

	r := &resource.Resource{
		Id:      id,
		Tag:     tag,
		Owner:   address,
		Amount:  amount,
		Payload: payload,
	}

	release := Exclusive(id)
	defer release()

	trx := storage.NewTransaction()
	trx.Begin()
	Insert(trx, r)
	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("create commit error: %s", err)
		return resourceid.ResourceId{}, err
	}
	CountInserted()

	globalData.log.Debugf("created: %s  tag: %d  owner: %s", id, tag, address)

	_ = ctx.Emit(transaction.Event{
		Kind:       transaction.EventCreated,
		ResourceId: id,
		To:         address,
		Amount:     amount,
	})

	return id, nil
}

// Get - fetch a live resource
func Get(id resourceid.ResourceId) (*resource.Resource, error) {

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	packed := globalData.resources.Get(id[:])
	if nil == packed {
		return nil, fault.ResourceNotFound
	}
	return resource.Unpack(id, packed)
}

// Remove - the only deletion path
//
// the caller supplied owner must match the stored owner, on any
// failure the table is left unchanged
func Remove(ctx *transaction.Context, id resourceid.ResourceId, address owner.Address) (*resource.Resource, error) {

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	release := Exclusive(id)
	defer release()

	r, err := Get(id)
	if nil != err {
		return nil, err
	}
	if r.Owner != address {
		return nil, fault.NotOwner
	}

	trx := storage.NewTransaction()
	trx.Begin()
	Destroy(trx, r)
	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("remove commit error: %s", err)
		return nil, err
	}
	CountDestroyed()

	globalData.log.Debugf("removed: %s  owner: %s", id, address)

	_ = ctx.Emit(transaction.Event{
		Kind:       transaction.EventRemoved,
		ResourceId: id,
		From:       address,
		Amount:     r.Amount,
	})

	return r, nil
}

// ListRecord - one entry of an owner's resource list
type ListRecord struct {
	Index uint64                `json:"index"`
	Id    resourceid.ResourceId `json:"id"`
}

// ListFor - a page of the ids owned by one address in creation order
//
// start is the first index to include, removed items leave holes that
// are skipped
func ListFor(address owner.Address, start uint64, count int) ([]ListRecord, error) {

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	records := make([]ListRecord, 0, count)

	globalData.ownerList.Range(address.Bytes(), func(key []byte, value []byte) bool {
		// key = owner ++ count
		if len(key) != owner.AddressLength+8 {
			return true
		}
		index := binary.BigEndian.Uint64(key[owner.AddressLength:])
		if index < start {
			return true
		}

		var id resourceid.ResourceId
		if resourceid.Length != len(value) {
			return true
		}
		copy(id[:], value)

		records = append(records, ListRecord{
			Index: index,
			Id:    id,
		})
		return len(records) < count
	})

	return records, nil
}
