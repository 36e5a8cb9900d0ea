// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resource"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transaction"
)

// Split - carve an amount off a fungible resource into a new one
//
// the new resource has the same tag and owner, splitting off the full
// held amount is allowed and leaves the original at zero, the amount
// conservation holds because both writes commit together
func Split(ctx *transaction.Context, id resourceid.ResourceId, amount uint64, address owner.Address) (resourceid.ResourceId, error) {

	if !globalData.initialised {
		return resourceid.ResourceId{}, fault.NotInitialised
	}

	if 0 == amount {
		return resourceid.ResourceId{}, fault.InvalidAmount
	}

	release := table.Exclusive(id)
	defer release()

	r, err := table.Get(id)
	if nil != err {
		return resourceid.ResourceId{}, err
	}
	if r.Owner != address {
		return resourceid.ResourceId{}, fault.NotOwner
	}

	fungible, err := tagregistry.IsFungible(r.Tag)
	if nil != err {
		return resourceid.ResourceId{}, err
	}
	if !fungible {
		return resourceid.ResourceId{}, fault.NotFungible
	}

	if r.Amount < amount {
		return resourceid.ResourceId{}, fault.InsufficientBalance
	}

	split := &resource.Resource{
		Id:      table.NewId(r.Tag, address),
		Tag:     r.Tag,
		Owner:   address,
		Amount:  amount,
		Payload: append([]byte{}, r.Payload...),
	}
	r.Amount -= amount

	trx := storage.NewTransaction()
	trx.Begin()
	table.Rewrite(trx, r)
	table.Insert(trx, split)
	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("split commit error: %s", err)
		return resourceid.ResourceId{}, err
	}
	table.CountInserted()

	globalData.log.Debugf("split: %s  new: %s  amount: %d", id, split.Id, amount)

	_ = ctx.Emit(transaction.Event{
		Kind:          transaction.EventSplit,
		ResourceId:    id,
		CounterpartId: split.Id,
		From:          address,
		To:            address,
		Amount:        amount,
	})

	return split.Id, nil
}
