// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"math"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transaction"
)

// Merge - combine two fungible resources of the same tag and owner
//
// the first id survives carrying the summed amount, the second is
// destroyed in the same storage transaction, its id is never valid
// again
func Merge(ctx *transaction.Context, idA resourceid.ResourceId, idB resourceid.ResourceId, address owner.Address) (resourceid.ResourceId, error) {

	if !globalData.initialised {
		return resourceid.ResourceId{}, fault.NotInitialised
	}

	if idA == idB {
		return resourceid.ResourceId{}, fault.CannotMergeWithSelf
	}

	release := table.Exclusive(idA, idB)
	defer release()

	rA, err := table.Get(idA)
	if nil != err {
		return resourceid.ResourceId{}, err
	}
	rB, err := table.Get(idB)
	if nil != err {
		return resourceid.ResourceId{}, err
	}

	if rA.Owner != address || rB.Owner != address {
		return resourceid.ResourceId{}, fault.NotOwner
	}
	if rA.Tag != rB.Tag {
		return resourceid.ResourceId{}, fault.TypeMismatch
	}

	fungible, err := tagregistry.IsFungible(rA.Tag)
	if nil != err {
		return resourceid.ResourceId{}, err
	}
	if !fungible {
		return resourceid.ResourceId{}, fault.NotFungible
	}

	if rB.Amount > math.MaxUint64-rA.Amount {
		return resourceid.ResourceId{}, fault.InvalidAmount
	}
	rA.Amount += rB.Amount

	trx := storage.NewTransaction()
	trx.Begin()
	table.Rewrite(trx, rA)
	table.Destroy(trx, rB)
	if err := trx.Commit(); nil != err {
		globalData.log.Criticalf("merge commit error: %s", err)
		return resourceid.ResourceId{}, err
	}
	table.CountDestroyed()

	globalData.log.Debugf("merged: %s into %s  amount: %d", idB, idA, rA.Amount)

	_ = ctx.Emit(transaction.Event{
		Kind:          transaction.EventMerged,
		ResourceId:    idA,
		CounterpartId: idB,
		From:          address,
		To:            address,
		Amount:        rA.Amount,
	})

	return idA, nil
}
