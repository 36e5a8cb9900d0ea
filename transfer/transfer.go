// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/transaction"
)

// Transfer - move a resource to a new owner
//
// only the current owner can transfer, a transfer to the current
// owner is a no-op that still emits an event
func Transfer(ctx *transaction.Context, id resourceid.ResourceId, from owner.Address, to owner.Address) error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	release := table.Exclusive(id)
	defer release()

	r, err := table.Get(id)
	if nil != err {
		return err
	}
	if r.Owner != from {
		return fault.NotOwner
	}

	// a transfer to the current owner changes nothing on disk
	if from != to {
		trx := storage.NewTransaction()
		trx.Begin()
		table.Reassign(trx, r, to)
		if err := trx.Commit(); nil != err {
			globalData.log.Criticalf("transfer commit error: %s", err)
			return err
		}
	}

	globalData.log.Debugf("transferred: %s  %s to %s", id, from, to)

	_ = ctx.Emit(transaction.Event{
		Kind:       transaction.EventTransferred,
		ResourceId: id,
		From:       from,
		To:         to,
		Amount:     r.Amount,
	})

	return nil
}
