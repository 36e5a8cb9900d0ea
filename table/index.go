// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table

import (
	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resource"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
)

// ownership index, from storage/doc.go:
//
//   N ++ owner                 - next count value to use for appending to owned items
//   L ++ owner ++ count        - list of owned items
//   D ++ owner ++ resource id  - position in list of owned items, for delete after transfer

// append an id to an owner's list
func indexAdd(trx storage.Transaction, address owner.Address, id resourceid.ResourceId) {
	nKey := address.Bytes()

	count, _ := trx.GetN(globalData.ownerNextCount, nKey)

	lKey := append(address.Bytes(), resourceid.Uint64Bytes(count)...)
	dKey := append(address.Bytes(), id[:]...)

	trx.Put(globalData.ownerList, lKey, id[:])
	trx.PutN(globalData.ownerIndex, dKey, count)
	trx.PutN(globalData.ownerNextCount, nKey, count+1)
}

// delete an id from an owner's list
//
// leaves a hole in the list, scans skip holes
func indexRemove(trx storage.Transaction, address owner.Address, id resourceid.ResourceId) {
	dKey := append(address.Bytes(), id[:]...)

	count, found := trx.GetN(globalData.ownerIndex, dKey)
	if !found {
		logger.Criticalf("table.indexRemove: missing index entry for owner: %s  id: %s", address, id)
		logger.Panic("table.indexRemove: ownership index is corrupt")
	}

	lKey := append(address.Bytes(), resourceid.Uint64Bytes(count)...)

	trx.Delete(globalData.ownerList, lKey)
	trx.Delete(globalData.ownerIndex, dKey)
}

// the primitives below are for the transfer engine, the caller must
// hold the lock covering every id touched, commit the transaction and
// report the outcome with CountInserted/CountDestroyed

// Insert - stage a brand new resource and its index entry
func Insert(trx storage.Transaction, r *resource.Resource) {
	trx.Put(globalData.resources, r.Id[:], r.Pack())
	indexAdd(trx, r.Owner, r.Id)
}

// Rewrite - stage an updated record for an existing resource
//
// the owner must be unchanged, use Reassign to move ownership
func Rewrite(trx storage.Transaction, r *resource.Resource) {
	trx.Put(globalData.resources, r.Id[:], r.Pack())
}

// Reassign - stage an ownership move to a new address
func Reassign(trx storage.Transaction, r *resource.Resource, newOwner owner.Address) {
	indexRemove(trx, r.Owner, r.Id)
	r.Owner = newOwner
	indexAdd(trx, newOwner, r.Id)
	trx.Put(globalData.resources, r.Id[:], r.Pack())
}

// Destroy - stage removal of a resource and its index entry
func Destroy(trx storage.Transaction, r *resource.Resource) {
	trx.Delete(globalData.resources, r.Id[:])
	indexRemove(trx, r.Owner, r.Id)
}

// CountInserted - account for a committed Insert
//
// only call after the transaction holding the Insert commits, an
// aborted or failed batch must not move the statistics
func CountInserted() {
	globalData.resourceCount.Increment()
}

// CountDestroyed - account for a committed Destroy
func CountDestroyed() {
	globalData.resourceCount.Decrement()
}
