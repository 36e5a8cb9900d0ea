// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Transaction - all-or-nothing mutation of one or more pools
//
// every mutation of the store happens inside one of these, Commit
// writes every staged operation in a single atomic batch
type Transaction interface {
	Begin()
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Commit() error
	Abort()
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

// Begin - take exclusive use of the underlying batch
//
// blocks until any concurrent transaction completes
func (t *transactionData) Begin() {
	t.access.Begin()
}

func (t *transactionData) Put(p *PoolHandle, key []byte, value []byte) {
	t.access.Put(p.prefixKey(key), value)
}

func (t *transactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.Put(p.prefixKey(key), buffer)
}

func (t *transactionData) Delete(p *PoolHandle, key []byte) {
	t.access.Delete(p.prefixKey(key))
}

// Get - read through the transaction
//
// staged writes of this transaction are visible, writes staged for
// deletion read as absent, everything else comes from committed state
func (t *transactionData) Get(p *PoolHandle, key []byte) []byte {
	value, deleted, staged := t.access.InBatch(p.prefixKey(key))
	if staged {
		if deleted {
			return nil
		}
		return value
	}
	return p.Get(key)
}

func (t *transactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("transaction.GetN truncated record for: %x: %s", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}
