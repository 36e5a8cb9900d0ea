// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - batched access to the database
//
// writes are staged in a batch and become durable on Commit, readers
// only ever see committed state, the transaction holder sees its own
// staged writes through InBatch
type Access interface {
	Abort()
	Begin()
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InBatch([]byte) ([]byte, bool, bool)
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

type accessData struct {
	sync.Mutex
	db     *leveldb.DB
	batch  *leveldb.Batch
	cache  Cache
	staged map[string]cacheData
}

func newAccess(db *leveldb.DB, cache Cache) Access {
	return &accessData{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

// Begin - take exclusive use of the batch
//
// blocks until any concurrent batch is committed or aborted
func (d *accessData) Begin() {
	d.Lock()
	d.staged = make(map[string]cacheData)
}

func (d *accessData) Put(key []byte, value []byte) {
	d.staged[string(key)] = cacheData{op: dbPut, value: value}
	d.batch.Put(key, value)
}

func (d *accessData) Delete(key []byte) {
	d.staged[string(key)] = cacheData{op: dbDelete, value: []byte{}}
	d.batch.Delete(key)
}

// InBatch - look up a key in the current batch
//
// only the transaction holder may call this, returns the staged
// value, whether the key is staged for deletion, and whether the key
// is staged at all
func (d *accessData) InBatch(key []byte) ([]byte, bool, bool) {
	data, found := d.staged[string(key)]
	if !found {
		return nil, false, false
	}
	return data.value, dbDelete == data.op, true
}

// Commit - flush the batch to disk and release it
//
// the write is atomic, either every staged operation becomes durable
// or none does, the shared read cache only learns the new values
// after the batch is safely on disk
func (d *accessData) Commit() error {
	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	if nil == err {
		for key, data := range d.staged {
			d.cache.Set(data.op, key, data.value)
		}
	} else {
		d.cache.Clear()
	}
	d.staged = nil
	d.Unlock()
	return err
}

// Abort - drop every staged operation and release the batch
//
// the shared read cache was never touched so nothing is rolled back
func (d *accessData) Abort() {
	d.batch.Reset()
	d.staged = nil
	d.Unlock()
}

func (d *accessData) Get(key []byte) ([]byte, error) {
	val, found := d.cache.Get(string(key))
	if found {
		return val, nil
	}
	return d.db.Get(key, nil)
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, found := d.cache.Get(string(key))
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

func (d *accessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
