// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Resources      *PoolHandle `prefix:"R"`
	OwnerNextCount *PoolHandle `prefix:"N"`
	OwnerList      *PoolHandle `prefix:"L"`
	OwnerIndex     *PoolHandle `prefix:"D"`
	TestData       *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentStoreVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db     *leveldb.DB
	cache  Cache
	access Access
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.AlreadyInitialised
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.db = db

	// ensure no database downgrade
	if version > currentStoreVersion {
		logger.Criticalf("store database version: %d > current version: %d", version, currentStoreVersion)
		return fmt.Errorf("store database version: %d > current version: %d", version, currentStoreVersion)
	}

	if 0 == version {
		// database was empty so tag as current version
		if !readOnly {
			err = putVersion(db, currentStoreVersion)
			if nil != err {
				return err
			}
		}
	} else if version != currentStoreVersion {
		logger.Criticalf("store database version: %d < current version: %d", version, currentStoreVersion)
		return fmt.Errorf("store database version: %d < current version: %d", version, currentStoreVersion)
	}

	poolData.cache = newCache()
	poolData.access = newAccess(db, poolData.cache)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: poolData.access,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	ok = true // prevent db close
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()
	dbClose()
}

// NewTransaction - a transaction over the shared batch
//
// Begin blocks until any other transaction commits or aborts
func NewTransaction() Transaction {
	poolData.RLock()
	defer poolData.RUnlock()
	return newTransaction(poolData.access)
}

// must hold lock to call this
func dbClose() {
	if nil != poolData.db {
		if err := poolData.db.Close(); nil != err {
			logger.Criticalf("database close error: %s", err)
		}
		poolData.db = nil
		poolData.access = nil
		poolData.cache = nil

		// prevent use of stale handles
		Pool = pools{}
	}
}

// open the database and read its version tag
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		_ = db.Close()
		return nil, 0, err
	}

	if 8 != len(versionValue) {
		_ = db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 8, len(versionValue))
	}

	version := int(binary.BigEndian.Uint64(versionValue))
	return db, version, nil
}

// write the version tag
func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 8)
	binary.BigEndian.PutUint64(currentVersion, uint64(version))
	return db.Put(versionKey, currentVersion, nil)
}
