// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package table - the keyed store of resources under linear ownership
//
// every live resource id maps to exactly one resource with exactly
// one owner, the only deletion path is Remove and it verifies the
// caller against the stored owner before touching anything
package table

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/background"
	"github.com/ledgerstore/ledgerstored/counter"
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/storage"
)

// interval between statistics log lines
const statisticsInterval = 60 * time.Second

// globals for this package
var globalData struct {
	sync.RWMutex
	log *logger.L

	// the pools this table writes
	resources      *storage.PoolHandle
	ownerNextCount *storage.PoolHandle
	ownerList      *storage.PoolHandle
	ownerIndex     *storage.PoolHandle

	// per id serialization
	locks stripedLock

	// id generation material
	nonce    [16]byte
	sequence counter.Counter

	// live resource count, for statistics
	resourceCount counter.Counter

	// for background processes
	processes *background.T

	// set once during initialise
	initialised bool
}

// Initialise - set up the table
//
// storage must already be initialised
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("table")
	globalData.log.Info("starting…")

	if nil == storage.Pool.Resources {
		return fault.NotInitialised
	}

	globalData.resources = storage.Pool.Resources
	globalData.ownerNextCount = storage.Pool.OwnerNextCount
	globalData.ownerList = storage.Pool.OwnerList
	globalData.ownerIndex = storage.Pool.OwnerIndex

	// never repeated id material, fresh for each process
	if _, err := rand.Read(globalData.nonce[:]); nil != err {
		return err
	}
	globalData.sequence = counter.Counter(0)

	// count the survivors of a previous run
	globalData.resourceCount = counter.Counter(0)
	globalData.resources.Range(nil, func(key []byte, value []byte) bool {
		globalData.resourceCount.Increment()
		return true
	})
	globalData.log.Infof("live resources: %d", globalData.resourceCount.Current())

	globalData.processes = background.Start(background.Processes{
		statisticsLoop,
	}, globalData.log)

	globalData.initialised = true
	return nil
}

// Finalise - stop the table
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.processes.Stop()

	globalData.Lock()
	globalData.resources = nil
	globalData.ownerNextCount = nil
	globalData.ownerList = nil
	globalData.ownerIndex = nil
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// ResourceCount - number of live resources
func ResourceCount() uint64 {
	return globalData.resourceCount.Current()
}

// periodic statistics logging
func statisticsLoop(args interface{}, shutdown <-chan struct{}) {
	log := args.(*logger.L)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(statisticsInterval):
			log.Infof("live resources: %d", globalData.resourceCount.Current())
		}
	}
}
