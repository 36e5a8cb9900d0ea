// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - ownership moves and fungible restructuring
//
// every operation validates completely before staging any mutation,
// so a failed call leaves the table exactly as it found it, and every
// mutation of a single call commits in one storage transaction
package transfer

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/fault"
)

// globals for this package
var globalData struct {
	sync.RWMutex
	log *logger.L

	// set once during initialise
	initialised bool
}

// Initialise - start up the transfer engine
//
// table must already be initialised
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("transfer")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - stop the transfer engine
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}
