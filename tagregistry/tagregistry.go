// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tagregistry - the registry of resource type tags
//
// each tag carries its constructor invariant, the table consults this
// registry before inserting any resource so an invalid instance can
// never be stored
package tagregistry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/fault"
)

// TypeTag - numeric code for a registered resource type
//
// the zero tag is never issued
type TypeTag uint64

// Validator - per type constructor invariant
//
// return nil to accept the value, any error rejects the create
type Validator func(amount uint64, payload []byte) error

type entry struct {
	name     string
	fungible bool
	validate Validator
}

// globals for this package
var globalData struct {
	sync.RWMutex
	log     *logger.L
	entries map[TypeTag]*entry
	names   map[string]TypeTag
	nextTag TypeTag

	// set once during initialise
	initialised bool
}

// Initialise - set up the registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("tagregistry")
	globalData.log.Info("starting…")

	globalData.entries = make(map[TypeTag]*entry)
	globalData.names = make(map[string]TypeTag)
	globalData.nextTag = 1

	globalData.initialised = true
	return nil
}

// Finalise - shut down the registry
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.entries = nil
	globalData.names = nil
	globalData.initialised = false
	globalData.Unlock()

	return nil
}

// Register - add a new type tag
//
// a nil validator accepts any value for non-fungible types and
// requires a positive amount for fungible ones
func Register(name string, fungible bool, validate Validator) (TypeTag, error) {
	if "" == name {
		return 0, fault.InvalidTagName
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	if _, ok := globalData.names[name]; ok {
		return 0, fault.TagAlreadyRegistered
	}

	tag := globalData.nextTag
	globalData.nextTag += 1

	globalData.entries[tag] = &entry{
		name:     name,
		fungible: fungible,
		validate: validate,
	}
	globalData.names[name] = tag

	globalData.log.Infof("registered tag: %d  name: %q  fungible: %v", tag, name, fungible)
	return tag, nil
}

// TagByName - look up a tag code from its registered name
func TagByName(name string) (TypeTag, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	tag, ok := globalData.names[name]
	if !ok {
		return 0, fault.TagNotFound
	}
	return tag, nil
}

// Name - the registered name for a tag
func Name(tag TypeTag) (string, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	e, ok := globalData.entries[tag]
	if !ok {
		return "", fault.TagNotFound
	}
	return e.name, nil
}

// IsFungible - whether resources of this tag support split and merge
func IsFungible(tag TypeTag) (bool, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	e, ok := globalData.entries[tag]
	if !ok {
		return false, fault.TagNotFound
	}
	return e.fungible, nil
}

// Validate - run the constructor invariant for a proposed value
//
// must be called before any resource of this tag is stored
func Validate(tag TypeTag, amount uint64, payload []byte) error {
	globalData.RLock()
	e, ok := globalData.entries[tag]
	globalData.RUnlock()

	if !ok {
		return fault.TagNotFound
	}

	if nil == e.validate {
		if e.fungible && 0 == amount {
			return fault.InvalidValue
		}
		return nil
	}

	if err := e.validate(amount, payload); nil != err {
		return fault.InvalidValue
	}
	return nil
}
