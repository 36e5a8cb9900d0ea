// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package capability - unforgeable authorization tokens
//
// a capability is bound to one address at issue time and that binding
// never changes, possession of a valid capability authorizes the
// privileged operations of the store
package capability

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
)

// token sizes
const (
	NonceLength = 8
	TokenLength = 16

	textLength = owner.AddressLength + NonceLength + TokenLength
)

// Capability - an unforgeable token bound to one address
//
// all fields are unexported, the only constructors are Issue and
// FromHex
type Capability struct {
	bound owner.Address
	nonce [NonceLength]byte
	token [TokenLength]byte
}

// globals for this package
var globalData struct {
	sync.RWMutex
	log *logger.L

	// process local issuing secret, never leaves this package
	secret [32]byte

	// the address allowed to mint further capabilities
	administrator owner.Address

	// minted once during initialise
	administratorCapability Capability

	// set once during initialise
	initialised bool
}

// Initialise - create the issuing secret and the administrator
// capability
//
// capabilities do not survive a restart, a new secret invalidates
// everything issued by an earlier process, the administrator address
// is the only subject whose capability authorizes further minting
func Initialise(administrator owner.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if (owner.Address{}) == administrator {
		return fault.MissingAdministrator
	}

	globalData.log = logger.New("capability")
	globalData.log.Info("starting…")

	if _, err := rand.Read(globalData.secret[:]); nil != err {
		return err
	}

	globalData.administrator = administrator

	c := Capability{
		bound: administrator,
	}
	if _, err := rand.Read(c.nonce[:]); nil != err {
		return err
	}
	c.token = deriveToken(administrator, c.nonce)
	globalData.administratorCapability = c

	globalData.log.Infof("administrator: %s", administrator)

	globalData.initialised = true
	return nil
}

// Finalise - discard the issuing secret
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.secret = [32]byte{}
	globalData.administrator = owner.Address{}
	globalData.administratorCapability = Capability{}
	globalData.initialised = false
	globalData.Unlock()

	return nil
}

// Administrator - the capability minted for the administrator address
// at initialise
func Administrator() (Capability, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Capability{}, fault.NotInitialised
	}
	return globalData.administratorCapability, nil
}

// IsAdministrator - check a capability against the administrator
// address
//
// only capabilities passing this check may mint new ones over RPC
func IsAdministrator(c Capability) bool {
	globalData.RLock()
	administrator := globalData.administrator
	initialised := globalData.initialised
	globalData.RUnlock()

	if !initialised {
		return false
	}
	return Authorize(c, administrator)
}

// compute the token for a subject and nonce
func deriveToken(subject owner.Address, nonce [NonceLength]byte) [TokenLength]byte {
	h := sha3.New256()
	_, _ = h.Write(globalData.secret[:])
	_, _ = h.Write(subject.Bytes())
	_, _ = h.Write(nonce[:])

	var token [TokenLength]byte
	copy(token[:], h.Sum(nil))
	return token
}

// Issue - create a new capability bound to an address
//
// the binding is immutable thereafter
func Issue(subject owner.Address) (Capability, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Capability{}, fault.NotInitialised
	}

	c := Capability{
		bound: subject,
	}
	if _, err := rand.Read(c.nonce[:]); nil != err {
		return Capability{}, err
	}
	c.token = deriveToken(subject, c.nonce)

	globalData.log.Infof("issued capability for: %s", subject)
	return c, nil
}

// Authorize - check a capability against the caller's address
//
// true iff the capability is genuine and its bound address equals the
// caller, never mutates any state
func Authorize(c Capability, caller owner.Address) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return false
	}

	if c.bound != caller {
		return false
	}

	expected := deriveToken(c.bound, c.nonce)
	return 1 == subtle.ConstantTimeCompare(expected[:], c.token[:])
}

// Subject - the address this capability is bound to
func (c Capability) Subject() owner.Address {
	return c.bound
}

// String - hex transport form
func (c Capability) String() string {
	buffer := make([]byte, 0, textLength)
	buffer = append(buffer, c.bound.Bytes()...)
	buffer = append(buffer, c.nonce[:]...)
	buffer = append(buffer, c.token[:]...)
	return hex.EncodeToString(buffer)
}

// MarshalText - hex transport form
func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText - rebuild a capability from its hex transport form
//
// decoding never validates, a tampered capability simply fails
// Authorize
func (c *Capability) UnmarshalText(s []byte) error {
	buffer := make([]byte, textLength)
	if len(s) != hex.EncodedLen(textLength) {
		return fault.CannotDecodeCapability
	}
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.CannotDecodeCapability
	}

	copy(c.bound[:], buffer[:owner.AddressLength])
	copy(c.nonce[:], buffer[owner.AddressLength:owner.AddressLength+NonceLength])
	copy(c.token[:], buffer[owner.AddressLength+NonceLength:])
	return nil
}

// FromHex - decode the hex transport form
func FromHex(s string) (Capability, error) {
	var c Capability
	err := c.UnmarshalText([]byte(s))
	return c, err
}
