// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package owner - fixed width addresses identifying resource owners
//
// an address is the 32 byte image of an ed25519 public key, the
// authentication of the caller behind an address is performed by an
// external identity provider and is trusted here as given
package owner

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/ledgerstore/ledgerstored/fault"
)

// AddressLength - number of bytes in an address
const AddressLength = 32

// number of checksum bytes appended to the base58 form
const checksumLength = 4

// Address - the owner of a resource
type Address [AddressLength]byte

// FromPublicKey - the address corresponding to an ed25519 public key
func FromPublicKey(publicKey ed25519.PublicKey) (Address, error) {
	var address Address
	if ed25519.PublicKeySize != len(publicKey) {
		return address, fault.CannotDecodeAddress
	}
	copy(address[:], publicKey)
	return address, nil
}

// Generate - create a new key pair and its address
//
// only used by clients, the store itself never holds private keys
func Generate() (Address, ed25519.PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return Address{}, nil, err
	}
	address, err := FromPublicKey(publicKey)
	if nil != err {
		return Address{}, nil, err
	}
	return address, privateKey, nil
}

// FromBase58 - decode the checksummed base58 form of an address
func FromBase58(addressBase58Encoded string) (Address, error) {
	var address Address

	decoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return address, fault.CannotDecodeAddress
	}
	if AddressLength+checksumLength != len(decoded) {
		return address, fault.CannotDecodeAddress
	}

	checksum := sha3.Sum256(decoded[:AddressLength])
	if !bytes.Equal(checksum[:checksumLength], decoded[AddressLength:]) {
		return address, fault.ChecksumMismatch
	}

	copy(address[:], decoded[:AddressLength])
	return address, nil
}

// Bytes - byte slice form for key derivation and record packing
func (address Address) Bytes() []byte {
	return address[:]
}

// String - checksummed base58 form for display
func (address Address) String() string {
	checksum := sha3.Sum256(address[:])
	buffer := make([]byte, 0, AddressLength+checksumLength)
	buffer = append(buffer, address[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<owner:" + address.String() + ">"
}

// MarshalText - base58 text form
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - decode base58 text form
func (address *Address) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}

// IsZero - check for the unset address
func (address Address) IsZero() bool {
	for _, b := range address {
		if 0 != b {
			return false
		}
	}
	return true
}
