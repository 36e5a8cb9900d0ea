// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resourceid - opaque identifiers for stored resources
//
// an identifier is the SHA3-256 digest of creation parameters mixed
// with a process nonce and a monotonic counter, so identifiers are
// never reused even after the underlying resource is removed
package resourceid

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/ledgerstore/ledgerstored/fault"
)

// Length - number of bytes in a resource id
const Length = 32

// ResourceId - the id of a stored resource
//
// stored and displayed as big endian hex
// to convert to bytes just use id[:]
type ResourceId [Length]byte

// New - derive an id from arbitrary creation material
//
// the caller is responsible for including a never-repeating component
// (nonce and sequence) in the material
func New(material ...[]byte) ResourceId {
	h := sha3.New256()
	for _, m := range material {
		_, _ = h.Write(m)
	}
	var id ResourceId
	copy(id[:], h.Sum(nil))
	return id
}

// Uint64Bytes - convenience to include counters in id material
func Uint64Bytes(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}

// String - convert a binary id to hex string for use by the fmt package (for %s)
func (id ResourceId) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - convert a binary id to hex string for use by the fmt package (for %#v)
func (id ResourceId) GoString() string {
	return "<resource:" + hex.EncodeToString(id[:]) + ">"
}

// MarshalText - convert id to hex text
func (id ResourceId) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to id
func (id *ResourceId) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(Length) {
		return fault.CannotDecodeResourceId
	}
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.CannotDecodeResourceId
	}
	return nil
}

// IsZero - check for the all-zero id, which is never issued
func (id ResourceId) IsZero() bool {
	for _, b := range id {
		if 0 != b {
			return false
		}
	}
	return true
}
