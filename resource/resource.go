// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resource - the record stored for each live resource
//
// a resource is owned by exactly one address at any instant, its type
// tag never changes after creation
package resource

import (
	"encoding/binary"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/tagregistry"
)

// structure of the packed resource record
//
// the id is the storage key and is not repeated in the value
const (
	uint64ByteSize = 8

	tagStart  = 0
	tagFinish = tagStart + uint64ByteSize

	ownerStart  = tagFinish
	ownerFinish = ownerStart + owner.AddressLength

	amountStart  = ownerFinish
	amountFinish = amountStart + uint64ByteSize

	// optional variable length payload
	payloadStart = amountFinish

	// length of the fixed part
	minimumPackLength = payloadStart
)

// Resource - an unpacked resource record
type Resource struct {
	Id      resourceid.ResourceId `json:"id"`
	Tag     tagregistry.TypeTag   `json:"tag"`
	Owner   owner.Address         `json:"owner"`
	Amount  uint64                `json:"amount"`
	Payload []byte                `json:"payload,omitempty"`
}

// Pack - flatten a resource to its stored byte form
func (r *Resource) Pack() []byte {
	buffer := make([]byte, minimumPackLength, minimumPackLength+len(r.Payload))

	binary.BigEndian.PutUint64(buffer[tagStart:tagFinish], uint64(r.Tag))
	copy(buffer[ownerStart:ownerFinish], r.Owner.Bytes())
	binary.BigEndian.PutUint64(buffer[amountStart:amountFinish], r.Amount)

	return append(buffer, r.Payload...)
}

// Unpack - rebuild a resource from its stored byte form
//
// the record id is supplied by the caller since it is the storage key
func Unpack(id resourceid.ResourceId, buffer []byte) (*Resource, error) {
	if len(buffer) < minimumPackLength {
		return nil, fault.InvalidPayloadLength
	}

	r := &Resource{
		Id:     id,
		Tag:    tagregistry.TypeTag(binary.BigEndian.Uint64(buffer[tagStart:tagFinish])),
		Amount: binary.BigEndian.Uint64(buffer[amountStart:amountFinish]),
	}
	copy(r.Owner[:], buffer[ownerStart:ownerFinish])

	if len(buffer) > payloadStart {
		r.Payload = make([]byte, len(buffer)-payloadStart)
		copy(r.Payload, buffer[payloadStart:])
	}

	return r, nil
}

// Copy - an independent copy, detaching payload storage
func (r *Resource) Copy() *Resource {
	c := *r
	if nil != r.Payload {
		c.Payload = make([]byte, len(r.Payload))
		copy(c.Payload, r.Payload)
	}
	return &c
}
