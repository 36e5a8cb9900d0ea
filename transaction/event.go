// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
)

// EventKind - the lifecycle action an event records
type EventKind byte

// kind codes for events
const (
	EventCreated          EventKind = iota
	EventTransferred      EventKind = iota
	EventSplit            EventKind = iota
	EventMerged           EventKind = iota
	EventRemoved          EventKind = iota
	EventCapabilityIssued EventKind = iota
)

// Event - one immutable lifecycle record
//
// the sequence number is assigned at emission and never changes
type Event struct {
	Kind          EventKind             `json:"kind"`
	ResourceId    resourceid.ResourceId `json:"resourceId"`
	CounterpartId resourceid.ResourceId `json:"counterpartId"`
	From          owner.Address         `json:"from"`
	To            owner.Address         `json:"to"`
	Amount        uint64                `json:"amount"`
	Sequence      uint64                `json:"sequence"`
}

// internal conversion
func toString(kind EventKind) ([]byte, bool) {
	switch kind {
	case EventCreated:
		return []byte("Created"), true
	case EventTransferred:
		return []byte("Transferred"), true
	case EventSplit:
		return []byte("Split"), true
	case EventMerged:
		return []byte("Merged"), true
	case EventRemoved:
		return []byte("Removed"), true
	case EventCapabilityIssued:
		return []byte("CapabilityIssued"), true
	default:
		return []byte{}, false
	}
}

// String - convert an event kind to its string name
func (kind EventKind) String() string {
	s, ok := toString(kind)
	if !ok {
		logger.Panicf("invalid event kind enumeration: %d", kind)
	}
	return string(s)
}

// MarshalText - convert event kind to text
func (kind EventKind) MarshalText() ([]byte, error) {
	s, ok := toString(kind)
	if !ok {
		logger.Panicf("invalid event kind enumeration: %d", kind)
	}
	return s, nil
}
