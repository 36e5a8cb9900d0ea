// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource_test

import (
	"bytes"
	"testing"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resource"
	"github.com/ledgerstore/ledgerstored/resourceid"
)

func TestPackUnpack(t *testing.T) {
	address, _, err := owner.Generate()
	if nil != err {
		t.Fatalf("owner generate error: %s", err)
	}

	r := &resource.Resource{
		Id:      resourceid.New([]byte("pack-test")),
		Tag:     7,
		Owner:   address,
		Amount:  1250,
		Payload: []byte("metadata"),
	}

	packed := r.Pack()

	back, err := resource.Unpack(r.Id, packed)
	if nil != err {
		t.Fatalf("Unpack error: %s", err)
	}

	if back.Id != r.Id {
		t.Errorf("id: %s  expected: %s", back.Id, r.Id)
	}
	if back.Tag != r.Tag {
		t.Errorf("tag: %d  expected: %d", back.Tag, r.Tag)
	}
	if back.Owner != r.Owner {
		t.Errorf("owner: %s  expected: %s", back.Owner, r.Owner)
	}
	if back.Amount != r.Amount {
		t.Errorf("amount: %d  expected: %d", back.Amount, r.Amount)
	}
	if !bytes.Equal(back.Payload, r.Payload) {
		t.Errorf("payload: %q  expected: %q", back.Payload, r.Payload)
	}
}

func TestPackUnpackNoPayload(t *testing.T) {
	r := &resource.Resource{
		Id:     resourceid.New([]byte("no-payload")),
		Tag:    1,
		Amount: 99,
	}

	back, err := resource.Unpack(r.Id, r.Pack())
	if nil != err {
		t.Fatalf("Unpack error: %s", err)
	}
	if nil != back.Payload {
		t.Errorf("payload: %q  expected nil", back.Payload)
	}
	if back.Amount != r.Amount {
		t.Errorf("amount: %d  expected: %d", back.Amount, r.Amount)
	}
}

func TestUnpackRejectsTruncatedRecord(t *testing.T) {
	_, err := resource.Unpack(resourceid.ResourceId{}, []byte{1, 2, 3})
	if fault.InvalidPayloadLength != err {
		t.Fatalf("error: %v  expected: %v", err, fault.InvalidPayloadLength)
	}
}

func TestCopyDetachesPayload(t *testing.T) {
	r := &resource.Resource{
		Id:      resourceid.New([]byte("copy-test")),
		Tag:     2,
		Amount:  5,
		Payload: []byte("shared"),
	}

	c := r.Copy()
	c.Payload[0] = 'X'

	if 'X' == r.Payload[0] {
		t.Fatal("copy shares payload storage with original")
	}
}
