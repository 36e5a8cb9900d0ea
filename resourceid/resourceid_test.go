// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resourceid_test

import (
	"encoding/json"
	"testing"

	"github.com/ledgerstore/ledgerstored/resourceid"
)

func TestNewIsDeterministic(t *testing.T) {
	a := resourceid.New([]byte("tag"), []byte("owner"), resourceid.Uint64Bytes(1))
	b := resourceid.New([]byte("tag"), []byte("owner"), resourceid.Uint64Bytes(1))
	if a != b {
		t.Fatalf("same material produced different ids: %s and %s", a, b)
	}
}

func TestNewSequenceChangesId(t *testing.T) {
	a := resourceid.New([]byte("tag"), []byte("owner"), resourceid.Uint64Bytes(1))
	b := resourceid.New([]byte("tag"), []byte("owner"), resourceid.Uint64Bytes(2))
	if a == b {
		t.Fatal("different sequence produced identical ids")
	}
	if a.IsZero() || b.IsZero() {
		t.Fatal("derived id is zero")
	}
}

func TestTextRoundTrip(t *testing.T) {
	id := resourceid.New([]byte("round"), []byte("trip"))

	text, err := id.MarshalText()
	if nil != err {
		t.Fatalf("MarshalText error: %s", err)
	}

	var back resourceid.ResourceId
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("UnmarshalText error: %s", err)
	}
	if id != back {
		t.Fatalf("round trip mismatch: %s != %s", id, back)
	}
}

func TestUnmarshalRejectsBadLength(t *testing.T) {
	var id resourceid.ResourceId
	err := id.UnmarshalText([]byte("deadbeef"))
	if nil == err {
		t.Fatal("short hex was accepted")
	}
}

func TestJSON(t *testing.T) {
	id := resourceid.New([]byte("json"))

	buffer, err := json.Marshal(id)
	if nil != err {
		t.Fatalf("json.Marshal error: %s", err)
	}

	var back resourceid.ResourceId
	err = json.Unmarshal(buffer, &back)
	if nil != err {
		t.Fatalf("json.Unmarshal error: %s", err)
	}
	if id != back {
		t.Fatalf("json round trip mismatch: %s != %s", id, back)
	}
}

func TestZeroId(t *testing.T) {
	var zero resourceid.ResourceId
	if !zero.IsZero() {
		t.Fatal("zero value is not zero")
	}
}
