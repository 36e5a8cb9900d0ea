// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"testing"
)

// helper to put a key/value pair in its own committed transaction
func poolPut(t *testing.T, p *PoolHandle, key string, data string) {
	trx := NewTransaction()
	trx.Begin()
	trx.Put(p, []byte(key), []byte(data))
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

// helper to remove a key in its own committed transaction
func poolDelete(t *testing.T, p *PoolHandle, key string) {
	trx := NewTransaction()
	trx.Begin()
	trx.Delete(p, []byte(key))
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

func TestPoolPutGetDelete(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	poolPut(t, p, "key-one", "data-one")
	poolPut(t, p, "key-two", "data-two")

	if value := p.Get([]byte("key-one")); !bytes.Equal([]byte("data-one"), value) {
		t.Fatalf("value: %q  expected: %q", value, "data-one")
	}
	if !p.Has([]byte("key-two")) {
		t.Fatal("key-two not found")
	}

	poolDelete(t, p, "key-one")

	if value := p.Get([]byte("key-one")); nil != value {
		t.Fatalf("deleted key returned: %q", value)
	}
	if p.Has([]byte("key-one")) {
		t.Fatal("deleted key still present")
	}
}

func TestPoolGetN(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	trx := NewTransaction()
	trx.Begin()
	trx.PutN(p, []byte("counter"), 42)
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	n, found := p.GetN([]byte("counter"))
	if !found {
		t.Fatal("counter not found")
	}
	if 42 != n {
		t.Fatalf("counter: %d  expected: 42", n)
	}

	_, found = p.GetN([]byte("missing"))
	if found {
		t.Fatal("missing counter was found")
	}
}

func TestPoolRange(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	poolPut(t, p, "scan-1", "one")
	poolPut(t, p, "scan-2", "two")
	poolPut(t, p, "scan-3", "three")
	poolPut(t, p, "other", "ignored")

	collected := make(map[string]string)
	p.Range([]byte("scan-"), func(key []byte, value []byte) bool {
		collected[string(key)] = string(value)
		return true
	})

	if 3 != len(collected) {
		t.Fatalf("collected: %d items  expected: 3", len(collected))
	}
	if "two" != collected["scan-2"] {
		t.Fatalf("scan-2: %q  expected: %q", collected["scan-2"], "two")
	}
}

func TestPoolsAreDisjoint(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	poolPut(t, Pool.TestData, "shared-key", "test-data")

	if value := Pool.Resources.Get([]byte("shared-key")); nil != value {
		t.Fatalf("resources pool returned test data: %q", value)
	}
}

func TestTransactionAbort(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	trx := NewTransaction()
	trx.Begin()
	trx.Put(p, []byte("discard"), []byte("never written"))
	trx.Abort()

	if value := p.Get([]byte("discard")); nil != value {
		t.Fatalf("aborted write is visible: %q", value)
	}
}

func TestTransactionStagedWriteIsInvisibleUntilCommit(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	poolPut(t, p, "key", "committed")

	trx := NewTransaction()
	trx.Begin()
	trx.Put(p, []byte("key"), []byte("staged"))

	// plain readers must still see the committed value
	if value := p.Get([]byte("key")); !bytes.Equal([]byte("committed"), value) {
		t.Fatalf("reader observed staged value: %q", value)
	}

	// the transaction holder sees its own write
	if value := trx.Get(p, []byte("key")); !bytes.Equal([]byte("staged"), value) {
		t.Fatalf("transaction read: %q  expected: %q", value, "staged")
	}

	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	if value := p.Get([]byte("key")); !bytes.Equal([]byte("staged"), value) {
		t.Fatalf("value after commit: %q  expected: %q", value, "staged")
	}
}

func TestTransactionStagedDeleteReadsAsAbsent(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	p := Pool.TestData

	poolPut(t, p, "doomed", "still here")

	trx := NewTransaction()
	trx.Begin()
	trx.Delete(p, []byte("doomed"))

	if nil != trx.Get(p, []byte("doomed")) {
		t.Fatal("staged delete still readable inside the transaction")
	}
	if value := p.Get([]byte("doomed")); !bytes.Equal([]byte("still here"), value) {
		t.Fatalf("reader lost the committed value: %q", value)
	}
	trx.Abort()

	if value := p.Get([]byte("doomed")); !bytes.Equal([]byte("still here"), value) {
		t.Fatalf("aborted delete destroyed the value: %q", value)
	}
}

func TestTransactionMultiplePools(t *testing.T) {
	setupTestStorage(t)
	defer teardownTestStorage()

	trx := NewTransaction()
	trx.Begin()
	trx.Put(Pool.TestData, []byte("a"), []byte("one"))
	trx.PutN(Pool.OwnerNextCount, []byte("b"), 9)
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	if value := Pool.TestData.Get([]byte("a")); !bytes.Equal([]byte("one"), value) {
		t.Fatalf("value: %q  expected: %q", value, "one")
	}
	n, found := Pool.OwnerNextCount.GetN([]byte("b"))
	if !found || 9 != n {
		t.Fatalf("counter: %d found: %v  expected: 9 true", n, found)
	}
}
