// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer_test

import (
	"os"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transaction"
	"github.com/ledgerstore/ledgerstored/transfer"
)

const (
	testingDirName  = "testing"
	testingDatabase = testingDirName + "/transfer.leveldb"
)

func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "transfer_test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(err)
	}

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

var (
	tokenTag tagregistry.TypeTag // fungible
	deedTag  tagregistry.TypeTag // unique
)

func setup(t *testing.T) {
	if err := storage.Initialise(testingDatabase, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := tagregistry.Initialise(); nil != err {
		t.Fatalf("tagregistry initialise error: %s", err)
	}

	var err error
	tokenTag, err = tagregistry.Register("token", true, nil)
	if nil != err {
		t.Fatalf("register token error: %s", err)
	}
	deedTag, err = tagregistry.Register("deed", false, nil)
	if nil != err {
		t.Fatalf("register deed error: %s", err)
	}

	if err := table.Initialise(); nil != err {
		t.Fatalf("table initialise error: %s", err)
	}
	if err := transfer.Initialise(); nil != err {
		t.Fatalf("transfer initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	if err := transfer.Finalise(); nil != err {
		t.Errorf("transfer finalise error: %s", err)
	}
	if err := table.Finalise(); nil != err {
		t.Errorf("table finalise error: %s", err)
	}
	if err := tagregistry.Finalise(); nil != err {
		t.Errorf("tagregistry finalise error: %s", err)
	}
	storage.Finalise()
	os.RemoveAll(testingDatabase)
}

func newAccount(t *testing.T) owner.Address {
	address, _, err := owner.Generate()
	if nil != err {
		t.Fatalf("account generate error: %s", err)
	}
	return address
}

func mustCreate(t *testing.T, ctx *transaction.Context, tag tagregistry.TypeTag, amount uint64, address owner.Address) resourceid.ResourceId {
	id, err := table.Create(ctx, tag, amount, nil, address)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	return id
}

func amountOf(t *testing.T, id resourceid.ResourceId) uint64 {
	r, err := table.Get(id)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	return r.Amount
}

func TestTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	beta := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 100, alfa)

	if err := transfer.Transfer(ctx, id, alfa, beta); nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	r, err := table.Get(id)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if r.Owner != beta {
		t.Errorf("owner: actual: %s  expected: %s", r.Owner, beta)
	}

	// the previous owner has lost all rights
	if err := transfer.Transfer(ctx, id, alfa, alfa); err != fault.NotOwner {
		t.Fatalf("transfer error: actual: %v  expected: %v", err, fault.NotOwner)
	}

	// the new owner appears in the index, the old one does not
	records, err := table.ListFor(beta, 0, 10)
	if nil != err {
		t.Fatalf("list error: %s", err)
	}
	if 1 != len(records) || records[0].Id != id {
		t.Fatalf("beta list: %v", records)
	}
	records, err = table.ListFor(alfa, 0, 10)
	if nil != err {
		t.Fatalf("list error: %s", err)
	}
	if 0 != len(records) {
		t.Fatalf("alfa still indexed: %v", records)
	}
}

func TestTransferUnknownId(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	beta := newAccount(t)
	ctx := transaction.NewContext(alfa)

	var id resourceid.ResourceId
	id[0] = 0xff

	if err := transfer.Transfer(ctx, id, alfa, beta); err != fault.ResourceNotFound {
		t.Fatalf("transfer error: actual: %v  expected: %v", err, fault.ResourceNotFound)
	}
}

func TestTransferToSelf(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 10, alfa)

	if err := transfer.Transfer(ctx, id, alfa, alfa); nil != err {
		t.Fatalf("transfer error: %s", err)
	}

	r, err := table.Get(id)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if r.Owner != alfa {
		t.Errorf("owner: actual: %s  expected: %s", r.Owner, alfa)
	}

	// create + self transfer
	events, err := ctx.Drain()
	if nil != err {
		t.Fatalf("drain error: %s", err)
	}
	if 2 != len(events) {
		t.Fatalf("event count: actual: %d  expected: 2", len(events))
	}
	if events[1].Kind != transaction.EventTransferred {
		t.Errorf("event kind: actual: %d  expected: %d", events[1].Kind, transaction.EventTransferred)
	}
}

func TestSplit(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 100, alfa)

	newId, err := transfer.Split(ctx, id, 40, alfa)
	if nil != err {
		t.Fatalf("split error: %s", err)
	}
	if newId == id {
		t.Fatalf("split returned the original id")
	}

	if 60 != amountOf(t, id) {
		t.Errorf("original amount: actual: %d  expected: 60", amountOf(t, id))
	}
	if 40 != amountOf(t, newId) {
		t.Errorf("split amount: actual: %d  expected: 40", amountOf(t, newId))
	}

	split, err := table.Get(newId)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if split.Tag != tokenTag {
		t.Errorf("split tag: actual: %d  expected: %d", split.Tag, tokenTag)
	}
	if split.Owner != alfa {
		t.Errorf("split owner: actual: %s  expected: %s", split.Owner, alfa)
	}

	// the full amount may be split off leaving zero behind
	emptied, err := transfer.Split(ctx, newId, 40, alfa)
	if nil != err {
		t.Fatalf("split error: %s", err)
	}
	if 0 != amountOf(t, newId) {
		t.Errorf("emptied amount: actual: %d  expected: 0", amountOf(t, newId))
	}
	if 40 != amountOf(t, emptied) {
		t.Errorf("moved amount: actual: %d  expected: 40", amountOf(t, emptied))
	}
}

func TestSplitRejections(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	beta := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 100, alfa)
	deed := mustCreate(t, ctx, deedTag, 0, alfa)

	testData := []struct {
		id       resourceid.ResourceId
		amount   uint64
		address  owner.Address
		expected error
	}{
		{id, 0, alfa, fault.InvalidAmount},
		{id, 101, alfa, fault.InsufficientBalance},
		{id, 40, beta, fault.NotOwner},
		{deed, 1, alfa, fault.NotFungible},
	}

	for i, item := range testData {
		_, err := transfer.Split(ctx, item.id, item.amount, item.address)
		if err != item.expected {
			t.Errorf("%d: split error: actual: %v  expected: %v", i, err, item.expected)
		}
	}

	// nothing was mutated
	if 100 != amountOf(t, id) {
		t.Errorf("amount: actual: %d  expected: 100", amountOf(t, id))
	}
	if 2 != table.ResourceCount() {
		t.Errorf("resource count: actual: %d  expected: 2", table.ResourceCount())
	}
}

func TestMerge(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	ctx := transaction.NewContext(alfa)

	idA := mustCreate(t, ctx, tokenTag, 60, alfa)
	idB := mustCreate(t, ctx, tokenTag, 40, alfa)

	surviving, err := transfer.Merge(ctx, idA, idB, alfa)
	if nil != err {
		t.Fatalf("merge error: %s", err)
	}
	if surviving != idA {
		t.Fatalf("surviving id: actual: %s  expected: %s", surviving, idA)
	}

	if 100 != amountOf(t, idA) {
		t.Errorf("merged amount: actual: %d  expected: 100", amountOf(t, idA))
	}
	if _, err := table.Get(idB); err != fault.ResourceNotFound {
		t.Fatalf("get error: actual: %v  expected: %v", err, fault.ResourceNotFound)
	}
	if 1 != table.ResourceCount() {
		t.Errorf("resource count: actual: %d  expected: 1", table.ResourceCount())
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 100, alfa)

	part, err := transfer.Split(ctx, id, 30, alfa)
	if nil != err {
		t.Fatalf("split error: %s", err)
	}
	surviving, err := transfer.Merge(ctx, id, part, alfa)
	if nil != err {
		t.Fatalf("merge error: %s", err)
	}

	if 100 != amountOf(t, surviving) {
		t.Errorf("amount: actual: %d  expected: 100", amountOf(t, surviving))
	}
	if _, err := table.Get(part); err != fault.ResourceNotFound {
		t.Fatalf("get error: actual: %v  expected: %v", err, fault.ResourceNotFound)
	}
}

func TestMergeRejections(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	beta := newAccount(t)
	ctx := transaction.NewContext(alfa)

	token := mustCreate(t, ctx, tokenTag, 60, alfa)
	other := mustCreate(t, ctx, tokenTag, 40, beta)
	deedA := mustCreate(t, ctx, deedTag, 0, alfa)
	deedB := mustCreate(t, ctx, deedTag, 0, alfa)

	testData := []struct {
		idA      resourceid.ResourceId
		idB      resourceid.ResourceId
		address  owner.Address
		expected error
	}{
		{token, token, alfa, fault.CannotMergeWithSelf},
		{token, other, alfa, fault.NotOwner},
		{token, deedA, alfa, fault.TypeMismatch},
		{deedA, deedB, alfa, fault.NotFungible},
	}

	for i, item := range testData {
		_, err := transfer.Merge(ctx, item.idA, item.idB, item.address)
		if err != item.expected {
			t.Errorf("%d: merge error: actual: %v  expected: %v", i, err, item.expected)
		}
	}

	// every participant survived unchanged
	if 4 != table.ResourceCount() {
		t.Errorf("resource count: actual: %d  expected: 4", table.ResourceCount())
	}
	if 60 != amountOf(t, token) {
		t.Errorf("amount: actual: %d  expected: 60", amountOf(t, token))
	}
}

func TestMergeOverflow(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	ctx := transaction.NewContext(alfa)

	idA := mustCreate(t, ctx, tokenTag, ^uint64(0), alfa)
	idB := mustCreate(t, ctx, tokenTag, 1, alfa)

	if _, err := transfer.Merge(ctx, idA, idB, alfa); err != fault.InvalidAmount {
		t.Fatalf("merge error: actual: %v  expected: %v", err, fault.InvalidAmount)
	}
	if 2 != table.ResourceCount() {
		t.Errorf("resource count: actual: %d  expected: 2", table.ResourceCount())
	}
}

// two racing transfers of the same id, exactly one wins
func TestConcurrentTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	alfa := newAccount(t)
	beta := newAccount(t)
	gamma := newAccount(t)
	ctx := transaction.NewContext(alfa)

	id := mustCreate(t, ctx, tokenTag, 10, alfa)

	targets := []owner.Address{beta, gamma}
	results := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func(i int, to owner.Address) {
			defer wg.Done()
			results[i] = transfer.Transfer(transaction.NewContext(alfa), id, alfa, to)
		}(i, to)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range results {
		switch err {
		case nil:
			succeeded += 1
		case fault.NotOwner:
			// the loser saw alfa already dispossessed
		default:
			t.Fatalf("%d: transfer error: %v", i, err)
		}
	}
	if 1 != succeeded {
		t.Fatalf("winning transfers: actual: %d  expected: 1", succeeded)
	}

	r, err := table.Get(id)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	if r.Owner != targets[0] && r.Owner != targets[1] {
		t.Fatalf("owner: actual: %s  expected one of the targets", r.Owner)
	}
}
