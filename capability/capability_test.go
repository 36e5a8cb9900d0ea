// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/owner"
)

// the administrator account created by TestMain
var administratorAddress owner.Address

func TestMain(m *testing.M) {
	testDir, err := ioutil.TempDir("", "capability-test-log")
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: testDir,
		File:      "capability_test.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(err)
	}

	administratorAddress, _, err = owner.Generate()
	if nil != err {
		panic(err)
	}
	if err := capability.Initialise(administratorAddress); nil != err {
		panic(err)
	}

	rc := m.Run()

	capability.Finalise()
	logger.Finalise()
	os.RemoveAll(testDir)
	os.Exit(rc)
}

func testAddress(t *testing.T) owner.Address {
	address, _, err := owner.Generate()
	if nil != err {
		t.Fatalf("owner generate error: %s", err)
	}
	return address
}

func TestIssueAndAuthorize(t *testing.T) {
	subjectA := testAddress(t)
	subjectB := testAddress(t)

	c, err := capability.Issue(subjectA)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}

	if c.Subject() != subjectA {
		t.Fatal("capability bound to wrong subject")
	}

	if !capability.Authorize(c, subjectA) {
		t.Fatal("authorize failed for bound address")
	}
	if capability.Authorize(c, subjectB) {
		t.Fatal("authorize succeeded for different address")
	}
}

func TestForgedCapabilityIsRejected(t *testing.T) {
	subject := testAddress(t)

	genuine, err := capability.Issue(subject)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}

	// tamper with the transport form
	text := []byte(genuine.String())
	if '0' == text[len(text)-1] {
		text[len(text)-1] = '1'
	} else {
		text[len(text)-1] = '0'
	}

	var forged capability.Capability
	if err := forged.UnmarshalText(text); nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}

	if capability.Authorize(forged, subject) {
		t.Fatal("forged capability was authorized")
	}
}

func TestZeroCapabilityIsRejected(t *testing.T) {
	subject := testAddress(t)

	var empty capability.Capability
	if capability.Authorize(empty, subject) {
		t.Fatal("zero capability was authorized")
	}
}

func TestHexRoundTrip(t *testing.T) {
	subject := testAddress(t)

	c, err := capability.Issue(subject)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}

	back, err := capability.FromHex(c.String())
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}

	if !capability.Authorize(back, subject) {
		t.Fatal("decoded capability failed authorization")
	}
}

func TestFromHexRejectsShortInput(t *testing.T) {
	_, err := capability.FromHex("abcdef")
	if nil == err {
		t.Fatal("short input was accepted")
	}
}

func TestIssuesAreDistinct(t *testing.T) {
	subject := testAddress(t)

	a, err := capability.Issue(subject)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	b, err := capability.Issue(subject)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}

	if a.String() == b.String() {
		t.Fatal("two issues produced identical capabilities")
	}
}

func TestAdministratorCapability(t *testing.T) {
	c, err := capability.Administrator()
	if nil != err {
		t.Fatalf("administrator error: %s", err)
	}

	if c.Subject() != administratorAddress {
		t.Fatal("administrator capability bound to wrong address")
	}
	if !capability.IsAdministrator(c) {
		t.Fatal("administrator capability failed the administrator check")
	}
	if !capability.Authorize(c, administratorAddress) {
		t.Fatal("administrator capability failed authorization")
	}
}

func TestOrdinaryCapabilityIsNotAdministrator(t *testing.T) {
	subject := testAddress(t)

	c, err := capability.Issue(subject)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}

	if capability.IsAdministrator(c) {
		t.Fatal("ordinary capability passed the administrator check")
	}

	var empty capability.Capability
	if capability.IsAdministrator(empty) {
		t.Fatal("zero capability passed the administrator check")
	}
}
