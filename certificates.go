// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/ledgerstore/ledgerstored/fault"
)

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if ensureFileExists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}

	if ensureFileExists(privateKeyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "ledgerstored self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// check if a file exists
func ensureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
