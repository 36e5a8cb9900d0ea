// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/ledgerstore/ledgerstored/owner"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, privateKey, err := owner.Generate()
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]string{
		"address":    address.String(),
		"privateKey": hex.EncodeToString(privateKey),
	})
}
