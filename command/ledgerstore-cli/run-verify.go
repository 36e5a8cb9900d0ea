// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/ledgerstore/ledgerstored/command/ledgerstore-cli/rpccalls"
	rpccapability "github.com/ledgerstore/ledgerstored/rpc/capability"
)

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	subject, err := addressFlag(c, "owner")
	if nil != err {
		return err
	}
	token, err := capabilityFlag(c)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.VerifyCapability(&rpccapability.VerifyArguments{
		Capability: token,
		Subject:    subject,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
