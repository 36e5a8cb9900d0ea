// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/ledgerstore/ledgerstored/command/ledgerstore-cli/rpccalls"
	rpctransfer "github.com/ledgerstore/ledgerstored/rpc/transfer"
)

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := idFlag(c, "id")
	if nil != err {
		return err
	}
	from, err := addressFlag(c, "from")
	if nil != err {
		return err
	}
	to, err := addressFlag(c, "to")
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

	response, err := client.Send(&rpctransfer.SendArguments{
		Id:         id,
		From:       from,
		To:         to,
		Capability: token,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
