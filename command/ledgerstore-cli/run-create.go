// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/ledgerstore/ledgerstored/command/ledgerstore-cli/rpccalls"
	"github.com/ledgerstore/ledgerstored/rpc/resource"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	tag := c.String("tag")
	if "" == tag {
		return fmt.Errorf("missing tag")
	}
	address, err := addressFlag(c, "owner")
	if nil != err {
		return err
	}
	token, err := capabilityFlag(c)
	if nil != err {
		return err
	}

	var payload []byte
	if s := c.String("payload"); "" != s {
		payload = []byte(s)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateResource(&resource.CreateArguments{
		Tag:        tag,
		Amount:     c.Uint64("amount"),
		Payload:    payload,
		Owner:      address,
		Capability: token,
	})
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
