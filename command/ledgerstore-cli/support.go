// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/resourceid"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// fetch a required owner address flag
func addressFlag(c *cli.Context, name string) (owner.Address, error) {
	s := c.String(name)
	if "" == s {
		return owner.Address{}, fmt.Errorf("missing %s address", name)
	}
	return owner.FromBase58(s)
}

// fetch a required resource id flag
func idFlag(c *cli.Context, name string) (resourceid.ResourceId, error) {
	s := c.String(name)
	if "" == s {
		return resourceid.ResourceId{}, fmt.Errorf("missing %s", name)
	}
	var id resourceid.ResourceId
	if err := id.UnmarshalText([]byte(s)); nil != err {
		return resourceid.ResourceId{}, err
	}
	return id, nil
}

// fetch the required capability flag
func capabilityFlag(c *cli.Context) (capability.Capability, error) {
	return namedCapabilityFlag(c, "capability")
}

func namedCapabilityFlag(c *cli.Context, name string) (capability.Capability, error) {
	s := c.String(name)
	if "" == s {
		return capability.Capability{}, fmt.Errorf("missing %s", name)
	}
	return capability.FromHex(s)
}
