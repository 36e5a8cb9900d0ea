// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/ledgerstore/ledgerstored/rpc/capability"
)

// IssueCapability - mint a capability for one address
func (c *Client) IssueCapability(arguments *capability.IssueArguments) (*capability.IssueReply, error) {
	var reply capability.IssueReply
	if err := c.client.Call("Capability.Issue", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// VerifyCapability - check a capability against an address
func (c *Client) VerifyCapability(arguments *capability.VerifyArguments) (*capability.VerifyReply, error) {
	var reply capability.VerifyReply
	if err := c.client.Call("Capability.Verify", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
