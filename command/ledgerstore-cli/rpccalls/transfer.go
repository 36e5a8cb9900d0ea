// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/ledgerstore/ledgerstored/rpc/transfer"
)

// Send - move a resource to a new owner
func (c *Client) Send(arguments *transfer.SendArguments) (*transfer.SendReply, error) {
	var reply transfer.SendReply
	if err := c.client.Call("Transfer.Send", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Split - carve an amount off a fungible resource
func (c *Client) Split(arguments *transfer.SplitArguments) (*transfer.SplitReply, error) {
	var reply transfer.SplitReply
	if err := c.client.Call("Transfer.Split", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Merge - combine two fungible resources
func (c *Client) Merge(arguments *transfer.MergeArguments) (*transfer.MergeReply, error) {
	var reply transfer.MergeReply
	if err := c.client.Call("Transfer.Merge", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
