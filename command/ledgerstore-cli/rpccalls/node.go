// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/ledgerstore/ledgerstored/rpc/node"
)

// GetNodeInfo - fetch the daemon status
func (c *Client) GetNodeInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.client.Call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
