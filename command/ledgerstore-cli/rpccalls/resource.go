// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/ledgerstore/ledgerstored/rpc/resource"
)

// CreateResource - store a new resource
func (c *Client) CreateResource(arguments *resource.CreateArguments) (*resource.CreateReply, error) {
	var reply resource.CreateReply
	if err := c.client.Call("Resource.Create", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// GetResource - fetch a resource record
func (c *Client) GetResource(arguments *resource.GetArguments) (*resource.GetReply, error) {
	var reply resource.GetReply
	if err := c.client.Call("Resource.Get", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// RemoveResource - delete a resource
func (c *Client) RemoveResource(arguments *resource.RemoveArguments) (*resource.RemoveReply, error) {
	var reply resource.RemoveReply
	if err := c.client.Call("Resource.Remove", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// ListResources - page through ids owned by one address
func (c *Client) ListResources(arguments *resource.ListArguments) (*resource.ListReply, error) {
	var reply resource.ListReply
	if err := c.client.Call("Resource.List", arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
