// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - RPC handler for node status
package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/counter"
	"github.com/ledgerstore/ledgerstored/mode"
	"github.com/ledgerstore/ledgerstored/rpc/ratelimit"
	"github.com/ledgerstore/ledgerstored/table"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string
	counter *counter.Counter
}

// New - create the handler
func New(log *logger.L, start time.Time, version string, rpcCount *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
		version: version,
		counter: rpcCount,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode      string `json:"mode"`
	Resources uint64 `json:"resources"`
	RPCs      uint64 `json:"rpcs"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// Info - return enough information for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.Resources = table.ResourceCount()
	reply.RPCs = node.counter.Current()
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	return nil
}
