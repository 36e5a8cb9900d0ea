// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - assemble the RPC server and its handlers
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/counter"
	rpccapability "github.com/ledgerstore/ledgerstored/rpc/capability"
	"github.com/ledgerstore/ledgerstored/rpc/node"
	"github.com/ledgerstore/ledgerstored/rpc/resource"
	rpctransfer "github.com/ledgerstore/ledgerstored/rpc/transfer"
)

// Create - register all handlers on a fresh RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.RegisterName("Resource", resource.New(log))
	_ = server.RegisterName("Transfer", rpctransfer.New(log))
	_ = server.RegisterName("Capability", rpccapability.New(log))
	_ = server.RegisterName("Node", node.New(log, start, version, rpcCount))

	return server
}
