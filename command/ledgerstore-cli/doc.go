// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledgerstore-cli - command line client for ledgerstored
//
// connects to a running daemon over TLS JSON RPC, all state lives on
// the daemon side, the client only parses arguments and prints
// responses as JSON
package main
