// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/ledgerstore/ledgerstored/owner"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files, these
// cannot access any internal database or state
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFileName := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFileName := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFileName, privateKeyFileName, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFileName, certificateFileName, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFileName, certificateFileName)

	case "gen-account", "account":
		address, privateKey, err := owner.Generate()
		if nil != err {
			fmt.Printf("generate account error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("address: %s\n", address)
		fmt.Printf("private key: %s\n", hex.EncodeToString(privateKey))

	case "version":
		fmt.Printf("%s\n", version)

	case "show-config", "config":
		// needs the parsed configuration file
		return false

	default:
		switch command {
		case "help", "h", "?":
		default:
			fmt.Printf("error: no such command: %s\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [command]\n", program)
		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help  (h)                             - display this message\n\n")
		fmt.Printf("  version                               - display the program version\n\n")
		fmt.Printf("  gen-rpc-cert  (rpc)                   - create private key and certificate\n")
		fmt.Printf("                [DIR [ADDRESS...]]        in optional directory with optional\n")
		fmt.Printf("                                          IP addresses\n\n")
		fmt.Printf("  gen-account   (account)               - create a new account keypair\n\n")
		fmt.Printf("  show-config                           - display the parsed configuration\n\n")
	}

	return true
}

// config command handler
//
// commands that perform enquiries on the configuration
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := arguments[0]

	switch command {
	case "show-config", "config":
		b, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			fmt.Printf("configuration encode error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("%s\n", b)
		return true
	}

	return false
}

// get the first argument as a directory and join the default filename
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		dir = arguments[0]
	}
	if err := os.MkdirAll(dir, 0700); nil != err {
		fmt.Printf("cannot create directory: %q error: %s\n", dir, err)
		exitwithstatus.Exit(1)
	}
	return filepath.Join(dir, name)
}
