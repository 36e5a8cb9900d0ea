// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON RPC 1.0 service over TLS
package rpc

import (
	"io/ioutil"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/counter"
	"github.com/ledgerstore/ledgerstored/fault"
	"github.com/ledgerstore/ledgerstored/rpc/certificate"
	"github.com/ledgerstore/ledgerstored/rpc/listeners"
	"github.com/ledgerstore/ledgerstored/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// globals for this package
var globalData struct {
	sync.RWMutex
	log *logger.L

	// connections being served
	connectionCount counter.Counter

	// set once during initialise
	initialised bool
}

// Initialise - load certificates and start serving
func Initialise(rpcConfiguration *listeners.RPCConfiguration, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	certificatePEM, err := ioutil.ReadFile(rpcConfiguration.Certificate)
	if nil != err {
		log.Errorf("certificate: %q read error: %s", rpcConfiguration.Certificate, err)
		return err
	}
	keyPEM, err := ioutil.ReadFile(rpcConfiguration.PrivateKey)
	if nil != err {
		log.Errorf("private key: %q read error: %s", rpcConfiguration.PrivateKey, err)
		return err
	}

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, certificatePEM, keyPEM)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&globalData.connectionCount,
		server.Create(log, version, &globalData.connectionCount),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	if err := rpcListener.Serve(); nil != err {
		return err
	}

	globalData.initialised = true
	return nil
}

// Finalise - stop accepting calls
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}
