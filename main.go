// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledgerstored - resource store daemon
//
// every resource is held by exactly one owner, mutations go through
// the transfer engine and are serialized per resource id, clients
// connect over TLS JSON RPC
package main

import (
	"fmt"
	"io/ioutil"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/ledgerstore/ledgerstored/capability"
	"github.com/ledgerstore/ledgerstored/mode"
	"github.com/ledgerstore/ledgerstored/owner"
	"github.com/ledgerstore/ledgerstored/rpc"
	"github.com/ledgerstore/ledgerstored/storage"
	"github.com/ledgerstore/ledgerstored/table"
	"github.com/ledgerstore/ledgerstored/tagregistry"
	"github.com/ledgerstore/ledgerstored/transfer"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on it
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.ReadOnly)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC TLS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("read only: %v", theConfiguration.ReadOnly)
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)

	// start the data storage
	log.Info("initialise storage")
	readOnly := storage.ReadWrite
	if theConfiguration.ReadOnly {
		readOnly = storage.ReadOnly
	}
	err = storage.Initialise(theConfiguration.Database.Name, readOnly)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// register the configured resource types
	log.Info("initialise tagregistry")
	err = tagregistry.Initialise()
	if nil != err {
		log.Criticalf("tagregistry initialise error: %s", err)
		exitwithstatus.Message("tagregistry initialise error: %s", err)
	}
	defer tagregistry.Finalise()

	for _, tag := range theConfiguration.Tags {
		registered, err := tagregistry.Register(tag.Name, tag.Fungible, nil)
		if nil != err {
			log.Criticalf("tag: %q register error: %s", tag.Name, err)
			exitwithstatus.Message("tag: %q register error: %s", tag.Name, err)
		}
		log.Infof("tag: %q = %d  fungible: %v", tag.Name, registered, tag.Fungible)
	}

	// the resource table - depends on storage
	log.Info("initialise table")
	err = table.Initialise()
	if nil != err {
		log.Criticalf("table initialise error: %s", err)
		exitwithstatus.Message("table initialise error: %s", err)
	}
	defer table.Finalise()

	// capability minting, restricted to the configured administrator
	log.Info("initialise capability")
	administrator, err := owner.FromBase58(theConfiguration.Administrator)
	if nil != err {
		log.Criticalf("administrator: %q error: %s", theConfiguration.Administrator, err)
		exitwithstatus.Message("administrator: %q error: %s", theConfiguration.Administrator, err)
	}
	err = capability.Initialise(administrator)
	if nil != err {
		log.Criticalf("capability initialise error: %s", err)
		exitwithstatus.Message("capability initialise error: %s", err)
	}
	defer capability.Finalise()

	// hand the administrator capability to the operator, the token
	// does not survive a restart so it is rewritten on every start
	administratorCapability, err := capability.Administrator()
	if nil != err {
		log.Criticalf("administrator capability error: %s", err)
		exitwithstatus.Message("administrator capability error: %s", err)
	}
	capabilityFileName := filepath.Join(theConfiguration.DataDirectory, "administrator.capability")
	err = ioutil.WriteFile(capabilityFileName, []byte(administratorCapability.String()+"\n"), 0600)
	if nil != err {
		log.Criticalf("write: %q error: %s", capabilityFileName, err)
		exitwithstatus.Message("write: %q error: %s", capabilityFileName, err)
	}
	defer os.Remove(capabilityFileName)
	log.Infof("administrator capability written to: %s", capabilityFileName)

	// the transfer engine - depends on table
	log.Info("initialise transfer")
	err = transfer.Initialise()
	if nil != err {
		log.Criticalf("transfer initialise error: %s", err)
		exitwithstatus.Message("transfer initialise error: %s", err)
	}
	defer transfer.Finalise()

	// start up the rpc service
	log.Info("initialise rpc")
	err = rpc.Initialise(&theConfiguration.ClientRPC, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// ready to serve
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
