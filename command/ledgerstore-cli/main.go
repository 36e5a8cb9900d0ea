// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "ledgerstore-cli"
	app.Usage = "connect to a ledgerstored and operate on resources"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2230",
			Usage: " ledgerstored host/IP and port, `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate an account keypair, printed not stored",
			Action: runGenerate,
		},
		{
			Name:   "info",
			Usage:  "display the daemon status",
			Action: runInfo,
		},
		{
			Name:      "issue",
			Usage:     "mint a capability for an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*address the capability is bound to `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "admin, a",
					Value: "",
					Usage: "*administrator capability from the server's data directory `HEX`",
				},
			},
			Action: runIssue,
		},
		{
			Name:      "verify",
			Usage:     "check a capability against an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*address to check `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "create",
			Usage:     "create a new resource",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "tag, t",
					Value: "",
					Usage: "*registered type tag name `STRING`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: " amount for fungible types `NUMBER`",
				},
				cli.StringFlag{
					Name:  "payload, p",
					Value: "",
					Usage: " opaque payload `STRING`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "get",
			Usage:     "fetch one resource record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*resource id `HEX`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "list",
			Usage:     "list the ids owned by an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner address `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first index to include `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " maximum records to return `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "remove",
			Usage:     "delete a resource, owner only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*resource id `HEX`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runRemove,
		},
		{
			Name:      "send",
			Usage:     "transfer a resource to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*resource id `HEX`",
				},
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*current owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*new owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runSend,
		},
		{
			Name:      "split",
			Usage:     "carve an amount off a fungible resource",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*resource id `HEX`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to split off `NUMBER`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runSplit,
		},
		{
			Name:      "merge",
			Usage:     "combine two fungible resources, the first id survives",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "ida",
					Value: "",
					Usage: "*surviving resource id `HEX`",
				},
				cli.StringFlag{
					Name:  "idb",
					Value: "",
					Usage: "*absorbed resource id `HEX`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner address `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*capability token `HEX`",
				},
			},
			Action: runMerge,
		},
	}

	app.Before = func(c *cli.Context) error {
		app.Metadata = map[string]interface{}{
			"config": &metadata{
				connect: c.GlobalString("connect"),
				verbose: c.GlobalBool("verbose"),
				e:       app.ErrWriter,
				w:       app.Writer,
			},
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		cli.HandleExitCoder(cli.NewExitError(err.Error(), 1))
	}
}
