// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/surveyledger/surveyd/command/survey-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "survey-cli"
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
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a seed and account, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise survey-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*surveyd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing base58 `SEED`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file, set it as default",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing base58 `SEED`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "register",
			Usage:  "register the identity on the ledger",
			Action: runRegister,
		},
		{
			Name:      "show-user",
			Usage:     "display a user record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "user, u",
					Value: "",
					Usage: " identity name or base58 `ACCOUNT` default is global identity",
				},
			},
			Action: runShowUser,
		},
		{
			Name:      "create-community",
			Usage:     "create a community, signer becomes authority",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
			},
			Action: runCreateCommunity,
		},
		{
			Name:      "join",
			Usage:     "join a community",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
			},
			Action: runJoinCommunity,
		},
		{
			Name:      "leave",
			Usage:     "leave a community",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
			},
			Action: runLeaveCommunity,
		},
		{
			Name:      "show-community",
			Usage:     "display a community record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
			},
			Action: runShowCommunity,
		},
		{
			Name:      "create-survey",
			Usage:     "create a survey in a community, members only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*survey `TITLE`",
				},
				cli.StringFlag{
					Name:  "questions, q",
					Value: "",
					Usage: "*survey question `TEXT`",
				},
				cli.StringSliceFlag{
					Name:  "answer, a",
					Usage: "*answer `TEXT` (repeat 2 to 4 times)",
				},
				cli.StringFlag{
					Name:  "expiry, e",
					Value: "",
					Usage: "*voting deadline, RFC3339 `TIME` or unix seconds",
				},
			},
			Action: runCreateSurvey,
		},
		{
			Name:      "delete-survey",
			Usage:     "delete a survey, authority only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*survey `TITLE`",
				},
			},
			Action: runDeleteSurvey,
		},
		{
			Name:      "show-survey",
			Usage:     "display a survey with tallies and status",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*survey `TITLE`",
				},
			},
			Action: runShowSurvey,
		},
		{
			Name:      "vote",
			Usage:     "cast a vote on an open survey",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*survey `TITLE`",
				},
				cli.Uint64Flag{
					Name:  "answer, a",
					Value: 0,
					Usage: "*answer `INDEX` starting from 0",
				},
			},
			Action: runVote,
		},
		{
			Name:      "vote-status",
			Usage:     "check whether an account voted on a survey",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "community, c",
					Value: "",
					Usage: "*community `NAME`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*survey `TITLE`",
				},
				cli.StringFlag{
					Name:  "voter, o",
					Value: "",
					Usage: " identity name or base58 `ACCOUNT` default is global identity",
				},
			},
			Action: runVoteStatus,
		},
		{
			Name:   "info",
			Usage:  "display surveyd status",
			Action: runNodeInfo,
		},
		{
			Name:  "version",
			Usage: "display survey-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "generate" == command {
			return nil
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			conf, err := configuration.Load(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  conf,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
