// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := identityPrivateKey(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.RegisterUser(privateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runShowUser(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := identityAccount(m, c.String("user"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetUser(owner)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
