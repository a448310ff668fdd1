// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/command/survey-cli/rpccalls"
)

// signature of one signed community mutation call
type communityCall func(*rpccalls.Client, string, *account.PrivateKey) (interface{}, error)

func communityMutation(c *cli.Context, call communityCall) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	privateKey, err := identityPrivateKey(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := call(client, name, privateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runCreateCommunity(c *cli.Context) error {
	return communityMutation(c, func(client *rpccalls.Client, name string, privateKey *account.PrivateKey) (interface{}, error) {
		return client.CreateCommunity(name, privateKey)
	})
}

func runJoinCommunity(c *cli.Context) error {
	return communityMutation(c, func(client *rpccalls.Client, name string, privateKey *account.PrivateKey) (interface{}, error) {
		return client.JoinCommunity(name, privateKey)
	})
}

func runLeaveCommunity(c *cli.Context) error {
	return communityMutation(c, func(client *rpccalls.Client, name string, privateKey *account.PrivateKey) (interface{}, error) {
		return client.ExitCommunity(name, privateKey)
	})
}

func runShowCommunity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetCommunity(name)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
