// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runVote(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}

	answerIndex := c.Uint64("answer")

	privateKey, err := identityPrivateKey(m, c.GlobalString("identity"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.CastVote(name, title, answerIndex, privateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runVoteStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}

	voter, err := identityAccount(m, c.String("voter"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.VoteStatus(name, title, voter)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
