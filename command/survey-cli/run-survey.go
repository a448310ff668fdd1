// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/surveyledger/surveyd/command/survey-cli/rpccalls"
)

func runCreateSurvey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}

	questions := c.String("questions")
	if "" == questions {
		return ErrRequiredQuestions
	}

	answers := c.StringSlice("answer")
	if len(answers) < 2 {
		return ErrRequiredAnswers
	}

	limitDate, err := checkExpiry(c.String("expiry"))
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

	reply, err := client.CreateSurvey(&rpccalls.SurveyData{
		CommunityName: name,
		Title:         title,
		Questions:     questions,
		Answers:       answers,
		LimitDate:     limitDate,
	}, privateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runDeleteSurvey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	title, err := checkTitle(c.String("title"))
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

	reply, err := client.DeleteSurvey(name, title, privateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runShowSurvey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkCommunityName(c.String("community"))
	if nil != err {
		return err
	}

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetSurvey(name, title)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
