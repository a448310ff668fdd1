// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/rpc/survey"
)

// SurveyData - parameters for a new survey
type SurveyData struct {
	CommunityName string
	Title         string
	Questions     string
	Answers       []string
	LimitDate     int64 // unix seconds
}

// CreateSurvey - create a survey inside a community, members only
func (client *Client) CreateSurvey(surveyConfig *SurveyData, privateKey *account.PrivateKey) (*survey.ExecuteReply, error) {

	instruction := &instructionrecord.CreateSurvey{
		CommunityName: surveyConfig.CommunityName,
		Title:         surveyConfig.Title,
		Questions:     surveyConfig.Questions,
		Answers:       surveyConfig.Answers,
		LimitDate:     surveyConfig.LimitDate,
		Authority:     privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Create Survey Request", instruction)

	var reply survey.ExecuteReply
	if err := client.client.Call("Survey.Create", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Create Survey Reply", reply)

	return &reply, nil
}

// DeleteSurvey - remove a survey, authority only
func (client *Client) DeleteSurvey(communityName string, title string, privateKey *account.PrivateKey) (*survey.ExecuteReply, error) {

	instruction := &instructionrecord.DeleteSurvey{
		CommunityName: communityName,
		Title:         title,
		Authority:     privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Delete Survey Request", instruction)

	var reply survey.ExecuteReply
	if err := client.client.Call("Survey.Delete", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Delete Survey Reply", reply)

	return &reply, nil
}

// GetSurvey - read a survey snapshot with derived status
func (client *Client) GetSurvey(communityName string, title string) (*survey.GetReply, error) {

	arguments := survey.GetArguments{
		CommunityName: communityName,
		Title:         title,
	}

	client.printJson("Survey Get Request", arguments)

	var reply survey.GetReply
	if err := client.client.Call("Survey.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Survey Get Reply", reply)

	return &reply, nil
}
