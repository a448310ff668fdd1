// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package survey

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

// Survey - type for the RPC
type Survey struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the survey service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Survey {
	return &Survey{
		Log:          log,
		Limiter:      ratelimit.New(),
		IsNormalMode: isNormalMode,
	}
}

// ExecuteReply - result from any mutating survey RPC
type ExecuteReply struct {
	Result *processor.Result `json:"result"`
}

func (survey *Survey) execute(name string, instruction instructionrecord.Instruction) (*processor.Result, error) {
	if err := ratelimit.Limit(survey.Limiter); nil != err {
		return nil, err
	}
	if nil == instruction.Signer() {
		return nil, fault.InvalidItem
	}
	if !survey.IsNormalMode(mode.Normal) {
		return nil, fault.NotAvailableInReadOnly
	}

	survey.Log.Infof("Survey.%s: %s", name, instruction.Signer())

	packed, err := instruction.Pack(instruction.Signer())
	if nil != err {
		return nil, err
	}
	return processor.Execute(packed)
}

// Create - create a survey; any community member may sign
func (survey *Survey) Create(arguments *instructionrecord.CreateSurvey, reply *ExecuteReply) error {
	if nil == arguments {
		return fault.InvalidItem
	}
	result, err := survey.execute("Create", arguments)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// Delete - remove a survey; only the community authority may sign
func (survey *Survey) Delete(arguments *instructionrecord.DeleteSurvey, reply *ExecuteReply) error {
	if nil == arguments {
		return fault.InvalidItem
	}
	result, err := survey.execute("Delete", arguments)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// GetArguments - survey to read
type GetArguments struct {
	CommunityName string `json:"communityName"`
	Title         string `json:"title"`
}

// GetReply - survey snapshot with derived open/closed status
type GetReply struct {
	Status *query.Status `json:"status"`
}

// Get - read a survey snapshot with its current status
func (survey *Survey) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(survey.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.CommunityName || "" == arguments.Title {
		return fault.InvalidItem
	}

	status, err := query.SurveyStatus(arguments.CommunityName, arguments.Title)
	if nil != err {
		return err
	}
	reply.Status = status
	return nil
}
