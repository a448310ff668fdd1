// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vote

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

// Vote - type for the RPC
type Vote struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the vote service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Vote {
	return &Vote{
		Log:          log,
		Limiter:      ratelimit.New(),
		IsNormalMode: isNormalMode,
	}
}

// CastReply - result from cast RPC
type CastReply struct {
	Result *processor.Result `json:"result"`
}

// Cast - record one vote on an open survey
func (vote *Vote) Cast(arguments *instructionrecord.CastVote, reply *CastReply) error {
	if err := ratelimit.Limit(vote.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Voter {
		return fault.InvalidItem
	}
	if !vote.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInReadOnly
	}

	vote.Log.Infof("Vote.Cast: %s on: %s/%s", arguments.Voter, arguments.CommunityName, arguments.Title)

	packed, err := arguments.Pack(arguments.Signer())
	if nil != err {
		return err
	}
	result, err := processor.Execute(packed)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// StatusArguments - survey and voter to check
type StatusArguments struct {
	CommunityName string `json:"communityName"`
	Title         string `json:"title"`
	Voter         string `json:"voter"` // base58 account
}

// StatusReply - whether the account has voted and the survey state
type StatusReply struct {
	Voted bool `json:"voted"`
	Open  bool `json:"open"`
}

// Status - check a voter's state on a survey
func (vote *Vote) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(vote.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Voter {
		return fault.InvalidItem
	}

	voter, err := account.AccountFromBase58(arguments.Voter)
	if nil != err {
		return err
	}

	status, err := query.SurveyStatus(arguments.CommunityName, arguments.Title)
	if nil != err {
		return err
	}
	voted, err := query.HasVoted(arguments.CommunityName, arguments.Title, voter)
	if nil != err {
		return err
	}
	reply.Voted = voted
	reply.Open = status.Open
	return nil
}
