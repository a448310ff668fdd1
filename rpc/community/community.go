// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package community

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

// Community - type for the RPC
type Community struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the community service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Community {
	return &Community{
		Log:          log,
		Limiter:      ratelimit.New(),
		IsNormalMode: isNormalMode,
	}
}

// ExecuteReply - result from any mutating community RPC
type ExecuteReply struct {
	Result *processor.Result `json:"result"`
}

// execute one signed instruction after the common guards
func (community *Community) execute(name string, instruction instructionrecord.Instruction) (*processor.Result, error) {
	if err := ratelimit.Limit(community.Limiter); nil != err {
		return nil, err
	}
	if nil == instruction.Signer() {
		return nil, fault.InvalidItem
	}
	if !community.IsNormalMode(mode.Normal) {
		return nil, fault.NotAvailableInReadOnly
	}

	community.Log.Infof("Community.%s: %s", name, instruction.Signer())

	packed, err := instruction.Pack(instruction.Signer())
	if nil != err {
		return nil, err
	}
	return processor.Execute(packed)
}

// Create - create a named community, signer becomes authority
func (community *Community) Create(arguments *instructionrecord.CreateCommunity, reply *ExecuteReply) error {
	if nil == arguments {
		return fault.InvalidItem
	}
	result, err := community.execute("Create", arguments)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// Join - add the signer to a community
func (community *Community) Join(arguments *instructionrecord.JoinCommunity, reply *ExecuteReply) error {
	if nil == arguments {
		return fault.InvalidItem
	}
	result, err := community.execute("Join", arguments)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// Exit - remove the signer from a community
func (community *Community) Exit(arguments *instructionrecord.ExitCommunity, reply *ExecuteReply) error {
	if nil == arguments {
		return fault.InvalidItem
	}
	result, err := community.execute("Exit", arguments)
	if nil != err {
		return err
	}
	reply.Result = result
	return nil
}

// GetArguments - community to read
type GetArguments struct {
	Name string `json:"name"`
}

// GetReply - the stored community record
type GetReply struct {
	Community *accountrecord.Community `json:"community"`
}

// Get - read a community record snapshot
func (community *Community) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(community.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.Name {
		return fault.InvalidItem
	}

	record, err := query.Community(arguments.Name)
	if nil != err {
		return err
	}
	reply.Community = record
	return nil
}
