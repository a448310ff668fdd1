// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package user

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

// User - type for the RPC
type User struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

// New - create the user service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *User {
	return &User{
		Log:          log,
		Limiter:      ratelimit.New(),
		IsNormalMode: isNormalMode,
	}
}

// RegisterReply - result from register RPC
type RegisterReply struct {
	Result *processor.Result `json:"result"`
}

// Register - create the signer's user record
func (user *User) Register(arguments *instructionrecord.RegisterUser, reply *RegisterReply) error {
	if err := ratelimit.Limit(user.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.User {
		return fault.InvalidItem
	}
	if !user.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInReadOnly
	}

	user.Log.Infof("User.Register: %s", arguments.User)

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

// InfoArguments - identity whose record to read
type InfoArguments struct {
	User string `json:"user"` // base58 account
}

// InfoReply - the stored user record
type InfoReply struct {
	User *accountrecord.User `json:"user"`
}

// Info - read a user record snapshot
func (user *User) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(user.Limiter); nil != err {
		return err
	}
	if nil == arguments || "" == arguments.User {
		return fault.InvalidItem
	}

	identity, err := account.AccountFromBase58(arguments.User)
	if nil != err {
		return err
	}
	record, err := query.User(identity)
	if nil != err {
		return err
	}
	reply.User = record
	return nil
}
