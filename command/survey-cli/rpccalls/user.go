// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/rpc/user"
)

// RegisterUser - create the signer's user record
func (client *Client) RegisterUser(privateKey *account.PrivateKey) (*user.RegisterReply, error) {

	instruction := &instructionrecord.RegisterUser{
		User: privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Register Request", instruction)

	var reply user.RegisterReply
	if err := client.client.Call("User.Register", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Register Reply", reply)

	return &reply, nil
}

// GetUser - read a user record snapshot
func (client *Client) GetUser(accountBase58 string) (*user.InfoReply, error) {

	arguments := user.InfoArguments{
		User: accountBase58,
	}

	client.printJson("User Info Request", arguments)

	var reply user.InfoReply
	if err := client.client.Call("User.Info", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("User Info Reply", reply)

	return &reply, nil
}
