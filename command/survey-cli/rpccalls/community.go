// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/rpc/community"
)

// CreateCommunity - create a named community, signer becomes authority
func (client *Client) CreateCommunity(name string, privateKey *account.PrivateKey) (*community.ExecuteReply, error) {

	instruction := &instructionrecord.CreateCommunity{
		Name:      name,
		Authority: privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Create Community Request", instruction)

	var reply community.ExecuteReply
	if err := client.client.Call("Community.Create", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Create Community Reply", reply)

	return &reply, nil
}

// JoinCommunity - add the signer to a community
func (client *Client) JoinCommunity(name string, privateKey *account.PrivateKey) (*community.ExecuteReply, error) {

	instruction := &instructionrecord.JoinCommunity{
		Name:   name,
		Member: privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Join Community Request", instruction)

	var reply community.ExecuteReply
	if err := client.client.Call("Community.Join", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Join Community Reply", reply)

	return &reply, nil
}

// ExitCommunity - remove the signer from a community
func (client *Client) ExitCommunity(name string, privateKey *account.PrivateKey) (*community.ExecuteReply, error) {

	instruction := &instructionrecord.ExitCommunity{
		Name:   name,
		Member: privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Exit Community Request", instruction)

	var reply community.ExecuteReply
	if err := client.client.Call("Community.Exit", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Exit Community Reply", reply)

	return &reply, nil
}

// GetCommunity - read a community record snapshot
func (client *Client) GetCommunity(name string) (*community.GetReply, error) {

	arguments := community.GetArguments{
		Name: name,
	}

	client.printJson("Community Get Request", arguments)

	var reply community.GetReply
	if err := client.client.Call("Community.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Community Get Reply", reply)

	return &reply, nil
}
