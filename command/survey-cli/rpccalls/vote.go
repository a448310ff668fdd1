// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/rpc/vote"
)

// CastVote - record one vote on an open survey
func (client *Client) CastVote(communityName string, title string, answerIndex uint64, privateKey *account.PrivateKey) (*vote.CastReply, error) {

	instruction := &instructionrecord.CastVote{
		CommunityName: communityName,
		Title:         title,
		AnswerIndex:   answerIndex,
		Voter:         privateKey.Account(),
	}
	err := sign(instruction, privateKey, func(s account.Signature) { instruction.Signature = s })
	if nil != err {
		return nil, err
	}

	client.printJson("Cast Vote Request", instruction)

	var reply vote.CastReply
	if err := client.client.Call("Vote.Cast", instruction, &reply); nil != err {
		return nil, err
	}

	client.printJson("Cast Vote Reply", reply)

	return &reply, nil
}

// VoteStatus - check whether an account has voted on a survey
func (client *Client) VoteStatus(communityName string, title string, voterBase58 string) (*vote.StatusReply, error) {

	arguments := vote.StatusArguments{
		CommunityName: communityName,
		Title:         title,
		Voter:         voterBase58,
	}

	client.printJson("Vote Status Request", arguments)

	var reply vote.StatusReply
	if err := client.client.Call("Vote.Status", &arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Vote Status Reply", reply)

	return &reply, nil
}
