// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vote_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/rpc/community"
	"github.com/surveyledger/surveyd/rpc/survey"
	"github.com/surveyledger/surveyd/rpc/user"
	"github.com/surveyledger/surveyd/rpc/vote"
	"github.com/surveyledger/surveyd/storage"
)

const databaseFileName = "testing-rpc"

var testTime = time.Unix(1700000000, 0)

func removeFiles() {
	os.RemoveAll(databaseFileName + "-accounts.leveldb")
	os.RemoveAll("test.log")
}

func TestMain(m *testing.M) {
	removeFiles()

	logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      "test.log",
		Size:      50000,
		Count:     10,
	})

	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		fmt.Fprintf(os.Stderr, "storage initialise error: %s\n", err)
		os.Exit(1)
	}
	clock := func() time.Time { return testTime }
	if err := processor.Initialise(clock); nil != err {
		fmt.Fprintf(os.Stderr, "processor initialise error: %s\n", err)
		os.Exit(1)
	}
	if err := query.Initialise(clock); nil != err {
		fmt.Fprintf(os.Stderr, "query initialise error: %s\n", err)
		os.Exit(1)
	}
	mode.Initialise()
	mode.Set(mode.Normal)

	rc := m.Run()

	mode.Finalise()
	query.Finalise()
	processor.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func makeKey(t *testing.T) *account.PrivateKey {
	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		t.Fatalf("seed error: %s", err)
	}
	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		t.Fatalf("private key error: %s", err)
	}
	return privateKey
}

func sign(t *testing.T, instruction instructionrecord.Instruction, privateKey *account.PrivateKey, setSignature func(account.Signature)) {
	message, err := instruction.Pack(privateKey.Account())
	if fault.InvalidSignature != err {
		t.Fatalf("unsigned pack gave: %v  expected: %v", err, fault.InvalidSignature)
	}
	setSignature(privateKey.Sign(message))
}

// drive the whole service surface: register, create community, join,
// create survey, vote, then read status back
func TestServiceRoundTrip(t *testing.T) {
	log := logger.New("test-rpc")

	userService := user.New(log, mode.Is)
	communityService := community.New(log, mode.Is)
	surveyService := survey.New(log, mode.Is)
	voteService := vote.New(log, mode.Is)

	rootKey := makeKey(t)
	voterKey := makeKey(t)

	// root community directly through the processor, as the daemon
	// initialise subcommand would
	rootIx := &instructionrecord.InitializeRoot{Authority: rootKey.Account()}
	sign(t, rootIx, rootKey, func(s account.Signature) { rootIx.Signature = s })
	packed, err := rootIx.Pack(rootIx.Signer())
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if _, err := processor.Execute(packed); nil != err {
		t.Fatalf("initialise root error: %s", err)
	}

	// register both accounts
	for _, key := range []*account.PrivateKey{rootKey, voterKey} {
		registerIx := &instructionrecord.RegisterUser{User: key.Account()}
		sign(t, registerIx, key, func(s account.Signature) { registerIx.Signature = s })
		var registerReply user.RegisterReply
		if err := userService.Register(registerIx, &registerReply); nil != err {
			t.Fatalf("register error: %s", err)
		}
		if nil == registerReply.Result {
			t.Fatal("register reply missing result")
		}
	}

	// duplicate registration is refused
	registerIx := &instructionrecord.RegisterUser{User: voterKey.Account()}
	sign(t, registerIx, voterKey, func(s account.Signature) { registerIx.Signature = s })
	var registerReply user.RegisterReply
	if err := userService.Register(registerIx, &registerReply); fault.AlreadyRegistered != err {
		t.Fatalf("duplicate register gave: %v  expected: %v", err, fault.AlreadyRegistered)
	}

	// community
	createIx := &instructionrecord.CreateCommunity{Name: "rpc-colors", Authority: rootKey.Account()}
	sign(t, createIx, rootKey, func(s account.Signature) { createIx.Signature = s })
	var createReply community.ExecuteReply
	if err := communityService.Create(createIx, &createReply); nil != err {
		t.Fatalf("create community error: %s", err)
	}

	joinIx := &instructionrecord.JoinCommunity{Name: "rpc-colors", Member: voterKey.Account()}
	sign(t, joinIx, voterKey, func(s account.Signature) { joinIx.Signature = s })
	var joinReply community.ExecuteReply
	if err := communityService.Join(joinIx, &joinReply); nil != err {
		t.Fatalf("join error: %s", err)
	}

	// survey
	surveyIx := &instructionrecord.CreateSurvey{
		CommunityName: "rpc-colors",
		Title:         "Favorite Color",
		Questions:     "What is your favorite color?",
		Answers:       []string{"red", "green", "blue"},
		LimitDate:     testTime.Unix() + 3600,
		Authority:     rootKey.Account(),
	}
	sign(t, surveyIx, rootKey, func(s account.Signature) { surveyIx.Signature = s })
	var surveyReply survey.ExecuteReply
	if err := surveyService.Create(surveyIx, &surveyReply); nil != err {
		t.Fatalf("create survey error: %s", err)
	}

	// vote
	castIx := &instructionrecord.CastVote{
		CommunityName: "rpc-colors",
		Title:         "Favorite Color",
		AnswerIndex:   1,
		Voter:         voterKey.Account(),
	}
	sign(t, castIx, voterKey, func(s account.Signature) { castIx.Signature = s })
	var castReply vote.CastReply
	if err := voteService.Cast(castIx, &castReply); nil != err {
		t.Fatalf("cast error: %s", err)
	}

	// status reads through the snapshot layer
	query.Flush()
	var statusReply vote.StatusReply
	statusArguments := &vote.StatusArguments{
		CommunityName: "rpc-colors",
		Title:         "Favorite Color",
		Voter:         voterKey.Account().String(),
	}
	if err := voteService.Status(statusArguments, &statusReply); nil != err {
		t.Fatalf("status error: %s", err)
	}
	if !statusReply.Voted {
		t.Error("vote not reported")
	}
	if !statusReply.Open {
		t.Error("survey should be open")
	}

	var getReply survey.GetReply
	if err := surveyService.Get(&survey.GetArguments{CommunityName: "rpc-colors", Title: "Favorite Color"}, &getReply); nil != err {
		t.Fatalf("get error: %s", err)
	}
	if 1 != getReply.Status.Survey.Answers[1].Votes {
		t.Errorf("green votes: %d  expected: 1", getReply.Status.Survey.Answers[1].Votes)
	}
}

// mutations are refused while the node is read only
func TestReadOnlyMode(t *testing.T) {
	log := logger.New("test-rpc-ro")
	userService := user.New(log, mode.Is)

	mode.Set(mode.ReadOnly)
	defer mode.Set(mode.Normal)

	key := makeKey(t)
	registerIx := &instructionrecord.RegisterUser{User: key.Account()}
	sign(t, registerIx, key, func(s account.Signature) { registerIx.Signature = s })

	var reply user.RegisterReply
	if err := userService.Register(registerIx, &reply); fault.NotAvailableInReadOnly != err {
		t.Fatalf("read only register gave: %v  expected: %v", err, fault.NotAvailableInReadOnly)
	}
}
