// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instructionrecord_test

import (
	"strings"
	"testing"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
)

// make a fresh signing key for a test
func makePrivateKey(t *testing.T) *account.PrivateKey {
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

// pack once to obtain the unsigned message, sign it, pack again
func signedPack(t *testing.T, instruction instructionrecord.Instruction, privateKey *account.PrivateKey, setSignature func(account.Signature)) instructionrecord.Packed {
	signer := privateKey.Account()

	message, err := instruction.Pack(signer)
	if fault.InvalidSignature != err {
		t.Fatalf("unsigned pack gave: %v  expected: %v", err, fault.InvalidSignature)
	}
	setSignature(privateKey.Sign(message))

	packed, err := instruction.Pack(signer)
	if nil != err {
		t.Fatalf("signed pack error: %s", err)
	}
	return packed
}

func TestCastVoteRoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)
	voter := privateKey.Account()

	vote := &instructionrecord.CastVote{
		CommunityName: "gophers",
		Title:         "Favorite Color",
		AnswerIndex:   1,
		Voter:         voter,
	}

	packed := signedPack(t, vote, privateKey, func(s account.Signature) { vote.Signature = s })
	if instructionrecord.CastVoteTag != packed.Type() {
		t.Fatalf("wrong instruction type: %d", packed.Type())
	}

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Fatalf("unpack used: %d of: %d bytes", n, len(packed))
	}

	back, ok := unpacked.(*instructionrecord.CastVote)
	if !ok {
		t.Fatalf("unpacked to wrong type: %T", unpacked)
	}
	if back.CommunityName != vote.CommunityName || back.Title != vote.Title || back.AnswerIndex != vote.AnswerIndex {
		t.Errorf("field mismatch: %+v", back)
	}
	if back.Voter.String() != voter.String() {
		t.Errorf("voter mismatch: %s", back.Voter)
	}

	// the reconstructed instruction must verify against the same signer
	repacked, err := back.Pack(back.Signer())
	if nil != err {
		t.Fatalf("repack error: %s", err)
	}
	if string(repacked) != string(packed) {
		t.Error("repack differs from original")
	}
	if repacked.MakeTxId() != packed.MakeTxId() {
		t.Error("tx id differs after round trip")
	}
}

func TestCreateSurveyRoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)
	authority := privateKey.Account()

	survey := &instructionrecord.CreateSurvey{
		CommunityName: "gophers",
		Title:         "Favorite Color",
		Questions:     "What is your favorite color?",
		Answers:       []string{"red", "green", "blue"},
		LimitDate:     1900000000,
		Authority:     authority,
	}

	packed := signedPack(t, survey, privateKey, func(s account.Signature) { survey.Signature = s })

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Fatalf("unpack used: %d of: %d bytes", n, len(packed))
	}

	back, ok := unpacked.(*instructionrecord.CreateSurvey)
	if !ok {
		t.Fatalf("unpacked to wrong type: %T", unpacked)
	}
	if 3 != len(back.Answers) || "green" != back.Answers[1] {
		t.Errorf("answers mismatch: %v", back.Answers)
	}
	if back.LimitDate != survey.LimitDate {
		t.Errorf("limit date mismatch: %d", back.LimitDate)
	}
	if _, err := back.Pack(back.Signer()); nil != err {
		t.Errorf("repack error: %s", err)
	}
}

func TestRegisterUserRoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)
	user := privateKey.Account()

	register := &instructionrecord.RegisterUser{
		User: user,
	}
	packed := signedPack(t, register, privateKey, func(s account.Signature) { register.Signature = s })

	unpacked, _, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	back, ok := unpacked.(*instructionrecord.RegisterUser)
	if !ok {
		t.Fatalf("unpacked to wrong type: %T", unpacked)
	}
	if back.User.String() != user.String() {
		t.Errorf("user mismatch: %s", back.User)
	}
}

func TestCommunityInstructionsRoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)
	member := privateKey.Account()

	create := &instructionrecord.CreateCommunity{Name: "gophers", Authority: member}
	join := &instructionrecord.JoinCommunity{Name: "gophers", Member: member}
	exit := &instructionrecord.ExitCommunity{Name: "gophers", Member: member}

	testItems := []struct {
		instruction  instructionrecord.Instruction
		setSignature func(account.Signature)
		expected     instructionrecord.InstructionTag
	}{
		{create, func(s account.Signature) { create.Signature = s }, instructionrecord.CreateCommunityTag},
		{join, func(s account.Signature) { join.Signature = s }, instructionrecord.JoinCommunityTag},
		{exit, func(s account.Signature) { exit.Signature = s }, instructionrecord.ExitCommunityTag},
	}

	for i, item := range testItems {
		packed := signedPack(t, item.instruction, privateKey, item.setSignature)
		if item.expected != packed.Type() {
			t.Fatalf("%d: wrong instruction type: %d", i, packed.Type())
		}
		unpacked, n, err := packed.Unpack()
		if nil != err {
			t.Fatalf("%d: unpack error: %s", i, err)
		}
		if len(packed) != n {
			t.Fatalf("%d: unpack used: %d of: %d bytes", i, n, len(packed))
		}
		name, ok := instructionrecord.InstructionName(unpacked)
		if !ok {
			t.Fatalf("%d: unknown instruction: %T", i, unpacked)
		}
		expectedName, _ := instructionrecord.InstructionName(item.instruction)
		if name != expectedName {
			t.Errorf("%d: name: %q  expected: %q", i, name, expectedName)
		}
	}
}

func TestPackRejectsTamperedFields(t *testing.T) {
	privateKey := makePrivateKey(t)
	voter := privateKey.Account()

	vote := &instructionrecord.CastVote{
		CommunityName: "gophers",
		Title:         "Favorite Color",
		AnswerIndex:   0,
		Voter:         voter,
	}
	signedPack(t, vote, privateKey, func(s account.Signature) { vote.Signature = s })

	// any field change invalidates the carried signature
	vote.AnswerIndex = 1
	if _, err := vote.Pack(voter); fault.InvalidSignature != err {
		t.Errorf("tampered pack gave: %v  expected: %v", err, fault.InvalidSignature)
	}
}

func TestPackRejectsWrongSigner(t *testing.T) {
	privateKey := makePrivateKey(t)
	otherKey := makePrivateKey(t)

	vote := &instructionrecord.CastVote{
		CommunityName: "gophers",
		Title:         "Favorite Color",
		AnswerIndex:   0,
		Voter:         privateKey.Account(),
	}
	signedPack(t, vote, privateKey, func(s account.Signature) { vote.Signature = s })

	if _, err := vote.Pack(otherKey.Account()); fault.WrongOwner != err {
		t.Errorf("wrong signer gave: %v  expected: %v", err, fault.WrongOwner)
	}
}

func TestPackFieldLimits(t *testing.T) {
	privateKey := makePrivateKey(t)
	authority := privateKey.Account()

	survey := &instructionrecord.CreateSurvey{
		CommunityName: "gophers",
		Title:         strings.Repeat("x", 31),
		Questions:     "q",
		Answers:       []string{"yes", "no"},
		LimitDate:     1900000000,
		Authority:     authority,
	}
	if _, err := survey.Pack(authority); fault.TitleTooLong != err {
		t.Errorf("over length title gave: %v  expected: %v", err, fault.TitleTooLong)
	}

	survey.Title = "ok"
	survey.Answers = []string{"only"}
	if _, err := survey.Pack(authority); fault.TooFewAnswers != err {
		t.Errorf("one answer gave: %v  expected: %v", err, fault.TooFewAnswers)
	}

	survey.Answers = []string{"yes", "no"}
	survey.LimitDate = -1
	if _, err := survey.Pack(authority); fault.InvalidTimestamp != err {
		t.Errorf("negative limit date gave: %v  expected: %v", err, fault.InvalidTimestamp)
	}

	vote := &instructionrecord.CastVote{
		CommunityName: "gophers",
		Title:         "Favorite Color",
		AnswerIndex:   4,
		Voter:         authority,
	}
	if _, err := vote.Pack(authority); fault.AnswerIndexOutOfRange != err {
		t.Errorf("out of range index gave: %v  expected: %v", err, fault.AnswerIndexOutOfRange)
	}
}

func TestUnpackTruncatedInstruction(t *testing.T) {
	privateKey := makePrivateKey(t)
	register := &instructionrecord.RegisterUser{User: privateKey.Account()}
	packed := signedPack(t, register, privateKey, func(s account.Signature) { register.Signature = s })

	for i := 0; i < len(packed); i += 1 {
		_, _, err := packed[:i].Unpack()
		if fault.NotInstructionPack != err {
			t.Errorf("truncated[%d] gave: %v  expected: %v", i, err, fault.NotInstructionPack)
		}
	}
}
