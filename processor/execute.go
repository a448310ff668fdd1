// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"bytes"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/address"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/storage"
)

// Result - outcome of a successfully executed instruction
type Result struct {
	TxId    instructionrecord.TxId `json:"txId"`
	Address address.Address        `json:"address"`

	// bytes released by a delete, zero otherwise
	FreedBytes int `json:"freedBytes,omitempty"`
}

// Execute - apply one packed instruction to the ledger
//
// the instruction is fully re-validated here: field limits, the
// ed25519 signature, and every ledger precondition; clients cannot
// be trusted to have checked anything
func Execute(packed instructionrecord.Packed) (*Result, error) {
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	instruction, n, err := packed.Unpack()
	if nil != err {
		return nil, err
	}
	if len(packed) != n {
		return nil, fault.NotInstructionPack
	}

	// verify the signature and that the wire bytes are canonical
	repacked, err := instruction.Pack(instruction.Signer())
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(packed, repacked) {
		return nil, fault.NotInstructionPack
	}

	// single writer
	globalData.toLock.Lock()
	defer globalData.toLock.Unlock()

	trx, err := storage.NewTransaction()
	if nil != err {
		return nil, err
	}

	result, err := apply(trx, instruction)
	if nil != err {
		trx.Abort()
		return nil, err
	}

	if err := trx.Commit(); nil != err {
		return nil, err
	}

	result.TxId = packed.MakeTxId()

	name, _ := instructionrecord.InstructionName(instruction)
	globalData.log.Infof("%s: txid: %s  address: %s", name, result.TxId, result.Address)

	return result, nil
}

// dispatch one unpacked instruction inside the transaction
func apply(trx *storage.Transaction, instruction instructionrecord.Instruction) (*Result, error) {
	switch ix := instruction.(type) {
	case *instructionrecord.InitializeRoot:
		return initializeRoot(trx, ix)
	case *instructionrecord.RegisterUser:
		return registerUser(trx, ix)
	case *instructionrecord.CreateCommunity:
		return createCommunity(trx, ix)
	case *instructionrecord.JoinCommunity:
		return joinCommunity(trx, ix)
	case *instructionrecord.ExitCommunity:
		return exitCommunity(trx, ix)
	case *instructionrecord.CreateSurvey:
		return createSurvey(trx, ix)
	case *instructionrecord.DeleteSurvey:
		return deleteSurvey(trx, ix)
	case *instructionrecord.CastVote:
		return castVote(trx, ix)
	default:
		return nil, fault.NotInstructionPack
	}
}

// create the root community, exactly once for the whole ledger
func initializeRoot(trx *storage.Transaction, ix *instructionrecord.InitializeRoot) (*Result, error) {
	rootAddress, err := address.Community(accountrecord.RootCommunityName)
	if nil != err {
		return nil, err
	}
	if trx.Has(storage.Pool.Communities, rootAddress[:]) {
		return nil, fault.RootAlreadyExists
	}

	root := &accountrecord.Community{
		Name:      accountrecord.RootCommunityName,
		Authority: ix.Authority,
	}
	if err := putCommunity(trx, rootAddress, root); nil != err {
		return nil, err
	}
	return &Result{Address: rootAddress}, nil
}

// create a user record seeded with root community membership
func registerUser(trx *storage.Transaction, ix *instructionrecord.RegisterUser) (*Result, error) {
	userAddress, err := address.User(ix.User)
	if nil != err {
		return nil, err
	}
	if trx.Has(storage.Pool.Users, userAddress[:]) {
		return nil, fault.AlreadyRegistered
	}

	rootAddress, err := address.Community(accountrecord.RootCommunityName)
	if nil != err {
		return nil, err
	}
	if !trx.Has(storage.Pool.Communities, rootAddress[:]) {
		return nil, fault.RootNotFound
	}

	user := &accountrecord.User{
		Authority:   ix.User,
		Communities: []string{accountrecord.RootCommunityName},
	}
	if err := putUser(trx, userAddress, user); nil != err {
		return nil, err
	}
	return &Result{Address: userAddress}, nil
}

// create a community; the creator becomes authority and first member
func createCommunity(trx *storage.Transaction, ix *instructionrecord.CreateCommunity) (*Result, error) {
	userAddress, user, err := fetchUser(trx, ix.Authority)
	if nil != err {
		return nil, err
	}

	communityAddress, err := address.Community(ix.Name)
	if nil != err {
		return nil, err
	}
	if trx.Has(storage.Pool.Communities, communityAddress[:]) {
		return nil, fault.CommunityAlreadyExists
	}

	if len(user.Communities) >= accountrecord.MaximumCommunitiesPerUser {
		return nil, fault.TooManyCommunities
	}

	community := &accountrecord.Community{
		Name:      ix.Name,
		Authority: ix.Authority,
	}
	if err := putCommunity(trx, communityAddress, community); nil != err {
		return nil, err
	}

	user.Communities = append(user.Communities, ix.Name)
	if err := putUser(trx, userAddress, user); nil != err {
		return nil, err
	}
	return &Result{Address: communityAddress}, nil
}

// add the signer to an existing community
func joinCommunity(trx *storage.Transaction, ix *instructionrecord.JoinCommunity) (*Result, error) {
	userAddress, user, err := fetchUser(trx, ix.Member)
	if nil != err {
		return nil, err
	}

	communityAddress, _, err := fetchCommunity(trx, ix.Name)
	if nil != err {
		return nil, err
	}

	if user.IsMember(ix.Name) {
		return nil, fault.AlreadyCommunityMember
	}
	if len(user.Communities) >= accountrecord.MaximumCommunitiesPerUser {
		return nil, fault.TooManyCommunities
	}

	user.Communities = append(user.Communities, ix.Name)
	if err := putUser(trx, userAddress, user); nil != err {
		return nil, err
	}
	return &Result{Address: communityAddress}, nil
}

// remove the signer from a community's membership
//
// the community authority can never leave its own community
func exitCommunity(trx *storage.Transaction, ix *instructionrecord.ExitCommunity) (*Result, error) {
	userAddress, user, err := fetchUser(trx, ix.Member)
	if nil != err {
		return nil, err
	}

	communityAddress, community, err := fetchCommunity(trx, ix.Name)
	if nil != err {
		return nil, err
	}

	if !user.IsMember(ix.Name) {
		return nil, fault.NotCommunityMember
	}
	if community.Authority.String() == ix.Member.String() {
		return nil, fault.AuthorityCannotExit
	}

	user.Communities = removeString(user.Communities, ix.Name)
	if err := putUser(trx, userAddress, user); nil != err {
		return nil, err
	}
	return &Result{Address: communityAddress}, nil
}

// create a survey; any member of the community may do this
func createSurvey(trx *storage.Transaction, ix *instructionrecord.CreateSurvey) (*Result, error) {
	communityAddress, community, err := fetchCommunity(trx, ix.CommunityName)
	if nil != err {
		return nil, err
	}
	_, user, err := fetchUser(trx, ix.Authority)
	if nil != err {
		return nil, err
	}
	if !user.IsMember(ix.CommunityName) {
		return nil, fault.NotCommunityMember
	}

	surveyAddress, err := address.Survey(ix.CommunityName, ix.Title)
	if nil != err {
		return nil, err
	}
	if trx.Has(storage.Pool.Surveys, surveyAddress[:]) {
		return nil, fault.SurveyAlreadyExists
	}
	if len(community.Surveys) >= accountrecord.MaximumSurveysPerCommunity {
		return nil, fault.TooManySurveys
	}

	answers := make([]accountrecord.Answer, len(ix.Answers))
	for i, text := range ix.Answers {
		answers[i] = accountrecord.Answer{Text: text}
	}
	survey := &accountrecord.Survey{
		Title:         ix.Title,
		CommunityName: ix.CommunityName,
		Questions:     ix.Questions,
		Answers:       answers,
		LimitDate:     ix.LimitDate,
	}
	if err := putSurvey(trx, surveyAddress, survey); nil != err {
		return nil, err
	}

	community.Surveys = append(community.Surveys, ix.Title)
	if err := putCommunity(trx, communityAddress, community); nil != err {
		return nil, err
	}
	return &Result{Address: surveyAddress}, nil
}

// delete a survey and release its record
//
// vote records for the survey stay in place so a later survey at the
// same address cannot be voted on twice by the same account
func deleteSurvey(trx *storage.Transaction, ix *instructionrecord.DeleteSurvey) (*Result, error) {
	communityAddress, community, err := fetchCommunity(trx, ix.CommunityName)
	if nil != err {
		return nil, err
	}
	if community.Authority.String() != ix.Authority.String() {
		return nil, fault.NotCommunityAuthority
	}

	surveyAddress, err := address.Survey(ix.CommunityName, ix.Title)
	if nil != err {
		return nil, err
	}
	stored := trx.Get(storage.Pool.Surveys, surveyAddress[:])
	if nil == stored {
		return nil, fault.SurveyNotFound
	}

	trx.Delete(storage.Pool.Surveys, surveyAddress[:])

	community.Surveys = removeString(community.Surveys, ix.Title)
	if err := putCommunity(trx, communityAddress, community); nil != err {
		return nil, err
	}
	return &Result{
		Address:    surveyAddress,
		FreedBytes: len(stored),
	}, nil
}

// record one vote: create-if-absent on the vote record makes a second
// vote by the same account fail before any tally changes
func castVote(trx *storage.Transaction, ix *instructionrecord.CastVote) (*Result, error) {
	_, user, err := fetchUser(trx, ix.Voter)
	if nil != err {
		return nil, err
	}
	if !user.IsMember(ix.CommunityName) {
		return nil, fault.NotCommunityMember
	}

	surveyAddress, err := address.Survey(ix.CommunityName, ix.Title)
	if nil != err {
		return nil, err
	}
	survey, err := fetchSurvey(trx, surveyAddress)
	if nil != err {
		return nil, err
	}

	now := globalData.clock().Unix()
	if !survey.IsOpen(now) {
		return nil, fault.VotingIsClosed
	}
	if ix.AnswerIndex >= uint64(len(survey.Answers)) {
		return nil, fault.AnswerIndexOutOfRange
	}

	voteAddress, err := address.Vote(surveyAddress, ix.Voter)
	if nil != err {
		return nil, err
	}
	if trx.Has(storage.Pool.Votes, voteAddress[:]) {
		return nil, fault.VoteAlreadyCast
	}

	if survey.Answers[ix.AnswerIndex].Votes+1 < survey.Answers[ix.AnswerIndex].Votes {
		return nil, fault.VotesOverflow
	}
	survey.Answers[ix.AnswerIndex].Votes += 1
	if err := putSurvey(trx, surveyAddress, survey); nil != err {
		return nil, err
	}

	vote := &accountrecord.Vote{
		Survey: surveyAddress,
		Voter:  ix.Voter,
	}
	packedVote, err := vote.Pack()
	if nil != err {
		return nil, err
	}
	trx.Put(storage.Pool.Votes, voteAddress[:], packedVote)

	return &Result{Address: voteAddress}, nil
}

// record fetch/store helpers
// --------------------------

func fetchUser(trx *storage.Transaction, identity *account.Account) (address.Address, *accountrecord.User, error) {
	userAddress, err := address.User(identity)
	if nil != err {
		return address.Address{}, nil, err
	}
	packed := trx.Get(storage.Pool.Users, userAddress[:])
	if nil == packed {
		return address.Address{}, nil, fault.UserNotFound
	}
	record, _, err := accountrecord.Packed(packed).Unpack()
	if nil != err {
		return address.Address{}, nil, err
	}
	user, ok := record.(*accountrecord.User)
	if !ok {
		return address.Address{}, nil, fault.NotRecordPack
	}
	return userAddress, user, nil
}

func fetchCommunity(trx *storage.Transaction, name string) (address.Address, *accountrecord.Community, error) {
	communityAddress, err := address.Community(name)
	if nil != err {
		return address.Address{}, nil, err
	}
	packed := trx.Get(storage.Pool.Communities, communityAddress[:])
	if nil == packed {
		return address.Address{}, nil, fault.CommunityNotFound
	}
	record, _, err := accountrecord.Packed(packed).Unpack()
	if nil != err {
		return address.Address{}, nil, err
	}
	community, ok := record.(*accountrecord.Community)
	if !ok {
		return address.Address{}, nil, fault.NotRecordPack
	}
	return communityAddress, community, nil
}

func fetchSurvey(trx *storage.Transaction, surveyAddress address.Address) (*accountrecord.Survey, error) {
	packed := trx.Get(storage.Pool.Surveys, surveyAddress[:])
	if nil == packed {
		return nil, fault.SurveyNotFound
	}
	record, _, err := accountrecord.Packed(packed).Unpack()
	if nil != err {
		return nil, err
	}
	survey, ok := record.(*accountrecord.Survey)
	if !ok {
		return nil, fault.NotRecordPack
	}
	return survey, nil
}

func putUser(trx *storage.Transaction, userAddress address.Address, user *accountrecord.User) error {
	packed, err := user.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Users, userAddress[:], packed)
	return nil
}

func putCommunity(trx *storage.Transaction, communityAddress address.Address, community *accountrecord.Community) error {
	packed, err := community.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Communities, communityAddress[:], packed)
	return nil
}

func putSurvey(trx *storage.Transaction, surveyAddress address.Address, survey *accountrecord.Survey) error {
	packed, err := survey.Pack()
	if nil != err {
		return err
	}
	trx.Put(storage.Pool.Surveys, surveyAddress[:], packed)
	return nil
}

// remove the first occurrence of an item from a list
func removeString(list []string, item string) []string {
	for i, s := range list {
		if s == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
