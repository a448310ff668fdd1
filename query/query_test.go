// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/address"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/query"
	"github.com/surveyledger/surveyd/storage"
)

const databaseFileName = "testing-query"

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
	if err := query.Initialise(func() time.Time { return testTime }); nil != err {
		fmt.Fprintf(os.Stderr, "query initialise error: %s\n", err)
		os.Exit(1)
	}

	rc := m.Run()

	query.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func makeAccount(t *testing.T) *account.Account {
	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		t.Fatalf("seed error: %s", err)
	}
	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		t.Fatalf("private key error: %s", err)
	}
	return privateKey.Account()
}

// write a record straight into a pool
func storeCommunity(t *testing.T, community *accountrecord.Community) address.Address {
	communityAddress, err := address.Community(community.Name)
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	packed, err := community.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	storage.Pool.Communities.Put(communityAddress[:], packed)
	return communityAddress
}

func storeSurvey(t *testing.T, survey *accountrecord.Survey) address.Address {
	surveyAddress, err := address.Survey(survey.CommunityName, survey.Title)
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	packed, err := survey.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	storage.Pool.Surveys.Put(surveyAddress[:], packed)
	return surveyAddress
}

func TestCommunityLookup(t *testing.T) {
	authority := makeAccount(t)
	communityAddress := storeCommunity(t, &accountrecord.Community{
		Name:      "lookup",
		Authority: authority,
	})

	community, err := query.Community("lookup")
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if "lookup" != community.Name {
		t.Errorf("name: %q", community.Name)
	}
	if !query.Exists(communityAddress) {
		t.Error("existence check failed")
	}

	if _, err := query.Community("absent"); fault.CommunityNotFound != err {
		t.Errorf("absent community gave: %v  expected: %v", err, fault.CommunityNotFound)
	}
}

func TestUserLookup(t *testing.T) {
	identity := makeAccount(t)
	userAddress, err := address.User(identity)
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	record := &accountrecord.User{
		Authority:   identity,
		Communities: []string{accountrecord.RootCommunityName},
	}
	packed, err := record.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	storage.Pool.Users.Put(userAddress[:], packed)

	user, err := query.User(identity)
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if !user.IsMember(accountrecord.RootCommunityName) {
		t.Errorf("communities: %v", user.Communities)
	}

	if _, err := query.User(makeAccount(t)); fault.UserNotFound != err {
		t.Errorf("absent user gave: %v  expected: %v", err, fault.UserNotFound)
	}
}

func TestSurveyStatus(t *testing.T) {
	storeSurvey(t, &accountrecord.Survey{
		Title:         "Status",
		CommunityName: "status-c",
		Questions:     "q",
		Answers: []accountrecord.Answer{
			{Text: "yes"},
			{Text: "no"},
		},
		LimitDate: testTime.Unix() + 120,
	})

	status, err := query.SurveyStatus("status-c", "Status")
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if !status.Open {
		t.Error("survey should be open")
	}
	if 120 != status.SecondsRemaining {
		t.Errorf("seconds remaining: %d  expected: 120", status.SecondsRemaining)
	}

	// expired survey shows closed with zero remaining
	query.Flush()
	storeSurvey(t, &accountrecord.Survey{
		Title:         "Status",
		CommunityName: "status-c",
		Questions:     "q",
		Answers: []accountrecord.Answer{
			{Text: "yes"},
			{Text: "no"},
		},
		LimitDate: testTime.Unix() - 1,
	})
	status, err = query.SurveyStatus("status-c", "Status")
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if status.Open {
		t.Error("survey should be closed")
	}
	if 0 != status.SecondsRemaining {
		t.Errorf("seconds remaining: %d  expected: 0", status.SecondsRemaining)
	}
}

func TestSnapshotStaleness(t *testing.T) {
	authority := makeAccount(t)
	storeCommunity(t, &accountrecord.Community{
		Name:      "stale",
		Authority: authority,
		Surveys:   []string{},
	})

	community, err := query.Community("stale")
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if 0 != len(community.Surveys) {
		t.Fatalf("surveys: %v", community.Surveys)
	}

	// update behind the cache: the snapshot may still show the old
	// record until it expires or is flushed
	storeCommunity(t, &accountrecord.Community{
		Name:      "stale",
		Authority: authority,
		Surveys:   []string{"New Survey"},
	})

	query.Flush()
	community, err = query.Community("stale")
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if !community.HasSurvey("New Survey") {
		t.Errorf("flushed snapshot missing update: %v", community.Surveys)
	}
}

func TestHasVoted(t *testing.T) {
	voter := makeAccount(t)
	surveyAddress, err := address.Survey("votes-c", "Voted")
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	voteAddress, err := address.Vote(surveyAddress, voter)
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}

	voted, err := query.HasVoted("votes-c", "Voted", voter)
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if voted {
		t.Error("vote reported before casting")
	}

	vote := &accountrecord.Vote{Survey: surveyAddress, Voter: voter}
	packed, err := vote.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	storage.Pool.Votes.Put(voteAddress[:], packed)

	voted, err = query.HasVoted("votes-c", "Voted", voter)
	if nil != err {
		t.Fatalf("query error: %s", err)
	}
	if !voted {
		t.Error("vote not reported after casting")
	}
}
