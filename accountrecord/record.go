// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accountrecord

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/address"
	"github.com/surveyledger/surveyd/util"
)

// TagType - type code for stored account records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	UserTag      = TagType(iota) // one per registered identity
	CommunityTag = TagType(iota) // one per unique community name
	SurveyTag    = TagType(iota) // one per (community, title) pair
	VoteTag      = TagType(iota) // one per (survey, voter) pair

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic stored record interface
type Record interface {
	Pack() (Packed, error)
}

// field size limits
const (
	MinimumCommunityNameLength = 1
	MaximumCommunityNameLength = 32
	MinimumTitleLength         = 1
	MaximumTitleLength         = 30
	MinimumQuestionsLength     = 1
	MaximumQuestionsLength     = 200
	MinimumAnswerTextLength    = 1
	MaximumAnswerTextLength    = 50
	MinimumAnswerCount         = 2
	MaximumAnswerCount         = 4
	MaximumCommunitiesPerUser  = 10
	MaximumSurveysPerCommunity = 10
)

// RootCommunityName - the community every registered user belongs to
const RootCommunityName = "all"

// User - the stored account for one registered identity
type User struct {
	Authority   *account.Account `json:"authority"`   // base58
	Communities []string         `json:"communities"` // ordered, no duplicates
}

// Community - the stored account for one named community
type Community struct {
	Name      string           `json:"name"`      // utf-8
	Authority *account.Account `json:"authority"` // base58: immutable after creation
	Surveys   []string         `json:"surveys"`   // ordered, no duplicates
}

// Answer - one answer option and its tally
type Answer struct {
	Text  string `json:"text"`           // utf-8
	Votes uint64 `json:"votes,string"`   // monotonic counter
}

// Survey - the stored account for one survey
type Survey struct {
	Title         string   `json:"title"`          // utf-8
	CommunityName string   `json:"communityName"`  // utf-8
	Questions     string   `json:"questions"`      // utf-8
	Answers       []Answer `json:"answers"`        //
	LimitDate     int64    `json:"limitDate"`      // unix seconds, voting closes at this instant
}

// Vote - existence of this record is the double-vote guard
//
// the payload is retained for provenance only and is never read back
// as a precondition
type Vote struct {
	Survey address.Address  `json:"survey"` // hex
	Voter  *account.Account `json:"voter"`  // base58
}

// IsMember - true if the user's community list contains the name
func (user *User) IsMember(communityName string) bool {
	for _, name := range user.Communities {
		if name == communityName {
			return true
		}
	}
	return false
}

// HasSurvey - true if the community's survey list contains the title
func (community *Community) HasSurvey(title string) bool {
	for _, t := range community.Surveys {
		if t == title {
			return true
		}
	}
	return false
}

// IsOpen - derived survey status, never stored
//
// comparison is strict so voting closes exactly at LimitDate
func (survey *Survey) IsOpen(now int64) bool {
	return now < survey.LimitDate
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n || recordType >= uint64(InvalidTag) {
		return InvalidTag
	}
	return TagType(recordType)
}

// RecordName - returns the name of a record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *User, User:
		return "User", true

	case *Community, Community:
		return "Community", true

	case *Survey, Survey:
		return "Survey", true

	case *Vote, Vote:
		return "Vote", true

	default:
		return "*unknown*", false
	}
}
