// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accountrecord

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/address"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// Unpack - turn a byte slice into a stored record
//
// must cast result to correct type
//
// e.g.
//   user, ok := result.(*accountrecord.User)
// or:
//   switch rec := result.(type) {
//   case *accountrecord.User:
func (record Packed) Unpack() (r Record, n int, e error) {

	defer func() {
		if rec := recover(); nil != rec {
			e = fault.NotRecordPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotRecordPack
	}

unpack_switch:
	switch TagType(recordType) {

	case UserTag:

		// authority public key
		authority, authorityLength := unpackAccount(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength

		// community name list
		count, countLength := util.FromVarint64(record[n:])
		if 0 == countLength {
			break unpack_switch
		}
		if count > MaximumCommunitiesPerUser {
			return nil, 0, fault.TooManyCommunities
		}
		n += countLength

		communities := make([]string, 0, count)
		for i := uint64(0); i < count; i += 1 {
			name, nameLength := unpackString(record[n:], MaximumCommunityNameLength)
			if 0 == nameLength {
				break unpack_switch
			}
			n += nameLength
			communities = append(communities, name)
		}

		r := &User{
			Authority:   authority,
			Communities: communities,
		}
		return r, n, nil

	case CommunityTag:

		// name
		name, nameLength := unpackString(record[n:], MaximumCommunityNameLength)
		if 0 == nameLength {
			break unpack_switch
		}
		n += nameLength

		// authority public key
		authority, authorityLength := unpackAccount(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength

		// survey title list
		count, countLength := util.FromVarint64(record[n:])
		if 0 == countLength {
			break unpack_switch
		}
		if count > MaximumSurveysPerCommunity {
			return nil, 0, fault.TooManySurveys
		}
		n += countLength

		surveys := make([]string, 0, count)
		for i := uint64(0); i < count; i += 1 {
			title, titleLength := unpackString(record[n:], MaximumTitleLength)
			if 0 == titleLength {
				break unpack_switch
			}
			n += titleLength
			surveys = append(surveys, title)
		}

		r := &Community{
			Name:      name,
			Authority: authority,
			Surveys:   surveys,
		}
		return r, n, nil

	case SurveyTag:

		// title
		title, titleLength := unpackString(record[n:], MaximumTitleLength)
		if 0 == titleLength {
			break unpack_switch
		}
		n += titleLength

		// community name
		communityName, communityNameLength := unpackString(record[n:], MaximumCommunityNameLength)
		if 0 == communityNameLength {
			break unpack_switch
		}
		n += communityNameLength

		// questions
		questions, questionsLength := unpackString(record[n:], MaximumQuestionsLength)
		if 0 == questionsLength {
			break unpack_switch
		}
		n += questionsLength

		// answers
		count, countLength := util.ClippedVarint64(record[n:], MinimumAnswerCount, MaximumAnswerCount)
		if 0 == countLength {
			break unpack_switch
		}
		n += countLength

		answers := make([]Answer, 0, count)
		for i := 0; i < count; i += 1 {
			text, textLength := unpackString(record[n:], MaximumAnswerTextLength)
			if 0 == textLength {
				break unpack_switch
			}
			n += textLength

			votes, votesLength := util.FromVarint64(record[n:])
			if 0 == votesLength {
				break unpack_switch
			}
			n += votesLength

			answers = append(answers, Answer{
				Text:  text,
				Votes: votes,
			})
		}

		// limit date
		limitDate, limitDateLength := util.FromVarint64(record[n:])
		if 0 == limitDateLength {
			break unpack_switch
		}
		n += limitDateLength

		r := &Survey{
			Title:         title,
			CommunityName: communityName,
			Questions:     questions,
			Answers:       answers,
			LimitDate:     int64(limitDate),
		}
		return r, n, nil

	case VoteTag:

		// survey address
		surveyLength, surveyOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == surveyOffset {
			break unpack_switch
		}
		n += surveyOffset
		var survey address.Address
		if err := address.AddressFromBytes(&survey, record[n:n+surveyLength]); nil != err {
			return nil, 0, err
		}
		n += surveyLength

		// voter public key
		voter, voterLength := unpackAccount(record[n:])
		if 0 == voterLength {
			break unpack_switch
		}
		n += voterLength

		r := &Vote{
			Survey: survey,
			Voter:  voter,
		}
		return r, n, nil
	}
	return nil, 0, fault.NotRecordPack
}

// unpack a length-prefixed utf-8 string
//
// the prefix counts bytes; maximum is scaled for multi-byte runes
// returns the bytes used as second value or zero on error
func unpackString(buffer []byte, maximumRunes int) (string, int) {
	length, offset := util.ClippedVarint64(buffer, 1, 4*maximumRunes)
	if 0 == offset {
		return "", 0
	}
	if offset+length > len(buffer) {
		return "", 0
	}
	return string(buffer[offset : offset+length]), offset + length
}

// unpack a length-prefixed account
//
// returns the bytes used as second value or zero on error
func unpackAccount(buffer []byte) (*account.Account, int) {
	length, offset := util.ClippedVarint64(buffer, 1, 8192)
	if 0 == offset {
		return nil, 0
	}
	if offset+length > len(buffer) {
		return nil, 0
	}
	acc, err := account.AccountFromBytes(buffer[offset : offset+length])
	if nil != err {
		return nil, 0
	}
	return acc, offset + length
}
