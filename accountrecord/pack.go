// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accountrecord

import (
	"unicode/utf8"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// Pack User
//
// Pack Varint64(tag) followed by fields in order as struct above
func (user *User) Pack() (Packed, error) {
	if nil == user.Authority {
		return nil, fault.NotPublicKey
	}
	if len(user.Communities) > MaximumCommunitiesPerUser {
		return nil, fault.TooManyCommunities
	}
	for _, name := range user.Communities {
		if err := checkCommunityName(name); nil != err {
			return nil, err
		}
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(UserTag))
	message = appendAccount(message, user.Authority)
	message = appendUint64(message, uint64(len(user.Communities)))
	for _, name := range user.Communities {
		message = appendString(message, name)
	}
	return message, nil
}

// Pack Community
//
// Pack Varint64(tag) followed by fields in order as struct above
func (community *Community) Pack() (Packed, error) {
	if nil == community.Authority {
		return nil, fault.NotPublicKey
	}
	if err := checkCommunityName(community.Name); nil != err {
		return nil, err
	}
	if len(community.Surveys) > MaximumSurveysPerCommunity {
		return nil, fault.TooManySurveys
	}
	for _, title := range community.Surveys {
		if err := checkTitle(title); nil != err {
			return nil, err
		}
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CommunityTag))
	message = appendString(message, community.Name)
	message = appendAccount(message, community.Authority)
	message = appendUint64(message, uint64(len(community.Surveys)))
	for _, title := range community.Surveys {
		message = appendString(message, title)
	}
	return message, nil
}

// Pack Survey
//
// Pack Varint64(tag) followed by fields in order as struct above
func (survey *Survey) Pack() (Packed, error) {
	if err := checkTitle(survey.Title); nil != err {
		return nil, err
	}
	if err := checkCommunityName(survey.CommunityName); nil != err {
		return nil, err
	}
	if err := checkQuestions(survey.Questions); nil != err {
		return nil, err
	}
	if err := checkAnswerCount(len(survey.Answers)); nil != err {
		return nil, err
	}
	for _, answer := range survey.Answers {
		if err := checkAnswerText(answer.Text); nil != err {
			return nil, err
		}
	}
	if survey.LimitDate < 0 {
		return nil, fault.InvalidTimestamp
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(SurveyTag))
	message = appendString(message, survey.Title)
	message = appendString(message, survey.CommunityName)
	message = appendString(message, survey.Questions)
	message = appendUint64(message, uint64(len(survey.Answers)))
	for _, answer := range survey.Answers {
		message = appendString(message, answer.Text)
		message = appendUint64(message, answer.Votes)
	}
	message = appendUint64(message, uint64(survey.LimitDate))
	return message, nil
}

// Pack Vote
//
// Pack Varint64(tag) followed by fields in order as struct above
func (vote *Vote) Pack() (Packed, error) {
	if nil == vote.Voter {
		return nil, fault.NotPublicKey
	}
	if vote.Survey.IsZero() {
		return nil, fault.NotAddress
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(VoteTag))
	message = appendBytes(message, vote.Survey[:])
	message = appendAccount(message, vote.Voter)
	return message, nil
}

// field validation
// ----------------

func checkCommunityName(name string) error {
	switch n := utf8.RuneCountInString(name); {
	case n < MinimumCommunityNameLength:
		return fault.CommunityNameTooShort
	case n > MaximumCommunityNameLength:
		return fault.CommunityNameTooLong
	}
	return nil
}

func checkTitle(title string) error {
	switch n := utf8.RuneCountInString(title); {
	case n < MinimumTitleLength:
		return fault.TitleTooShort
	case n > MaximumTitleLength:
		return fault.TitleTooLong
	}
	return nil
}

func checkQuestions(questions string) error {
	switch n := utf8.RuneCountInString(questions); {
	case n < MinimumQuestionsLength:
		return fault.QuestionsTooShort
	case n > MaximumQuestionsLength:
		return fault.QuestionsTooLong
	}
	return nil
}

func checkAnswerText(text string) error {
	switch n := utf8.RuneCountInString(text); {
	case n < MinimumAnswerTextLength:
		return fault.AnswerTextTooShort
	case n > MaximumAnswerTextLength:
		return fault.AnswerTextTooLong
	}
	return nil
}

func checkAnswerCount(count int) error {
	switch {
	case count < MinimumAnswerCount:
		return fault.TooFewAnswers
	case count > MaximumAnswerCount:
		return fault.TooManyAnswers
	}
	return nil
}

// buffer append helpers
// ---------------------

// append a string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an account to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, acc *account.Account) Packed {
	data := acc.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
