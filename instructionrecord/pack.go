// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instructionrecord

import (
	"unicode/utf8"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// Pack InitializeRoot
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *InitializeRoot) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Authority, signer, record.Signature); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(InitializeRootTag))
	message = appendAccount(message, record.Authority)

	return signPack(message, signer, record.Signature)
}

// Pack RegisterUser
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *RegisterUser) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.User, signer, record.Signature); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(RegisterUserTag))
	message = appendAccount(message, record.User)

	return signPack(message, signer, record.Signature)
}

// Pack CreateCommunity
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *CreateCommunity) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Authority, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.Name); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CreateCommunityTag))
	message = appendString(message, record.Name)
	message = appendAccount(message, record.Authority)

	return signPack(message, signer, record.Signature)
}

// Pack JoinCommunity
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *JoinCommunity) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Member, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.Name); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(JoinCommunityTag))
	message = appendString(message, record.Name)
	message = appendAccount(message, record.Member)

	return signPack(message, signer, record.Signature)
}

// Pack ExitCommunity
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *ExitCommunity) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Member, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.Name); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(ExitCommunityTag))
	message = appendString(message, record.Name)
	message = appendAccount(message, record.Member)

	return signPack(message, signer, record.Signature)
}

// Pack CreateSurvey
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *CreateSurvey) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Authority, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.CommunityName); nil != err {
		return nil, err
	}
	if err := checkTitle(record.Title); nil != err {
		return nil, err
	}

	switch n := utf8.RuneCountInString(record.Questions); {
	case n < accountrecord.MinimumQuestionsLength:
		return nil, fault.QuestionsTooShort
	case n > accountrecord.MaximumQuestionsLength:
		return nil, fault.QuestionsTooLong
	}

	switch n := len(record.Answers); {
	case n < accountrecord.MinimumAnswerCount:
		return nil, fault.TooFewAnswers
	case n > accountrecord.MaximumAnswerCount:
		return nil, fault.TooManyAnswers
	}
	for _, text := range record.Answers {
		switch n := utf8.RuneCountInString(text); {
		case n < accountrecord.MinimumAnswerTextLength:
			return nil, fault.AnswerTextTooShort
		case n > accountrecord.MaximumAnswerTextLength:
			return nil, fault.AnswerTextTooLong
		}
	}

	if record.LimitDate < 0 {
		return nil, fault.InvalidTimestamp
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CreateSurveyTag))
	message = appendString(message, record.CommunityName)
	message = appendString(message, record.Title)
	message = appendString(message, record.Questions)
	message = appendUint64(message, uint64(len(record.Answers)))
	for _, text := range record.Answers {
		message = appendString(message, text)
	}
	message = appendUint64(message, uint64(record.LimitDate))
	message = appendAccount(message, record.Authority)

	return signPack(message, signer, record.Signature)
}

// Pack DeleteSurvey
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *DeleteSurvey) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Authority, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.CommunityName); nil != err {
		return nil, err
	}
	if err := checkTitle(record.Title); nil != err {
		return nil, err
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(DeleteSurveyTag))
	message = appendString(message, record.CommunityName)
	message = appendString(message, record.Title)
	message = appendAccount(message, record.Authority)

	return signPack(message, signer, record.Signature)
}

// Pack CastVote
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (record *CastVote) Pack(signer *account.Account) (Packed, error) {
	if err := checkSignerAndSignature(record.Voter, signer, record.Signature); nil != err {
		return nil, err
	}
	if err := checkCommunityName(record.CommunityName); nil != err {
		return nil, err
	}
	if err := checkTitle(record.Title); nil != err {
		return nil, err
	}
	if record.AnswerIndex >= accountrecord.MaximumAnswerCount {
		return nil, fault.AnswerIndexOutOfRange
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(CastVoteTag))
	message = appendString(message, record.CommunityName)
	message = appendString(message, record.Title)
	message = appendUint64(message, record.AnswerIndex)
	message = appendAccount(message, record.Voter)

	return signPack(message, signer, record.Signature)
}

// field validation
// ----------------

// the declared signer must match the signing account and the
// signature length must be sane before any crypto work
func checkSignerAndSignature(declared *account.Account, signer *account.Account, signature account.Signature) error {
	if nil == declared || nil == signer {
		return fault.NotPublicKey
	}
	if declared.String() != signer.String() {
		return fault.WrongOwner
	}
	if len(signature) > maxSignatureLength {
		return fault.SignatureTooLong
	}
	return nil
}

func checkCommunityName(name string) error {
	switch n := utf8.RuneCountInString(name); {
	case n < accountrecord.MinimumCommunityNameLength:
		return fault.CommunityNameTooShort
	case n > accountrecord.MaximumCommunityNameLength:
		return fault.CommunityNameTooLong
	}
	return nil
}

func checkTitle(title string) error {
	switch n := utf8.RuneCountInString(title); {
	case n < accountrecord.MinimumTitleLength:
		return fault.TitleTooShort
	case n > accountrecord.MaximumTitleLength:
		return fault.TitleTooLong
	}
	return nil
}

// verify the signature over the message then append it last
func signPack(message Packed, signer *account.Account, signature account.Signature) (Packed, error) {
	err := signer.CheckSignature(message, signature)
	if nil != err {
		return message, err
	}
	// signature last
	return appendBytes(message, signature), nil
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
