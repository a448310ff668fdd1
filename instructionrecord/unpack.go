// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instructionrecord

import (
	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// Unpack - turn a byte slice into an instruction
//
// the signature is carried over verbatim; a reconstructed instruction
// must still be re-packed with its signer to verify it
//
// must cast result to correct type
//
// e.g.
//   vote, ok := result.(*instructionrecord.CastVote)
func (record Packed) Unpack() (instruction Instruction, n int, e error) {

	defer func() {
		if rec := recover(); nil != rec {
			e = fault.NotInstructionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotInstructionPack
	}

unpack_switch:
	switch InstructionTag(recordType) {

	case InitializeRootTag:

		authority, authorityLength := unpackAccount(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		r := &InitializeRoot{
			Authority: authority,
			Signature: signature,
		}
		return r, n, nil

	case RegisterUserTag:

		user, userLength := unpackAccount(record[n:])
		if 0 == userLength {
			break unpack_switch
		}
		n += userLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		r := &RegisterUser{
			User:      user,
			Signature: signature,
		}
		return r, n, nil

	case CreateCommunityTag, JoinCommunityTag, ExitCommunityTag:

		name, nameLength := unpackString(record[n:], accountrecord.MaximumCommunityNameLength)
		if 0 == nameLength {
			break unpack_switch
		}
		n += nameLength

		signer, signerLength := unpackAccount(record[n:])
		if 0 == signerLength {
			break unpack_switch
		}
		n += signerLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		switch InstructionTag(recordType) {
		case CreateCommunityTag:
			return &CreateCommunity{
				Name:      name,
				Authority: signer,
				Signature: signature,
			}, n, nil
		case JoinCommunityTag:
			return &JoinCommunity{
				Name:      name,
				Member:    signer,
				Signature: signature,
			}, n, nil
		default:
			return &ExitCommunity{
				Name:      name,
				Member:    signer,
				Signature: signature,
			}, n, nil
		}

	case CreateSurveyTag:

		communityName, communityNameLength := unpackString(record[n:], accountrecord.MaximumCommunityNameLength)
		if 0 == communityNameLength {
			break unpack_switch
		}
		n += communityNameLength

		title, titleLength := unpackString(record[n:], accountrecord.MaximumTitleLength)
		if 0 == titleLength {
			break unpack_switch
		}
		n += titleLength

		questions, questionsLength := unpackString(record[n:], accountrecord.MaximumQuestionsLength)
		if 0 == questionsLength {
			break unpack_switch
		}
		n += questionsLength

		count, countLength := util.ClippedVarint64(record[n:], accountrecord.MinimumAnswerCount, accountrecord.MaximumAnswerCount)
		if 0 == countLength {
			break unpack_switch
		}
		n += countLength

		answers := make([]string, 0, count)
		for i := 0; i < count; i += 1 {
			text, textLength := unpackString(record[n:], accountrecord.MaximumAnswerTextLength)
			if 0 == textLength {
				break unpack_switch
			}
			n += textLength
			answers = append(answers, text)
		}

		limitDate, limitDateLength := util.FromVarint64(record[n:])
		if 0 == limitDateLength {
			break unpack_switch
		}
		n += limitDateLength

		authority, authorityLength := unpackAccount(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		r := &CreateSurvey{
			CommunityName: communityName,
			Title:         title,
			Questions:     questions,
			Answers:       answers,
			LimitDate:     int64(limitDate),
			Authority:     authority,
			Signature:     signature,
		}
		return r, n, nil

	case DeleteSurveyTag:

		communityName, communityNameLength := unpackString(record[n:], accountrecord.MaximumCommunityNameLength)
		if 0 == communityNameLength {
			break unpack_switch
		}
		n += communityNameLength

		title, titleLength := unpackString(record[n:], accountrecord.MaximumTitleLength)
		if 0 == titleLength {
			break unpack_switch
		}
		n += titleLength

		authority, authorityLength := unpackAccount(record[n:])
		if 0 == authorityLength {
			break unpack_switch
		}
		n += authorityLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		r := &DeleteSurvey{
			CommunityName: communityName,
			Title:         title,
			Authority:     authority,
			Signature:     signature,
		}
		return r, n, nil

	case CastVoteTag:

		communityName, communityNameLength := unpackString(record[n:], accountrecord.MaximumCommunityNameLength)
		if 0 == communityNameLength {
			break unpack_switch
		}
		n += communityNameLength

		title, titleLength := unpackString(record[n:], accountrecord.MaximumTitleLength)
		if 0 == titleLength {
			break unpack_switch
		}
		n += titleLength

		answerIndex, answerIndexLength := util.FromVarint64(record[n:])
		if 0 == answerIndexLength {
			break unpack_switch
		}
		n += answerIndexLength

		voter, voterLength := unpackAccount(record[n:])
		if 0 == voterLength {
			break unpack_switch
		}
		n += voterLength

		signature, signatureLength := unpackSignature(record[n:])
		if 0 == signatureLength {
			break unpack_switch
		}
		n += signatureLength

		r := &CastVote{
			CommunityName: communityName,
			Title:         title,
			AnswerIndex:   answerIndex,
			Voter:         voter,
			Signature:     signature,
		}
		return r, n, nil
	}
	return nil, 0, fault.NotInstructionPack
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

// unpack a length-prefixed signature
//
// returns the bytes used as second value or zero on error
func unpackSignature(buffer []byte) (account.Signature, int) {
	length, offset := util.ClippedVarint64(buffer, 1, maxSignatureLength)
	if 0 == offset {
		return nil, 0
	}
	if offset+length > len(buffer) {
		return nil, 0
	}
	signature := make(account.Signature, length)
	copy(signature, buffer[offset:offset+length])
	return signature, offset + length
}
