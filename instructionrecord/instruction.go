// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instructionrecord

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// InstructionTag - enumeration of the packed instruction types
type InstructionTag uint64

// all possible instruction tags
//
// the tag is the first Varint64 of a packed instruction
const (
	// null marks beginning of list - not used as an instruction type
	NullInstructionTag = InstructionTag(iota)

	// valid instruction types
	InitializeRootTag  = InstructionTag(iota) // create the root community
	RegisterUserTag    = InstructionTag(iota) // create a user record
	CreateCommunityTag = InstructionTag(iota) // create a named community
	JoinCommunityTag   = InstructionTag(iota) // add signer to member list
	ExitCommunityTag   = InstructionTag(iota) // remove signer from member list
	CreateSurveyTag    = InstructionTag(iota) // create a survey in a community
	DeleteSurveyTag    = InstructionTag(iota) // remove a survey and its record
	CastVoteTag        = InstructionTag(iota) // record one vote for an answer

	// this item must be last
	InvalidInstructionTag = InstructionTag(iota)
)

// byte sizes
const (
	maxSignatureLength = 1024
)

// Packed - packed instructions are just a byte slice
type Packed []byte

// Instruction - generic instruction interface
//
// the signer argument to Pack is the account whose signature the
// instruction carries; Pack fails if the signature does not verify
type Instruction interface {
	Pack(signer *account.Account) (Packed, error)
	Signer() *account.Account
}

// InitializeRoot - create the root community
//
// the signer becomes the root community authority
type InitializeRoot struct {
	Authority *account.Account  `json:"authority"` // base58
	Signature account.Signature `json:"signature"` // hex
}

// RegisterUser - create the signer's user record
type RegisterUser struct {
	User      *account.Account  `json:"user"`      // base58
	Signature account.Signature `json:"signature"` // hex
}

// CreateCommunity - create a named community
//
// the signer becomes the community authority and its first member
type CreateCommunity struct {
	Name      string            `json:"name"`
	Authority *account.Account  `json:"authority"` // base58
	Signature account.Signature `json:"signature"` // hex
}

// JoinCommunity - add the signer to a community's membership
type JoinCommunity struct {
	Name      string            `json:"name"`
	Member    *account.Account  `json:"member"`    // base58
	Signature account.Signature `json:"signature"` // hex
}

// ExitCommunity - remove the signer from a community's membership
type ExitCommunity struct {
	Name      string            `json:"name"`
	Member    *account.Account  `json:"member"`    // base58
	Signature account.Signature `json:"signature"` // hex
}

// CreateSurvey - create a survey inside a community
//
// any member of the community may sign this
type CreateSurvey struct {
	CommunityName string            `json:"communityName"`
	Title         string            `json:"title"`
	Questions     string            `json:"questions"`
	Answers       []string          `json:"answers"`
	LimitDate     int64             `json:"limitDate"` // unix seconds
	Authority     *account.Account  `json:"authority"` // base58
	Signature     account.Signature `json:"signature"` // hex
}

// DeleteSurvey - remove a survey and free its record
//
// only the community authority may sign this
type DeleteSurvey struct {
	CommunityName string            `json:"communityName"`
	Title         string            `json:"title"`
	Authority     *account.Account  `json:"authority"` // base58
	Signature     account.Signature `json:"signature"` // hex
}

// CastVote - record one vote for an answer of an open survey
type CastVote struct {
	CommunityName string            `json:"communityName"`
	Title         string            `json:"title"`
	AnswerIndex   uint64            `json:"answerIndex"`
	Voter         *account.Account  `json:"voter"`     // base58
	Signature     account.Signature `json:"signature"` // hex
}

// Signer accessors
// ----------------

// Signer - the account that must have signed the instruction
func (record *InitializeRoot) Signer() *account.Account { return record.Authority }

// Signer - the account that must have signed the instruction
func (record *RegisterUser) Signer() *account.Account { return record.User }

// Signer - the account that must have signed the instruction
func (record *CreateCommunity) Signer() *account.Account { return record.Authority }

// Signer - the account that must have signed the instruction
func (record *JoinCommunity) Signer() *account.Account { return record.Member }

// Signer - the account that must have signed the instruction
func (record *ExitCommunity) Signer() *account.Account { return record.Member }

// Signer - the account that must have signed the instruction
func (record *CreateSurvey) Signer() *account.Account { return record.Authority }

// Signer - the account that must have signed the instruction
func (record *DeleteSurvey) Signer() *account.Account { return record.Authority }

// Signer - the account that must have signed the instruction
func (record *CastVote) Signer() *account.Account { return record.Voter }

// TxId - derived identifier of an executed instruction
type TxId [32]byte

// MakeTxId - digest of an entire packed instruction including signature
func (record Packed) MakeTxId() TxId {
	return TxId(sha3.Sum256(record))
}

// String - convert a binary tx id to hex string for use by the fmt package (for %s)
func (txId TxId) String() string {
	return hex.EncodeToString(txId[:])
}

// GoString - convert a binary tx id to hex string for use by the fmt package (for %#v)
func (txId TxId) GoString() string {
	return "<txid:" + hex.EncodeToString(txId[:]) + ">"
}

// MarshalText - convert tx id to hex text
func (txId TxId) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(txId))
	buffer := make([]byte, size)
	hex.Encode(buffer, txId[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a tx id
func (txId *TxId) UnmarshalText(s []byte) error {
	if len(*txId) != hex.DecodedLen(len(s)) {
		return fault.NotTxId
	}
	byteCount, err := hex.Decode(txId[:], s)
	if nil != err {
		return err
	}
	if len(txId) != byteCount {
		return fault.NotTxId
	}
	return nil
}

// Type - get the record type code
func (record Packed) Type() InstructionTag {
	recordType, n := util.FromVarint64(record)
	if 0 == n || recordType >= uint64(InvalidInstructionTag) {
		return InvalidInstructionTag
	}
	return InstructionTag(recordType)
}

// InstructionName - returns the name of an instruction as a string
func InstructionName(instruction interface{}) (string, bool) {
	switch instruction.(type) {
	case *InitializeRoot, InitializeRoot:
		return "InitializeRoot", true

	case *RegisterUser, RegisterUser:
		return "RegisterUser", true

	case *CreateCommunity, CreateCommunity:
		return "CreateCommunity", true

	case *JoinCommunity, JoinCommunity:
		return "JoinCommunity", true

	case *ExitCommunity, ExitCommunity:
		return "ExitCommunity", true

	case *CreateSurvey, CreateSurvey:
		return "CreateSurvey", true

	case *DeleteSurvey, DeleteSurvey:
		return "DeleteSurvey", true

	case *CastVote, CastVote:
		return "CastVote", true

	default:
		return "*unknown*", false
	}
}
