// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	AuthorityError  GenericError
	ExistsError     GenericError
	ExpiredError    GenericError
	InvalidError    GenericError
	LengthError     GenericError
	MembershipError GenericError
	NotFoundError   GenericError
	ProcessError    GenericError
	RecordError     GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyCommunityMember = MembershipError("already a member of the community")
	AlreadyInitialised     = ProcessError("already initialised")
	AlreadyRegistered      = ExistsError("user is already registered")
	AnswerIndexOutOfRange  = InvalidError("answer index is out of range")
	AnswerTextTooLong      = LengthError("answer text too long")
	AnswerTextTooShort     = LengthError("answer text too short")
	AuthorityCannotExit    = AuthorityError("community authority cannot exit")
	CannotDecodeAccount    = RecordError("cannot decode account")
	CannotDecodeAddress    = RecordError("cannot decode address")
	CannotDecodePrivateKey = RecordError("cannot decode private key")
	CannotDecodeSeed       = RecordError("cannot decode seed")
	ChecksumMismatch       = ProcessError("checksum mismatch")
	CommunityAlreadyExists = ExistsError("community already exists")
	CommunityNameTooLong   = LengthError("community name too long")
	CommunityNameTooShort  = LengthError("community name too short")
	CommunityNotFound      = NotFoundError("community not found")
	CertificateFileExists  = ExistsError("certificate file already exists")
	IdentityNameExists     = ExistsError("identity name already exists")
	IdentityNameNotFound   = NotFoundError("identity name not found")
	InvalidConfiguration   = InvalidError("configuration is not a table")
	InvalidCount           = InvalidError("invalid count")
	InvalidIpAddress       = InvalidError("invalid ip address")
	InvalidItem            = InvalidError("invalid item")
	InvalidKeyLength       = InvalidError("key length is invalid")
	InvalidKeyType         = InvalidError("key type is invalid")
	InvalidSeedHeader      = InvalidError("seed header is invalid")
	InvalidSeedLength      = InvalidError("seed length is invalid")
	InvalidSignature       = InvalidError("invalid signature")
	InvalidStructPointer   = InvalidError("invalid struct pointer")
	InvalidTimestamp       = InvalidError("invalid timestamp")
	KeyFileExists          = ExistsError("key file already exists")
	MissingParameters      = InvalidError("missing parameters")
	NotAddress             = RecordError("not an address")
	NotAvailableInReadOnly = ProcessError("not available in read only mode")
	NotCommunityAuthority  = AuthorityError("authority is not the community authority")
	NotCommunityMember     = MembershipError("not a member of the community")
	NotInitialised         = ProcessError("not initialised")
	NotInstructionPack     = RecordError("not an instruction pack")
	NotPublicKey           = RecordError("not a public key")
	NotRecordPack          = RecordError("not a record pack")
	NotTxId                = RecordError("not a tx id")
	QuestionsTooLong       = LengthError("questions too long")
	QuestionsTooShort      = LengthError("questions too short")
	RateLimiting           = ProcessError("rate limiting")
	RootAlreadyExists      = ExistsError("root community already exists")
	RootNotFound           = NotFoundError("root community not found")
	SeedOutOfRange         = LengthError("seed length is out of range")
	SignatureTooLong       = LengthError("signature too long")
	SurveyAlreadyExists    = ExistsError("survey already exists")
	SurveyNotFound         = NotFoundError("survey not found")
	TitleTooLong           = LengthError("title too long")
	TitleTooShort          = LengthError("title too short")
	TooManyAnswers         = LengthError("too many answers")
	TooFewAnswers          = LengthError("too few answers")
	TooManyCommunities     = LengthError("too many communities for user")
	TooManySurveys         = LengthError("too many surveys for community")
	UserNotFound           = NotFoundError("user is not registered")
	VoteAlreadyCast        = ExistsError("vote has already been cast")
	VotesOverflow          = ProcessError("votes counter overflow")
	VotingIsClosed         = ExpiredError("voting is closed")
	WrongOwner             = AuthorityError("record is not owned by signer")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorityError) Error() string  { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e ExpiredError) Error() string    { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e MembershipError) Error() string { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrAuthority(e error) bool  { _, ok := e.(AuthorityError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrExpired(e error) bool    { _, ok := e.(ExpiredError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrMembership(e error) bool { _, ok := e.(MembershipError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
