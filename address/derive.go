// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"golang.org/x/crypto/sha3"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// namespace tags
//
// each record kind lives in its own namespace so identical seed bytes
// can never collide across kinds
const (
	userTag      = "user"
	communityTag = "community"
	surveyTag    = "survey"
	voteTag      = "vote"
)

// an individual seed longer than this is rejected
const maximumSeedLength = 1024

// Derive - compute the address for a namespace tag and seed tuple
//
// SHA3-256 over the tag followed by each seed prefixed with its
// Varint64 length; the length framing keeps distinct seed tuples from
// packing to identical byte streams
//
// the only possible failure is an out-of-range seed length
func Derive(tag string, seeds ...[]byte) (Address, error) {
	hasher := sha3.New256()
	hasher.Write([]byte(tag))
	for _, seed := range seeds {
		if 0 == len(seed) || len(seed) > maximumSeedLength {
			return Address{}, fault.SeedOutOfRange
		}
		hasher.Write(util.ToVarint64(uint64(len(seed))))
		hasher.Write(seed)
	}

	var address Address
	copy(address[:], hasher.Sum(nil))
	return address, nil
}

// User - the address of an identity's user account
func User(identity *account.Account) (Address, error) {
	return Derive(userTag, identity.Bytes())
}

// Community - the address of a named community
func Community(name string) (Address, error) {
	return Derive(communityTag, []byte(name))
}

// Survey - the address of a survey within a community
func Survey(communityName string, title string) (Address, error) {
	return Derive(surveyTag, []byte(communityName), []byte(title))
}

// Vote - the address of the vote record for one voter on one survey
func Vote(survey Address, voter *account.Account) (Address, error) {
	return Derive(voteTag, survey[:], voter.Bytes())
}
