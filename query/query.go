// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - read-only snapshot views of the ledger
//
// results are served through a short lived cache and may lag the
// ledger by up to the snapshot expiry; the processor never reads
// through this package
package query

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/accountrecord"
	"github.com/surveyledger/surveyd/address"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/storage"
)

// snapshot expiry
const (
	defaultExpiry   = 2 * time.Second
	cleanupInterval = time.Minute
)

// globals for background process
type globalDataType struct {
	sync.RWMutex // to allow locking

	log *logger.L

	snapshots *gocache.Cache
	clock     func() time.Time

	// set once during initialise
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - setup the query layer
//
// clock supplies ledger time for derived survey status; nil selects
// the system clock
func Initialise(clock func() time.Time) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("query")
	globalData.log.Info("starting…")

	globalData.snapshots = gocache.New(defaultExpiry, cleanupInterval)
	if nil == clock {
		clock = time.Now
	}
	globalData.clock = clock

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the query layer
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.snapshots = nil
	globalData.initialised = false
	return nil
}

// Flush - drop all cached snapshots
func Flush() {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil != globalData.snapshots {
		globalData.snapshots.Flush()
	}
}

// read a record through the snapshot cache
//
// the cached value is the unpacked record; a negative result is not
// cached so creations become visible immediately
func cachedRecord(pool *storage.PoolHandle, cacheTag string, key address.Address) (accountrecord.Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	cacheKey := cacheTag + key.String()
	if cached, found := globalData.snapshots.Get(cacheKey); found {
		return cached.(accountrecord.Record), nil
	}

	packed := pool.Get(key[:])
	if nil == packed {
		return nil, nil
	}
	record, _, err := accountrecord.Packed(packed).Unpack()
	if nil != err {
		return nil, err
	}
	globalData.snapshots.Set(cacheKey, record, gocache.DefaultExpiration)
	return record, nil
}

// User - snapshot of a user record by identity
func User(identity *account.Account) (*accountrecord.User, error) {
	userAddress, err := address.User(identity)
	if nil != err {
		return nil, err
	}
	record, err := cachedRecord(storage.Pool.Users, "U", userAddress)
	if nil != err {
		return nil, err
	}
	if nil == record {
		return nil, fault.UserNotFound
	}
	return record.(*accountrecord.User), nil
}

// Community - snapshot of a community record by name
func Community(name string) (*accountrecord.Community, error) {
	communityAddress, err := address.Community(name)
	if nil != err {
		return nil, err
	}
	record, err := cachedRecord(storage.Pool.Communities, "C", communityAddress)
	if nil != err {
		return nil, err
	}
	if nil == record {
		return nil, fault.CommunityNotFound
	}
	return record.(*accountrecord.Community), nil
}

// Survey - snapshot of a survey record
func Survey(communityName string, title string) (*accountrecord.Survey, error) {
	surveyAddress, err := address.Survey(communityName, title)
	if nil != err {
		return nil, err
	}
	record, err := cachedRecord(storage.Pool.Surveys, "S", surveyAddress)
	if nil != err {
		return nil, err
	}
	if nil == record {
		return nil, fault.SurveyNotFound
	}
	return record.(*accountrecord.Survey), nil
}

// Status - a survey with its derived open/closed state
//
// open is computed from the limit date at read time, never stored
type Status struct {
	Survey           *accountrecord.Survey `json:"survey"`
	Open             bool                  `json:"open"`
	SecondsRemaining int64                 `json:"secondsRemaining"`
}

// SurveyStatus - snapshot of a survey with derived status
func SurveyStatus(communityName string, title string) (*Status, error) {
	survey, err := Survey(communityName, title)
	if nil != err {
		return nil, err
	}
	now := globalData.clock().Unix()
	remaining := survey.LimitDate - now
	if remaining < 0 {
		remaining = 0
	}
	return &Status{
		Survey:           survey,
		Open:             survey.IsOpen(now),
		SecondsRemaining: remaining,
	}, nil
}

// HasVoted - check whether an account has voted on a survey
//
// reads the vote pool directly: vote records are create-only so
// there is nothing useful to cache
func HasVoted(communityName string, title string, voter *account.Account) (bool, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.initialised {
		return false, fault.NotInitialised
	}

	surveyAddress, err := address.Survey(communityName, title)
	if nil != err {
		return false, err
	}
	voteAddress, err := address.Vote(surveyAddress, voter)
	if nil != err {
		return false, err
	}
	return storage.Pool.Votes.Has(voteAddress[:]), nil
}

// Exists - check any record pool for a derived address
func Exists(key address.Address) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	if !globalData.initialised {
		return false
	}

	pools := []*storage.PoolHandle{
		storage.Pool.Users,
		storage.Pool.Communities,
		storage.Pool.Surveys,
		storage.Pool.Votes,
	}
	for _, pool := range pools {
		if pool.Has(key[:]) {
			return true
		}
	}
	return false
}
