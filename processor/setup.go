// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - execute signed instructions against the ledger
//
// each instruction either fully applies or leaves the ledger
// untouched: all writes go into a single storage transaction that
// commits only after every precondition has been checked
//
// a single writer lock serializes execution, making every
// "create only if absent" check race free
package processor

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/fault"
)

// globals for background process
type globalDataType struct {
	sync.RWMutex // to allow locking

	log *logger.L

	// serializes all ledger mutation
	toLock sync.Mutex

	// ledger time source
	clock func() time.Time

	// set once during initialise
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - setup the processor
//
// clock supplies ledger time for limit date checks; nil selects the
// system clock
func Initialise(clock func() time.Time) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("processor")
	globalData.log.Info("starting…")

	if nil == clock {
		clock = time.Now
	}
	globalData.clock = clock

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the processor
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}
