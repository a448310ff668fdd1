// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := ratelimit.New()
	if err := ratelimit.Limit(limiter); nil != err {
		t.Errorf("limit error: %s", err)
	}
}

func TestLimitN(t *testing.T) {
	limiter := ratelimit.New()

	if err := ratelimit.LimitN(limiter, 10, 100); nil != err {
		t.Errorf("limit error: %s", err)
	}

	// a count outside the allowed range is rejected
	if err := ratelimit.LimitN(limiter, 0, 100); fault.InvalidCount != err {
		t.Errorf("zero count gave: %v  expected: %v", err, fault.InvalidCount)
	}
	if err := ratelimit.LimitN(limiter, 101, 100); fault.InvalidCount != err {
		t.Errorf("oversize count gave: %v  expected: %v", err, fault.InvalidCount)
	}
}
