// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/surveyledger/surveyd/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	for i := 0; i < 5; i += 1 {
		c1.Increment()
	}
	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	if 4 != c1.Decrement() {
		t.Errorf("counter is not 4 after decrementing: %d", c1.Uint64())
	}

	for i := 0; i < 4; i += 1 {
		c1.Decrement()
	}
	if !c1.IsZero() {
		t.Errorf("counter did not return to zero: %d", c1.Uint64())
	}

	c1.Decrement()

	// check against underflow, i.e. twos complement -1
	if ^uint64(0) != c1.Uint64() {
		t.Errorf("counter did not underflow: %d", c1.Uint64())
	}
}

// many goroutines bumping one counter must not lose updates
func TestCounterConcurrent(t *testing.T) {

	const goroutines = 20
	const iterations = 1000

	var c counter.Counter
	var wg sync.WaitGroup

	wg.Add(goroutines)
	for g := 0; g < goroutines; g += 1 {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i += 1 {
				c.Increment()
			}
			for i := 0; i < iterations/2; i += 1 {
				c.Decrement()
			}
		}()
	}
	wg.Wait()

	expected := uint64(goroutines * iterations / 2)
	if expected != c.Uint64() {
		t.Errorf("counter: %d  expected: %d", c.Uint64(), expected)
	}
}
