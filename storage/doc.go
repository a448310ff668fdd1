// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger data
//
// maintains a single LevelDB database for all account records
//
// the records are separated from each other by a single byte prefix
// on the key so that each pool appears as a separate storage area
//
// individual pools:
//
//	Users       'U'  derived address  -> packed user record
//	Communities 'C'  derived address  -> packed community record
//	Surveys     'S'  derived address  -> packed survey record
//	Votes       'V'  derived address  -> packed vote record
//	TestData    'Z'  testing only
//
// mutation happens through a Transaction: a batch of writes committed
// as a single atomic LevelDB write with read-your-writes semantics
// before the commit
package storage
