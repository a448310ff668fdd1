// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surveyledger/surveyd/storage"
)

// a file for testing
const databaseFileName = "testing-storage"

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + "-accounts.leveldb")
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	key := []byte("key-one")
	data := []byte("data-one")

	p.Put(key, data)
	assert.True(t, p.Has(key), "key not stored")
	assert.Equal(t, data, p.Get(key), "wrong stored data")

	p.Delete(key)
	assert.False(t, p.Has(key), "key not deleted")
	assert.Nil(t, p.Get(key), "deleted key still readable")
}

func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("same-key")

	storage.Pool.Users.Put(key, []byte("user"))
	storage.Pool.Communities.Put(key, []byte("community"))

	assert.Equal(t, []byte("user"), storage.Pool.Users.Get(key), "wrong users pool data")
	assert.Equal(t, []byte("community"), storage.Pool.Communities.Get(key), "wrong communities pool data")
	assert.False(t, storage.Pool.Surveys.Has(key), "surveys pool sees foreign key")
}

func TestScan(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("a"), []byte("1"))
	p.Put([]byte("b"), []byte("2"))
	p.Put([]byte("c"), []byte("3"))

	// foreign pool data must not appear in the scan
	storage.Pool.Votes.Put([]byte("x"), []byte("9"))

	count := 0
	p.Scan(func(key []byte, value []byte) bool {
		count += 1
		return true
	})
	assert.Equal(t, 3, count, "wrong scan count")

	// early stop
	count = 0
	p.Scan(func(key []byte, value []byte) bool {
		count += 1
		return false
	})
	assert.Equal(t, 1, count, "wrong stopped scan count")
}

func TestTransactionAtomicity(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewTransaction()
	assert.NoError(t, err, "transaction error")

	key := []byte("pending")
	trx.Put(p, key, []byte("value"))

	// read-your-writes inside the transaction
	assert.True(t, trx.Has(p, key), "transaction cannot see its own write")
	assert.Equal(t, []byte("value"), trx.Get(p, key), "wrong transaction data")

	// invisible outside before commit
	assert.False(t, p.Has(key), "uncommitted write visible in pool")

	err = trx.Commit()
	assert.NoError(t, err, "commit error")
	assert.True(t, p.Has(key), "committed write not visible in pool")
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData
	p.Put([]byte("kept"), []byte("original"))

	trx, err := storage.NewTransaction()
	assert.NoError(t, err, "transaction error")

	trx.Put(p, []byte("discarded"), []byte("value"))
	trx.Delete(p, []byte("kept"))

	// pending delete masks the stored value
	assert.False(t, trx.Has(p, []byte("kept")), "pending delete still visible in transaction")

	trx.Abort()
	err = trx.Commit()
	assert.NoError(t, err, "commit error")

	assert.False(t, p.Has([]byte("discarded")), "aborted write reached the pool")
	assert.True(t, p.Has([]byte("kept")), "aborted delete reached the pool")
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Error(t, err, "second initialise did not error")
}
