// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/surveyledger/surveyd/fault"
)

// Transaction - a batch of pool writes committed atomically
//
// reads see the pending writes of the same transaction; the
// underlying database is untouched until Commit
//
// not safe for concurrent use; the caller serializes
type Transaction struct {
	batch   *leveldb.Batch
	pending map[string][]byte // prefixed key -> value; nil value marks delete
}

// NewTransaction - start a fresh batch of writes
func NewTransaction() (*Transaction, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.NotInitialised
	}
	return &Transaction{
		batch:   new(leveldb.Batch),
		pending: make(map[string][]byte),
	}, nil
}

// Put - store a key/value bytes pair in the transaction
func (trx *Transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixedKey := pool.prefixKey(key)
	data := make([]byte, len(value))
	copy(data, value)
	trx.batch.Put(prefixedKey, data)
	trx.pending[string(prefixedKey)] = data
}

// Delete - remove a key in the transaction
func (trx *Transaction) Delete(pool *PoolHandle, key []byte) {
	prefixedKey := pool.prefixKey(key)
	trx.batch.Delete(prefixedKey)
	trx.pending[string(prefixedKey)] = nil
}

// Get - read a value, pending writes first then the database
//
// returns nil if the key is absent or deleted in this transaction
func (trx *Transaction) Get(pool *PoolHandle, key []byte) []byte {
	prefixedKey := pool.prefixKey(key)
	if value, changed := trx.pending[string(prefixedKey)]; changed {
		return value
	}
	return pool.Get(key)
}

// Has - check a key exists, pending writes first then the database
func (trx *Transaction) Has(pool *PoolHandle, key []byte) bool {
	prefixedKey := pool.prefixKey(key)
	if value, changed := trx.pending[string(prefixedKey)]; changed {
		return nil != value
	}
	return pool.Has(key)
}

// Commit - write the whole batch to the database as one atomic write
func (trx *Transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	err := poolData.db.Write(trx.batch, nil)
	trx.reset()
	return err
}

// Abort - discard all pending writes
func (trx *Transaction) Abort() {
	trx.reset()
}

func (trx *Transaction) reset() {
	trx.batch.Reset()
	trx.pending = make(map[string][]byte)
}
