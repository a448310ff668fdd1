// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	Connect         string              `json:"connect"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - a named signing identity
//
// the seed is stored in the clear so the file itself must be
// protected, it is written with owner-only permissions
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	Seed        string `json:"seed"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	dec := json.NewDecoder(f)
	if err := dec.Decode(options); nil != err {
		return nil, err
	}
	return options, nil
}

// Save - atomically write the configuration file
func Save(filename string, configuration *Configuration) error {

	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	os.Remove(tempFile)

	b, err := json.MarshalIndent(configuration, "", "  ")
	if nil != err {
		return err
	}
	b = append(b, '\n')

	file, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if nil != err {
		return err
	}
	if _, err := file.Write(b); nil != err {
		file.Close()
		return err
	}
	if err := file.Close(); nil != err {
		return err
	}

	if err := os.Remove(previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(filename, previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, filename)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.IdentityNameNotFound
	}

	return &id, nil
}

// Account - find identity for a given name and convert to an account
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return account.AccountFromBase58(id.Account)
}

// PrivateKey - recover the signing key of a named identity
func (config *Configuration) PrivateKey(name string) (*account.PrivateKey, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return account.PrivateKeyFromBase58Seed(id.Seed)
}

// AddIdentity - store a new identity derived from a seed
func (config *Configuration) AddIdentity(name string, description string, seed string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.IdentityNameExists
	}

	private, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     private.Account().String(),
		Seed:        seed,
	}

	return nil
}
