// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/command/survey-cli/configuration"
	"github.com/surveyledger/surveyd/command/survey-cli/rpccalls"
	"github.com/surveyledger/surveyd/fault"
)

var (
	ErrRequiredAnswers       = fault.InvalidError("at least two answers are required")
	ErrRequiredCommunityName = fault.InvalidError("community name is required")
	ErrRequiredConnect       = fault.InvalidError("connect is required")
	ErrRequiredDescription   = fault.InvalidError("description is required")
	ErrRequiredExpiry        = fault.InvalidError("expiry is required")
	ErrRequiredIdentity      = fault.InvalidError("identity is required")
	ErrRequiredQuestions     = fault.InvalidError("questions are required")
	ErrRequiredTitle         = fault.InvalidError("survey title is required")
)

// identity is required, but does not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

// community name is required
func checkCommunityName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredCommunityName
	}

	return name, nil
}

// survey title is required
func checkTitle(title string) (string, error) {
	if "" == title {
		return "", ErrRequiredTitle
	}

	return title, nil
}

// seed is optional, generate a fresh one when absent
func checkSeed(seed string) (string, error) {
	if "" == seed {
		return account.NewBase58EncodedSeed()
	}

	// validate an externally supplied seed
	if _, err := account.PrivateKeyFromBase58Seed(seed); nil != err {
		return "", err
	}
	return seed, nil
}

// expiry accepts RFC3339 or plain unix seconds
func checkExpiry(expiry string) (int64, error) {
	if "" == expiry {
		return 0, ErrRequiredExpiry
	}

	if t, err := time.Parse(time.RFC3339, expiry); nil == err {
		return t.Unix(), nil
	}

	n, err := strconv.ParseInt(expiry, 10, 64)
	if nil != err {
		return 0, fault.InvalidTimestamp
	}
	return n, nil
}

// check if file exists and is it a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// fetch the signing key for a named identity, using the default
// identity when the name is blank
func identityPrivateKey(m *metadata, name string) (*account.PrivateKey, error) {
	if "" == name {
		name = m.config.DefaultIdentity
	}
	return m.config.PrivateKey(name)
}

// fetch the account for a named identity, using the default identity
// when the name is blank
func identityAccount(m *metadata, name string) (string, error) {
	if "" == name {
		name = m.config.DefaultIdentity
	}
	id, err := m.config.Identity(name)
	if nil != err {
		// allow a raw base58 account in place of an identity name
		if _, accountErr := account.AccountFromBase58(name); nil == accountErr {
			return name, nil
		}
		return "", err
	}
	return id.Account, nil
}

// open the RPC connection from the configuration
func dial(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
}

// identities for a setup that has not written its file yet
func newConfiguration(name string, connect string) *configuration.Configuration {
	return &configuration.Configuration{
		DefaultIdentity: name,
		Connect:         connect,
		Identities:      make(map[string]configuration.Identity),
	}
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
