// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/surveyledger/surveyd/account"
)

func runGenerate(c *cli.Context) error {

	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		return err
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return err
	}

	result := struct {
		Seed    string `json:"seed"`
		Account string `json:"account"`
	}{
		Seed:    seed,
		Account: privateKey.Account().String(),
	}

	printJson(os.Stdout, result)
	return nil
}
