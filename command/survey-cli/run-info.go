// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runNodeInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := dial(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetNodeInfoCompat()
	if nil != err {
		return err
	}
	response["_connection"] = m.config.Connect

	printJson(m.w, response)

	return nil
}
