// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - helper functions to call surveyd RPC functions
package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
)

// Client - to hold RPC connection streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a surveyd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the surveyd connection
func (client *Client) Close() {
	client.client.Close()
	client.conn.Close()
}

// sign an instruction in place using the two pass pack
//
// the first pack returns the unsigned message together with an
// invalid signature error, the signature is computed over that
// message and attached through the setter
func sign(instruction instructionrecord.Instruction, privateKey *account.PrivateKey, setSignature func(account.Signature)) error {
	message, err := instruction.Pack(privateKey.Account())
	if fault.InvalidSignature != err {
		if nil == err {
			return fault.InvalidSignature
		}
		return err
	}
	setSignature(privateKey.Sign(message))
	return nil
}
