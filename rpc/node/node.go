// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/counter"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/rpc/ratelimit"
)

// Node - type for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, connections *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: ratelimit.New(),
		Start:   start,
		Version: version,
		counter: connections,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode        string `json:"mode"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections uint64 `json:"connections"`
}

// Info - report node status
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Connections = node.counter.Uint64()
	return nil
}
