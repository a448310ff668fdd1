// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/counter"
	"github.com/surveyledger/surveyd/mode"
	"github.com/surveyledger/surveyd/rpc/community"
	"github.com/surveyledger/surveyd/rpc/node"
	"github.com/surveyledger/surveyd/rpc/survey"
	"github.com/surveyledger/surveyd/rpc/user"
	"github.com/surveyledger/surveyd/rpc/vote"
)

// Create - register all services on a fresh rpc server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(user.New(log, mode.Is))
	_ = server.Register(community.New(log, mode.Is))
	_ = server.Register(survey.New(log, mode.Is))
	_ = server.Register(vote.New(log, mode.Is))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
