// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/instructionrecord"
	"github.com/surveyledger/surveyd/processor"
	"github.com/surveyledger/surveyd/util"
)

const (
	defaultAuthorityKeyFilename     = "authority.seed"
	defaultAuthorityAccountFilename = "authority.account"

	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"

	seedFilePrefix = "SEED:"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-authority", "auth":
		seedFilename := getFilenameWithDirectory(arguments, defaultAuthorityKeyFilename)
		accountFilename := getFilenameWithDirectory(arguments, defaultAuthorityAccountFilename)

		if util.EnsureFileExists(seedFilename) {
			fmt.Printf("generate authority seed: %q error: %s\n", seedFilename, fault.KeyFileExists)
			exitwithstatus.Exit(1)
		}

		accountBase58, err := makeAuthoritySeed(seedFilename)
		if nil != err {
			fmt.Printf("generate authority seed: %q error: %s\n", seedFilename, err)
			exitwithstatus.Exit(1)
		}

		if err := ioutil.WriteFile(accountFilename, []byte(accountBase58+"\n"), 0644); nil != err {
			os.Remove(seedFilename)
			fmt.Printf("write account file: %q error: %s\n", accountFilename, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated authority seed: %q\n", seedFilename)
		fmt.Printf("authority account: %s\n", accountBase58)

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "initialise-root", "init":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-authority [DIR]        (auth)   - create authority seed in: %q\n", "DIR/"+defaultAuthorityKeyFilename)
		fmt.Printf("                                        and the account in:       %q\n", "DIR/"+defaultAuthorityAccountFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - as above with extra host IP addresses\n")
		fmt.Printf("\n")

		fmt.Printf("  initialise-root            (init)   - create the root community using the authority seed\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// storage and the processor are enabled so these commands can
// access and/or change the account database
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "initialise-root", "init":
		privateKey, err := readAuthoritySeed(options.AuthorityFile)
		if nil != err {
			exitwithstatus.Message("read authority seed: %q error: %s", options.AuthorityFile, err)
		}

		result, err := initialiseRoot(privateKey)
		if fault.RootAlreadyExists == err {
			fmt.Printf("root community already initialised\n")
			return true
		}
		if nil != err {
			exitwithstatus.Message("initialise root error: %s", err)
		}
		log.Infof("root community created: %s", result.Address)
		fmt.Printf("root community address: %s\n", result.Address)
		fmt.Printf("tx id:                  %s\n", result.TxId)

	default:
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// generate a new seed file and return the corresponding account
func makeAuthoritySeed(fileName string) (string, error) {
	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		return "", err
	}

	data := seedFilePrefix + seed + "\n"
	if err = ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return "", fmt.Errorf("error writing seed file error: %s", err)
	}

	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		return "", err
	}
	return privateKey.Account().String(), nil
}

// recover the private key from a seed file written by gen-authority
func readAuthoritySeed(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	seed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(seed, seedFilePrefix) {
		return nil, fault.CannotDecodeSeed
	}
	seed = strings.TrimPrefix(seed, seedFilePrefix)

	return account.PrivateKeyFromBase58Seed(seed)
}

// sign and execute the root community creation
func initialiseRoot(privateKey *account.PrivateKey) (*processor.Result, error) {
	instruction := &instructionrecord.InitializeRoot{
		Authority: privateKey.Account(),
	}

	message, err := instruction.Pack(instruction.Signer())
	if fault.InvalidSignature != err {
		return nil, err
	}
	instruction.Signature = privateKey.Sign(message)

	packed, err := instruction.Pack(instruction.Signer())
	if nil != err {
		return nil, err
	}
	return processor.Execute(packed)
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
