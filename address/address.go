// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"

	"github.com/surveyledger/surveyd/fault"
)

// limits
const (
	Length = 32
)

// Address - the derived location of an account record
// stored as a fixed byte array
// represented as hex text for JSON encoding
// to get bytes value just use address[:]
type Address [Length]byte

// String - convert a binary address to hex string for use by the fmt package (for %s)
func (address Address) String() string {
	return hex.EncodeToString(address[:])
}

// GoString - convert a binary address to hex string for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<address:" + hex.EncodeToString(address[:]) + ">"
}

// MarshalText - convert address to hex text
func (address Address) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(address))
	buffer := make([]byte, size)
	hex.Encode(buffer, address[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an address
func (address *Address) UnmarshalText(s []byte) error {
	if len(address) != hex.DecodedLen(len(s)) {
		return fault.NotAddress
	}
	byteCount, err := hex.Decode(address[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.NotAddress
	}
	return nil
}

// AddressFromBytes - convert and validate a binary byte slice to an address
func AddressFromBytes(address *Address, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotAddress
	}
	copy(address[:], buffer)
	return nil
}

// IsZero - check if an address is all zero
func (address Address) IsZero() bool {
	for _, b := range address {
		if 0 != b {
			return false
		}
	}
	return true
}
