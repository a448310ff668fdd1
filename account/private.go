// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/surveyledger/surveyd/fault"
	"github.com/surveyledger/surveyd/util"
)

// PrivateKey - base type for PrivateKey
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - methods common to all private key algorithms
type PrivateKeyInterface interface {
	Account() *Account
	KeyType() int
	PrivateKeyBytes() []byte
	Sign(message []byte) Signature
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
}

// ED25519PrivateKey - for ed25519 keys
type ED25519PrivateKey struct {
	PrivateKey []byte
}

// seed parameters
var (
	seedHeader = []byte{0x53, 0x4c, 0x01} // "SL" + version
	seedNonce  = [24]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	seedCount = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength   = 3
	seedKeyLength      = 32
	seedChecksumLength = 4
)

// NewBase58EncodedSeed - generate a new random seed in Base58 text form
func NewBase58EncodedSeed() (string, error) {

	secretKey := make([]byte, seedKeyLength)
	_, err := rand.Read(secretKey)
	if nil != err {
		return "", err
	}

	seed := append([]byte{}, seedHeader...)
	seed = append(seed, secretKey...)
	checksum := sha3.Sum256(seed)
	seed = append(seed, checksum[:seedChecksumLength]...)

	return util.ToBase58(seed), nil
}

// PrivateKeyFromBase58Seed - this converts a Base58 encoded seed string
// and returns a private key
//
// the seed is stretched to an ed25519 key pair using a fixed-nonce
// secretbox stream so the same seed always yields the same identity
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {

	seed := util.FromBase58(seedBase58Encoded)
	if 0 == len(seed) {
		return nil, fault.CannotDecodeSeed
	}

	// compute seed length
	keyLength := len(seed) - seedHeaderLength - seedChecksumLength
	if seedKeyLength != keyLength {
		return nil, fault.InvalidSeedLength
	}

	// check seed header
	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.InvalidSeedHeader
	}

	// checksum
	checksumStart := len(seed) - seedChecksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	var secretKey [seedKeyLength]byte
	copy(secretKey[:], seed[seedHeaderLength:checksumStart])

	encrypted := secretbox.Seal([]byte{}, seedCount[:], &seedNonce, &secretKey)

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(encrypted))
	if nil != err {
		return nil, err
	}

	privateKey := &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			PrivateKey: priv,
		},
	}
	return privateKey, nil
}

// PrivateKeyFromBytes - this converts a byte encoded buffer and returns a private key
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {

	// parse the key variant
	keyVariant, keyVariantLength := util.FromVarint64(privateKeyBytes)

	// check key type: private keys do not carry the public key code bit
	if 0 == keyVariantLength || 0 != keyVariant&publicKeyCode {
		return nil, fault.CannotDecodePrivateKey
	}

	// compute algorithm
	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidKeyType
	}

	// compute key length
	keyLength := len(privateKeyBytes) - keyVariantLength
	if keyLength <= 0 {
		return nil, fault.InvalidKeyLength
	}

	switch keyAlgorithm {
	case ED25519:
		if keyLength != ed25519.PrivateKeySize {
			return nil, fault.InvalidKeyLength
		}
		privateKey := &PrivateKey{
			PrivateKeyInterface: &ED25519PrivateKey{
				PrivateKey: privateKeyBytes[keyVariantLength:],
			},
		}
		return privateKey, nil
	default:
		return nil, fault.InvalidKeyType
	}
}

// PrivateKeyFromBase58 - this converts a Base58 encoded string and returns a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	privateKeyDecoded := util.FromBase58(privateKeyBase58Encoded)
	if 0 == len(privateKeyDecoded) {
		return nil, fault.CannotDecodePrivateKey
	}

	// verify checksum
	if len(privateKeyDecoded) <= checksumLength {
		return nil, fault.CannotDecodePrivateKey
	}
	checksumStart := len(privateKeyDecoded) - checksumLength
	checksum := sha3.Sum256(privateKeyDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], privateKeyDecoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	return PrivateKeyFromBytes(privateKeyDecoded[:checksumStart])
}

// UnmarshalText - convert a Base58 text form back to a private key
func (privateKey *PrivateKey) UnmarshalText(s []byte) error {
	a, err := PrivateKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	privateKey.PrivateKeyInterface = a.PrivateKeyInterface
	return nil
}

// ED25519
// -------

// Account - the public account corresponding to this key
func (privateKey *ED25519PrivateKey) Account() *Account {
	return &Account{
		AccountInterface: &ED25519Account{
			PublicKey: privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:],
		},
	}
}

// KeyType - key type code (see enumeration in account.go)
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// PrivateKeyBytes - fetch the private key as byte slice
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey[:]
}

// Sign - sign a message with this key
func (privateKey *ED25519PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.PrivateKey, message))
}

// Bytes - byte slice for encoded key
func (privateKey *ED25519PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	return append([]byte{keyVariant}, privateKey.PrivateKey[:]...)
}

// String - base58 encoding of encoded key
func (privateKey *ED25519PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey ED25519PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}
