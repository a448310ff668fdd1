// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"bytes"
	"testing"

	"github.com/surveyledger/surveyd/account"
	"github.com/surveyledger/surveyd/fault"
)

func makePrivateKey(t *testing.T) *account.PrivateKey {
	t.Helper()
	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		t.Fatalf("seed generation failed: %s", err)
	}
	privateKey, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		t.Fatalf("private key from seed failed: %s", err)
	}
	return privateKey
}

func TestSeedDeterminism(t *testing.T) {
	seed, err := account.NewBase58EncodedSeed()
	if nil != err {
		t.Fatalf("seed generation failed: %s", err)
	}

	one, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		t.Fatalf("private key from seed failed: %s", err)
	}
	two, err := account.PrivateKeyFromBase58Seed(seed)
	if nil != err {
		t.Fatalf("private key from seed failed: %s", err)
	}

	if !bytes.Equal(one.PrivateKeyBytes(), two.PrivateKeyBytes()) {
		t.Error("same seed produced different private keys")
	}
	if one.Account().String() != two.Account().String() {
		t.Error("same seed produced different accounts")
	}
}

func TestAccountBase58RoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)
	acc := privateKey.Account()

	encoded := acc.String()
	decoded, err := account.AccountFromBase58(encoded)
	if nil != err {
		t.Fatalf("account from base58 failed: %s", err)
	}
	if !bytes.Equal(decoded.PublicKeyBytes(), acc.PublicKeyBytes()) {
		t.Errorf("public key mismatch: %x != %x", decoded.PublicKeyBytes(), acc.PublicKeyBytes())
	}
	if decoded.KeyType() != account.ED25519 {
		t.Errorf("unexpected key type: %d", decoded.KeyType())
	}
}

func TestAccountBase58Corruption(t *testing.T) {
	privateKey := makePrivateKey(t)
	encoded := privateKey.Account().String()

	// flip one character, keeping it valid base58
	corrupted := []byte(encoded)
	if corrupted[5] == '2' {
		corrupted[5] = '3'
	} else {
		corrupted[5] = '2'
	}

	_, err := account.AccountFromBase58(string(corrupted))
	if nil == err {
		t.Fatal("expected error for corrupted account text")
	}
}

func TestSignatureCheck(t *testing.T) {
	privateKey := makePrivateKey(t)
	acc := privateKey.Account()

	message := []byte("a short message for signing")
	signature := privateKey.Sign(message)

	if err := acc.CheckSignature(message, signature); nil != err {
		t.Fatalf("valid signature rejected: %s", err)
	}

	if err := acc.CheckSignature([]byte("another message"), signature); fault.InvalidSignature != err {
		t.Fatalf("expected invalid signature, got: %v", err)
	}

	if err := acc.CheckSignature(message, signature[:10]); fault.InvalidSignature != err {
		t.Fatalf("expected invalid signature for truncated signature, got: %v", err)
	}
}

func TestPrivateKeyBase58RoundTrip(t *testing.T) {
	privateKey := makePrivateKey(t)

	encoded := privateKey.String()
	decoded, err := account.PrivateKeyFromBase58(encoded)
	if nil != err {
		t.Fatalf("private key from base58 failed: %s", err)
	}
	if !bytes.Equal(decoded.PrivateKeyBytes(), privateKey.PrivateKeyBytes()) {
		t.Error("private key mismatch after round trip")
	}
}

func TestBadSeeds(t *testing.T) {
	testItems := []struct {
		seed string
		err  error
	}{
		{"", fault.CannotDecodeSeed},
		{"!!!not-base58!!!", fault.CannotDecodeSeed},
		{"3~", fault.CannotDecodeSeed},
	}

	for i, item := range testItems {
		_, err := account.PrivateKeyFromBase58Seed(item.seed)
		if item.err != err {
			t.Errorf("%d: seed: %q  error: %v  expected: %v", i, item.seed, err, item.err)
		}
	}
}
