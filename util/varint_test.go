// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/surveyledger/surveyd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{137, []byte{0x89, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
	{0xfffffffffffffffe, []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

var varint64TruncatedTests = [][]byte{
	{},
	{0x80},
	{0xff},
	{0x80, 0x80},
	{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
}

func TestToVarint64(t *testing.T) {

	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
	}
}

func TestFromVarint64(t *testing.T) {

	for i, item := range varint64Tests {
		result, count := util.FromVarint64(item.encoded)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, item.encoded, result, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) used %d bytes  expected: %d", i, item.encoded, count, len(item.encoded))
		}

		// verify that trailing data does not disturb the result
		b := append([]byte{}, item.encoded...)
		b = append(b, 0xff, 0x97, 0x23)
		result, count = util.FromVarint64(b)
		if result != item.value {
			t.Errorf("%d: FromVarint64(%x) -> %d  expected: %d", i, b, result, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) used %d bytes  expected: %d", i, b, count, len(item.encoded))
		}
	}
}

func TestFromVarint64Truncated(t *testing.T) {

	for i, item := range varint64TruncatedTests {
		result, count := util.FromVarint64(item)
		if 0 != result || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, result, count)
		}
	}
}

func TestClippedVarint64(t *testing.T) {

	testItems := []struct {
		buffer  []byte
		minimum int
		maximum int
		value   int
		count   int
	}{
		{[]byte{0x05}, 1, 10, 5, 1},
		{[]byte{0x05}, 6, 10, 0, 0},
		{[]byte{0x80, 0x01}, 1, 200, 128, 2},
		{[]byte{0x80, 0x01}, 1, 100, 0, 0},
		{[]byte{0x05}, 10, 1, 0, 0}, // inverted range
	}

	for i, item := range testItems {
		value, count := util.ClippedVarint64(item.buffer, item.minimum, item.maximum)
		if value != item.value || count != item.count {
			t.Errorf("%d: ClippedVarint64(%x, %d, %d) -> %d, %d  expected: %d, %d",
				i, item.buffer, item.minimum, item.maximum, value, count, item.value, item.count)
		}
	}
}

func TestBase58RoundTrip(t *testing.T) {

	data := []byte{0x00, 0x01, 0xfe, 0xff, 0x42, 0x99}
	encoded := util.ToBase58(data)
	decoded := util.FromBase58(encoded)
	if !bytes.Equal(data, decoded) {
		t.Errorf("base58 round trip: %x -> %q -> %x", data, encoded, decoded)
	}

	if len(util.FromBase58("0OIl")) != 0 {
		t.Error("expected empty result for invalid base58 text")
	}
}
