// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Survey Ledger Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/surveyledger/surveyd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	testData := []struct {
		directory string
		filePath  string
		expected  string
	}{
		{"/data", "survey.leveldb", "/data/survey.leveldb"},
		{"/data", "/other/survey.leveldb", "/other/survey.leveldb"},
		{"/data", "sub/../survey.leveldb", "/data/survey.leveldb"},
	}
	for i, item := range testData {
		actual := util.EnsureAbsolute(item.directory, item.filePath)
		if item.expected != actual {
			t.Errorf("%d: EnsureAbsolute(%q, %q) = %q  expected: %q",
				i, item.directory, item.filePath, actual, item.expected)
		}
	}
}

func TestEnsureDirectory(t *testing.T) {
	base, err := ioutil.TempDir("", "surveyd-paths")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(base)

	directory, err := util.EnsureDirectory(base, "log")
	if nil != err {
		t.Fatalf("ensure directory error: %s", err)
	}
	if filepath.Join(base, "log") != directory {
		t.Errorf("directory: %q", directory)
	}

	info, err := os.Stat(directory)
	if nil != err {
		t.Fatalf("stat error: %s", err)
	}
	if !info.IsDir() {
		t.Error("not a directory")
	}

	// idempotent on an existing directory
	if _, err := util.EnsureDirectory(base, "log"); nil != err {
		t.Errorf("second ensure directory error: %s", err)
	}
}
