//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package test

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// CmpErrBool compares two errors and returns a boolean value indicating
// equality or at least close similarity between their messages.
func CmpErrBool(want, got error) bool {
	if want == got {
		return true
	}

	if want == nil || got == nil {
		return false
	}
	if !strings.Contains(got.Error(), want.Error()) {
		return false
	}
	return true
}

// CmpErr compares two errors for equality, or at least
// close similarity in their messages.
func CmpErr(t *testing.T, want, got error) {
	t.Helper()

	if !CmpErrBool(want, got) {
		t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
	}
}

// AssertTrue asserts b is true
func AssertTrue(t *testing.T, b bool, message string) {
	t.Helper()

	if !b {
		t.Fatal(message)
	}
}

// AssertFalse asserts b is false
func AssertFalse(t *testing.T, b bool, message string) {
	t.Helper()

	if b {
		t.Fatal(message)
	}
}

// AssertEqual asserts b is equal to a
//
// Whilst suitable in most situations, reflect.DeepEqual() may not be
// suitable for nontrivial struct element comparisons, go-cmp should
// then be used.
func AssertEqual(t *testing.T, a interface{}, b interface{}, message string) {
	t.Helper()

	if reflect.DeepEqual(a, b) {
		return
	}
	if len(message) > 0 {
		message += ", "
	}
	t.Fatalf(message+"%#v != %#v", a, b)
}

// AssertStringsEqual sorts string slices before comparing.
func AssertStringsEqual(t *testing.T, a []string, b []string, message string) {
	t.Helper()

	sort.Strings(a)
	sort.Strings(b)

	if reflect.DeepEqual(a, b) {
		return
	}
	if len(message) > 0 {
		message += ", "
	}
	t.Fatalf(message+"%#v != %#v", a, b)
}

// ExpectError asserts error contains expected message.
func ExpectError(t *testing.T, actualErr error, expectedMessage string, desc interface{}) {
	t.Helper()

	if actualErr == nil {
		if expectedMessage != "" {
			t.Fatalf("expected a non-nil error: %v", desc)
		}
	} else if actualErr.Error() != expectedMessage {
		t.Fatalf("wrong error message. Expected: %s, Actual: %s (%v)",
			expectedMessage, actualErr.Error(), desc)
	}
}

// CreateTestDir creates a temporary test directory.
// It returns the path to the directory and a cleanup function.
func CreateTestDir(t *testing.T) (string, func()) {
	t.Helper()

	name := strings.Replace(t.Name(), "/", "-", -1)
	tmpDir, err := os.MkdirTemp("", name)
	if err != nil {
		t.Fatalf("couldn't create temporary directory: %v", err)
	}

	return tmpDir, func() { os.RemoveAll(tmpDir) }
}

// CreateTestFile creates a file in the given directory with a random name,
// and writes the content string to the file. It returns the path to the file.
func CreateTestFile(t *testing.T, dir, content string) string {
	t.Helper()

	file, err := os.CreateTemp(dir, "")
	if err != nil {
		t.Fatalf("couldn't create temporary file: %v", err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		t.Fatalf("couldn't write to temporary file: %v", err)
	}

	return file.Name()
}

// Context returns a context that is canceled when the test is done.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// ShowBufferOnFailure displays captured output to the test log on
// failure, then resets the buffer.
func ShowBufferOnFailure(t *testing.T, buf fmt.Stringer) {
	t.Helper()

	if t.Failed() {
		fmt.Printf("captured log output:\n%s", buf.String())
	}
	if r, ok := buf.(interface{ Reset() }); ok {
		r.Reset()
	}
}
