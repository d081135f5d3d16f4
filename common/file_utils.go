//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package common provides small helpers shared by the command line
// tools.
package common

import "os"

// AppendFile opens the file at path for appending, creating it if it
// does not exist.
func AppendFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0664)
}
