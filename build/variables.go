//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package build provides an importable repository of variables set at build time.
package build

import (
	"runtime/debug"
	"time"
)

var (
	// ConfigDir should be set via linker flag using the value of CONF_DIR.
	ConfigDir string = "./"
	// CoreVersion should be set via linker flag using the value of CORELINK_VERSION.
	CoreVersion string = "unset"
	// ToolName defines a consistent name for the topology control tool.
	ToolName = "topoctl"

	// VCS is the version control system used to build the binary.
	VCS = ""
	// Revision is the VCS revision of the binary.
	Revision = ""
	// LastCommit is the time of the last commit.
	LastCommit time.Time
	// ReleaseBuild should be set true via linker flag for release builds.
	ReleaseBuild bool
	// DirtyBuild is true if the binary was built from a tree with
	// uncommitted changes.
	DirtyBuild = true
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs":
			VCS = setting.Value
		case "vcs.revision":
			Revision = setting.Value
		case "vcs.time":
			LastCommit, _ = time.Parse(time.RFC3339, setting.Value)
		case "vcs.modified":
			DirtyBuild = setting.Value == "true"
		}
	}
}
