//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package hwprov provides the default topology device providers.
package hwprov

import (
	"github.com/corelink-io/corelink/lib/topology"
	"github.com/corelink-io/corelink/lib/topology/sysfs"
	"github.com/corelink-io/corelink/logging"
)

// DefaultDeviceProvider gets the default device provider for the
// running system.
func DefaultDeviceProvider(log logging.Logger) topology.DeviceProvider {
	return sysfs.NewProvider(log)
}
