//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

// Fixed capacities of a System.
const (
	// MaxNodes is the maximum number of nodes of each type.
	MaxNodes = 256
	// MaxNodeLinks is the maximum number of links on one node.
	MaxNodeLinks = 32
)

// Link widths in GB/s.
const (
	// LocalWidth is the width of a node's link to itself. It is
	// large enough to never be the bottleneck of a path.
	LocalWidth = 5000.0

	// PascalNVLinkWidth is the width of one NVLink connected to a
	// Pascal generation GPU.
	PascalNVLinkWidth = 18.0
	// VoltaNVLinkWidth is the width of one NVLink connected to a
	// Volta or later GPU.
	VoltaNVLinkWidth = 21.0

	// QPIWidth is the inter-socket width of pre-Skylake Intel CPUs.
	QPIWidth = 8.0
	// SKLQPIWidth is the inter-socket width of Skylake and later
	// Intel CPUs.
	SKLQPIWidth = 12.0
	// P9Width is the inter-socket width of POWER CPUs.
	P9Width = 32.0
	// ARMWidth is the inter-socket width of ARM CPUs.
	ARMWidth = 6.0
)

// defaultNetSpeedMbps is assumed for network ports that do not report
// a speed.
const defaultNetSpeedMbps = 10000
