//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// MockCPUSocket returns a canned socket for tests. Each socket owns a
// block of 32 CPUs.
func MockCPUSocket(numa int) *CPUSocket {
	return &CPUSocket{
		NUMAID:   numa,
		Arch:     "x86_64",
		Vendor:   "GenuineIntel",
		FamilyID: 6,
		ModelID:  85,
		Affinity: "ffffffff" + strings.Repeat(",00000000", numa),
	}
}

// MockAccelDevice returns a canned accelerator for tests.
func MockAccelDevice(rank int) *AccelDevice {
	return &AccelDevice{
		BusID:       fmt.Sprintf("0000:%02x:00.0", 0x17+rank),
		Rank:        rank,
		CudaCompCap: 70,
		GDRSupport:  true,
	}
}

// MockNetAdapter returns a canned network adapter for tests.
func MockNetAdapter(dev int) *NetAdapter {
	return &NetAdapter{
		Name:       fmt.Sprintf("ib%d", dev),
		PCIPath:    fmt.Sprintf("/sys/devices/pci0000:5d/0000:5d:00.%d", dev),
		Speed:      100000,
		GDRSupport: true,
	}
}

type (
	// MockDeviceProviderConfig configures a MockDeviceProvider.
	MockDeviceProviderConfig struct {
		Sockets    []*CPUSocket
		SocketErr  error
		Accels     []*AccelDevice
		AccelErr   error
		Adapters   []*NetAdapter
		AdapterErr error
	}

	// MockDeviceProvider implements DeviceProvider from canned
	// responses.
	MockDeviceProvider struct {
		cfg MockDeviceProviderConfig
	}
)

// NewMockDeviceProvider returns a DeviceProvider that serves the
// supplied configuration.
func NewMockDeviceProvider(cfg *MockDeviceProviderConfig) *MockDeviceProvider {
	if cfg == nil {
		cfg = &MockDeviceProviderConfig{}
	}
	return &MockDeviceProvider{cfg: *cfg}
}

func (m *MockDeviceProvider) Sockets(_ context.Context) ([]*CPUSocket, error) {
	return m.cfg.Sockets, m.cfg.SocketErr
}

func (m *MockDeviceProvider) Accelerators(_ context.Context) ([]*AccelDevice, error) {
	return m.cfg.Accels, m.cfg.AccelErr
}

func (m *MockDeviceProvider) NetAdapters(_ context.Context) ([]*NetAdapter, error) {
	return m.cfg.Adapters, m.cfg.AdapterErr
}

// MockAffinityProvider implements ProcessAffinityProvider and records
// the masks it was asked to apply.
type MockAffinityProvider struct {
	Current  unix.CPUSet
	GetErr   error
	SetErr   error
	SetCalls []unix.CPUSet
}

func (m *MockAffinityProvider) GetAffinity() (unix.CPUSet, error) {
	return m.Current, m.GetErr
}

func (m *MockAffinityProvider) SetAffinity(set unix.CPUSet) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.SetCalls = append(m.SetCalls, set)
	return nil
}

// MockPathProvider implements PathProvider by attaching the same path
// from every node to every destination node.
type MockPathProvider struct {
	Path Path
	Err  error
}

func (m *MockPathProvider) ComputePaths(s *System) error {
	if m.Err != nil {
		return m.Err
	}
	for t := NodeType(0); t < numNodeTypes; t++ {
		for _, node := range s.Nodes(t) {
			for dt := NodeType(0); dt < numNodeTypes; dt++ {
				paths := make([]Path, len(s.Nodes(dt)))
				for i := range paths {
					paths[i] = m.Path
				}
				node.SetPathList(dt, paths)
			}
		}
	}
	return nil
}
