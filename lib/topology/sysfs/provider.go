//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package sysfs discovers topology devices from the sysfs and procfs
// trees of the running kernel.
package sysfs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/corelink-io/corelink/lib/topology"
	"github.com/corelink-io/corelink/logging"
)

// Accelerator PCI classes recognized by class file prefix.
var accelClasses = []string{"0x0302", "0x0300"}

func isAccelClass(class string) bool {
	for _, accelClass := range accelClasses {
		if strings.HasPrefix(class, accelClass) {
			return true
		}
	}

	return false
}

// NewProvider creates a new sysfs Provider.
func NewProvider(log logging.Logger) *Provider {
	return &Provider{
		root:     "/sys",
		procRoot: "/proc",
		log:      log,
	}
}

// Provider provides topology devices from sysfs.
type Provider struct {
	log      logging.Logger
	root     string
	procRoot string
}

func (s *Provider) getRoot() string {
	if s.root == "" {
		s.root = "/sys"
	}
	return s.root
}

func (s *Provider) sysPath(pathElem ...string) string {
	pathElem = append([]string{s.getRoot()}, pathElem...)

	return filepath.Join(pathElem...)
}

func (s *Provider) procPath(pathElem ...string) string {
	if s.procRoot == "" {
		s.procRoot = "/proc"
	}
	pathElem = append([]string{s.procRoot}, pathElem...)

	return filepath.Join(pathElem...)
}

func (s *Provider) readString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// getNUMANode reads the NUMA node of the device at the given path.
// Devices without valid NUMA information land on node 0.
func (s *Provider) getNUMANode(devPath string) int {
	numaStr, err := s.readString(filepath.Join(devPath, "numa_node"))
	if err != nil {
		s.log.Debugf("using default NUMA node, unable to get: %s", err.Error())
		return 0
	}

	numaID, err := strconv.Atoi(numaStr)
	if err != nil || numaID < 0 {
		s.log.Debugf("invalid NUMA node ID %q, using NUMA node 0", numaStr)
		return 0
	}
	return numaID
}

// gdrSupported reports whether a peer memory client is registered with
// the kernel, which is what GPUDirect RDMA transfers need.
func (s *Provider) gdrSupported() bool {
	for _, client := range []string{"nv_mem", "nv_mem_nc"} {
		if _, err := os.Stat(s.sysPath("kernel", "mm", "memory_peers", client, "version")); err == nil {
			return true
		}
	}
	return false
}

// Accelerators returns the accelerator devices found on the PCI bus.
// Ranks are assigned in bus id order; compute capabilities are left
// undefined since sysfs does not carry them.
func (s *Provider) Accelerators(ctx context.Context) ([]*topology.AccelDevice, error) {
	entries, err := os.ReadDir(s.sysPath("bus", "pci", "devices"))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debugf("no PCI bus in sysfs")
			return nil, nil
		}
		return nil, err
	}

	gdr := s.gdrSupported()
	accels := []*topology.AccelDevice{}
	for _, entry := range entries {
		devPath := s.sysPath("bus", "pci", "devices", entry.Name())
		class, err := s.readString(filepath.Join(devPath, "class"))
		if err != nil {
			s.log.Debug(err.Error())
			continue
		}
		if !isAccelClass(class) {
			continue
		}

		s.log.Debugf("found accelerator %s (class %s)", entry.Name(), class)
		accels = append(accels, &topology.AccelDevice{
			BusID:       entry.Name(),
			Rank:        len(accels),
			CudaCompCap: topology.Undefined,
			GDRSupport:  gdr,
			NUMANode:    s.getNUMANode(devPath),
		})
	}

	return accels, nil
}

// NetAdapters returns the physical network interfaces of the system.
// Interfaces without a backing device, such as the loopback, are
// skipped. Collective offload support is not detectable from sysfs and
// is always reported as absent.
func (s *Provider) NetAdapters(ctx context.Context) ([]*topology.NetAdapter, error) {
	entries, err := os.ReadDir(s.sysPath("class", "net"))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debugf("no network interfaces in sysfs")
			return nil, nil
		}
		return nil, err
	}

	gdr := s.gdrSupported()
	adapters := []*topology.NetAdapter{}
	for _, entry := range entries {
		name := entry.Name()
		devPath, err := filepath.EvalSymlinks(s.sysPath("class", "net", name, "device"))
		if err != nil {
			s.log.Debugf("skipping virtual interface %s", name)
			continue
		}

		s.log.Debugf("found network interface %s at %q", name, devPath)
		adapters = append(adapters, &topology.NetAdapter{
			Name:       name,
			PCIPath:    devPath,
			Speed:      s.linkSpeed(name),
			GDRSupport: gdr,
			NUMANode:   s.getNUMANode(devPath),
		})
	}

	return adapters, nil
}

// linkSpeed reads the interface speed in Mb/s. Interfaces that are
// down report no usable speed; zero lets the caller pick a floor.
func (s *Provider) linkSpeed(iface string) int {
	speedStr, err := s.readString(s.sysPath("class", "net", iface, "speed"))
	if err != nil {
		s.log.Debugf("no link speed for %s: %s", iface, err.Error())
		return 0
	}

	speed, err := strconv.Atoi(speedStr)
	if err != nil || speed < 0 {
		s.log.Debugf("invalid link speed %q for %s", speedStr, iface)
		return 0
	}
	return speed
}

// Sockets returns the CPU sockets of the system, one per NUMA node.
// Systems without NUMA information report a single socket.
func (s *Provider) Sockets(ctx context.Context) ([]*topology.CPUSocket, error) {
	arch := archString()
	vendor, familyID, modelID := s.cpuInfo()

	nodesPath := s.sysPath("devices", "system", "node")
	entries, err := os.ReadDir(nodesPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	sockets := []*topology.CPUSocket{}
	for _, entry := range entries {
		id, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), "node"))
		if !strings.HasPrefix(entry.Name(), "node") || err != nil {
			continue
		}

		sock := &topology.CPUSocket{
			NUMAID:   id,
			Arch:     arch,
			Vendor:   vendor,
			FamilyID: familyID,
			ModelID:  modelID,
		}
		if mask, err := s.readString(filepath.Join(nodesPath, entry.Name(), "cpumap")); err == nil {
			sock.Affinity = mask
		}
		sockets = append(sockets, sock)
	}

	if len(sockets) == 0 {
		s.log.Debugf("no NUMA nodes in sysfs, assuming a single socket")
		sockets = append(sockets, &topology.CPUSocket{
			NUMAID:   0,
			Arch:     arch,
			Vendor:   vendor,
			FamilyID: familyID,
			ModelID:  modelID,
		})
	}

	// Directory order is lexical; node10 sorts before node2.
	sort.Slice(sockets, func(i, j int) bool {
		return sockets[i].NUMAID < sockets[j].NUMAID
	})

	return sockets, nil
}

// cpuInfo reads the processor vendor, family and model from procfs.
// All processors are assumed to match the first one listed.
func (s *Provider) cpuInfo() (vendor string, familyID, modelID int) {
	f, err := os.Open(s.procPath("cpuinfo"))
	if err != nil {
		s.log.Debugf("unable to read processor info: %s", err.Error())
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), ":", 2)
		if len(fields) != 2 {
			continue
		}
		value := strings.TrimSpace(fields[1])

		switch strings.TrimSpace(fields[0]) {
		case "vendor_id":
			vendor = value
		case "cpu family":
			familyID, _ = strconv.Atoi(value)
		case "model":
			modelID, _ = strconv.Atoi(value)
		}
	}

	return
}

func archString() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "ppc64", "ppc64le":
		return "ppc64"
	}
	return runtime.GOARCH
}
