//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/lib/hwdesc"
	"github.com/corelink-io/corelink/logging"
)

type (
	// AccelDevice describes one accelerator reported by a
	// DeviceProvider.
	AccelDevice struct {
		BusID       string
		Rank        int
		CudaCompCap int
		GDRSupport  bool
		NUMANode    int
	}

	// NetAdapter describes one network adapter port reported by a
	// DeviceProvider.
	NetAdapter struct {
		Name        string
		PCIPath     string
		Speed       int // Mb/s
		GDRSupport  bool
		CollSupport bool
		NUMANode    int
	}

	// CPUSocket describes one NUMA node reported by a
	// DeviceProvider.
	CPUSocket struct {
		NUMAID   int
		Arch     string
		Vendor   string
		FamilyID int
		ModelID  int
		Affinity string
	}

	// DeviceProvider supplies the devices present on the running
	// system.
	DeviceProvider interface {
		Accelerators(context.Context) ([]*AccelDevice, error)
		NetAdapters(context.Context) ([]*NetAdapter, error)
		Sockets(context.Context) ([]*CPUSocket, error)
	}

	// Config adjusts how GetSystem assembles a topology.
	Config struct {
		// TopoFile optionally seeds discovery from a hardware
		// description file.
		TopoFile string `yaml:"topo_file"`
		// DumpFile optionally mirrors the assembled description
		// to a file before it is turned into a graph.
		DumpFile string `yaml:"dump_file"`
		// IgnoreCPUAffinity makes SetAffinity disregard the
		// inherited process affinity mask.
		IgnoreCPUAffinity bool `yaml:"ignore_cpu_affinity"`
	}
)

// AssembleDescription builds a hardware description document of the
// running system. Assembly starts from the optional seed file, then
// the supplied provider fills in any devices the description does not
// already carry. Attributes present in the seed always win over
// discovered ones.
func AssembleDescription(ctx context.Context, log logging.Logger, cfg *Config, prov DeviceProvider) (*hwdesc.Document, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if prov == nil {
		return nil, errors.New("nil device provider")
	}

	doc := hwdesc.New()
	if cfg.TopoFile != "" {
		loaded, err := hwdesc.LoadFile(cfg.TopoFile)
		switch {
		case err == nil:
			doc = loaded
		case os.IsNotExist(errors.Cause(err)):
			log.Noticef("topology file %s not found, discovering from scratch", cfg.TopoFile)
		default:
			return nil, err
		}
	}

	root := doc.Root()
	if root == nil {
		root = doc.AddNode(nil, "system")
		root.SetIntAttr("version", hwdesc.Version)
	}

	sockets, err := prov.Sockets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "discovering CPU sockets")
	}
	for _, sock := range sockets {
		fillSocket(doc, root, sock)
	}

	accels, err := prov.Accelerators(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "discovering accelerators")
	}
	for dev, accel := range accels {
		fillAccel(doc, root, accel, dev)
	}

	adapters, err := prov.NetAdapters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "discovering network adapters")
	}
	for dev, adapter := range adapters {
		fillNetAdapter(doc, root, adapter, dev)
	}

	return doc, nil
}

// GetSystem assembles a hardware description of the running system
// and builds its topology graph. See AssembleDescription for how the
// description is put together.
func GetSystem(ctx context.Context, log logging.Logger, cfg *Config, prov DeviceProvider) (*System, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	doc, err := AssembleDescription(ctx, log, cfg, prov)
	if err != nil {
		return nil, err
	}

	if cfg.DumpFile != "" {
		if err := doc.WriteFile(cfg.DumpFile); err != nil {
			return nil, err
		}
	}

	sys, err := GetSystemFromDescription(log, doc)
	if err != nil {
		return nil, err
	}
	return sys.WithIgnoreCPUAffinity(cfg.IgnoreCPUAffinity), nil
}

// cpuForNUMA returns the cpu element for the given NUMA node,
// creating it if needed. Devices without a known NUMA node go under
// the first socket.
func cpuForNUMA(doc *hwdesc.Document, root *hwdesc.Node, numaID int) *hwdesc.Node {
	if numaID < 0 {
		for _, child := range root.Children() {
			if child.Name() == "cpu" {
				return child
			}
		}
		numaID = 0
	}
	for _, child := range root.Children() {
		if child.Name() != "cpu" {
			continue
		}
		if id, err := child.IntAttr("numaid"); err == nil && id == numaID {
			return child
		}
	}
	cpu := doc.AddNode(root, "cpu")
	cpu.SetIntAttr("numaid", numaID)
	return cpu
}

func fillSocket(doc *hwdesc.Document, root *hwdesc.Node, sock *CPUSocket) {
	cpu := cpuForNUMA(doc, root, sock.NUMAID)
	if sock.Arch != "" {
		cpu.InitAttr("arch", sock.Arch)
	}
	if sock.Vendor != "" {
		cpu.InitAttr("vendor", sock.Vendor)
	}
	if sock.Vendor == "GenuineIntel" {
		cpu.InitIntAttr("familyid", sock.FamilyID)
		cpu.InitIntAttr("modelid", sock.ModelID)
	}
	if sock.Affinity != "" {
		cpu.InitAttr("affinity", sock.Affinity)
	}
}

func fillAccel(doc *hwdesc.Document, root *hwdesc.Node, accel *AccelDevice, dev int) {
	pci := doc.FindTagAttr("pci", "busid", accel.BusID)
	if pci == nil {
		pci = doc.AddNode(cpuForNUMA(doc, root, accel.NUMANode), "pci")
		pci.SetAttr("busid", accel.BusID)
		pci.SetAttr("class", "0x030200")
	}
	gpu := pci.Child("gpu")
	if gpu == nil {
		gpu = doc.AddNode(pci, "gpu")
	}

	gpu.SetIntAttr("rank", accel.Rank)
	gpu.SetIntAttr("dev", dev)
	if accel.CudaCompCap >= 0 {
		gpu.SetIntAttr("sm", accel.CudaCompCap)
	}
	gpu.InitIntAttr("gdr", boolToInt(accel.GDRSupport))
}

func fillNetAdapter(doc *hwdesc.Document, root *hwdesc.Node, adapter *NetAdapter, dev int) {
	var nic *hwdesc.Node

	busID := ""
	if adapter.PCIPath != "" {
		if id, err := busIDFromPCIPath(adapter.PCIPath); err == nil {
			busID = id
		}
	}
	if busID != "" {
		pci := doc.FindTagAttr("pci", "busid", busID)
		if pci == nil {
			pci = doc.AddNode(cpuForNUMA(doc, root, adapter.NUMANode), "pci")
			pci.SetAttr("busid", busID)
			pci.SetAttr("class", "0x020000")
		}
		if nic = pci.Child("nic"); nic == nil {
			nic = doc.AddNode(pci, "nic")
		}
	} else {
		// No PCI location. Attach the adapter directly to its
		// socket; all such adapters share one NIC element.
		cpu := cpuForNUMA(doc, root, adapter.NUMANode)
		for _, child := range cpu.Children() {
			if child.Name() == "nic" {
				nic = child
				break
			}
		}
		if nic == nil {
			nic = doc.AddNode(cpu, "nic")
			nic.SetIntAttr("id", 0)
		}
	}

	var net *hwdesc.Node
	for _, child := range nic.Children() {
		if child.Name() != "net" {
			continue
		}
		if id, err := child.IntAttr("dev"); err == nil && id == dev {
			net = child
			break
		}
	}
	if net == nil {
		net = doc.AddNode(nic, "net")
	}

	net.SetIntAttr("dev", dev)
	if adapter.Name != "" {
		net.InitAttr("name", adapter.Name)
	}
	if adapter.Speed > 0 {
		net.InitIntAttr("speed", adapter.Speed)
	}
	net.InitIntAttr("gdr", boolToInt(adapter.GDRSupport))
	if adapter.CollSupport {
		net.SetIntAttr("coll", 1)
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
