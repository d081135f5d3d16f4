//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corelink-io/corelink/lib/hwdesc"
	"github.com/corelink-io/corelink/logging"
)

// kvDict maps description attribute strings to numeric values. Lookup
// matches on key prefix so that strings with trailing detail still
// resolve ("ppc64le" matches "ppc64").
type kvDict struct {
	key   string
	value int
}

var kvDictPCIClass = []kvDict{
	{"0x060400", int(NodeTypePCI)},
	{"0x068000", int(NodeTypeNVSwitch)},
	{"0x068001", int(NodeTypeCPU)},
	{"0x030200", int(NodeTypeGPU)},
	{"0x030000", int(NodeTypeGPU)},
	{"0x020700", int(NodeTypeNIC)},
	{"0x020000", int(NodeTypeNIC)},
}

// Values are in units of 100 Mb/s per lane.
var kvDictPCIGen = []kvDict{
	{"2.5 GT/s", 15},
	{"5 GT/s", 30},
	{"8 GT/s", 60},
	{"16 GT/s", 120},
}

var kvDictCPUArch = []kvDict{
	{"x86_64", int(CPUArchX86)},
	{"arm64", int(CPUArchARM)},
	{"ppc64", int(CPUArchPower)},
}

var kvDictCPUVendor = []kvDict{
	{"GenuineIntel", int(CPUVendorIntel)},
	{"AuthenticAMD", int(CPUVendorAMD)},
}

func (s *System) kvToInt(dict []kvDict, str string, fallback int) int {
	for _, kv := range dict {
		if strings.HasPrefix(str, kv.key) {
			return kv.value
		}
	}
	s.log.Noticef("no dictionary entry for %q, falling back to %d", str, fallback)
	return fallback
}

// GetSystemFromDescription builds a System from a parsed hardware
// description document. CPU sockets become the roots of the graph and
// their pci and nic children are walked to create nodes and links. A
// second pass connects NVLinks, then the CPU sockets are fully
// interconnected and the link order is canonicalized.
func GetSystemFromDescription(log logging.Logger, doc *hwdesc.Document) (*System, error) {
	if doc == nil {
		return nil, errInvalidDescriptionf("no document")
	}
	topNode := doc.FindTag("system")
	if topNode == nil {
		return nil, errInvalidDescriptionf("no system element")
	}

	s := NewSystem(log)
	for _, child := range topNode.Children() {
		if child.Name() == "cpu" {
			if err := s.addCPU(child); err != nil {
				return nil, err
			}
		}
	}
	if err := s.addNVLinks(topNode, ""); err != nil {
		return nil, err
	}
	if err := s.connectCPUs(); err != nil {
		return nil, err
	}
	s.Sort()

	return s, nil
}

func (s *System) addCPU(descCPU *hwdesc.Node) error {
	numaID, err := descCPU.IntAttr("numaid")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	cpu, err := s.CreateNode(NodeTypeCPU, int64(numaID))
	if err != nil {
		return err
	}

	if affinity, ok := descCPU.Attr("affinity"); ok {
		cpu.CPU.Affinity = ParseCPUSet(affinity)
	}

	if arch, ok := descCPU.Attr("arch"); ok {
		cpu.CPU.Arch = CPUArch(s.kvToInt(kvDictCPUArch, arch, int(CPUArchUnknown)))
	}
	if cpu.CPU.Arch == CPUArchX86 {
		if vendor, ok := descCPU.Attr("vendor"); ok {
			cpu.CPU.Vendor = CPUVendor(s.kvToInt(kvDictCPUVendor, vendor, int(CPUVendorUnknown)))
		}
		if cpu.CPU.Vendor == CPUVendorIntel {
			familyID, err := descCPU.IntAttr("familyid")
			if err != nil {
				return errInvalidDescriptionf("%s", err)
			}
			modelID, err := descCPU.IntAttr("modelid")
			if err != nil {
				return errInvalidDescriptionf("%s", err)
			}
			cpu.CPU.Model = CPUModelIntelBroadwell
			if familyID == 6 && modelID >= 0x55 {
				cpu.CPU.Model = CPUModelIntelSkylake
			}
		}
	}

	for _, child := range descCPU.Children() {
		switch child.Name() {
		case "pci":
			if err := s.addPCI(child, cpu); err != nil {
				return err
			}
		case "nic":
			id, err := child.IntAttr("id")
			if err != nil {
				return errInvalidDescriptionf("%s", err)
			}
			nic := s.GetNode(NodeTypeNIC, int64(id))
			if nic == nil {
				if nic, err = s.CreateNode(NodeTypeNIC, int64(id)); err != nil {
					return err
				}
				if err := s.ConnectNodes(cpu, nic, LinkTypePCI, LocalWidth); err != nil {
					return err
				}
				if err := s.ConnectNodes(nic, cpu, LinkTypePCI, LocalWidth); err != nil {
					return err
				}
			}
			if err := s.addNIC(child, nic); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *System) addPCI(descPCI *hwdesc.Node, parent *Node) error {
	class, ok := descPCI.Attr("class")
	if !ok {
		return errInvalidDescriptionf("pci node: missing %q attribute", "class")
	}
	nt := NodeType(s.kvToInt(kvDictPCIClass, class, int(NodeTypeGPU)))

	busIDStr, ok := descPCI.Attr("busid")
	if !ok {
		return errInvalidDescriptionf("pci node: missing %q attribute", "busid")
	}
	busID, err := BusIDToInt64(busIDStr)
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}

	var node *Node
	switch nt {
	case NodeTypeGPU:
		// A GPU without an owning rank is of no use to us.
		descGPU := descPCI.Child("gpu")
		if descGPU == nil {
			return nil
		}
		if _, ok := descGPU.Attr("rank"); !ok {
			return nil
		}
		if node, err = s.CreateNode(nt, busID); err != nil {
			return err
		}
		if err := s.addGPU(descGPU, node); err != nil {
			return err
		}
	case NodeTypeNIC:
		descNIC := descPCI.Child("nic")
		if descNIC == nil {
			return nil
		}

		// Strip the function digit so that the ports of a
		// multi-port NIC merge into one device.
		busID &^= 0xf
		nic := s.GetNode(nt, busID)
		if nic == nil {
			if nic, err = s.CreateNode(nt, busID); err != nil {
				return err
			}
			node = nic // connect it to the parent below
		}
		if err := s.addNIC(descNIC, nic); err != nil {
			return err
		}
	case NodeTypePCI:
		if node, err = s.CreateNode(nt, busID); err != nil {
			return err
		}
		for _, child := range descPCI.Children() {
			if child.Name() != "pci" {
				continue
			}
			if err := s.addPCI(child, node); err != nil {
				return err
			}
		}
	}

	if node != nil {
		width := 0
		if _, ok := descPCI.Attr("link_width"); ok {
			if width, err = descPCI.IntAttr("link_width"); err != nil {
				return errInvalidDescriptionf("%s", err)
			}
		}
		speedStr, _ := descPCI.Attr("link_speed")

		// Cover cases where sysfs had no usable link data.
		if width == 0 {
			width = 16
		}
		if speedStr == "" || strings.EqualFold(speedStr, "Unknown speed") {
			speedStr = "8 GT/s"
		}

		speed := s.kvToInt(kvDictPCIGen, speedStr, 0)

		linkWidth := float64(width*speed) / 80.0
		if err := s.ConnectNodes(node, parent, LinkTypePCI, linkWidth); err != nil {
			return err
		}
		if err := s.ConnectNodes(parent, node, LinkTypePCI, linkWidth); err != nil {
			return err
		}
	}

	return nil
}

func (s *System) addGPU(descGPU *hwdesc.Node, gpu *Node) error {
	if _, ok := descGPU.Attr("sm"); ok {
		cc, err := descGPU.IntAttr("sm")
		if err != nil {
			return errInvalidDescriptionf("%s", err)
		}
		gpu.GPU.CudaCompCap = cc
	}
	rank, err := descGPU.IntAttr("rank")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	gpu.GPU.Rank = rank

	dev, err := descGPU.IntAttr("dev")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	gpu.GPU.Dev = dev

	gdr, err := descGPU.IntAttr("gdr")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	gpu.GPU.GDRSupport = gdr != 0

	// NVLinks are connected in a second pass over the description.
	return nil
}

// addNIC scans the net children of a nic element and attaches a
// network endpoint node for each one, numbering ports after any that
// already exist on the NIC.
func (s *System) addNIC(descNIC *hwdesc.Node, nic *Node) error {
	port := 0
	for _, link := range nic.Links {
		if link.Remote.Type == NodeTypeNet {
			port++
		}
	}

	for _, child := range descNIC.Children() {
		if child.Name() != "net" {
			continue
		}
		if _, ok := child.Attr("dev"); !ok {
			continue
		}
		if err := s.addNet(child, nic, port); err != nil {
			return err
		}
		port++
	}
	return nil
}

func (s *System) addNet(descNet *hwdesc.Node, nic *Node, port int) error {
	dev, err := descNet.IntAttr("dev")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}

	net, err := s.CreateNode(NodeTypeNet, int64(dev))
	if err != nil {
		return err
	}

	net.Net.ASIC = uint64(dev)
	if guid, ok := descNet.Attr("sys_guid"); ok {
		asic, err := GUIDToUint64(guid)
		if err != nil {
			s.log.Noticef("ignoring unparseable system GUID %q on net device %d", guid, dev)
		} else {
			net.Net.ASIC = asic
		}
	}

	mbps := 0
	if speed, ok := descNet.Attr("speed"); ok {
		if _, err := fmt.Sscanf(speed, "%d", &mbps); err != nil {
			mbps = 0
		}
	}
	if rate, ok := descNet.Attr("link_rate"); ok {
		gbps := 0
		if _, err := fmt.Sscanf(rate, "%d Gb/sec", &gbps); err != nil {
			gbps = 0
		}
		mbps = gbps * 1000
	}
	if mbps <= 0 {
		mbps = defaultNetSpeedMbps
	}
	net.Net.Width = float64(mbps) / 8000.0
	net.Net.Port = port

	gdr, err := descNet.IntAttr("gdr")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	net.Net.GDRSupport = gdr != 0

	if coll, ok := descNet.Attr("coll"); ok {
		if v, err := strconv.ParseInt(coll, 0, 64); err == nil {
			net.Net.CollSupport = v != 0
		}
	}

	if err := s.ConnectNodes(nic, net, LinkTypeNet, net.Net.Width); err != nil {
		return err
	}
	return s.ConnectNodes(net, nic, LinkTypeNet, net.Net.Width)
}

// addNVLinks makes a second pass over the description, connecting the
// nvlink elements found under GPU devices. The owning GPU is
// identified by the closest enclosing busid attribute.
func (s *System) addNVLinks(descNode *hwdesc.Node, parentBusID string) error {
	if descNode.Name() != "nvlink" {
		busID, ok := descNode.Attr("busid")
		if !ok {
			busID = parentBusID
		}
		for _, child := range descNode.Children() {
			if err := s.addNVLinks(child, busID); err != nil {
				return err
			}
		}
		return nil
	}

	pBusID, err := BusIDToInt64(parentBusID)
	if err != nil {
		return errInvalidDescriptionf("nvlink element outside of a pci device")
	}
	gpu := s.GetNode(NodeTypeGPU, pBusID)
	if gpu == nil {
		return errInvalidDescriptionf("no GPU with bus id %s for nvlink element", Int64ToBusID(pBusID))
	}

	count, err := descNode.IntAttr("count")
	if err != nil {
		return errInvalidDescriptionf("%s", err)
	}
	targetClass, ok := descNode.Attr("tclass")
	if !ok {
		return errInvalidDescriptionf("nvlink element: missing %q attribute", "tclass")
	}
	targetType := NodeType(s.kvToInt(kvDictPCIClass, targetClass, int(NodeTypeGPU)))

	var remote *Node
	switch targetType {
	case NodeTypeGPU:
		// Peer to peer connection to another GPU. The remote may
		// legitimately be missing when it belongs to another
		// process.
		target, ok := descNode.Attr("target")
		if !ok {
			return errInvalidDescriptionf("nvlink element: missing %q attribute", "target")
		}
		busID, err := BusIDToInt64(target)
		if err != nil {
			return errInvalidDescriptionf("%s", err)
		}
		remote = s.GetNode(NodeTypeGPU, busID)
	case NodeTypeCPU:
		// Connection to the local CPU socket.
		remote = findLocalCPU(gpu, nil)
	default:
		// Anything else is an NVSwitch fabric, modeled as a
		// single switch node.
		if len(s.nodes[NodeTypeNVSwitch]) == 0 {
			if remote, err = s.CreateNode(NodeTypeNVSwitch, 0); err != nil {
				return err
			}
		} else {
			remote = s.nodes[NodeTypeNVSwitch][0]
		}
	}

	if remote == nil {
		return nil
	}
	nvlWidth := VoltaNVLinkWidth
	if gpu.GPU.CudaCompCap == 60 {
		nvlWidth = PascalNVLinkWidth
	}
	if err := s.ConnectNodes(gpu, remote, LinkTypeNVLink, float64(count)*nvlWidth); err != nil {
		return err
	}
	if remote.Type != NodeTypeGPU {
		return s.ConnectNodes(remote, gpu, LinkTypeNVLink, float64(count)*nvlWidth)
	}
	return nil
}

// findLocalCPU walks PCI links away from the given node until it
// reaches a CPU socket. The from node guards against walking back
// down the edge we arrived on.
func findLocalCPU(node, from *Node) *Node {
	if node.Type == NodeTypeCPU {
		return node
	}
	for _, link := range node.Links {
		if link.Type != LinkTypePCI || link.Remote == from {
			continue
		}
		if cpu := findLocalCPU(link.Remote, node); cpu != nil {
			return cpu
		}
	}
	return nil
}

func (s *System) connectCPUs() error {
	cpus := s.nodes[NodeTypeCPU]
	for n, cpu := range cpus {
		for p, peer := range cpus {
			if n == p {
				continue
			}
			if err := s.ConnectNodes(cpu, peer, LinkTypeSys, interCPUWidth(cpu)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interCPUWidth returns the socket interconnect width seen from the
// given CPU node.
func interCPUWidth(cpu *Node) float64 {
	switch cpu.CPU.Arch {
	case CPUArchPower:
		return P9Width
	case CPUArchARM:
		return ARMWidth
	case CPUArchX86:
		if cpu.CPU.Vendor == CPUVendorIntel {
			if cpu.CPU.Model == CPUModelIntelSkylake {
				return SKLQPIWidth
			}
			return QPIWidth
		}
	}
	return LocalWidth
}
