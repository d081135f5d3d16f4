//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"encoding/json"
	"fmt"

	"golang.org/x/sys/unix"
)

// Undefined marks integer device attributes that have not been
// discovered or configured.
const Undefined = -1

// NodeType identifies the kind of hardware a graph node represents.
// The zero value is GPU; unknown PCI device classes fall back to it.
type NodeType int

const (
	NodeTypeGPU NodeType = iota
	NodeTypePCI
	NodeTypeNVSwitch
	NodeTypeCPU
	NodeTypeNIC
	NodeTypeNet

	numNodeTypes // must be last
)

func (nt NodeType) String() string {
	switch nt {
	case NodeTypeGPU:
		return "GPU"
	case NodeTypePCI:
		return "PCI"
	case NodeTypeNVSwitch:
		return "NVS"
	case NodeTypeCPU:
		return "CPU"
	case NodeTypeNIC:
		return "NIC"
	case NodeTypeNet:
		return "NET"
	default:
		return fmt.Sprintf("unknown(%d)", int(nt))
	}
}

// LinkType identifies the interconnect a link traverses. The values
// share a scale with PathType so that the two can be compared.
type LinkType int

const (
	LinkTypeLocal  LinkType = 0
	LinkTypeNVLink LinkType = 1
	LinkTypePCI    LinkType = 2
	LinkTypeSys    LinkType = 5
	LinkTypeNet    LinkType = 6
)

func (lt LinkType) String() string {
	switch lt {
	case LinkTypeLocal:
		return "LOC"
	case LinkTypeNVLink:
		return "NVL"
	case LinkTypePCI:
		return "PCI"
	case LinkTypeSys:
		return "SYS"
	case LinkTypeNet:
		return "NET"
	default:
		return fmt.Sprintf("unknown(%d)", int(lt))
	}
}

// PathType classifies a computed path by the furthest interconnect it
// has to cross.
type PathType int

const (
	// PathTypeLocal is a path to the node itself.
	PathTypeLocal PathType = iota
	// PathTypeNVLink is a path using NVLink only.
	PathTypeNVLink
	// PathTypePIX is a path through at most one PCI switch.
	PathTypePIX
	// PathTypePXB is a path through multiple PCI switches that does
	// not cross a CPU host bridge.
	PathTypePXB
	// PathTypePHB is a path through a CPU host bridge.
	PathTypePHB
	// PathTypeSys is a path crossing the inter-socket interconnect.
	PathTypeSys
	// PathTypeNet is a path leaving the node through the network.
	PathTypeNet
)

func (pt PathType) String() string {
	switch pt {
	case PathTypeLocal:
		return "LOC"
	case PathTypeNVLink:
		return "NVL"
	case PathTypePIX:
		return "PIX"
	case PathTypePXB:
		return "PXB"
	case PathTypePHB:
		return "PHB"
	case PathTypeSys:
		return "SYS"
	case PathTypeNet:
		return "NET"
	default:
		return fmt.Sprintf("unknown(%d)", int(pt))
	}
}

// CPUArch identifies the processor architecture of a CPU node.
type CPUArch int

const (
	CPUArchUnknown CPUArch = iota
	CPUArchX86
	CPUArchPower
	CPUArchARM
)

func (a CPUArch) String() string {
	switch a {
	case CPUArchX86:
		return "x86_64"
	case CPUArchPower:
		return "ppc64"
	case CPUArchARM:
		return "arm64"
	default:
		return "unknown"
	}
}

// CPUVendor identifies the processor vendor of a CPU node.
type CPUVendor int

const (
	CPUVendorUnknown CPUVendor = iota
	CPUVendorIntel
	CPUVendorAMD
)

func (v CPUVendor) String() string {
	switch v {
	case CPUVendorIntel:
		return "GenuineIntel"
	case CPUVendorAMD:
		return "AuthenticAMD"
	default:
		return "unknown"
	}
}

// CPUModel identifies the processor generation of a CPU node, for the
// vendors where it changes the interconnect width.
type CPUModel int

const (
	CPUModelUnknown CPUModel = iota
	CPUModelIntelBroadwell
	CPUModelIntelSkylake
)

func (m CPUModel) String() string {
	switch m {
	case CPUModelIntelBroadwell:
		return "Broadwell"
	case CPUModelIntelSkylake:
		return "Skylake"
	default:
		return "unknown"
	}
}

// GPUDevice holds the accelerator attributes of a GPU node.
type GPUDevice struct {
	Dev         int  `json:"dev"`
	Rank        int  `json:"rank"`
	CudaCompCap int  `json:"cuda_comp_cap"`
	GDRSupport  bool `json:"gdr_support"`
}

// CPUDevice holds the processor attributes of a CPU node.
type CPUDevice struct {
	Arch     CPUArch
	Vendor   CPUVendor
	Model    CPUModel
	Affinity unix.CPUSet
}

// MarshalJSON emits symbolic names for the processor attributes and
// the affinity mask in cpuset string form.
func (cd CPUDevice) MarshalJSON() ([]byte, error) {
	var vendor, model, affinity string
	if cd.Vendor != CPUVendorUnknown {
		vendor = cd.Vendor.String()
	}
	if cd.Model != CPUModelUnknown {
		model = cd.Model.String()
	}
	if cd.Affinity.Count() > 0 {
		affinity = CPUSetString(cd.Affinity)
	}

	return json.Marshal(struct {
		Arch     string `json:"arch"`
		Vendor   string `json:"vendor,omitempty"`
		Model    string `json:"model,omitempty"`
		Affinity string `json:"affinity,omitempty"`
	}{
		Arch:     cd.Arch.String(),
		Vendor:   vendor,
		Model:    model,
		Affinity: affinity,
	})
}

// NetDevice holds the attributes of a network endpoint node.
type NetDevice struct {
	ASIC        uint64  `json:"asic"`
	Port        int     `json:"port"`
	Width       float64 `json:"width"`
	GDRSupport  bool    `json:"gdr_support"`
	CollSupport bool    `json:"coll_support"`
}

// Link is a directed edge of the topology graph.
type Link struct {
	Type   LinkType
	Width  float64
	Remote *Node
}

// Node is a vertex of the topology graph. The device payload matching
// the node type is the only meaningful one.
type Node struct {
	Type NodeType
	ID   int64

	GPU GPUDevice
	CPU CPUDevice
	Net NetDevice

	// Links are kept sorted by descending width.
	Links []Link

	paths [numNodeTypes][]Path
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s/%X", n.Type, n.ID)
}

// MarshalJSON replaces link targets with node references so that the
// cyclic graph can be serialized.
func (n *Node) MarshalJSON() ([]byte, error) {
	type jsonLink struct {
		Type   string  `json:"type"`
		Width  float64 `json:"width"`
		Remote string  `json:"remote"`
	}

	links := make([]jsonLink, 0, len(n.Links))
	for _, link := range n.Links {
		links = append(links, jsonLink{
			Type:   link.Type.String(),
			Width:  link.Width,
			Remote: link.Remote.String(),
		})
	}

	out := struct {
		Type  string     `json:"type"`
		ID    string     `json:"id"`
		GPU   *GPUDevice `json:"gpu,omitempty"`
		CPU   *CPUDevice `json:"cpu,omitempty"`
		Net   *NetDevice `json:"net,omitempty"`
		Links []jsonLink `json:"links,omitempty"`
	}{
		Type:  n.Type.String(),
		ID:    fmt.Sprintf("%x", n.ID),
		Links: links,
	}
	switch n.Type {
	case NodeTypeGPU:
		out.GPU = &n.GPU
	case NodeTypeCPU:
		out.CPU = &n.CPU
	case NodeTypeNet:
		out.Net = &n.Net
	}

	return json.Marshal(out)
}
