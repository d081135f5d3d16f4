//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package topology models the hardware layout of a single compute
// node as an annotated graph. GPUs, PCI switches, NVSwitches, CPU
// sockets and network interfaces become nodes; PCI hops, NVLink
// connections and inter-socket buses become weighted directed links.
//
// A graph is built from a hardware description document (see
// GetSystemFromDescription) or discovered from the running system and
// a set of device providers (see GetSystem). Once built, the graph
// answers placement questions for a communication runtime: which CPU
// socket is closest to a GPU, what kind of processor the node runs
// on, and how many collective-capable network endpoints exist.
package topology

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/logging"
)

// System is the topology graph of one compute node. Nodes are grouped
// into per-type tables; a node's index in its table identifies it in
// computed path lists.
//
// A System is not safe for concurrent mutation. Build it first, then
// share it read-only.
type System struct {
	log logging.Logger

	nodes    [numNodeTypes][]*Node
	maxWidth float64

	affinity          ProcessAffinityProvider
	ignoreCPUAffinity bool
}

// NewSystem returns an empty topology graph.
func NewSystem(log logging.Logger) *System {
	return &System{
		log:      log,
		affinity: defaultAffinityProvider(),
	}
}

// WithAffinityProvider overrides the provider used to read and write
// the process CPU affinity mask.
func (s *System) WithAffinityProvider(p ProcessAffinityProvider) *System {
	if p != nil {
		s.affinity = p
	}
	return s
}

// WithIgnoreCPUAffinity makes SetAffinity replace the inherited
// process affinity mask instead of intersecting with it.
func (s *System) WithIgnoreCPUAffinity(ignore bool) *System {
	s.ignoreCPUAffinity = ignore
	return s
}

// Nodes returns the node table for the given type.
func (s *System) Nodes(nt NodeType) []*Node {
	if nt < 0 || nt >= numNodeTypes {
		return nil
	}
	return s.nodes[nt]
}

// MaxWidth returns the widest link width seen by ConnectNodes.
func (s *System) MaxWidth() float64 {
	return s.maxWidth
}

// MarshalJSON emits the populated node tables keyed by node type.
func (s *System) MarshalJSON() ([]byte, error) {
	nodes := make(map[string][]*Node)
	for nt := NodeType(0); nt < numNodeTypes; nt++ {
		if len(s.nodes[nt]) > 0 {
			nodes[nt.String()] = s.nodes[nt]
		}
	}

	return json.Marshal(struct {
		MaxWidth float64            `json:"max_width"`
		Nodes    map[string][]*Node `json:"nodes"`
	}{
		MaxWidth: s.maxWidth,
		Nodes:    nodes,
	})
}

// CreateNode adds a node of the given type to the system and returns
// it. GPU nodes start with a local link to themselves; their device
// attributes are set to Undefined until filled in.
func (s *System) CreateNode(nt NodeType, id int64) (*Node, error) {
	if nt < 0 || nt >= numNodeTypes {
		return nil, errors.Errorf("invalid node type %d", nt)
	}
	if len(s.nodes[nt]) == MaxNodes {
		return nil, errNodeCapacity(nt)
	}

	n := &Node{Type: nt, ID: id}
	switch nt {
	case NodeTypeGPU:
		n.Links = append(n.Links, Link{Type: LinkTypeLocal, Width: LocalWidth, Remote: n})
		n.GPU.Dev = Undefined
		n.GPU.Rank = Undefined
		n.GPU.CudaCompCap = Undefined
	case NodeTypeNet:
		n.Net.Port = Undefined
	}

	s.nodes[nt] = append(s.nodes[nt], n)
	return n, nil
}

// GetNode returns the node of the given type with the given id, or
// nil if no such node exists.
func (s *System) GetNode(nt NodeType, id int64) *Node {
	if nt < 0 || nt >= numNodeTypes {
		return nil
	}
	for _, n := range s.nodes[nt] {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// RemoveNode deletes the node at the given index of the given type's
// table, dropping any links other nodes have to it. Path lists
// computed before the removal are stale afterwards.
func (s *System) RemoveNode(nt NodeType, index int) error {
	if nt < 0 || nt >= numNodeTypes || index < 0 || index >= len(s.nodes[nt]) {
		return errors.Errorf("no %s node at index %d", nt, index)
	}

	del := s.nodes[nt][index]
	for t := NodeType(0); t < numNodeTypes; t++ {
		del.SetPathList(t, nil)
	}
	for t := NodeType(0); t < numNodeTypes; t++ {
		for _, node := range s.nodes[t] {
			if node == del {
				continue
			}
			links := node.Links[:0]
			for _, link := range node.Links {
				if link.Remote != del {
					links = append(links, link)
				}
			}
			node.Links = links
		}
	}

	s.nodes[nt] = append(s.nodes[nt][:index], s.nodes[nt][index+1:]...)
	return nil
}

// ConnectNodes adds a link of the given type and width from node to
// remote. Connecting the same pair with the same link type again
// aggregates the widths onto one link. Links stay sorted by
// descending width; the sort is stable so earlier links keep their
// position among equals.
func (s *System) ConnectNodes(node, remote *Node, lt LinkType, width float64) error {
	idx := -1
	for i, link := range node.Links {
		if link.Remote == remote && link.Type == lt {
			idx = i
			break
		}
	}
	if idx == -1 {
		if len(node.Links) == MaxNodeLinks {
			return errLinkCapacity(node)
		}
		node.Links = append(node.Links, Link{Type: lt, Remote: remote})
		idx = len(node.Links) - 1
	}
	node.Links[idx].Width += width

	if node.Links[idx].Width > s.maxWidth {
		s.maxWidth = node.Links[idx].Width
	}

	save := node.Links[idx]
	for idx > 0 && node.Links[idx-1].Width < save.Width {
		node.Links[idx] = node.Links[idx-1]
		idx--
	}
	node.Links[idx] = save

	return nil
}

// Sort canonicalizes the link order of every node. Starting from each
// CPU socket, the link pointing back toward the socket is rotated to
// the end of its node's link list, so that iteration visits NVLinks
// first, then PCI links away from the socket, then the link toward
// the socket, then inter-socket links.
func (s *System) Sort() {
	for _, cpu := range s.nodes[NodeTypeCPU] {
		sortNode(cpu, nil)
	}
}

func sortNode(node, upNode *Node) {
	if upNode != nil {
		for l, link := range node.Links {
			if link.Remote == upNode {
				copy(node.Links[l:], node.Links[l+1:])
				node.Links[len(node.Links)-1] = link
				break
			}
		}
	}
	for _, link := range node.Links {
		if link.Type == LinkTypePCI && link.Remote != upNode {
			sortNode(link.Remote, node)
		}
	}
}
