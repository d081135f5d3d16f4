//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

// Path summarizes a computed route from one node to a destination
// node.
type Path struct {
	// Count is the number of links the path traverses.
	Count int
	// Type classifies the path by the interconnects it crosses.
	Type PathType
	// Width is the width of the narrowest link on the path.
	Width float64
}

// PathProvider computes routes between the nodes of a System and
// attaches them with SetPathList.
type PathProvider interface {
	ComputePaths(*System) error
}

// SetPathList attaches the computed paths from the node to all nodes
// of the destination type, indexed like the System's node table for
// that type.
func (n *Node) SetPathList(destType NodeType, paths []Path) {
	if n == nil || destType < 0 || destType >= numNodeTypes {
		return
	}
	n.paths[destType] = paths
}

// PathList returns the paths attached for the destination type, or
// nil if none have been computed.
func (n *Node) PathList(destType NodeType) []Path {
	if n == nil || destType < 0 || destType >= numNodeTypes {
		return nil
	}
	return n.paths[destType]
}
