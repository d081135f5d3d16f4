//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/corelink-io/corelink/lib/txtfmt"
)

// PrintTopology writes a tree rendering of the system to the supplied
// writer, one line per node and link, starting from each CPU socket.
// PCI links are followed downward; other links print their remote
// node inline.
func PrintTopology(s *System, out io.Writer) error {
	ew := txtfmt.NewErrWriter(out)

	fmt.Fprintf(ew, "=== System : maxWidth %2.1f ===\n", s.MaxWidth())
	for _, cpu := range s.Nodes(NodeTypeCPU) {
		printNode(ew, cpu, nil, "")
	}
	fmt.Fprintln(ew, strings.Repeat("=", 42))

	return ew.Err
}

func printNode(w io.Writer, node, prev *Node, lead string) {
	fmt.Fprintf(w, "%s%s\n", lead, nodeLabel(node))

	indent := strings.Repeat(" ", len(lead))
	for _, link := range node.Links {
		if link.Type == LinkTypeLocal {
			continue
		}
		// The PCI link back toward the socket was already printed.
		if link.Type == LinkTypePCI && link.Remote == prev {
			continue
		}
		linkLead := fmt.Sprintf("%s+ %s[%2.1f] - ", indent, link.Type, link.Width)
		if link.Type == LinkTypePCI {
			printNode(w, link.Remote, node, linkLead)
			continue
		}
		fmt.Fprintf(w, "%s%s\n", linkLead, remoteLabel(link.Remote))
	}
}

func nodeLabel(n *Node) string {
	switch n.Type {
	case NodeTypeGPU:
		return fmt.Sprintf("%s (%d)", n, n.GPU.Rank)
	case NodeTypeCPU:
		return fmt.Sprintf("%s (%s/%s/%s)", n, n.CPU.Arch, n.CPU.Vendor, n.CPU.Model)
	default:
		return n.String()
	}
}

func remoteLabel(n *Node) string {
	if n.Type == NodeTypeNet {
		return fmt.Sprintf("%s (%x/%d/%f)", n, n.Net.ASIC, n.Net.Port, n.Net.Width)
	}
	return n.String()
}

// PrintPaths writes a table of all computed paths to the supplied
// writer. Nodes without computed paths are omitted; nothing is
// written when no paths have been computed at all.
func PrintPaths(s *System, out io.Writer) error {
	var table []txtfmt.TableRow
	for t := NodeType(0); t < numNodeTypes; t++ {
		for _, node := range s.Nodes(t) {
			for dt := NodeType(0); dt < numNodeTypes; dt++ {
				dests := s.Nodes(dt)
				for i, path := range node.PathList(dt) {
					if i >= len(dests) {
						break
					}
					table = append(table, txtfmt.TableRow{
						"Source":      node.String(),
						"Destination": dests[i].String(),
						"Hops":        fmt.Sprintf("%d", path.Count),
						"Type":        path.Type.String(),
						"Width":       fmt.Sprintf("%2.1f", path.Width),
					})
				}
			}
		}
	}
	if len(table) == 0 {
		return nil
	}

	formatter := txtfmt.NewTableFormatter("Source", "Destination", "Hops", "Type", "Width")
	_, err := fmt.Fprint(out, formatter.Format(table))
	return err
}

// PrintSummary writes a short overview of the system to the supplied
// writer.
func PrintSummary(s *System, out io.Writer) error {
	attrs := []txtfmt.TableRow{
		{"CPU Sockets": fmt.Sprintf("%d", len(s.Nodes(NodeTypeCPU)))},
	}
	if arch, vendor, model, err := s.CPUType(); err == nil {
		attrs = append(attrs, txtfmt.TableRow{
			"CPU Type": fmt.Sprintf("%s/%s/%s", arch, vendor, model),
		})
	}
	attrs = append(attrs,
		txtfmt.TableRow{"GPUs": fmt.Sprintf("%d", len(s.Nodes(NodeTypeGPU)))},
		txtfmt.TableRow{"NVSwitches": fmt.Sprintf("%d", len(s.Nodes(NodeTypeNVSwitch)))},
		txtfmt.TableRow{"NICs": fmt.Sprintf("%d", len(s.Nodes(NodeTypeNIC)))},
		txtfmt.TableRow{"Network Endpoints": fmt.Sprintf("%d", len(s.Nodes(NodeTypeNet)))},
		txtfmt.TableRow{"Collective Endpoints": fmt.Sprintf("%d", s.CollNetDeviceCount())},
	)
	for _, net := range s.Nodes(NodeTypeNet) {
		attrs = append(attrs, txtfmt.TableRow{
			fmt.Sprintf("%s Speed", net): humanize.SI(net.Net.Width*8e9, "b/s"),
		})
	}
	attrs = append(attrs, txtfmt.TableRow{
		"Max Link Width": fmt.Sprintf("%2.1f GB/s", s.MaxWidth()),
	})

	_, err := fmt.Fprint(out, txtfmt.FormatEntity("System", attrs))
	return err
}
