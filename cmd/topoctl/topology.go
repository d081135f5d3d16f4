//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"context"
	"io"

	"github.com/corelink-io/corelink/common/cmdutil"
	"github.com/corelink-io/corelink/lib/topology"
)

// printCmd renders the full topology graph of the running system.
type printCmd struct {
	cmdutil.TopologyCmd
}

func (cmd *printCmd) Execute(_ []string) error {
	sys, err := cmd.GetSystem(context.Background())
	if err != nil {
		return err
	}

	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(sys, nil)
	}

	return cmd.WithOutput(func(out io.Writer) error {
		if err := topology.PrintTopology(sys, out); err != nil {
			return err
		}
		return topology.PrintPaths(sys, out)
	})
}

// summaryCmd renders a short overview of the topology graph.
type summaryCmd struct {
	cmdutil.TopologyCmd
}

func (cmd *summaryCmd) Execute(_ []string) error {
	sys, err := cmd.GetSystem(context.Background())
	if err != nil {
		return err
	}

	if cmd.JSONOutputEnabled() {
		return cmd.OutputJSON(sys, nil)
	}

	return cmd.WithOutput(func(out io.Writer) error {
		return topology.PrintSummary(sys, out)
	})
}

// dumpCmd writes the assembled hardware description document, which
// can seed later runs via the topo_file config entry.
type dumpCmd struct {
	cmdutil.TopologyCmd
}

func (cmd *dumpCmd) Execute(_ []string) error {
	doc, err := cmd.GetDescription(context.Background())
	if err != nil {
		return err
	}

	return cmd.WithOutput(doc.Write)
}
