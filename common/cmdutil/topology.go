//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/lib/hwdesc"
	"github.com/corelink-io/corelink/lib/topology"
	"github.com/corelink-io/corelink/lib/topology/hwprov"
)

// OutputCmd is an embeddable type for commands that write a report to
// stdout or to a file.
type OutputCmd struct {
	Output string `short:"o" long:"output" default:"stdout" description:"Write output to this location"`
}

// WithOutput calls fn with the configured output writer.
func (cmd *OutputCmd) WithOutput(fn func(io.Writer) error) error {
	if cmd.Output == "stdout" {
		return fn(os.Stdout)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", cmd.Output)
	}
	defer f.Close()

	return fn(f)
}

// TopologyConfigSetter defines an interface to be implemented by
// commands that accept a topology configuration.
type TopologyConfigSetter interface {
	SetTopologyConfig(topology.Config)
}

var _ TopologyConfigSetter = (*TopologyCmd)(nil)

// TopologyCmd is an embeddable type for commands that assemble the
// topology graph of the running system before reporting on it.
type TopologyCmd struct {
	NoArgsCmd
	JSONOutputCmd
	LogCmd
	OutputCmd
	File string `short:"f" long:"file" description:"Seed the topology from this description file"`

	topoCfg topology.Config
}

// SetTopologyConfig supplies the topology configuration, normally
// loaded from the application config file.
func (cmd *TopologyCmd) SetTopologyConfig(cfg topology.Config) {
	cmd.topoCfg = cfg
}

// TopoConfig returns the effective topology configuration. A
// description file given on the command line overrides the configured
// one.
func (cmd *TopologyCmd) TopoConfig() topology.Config {
	cfg := cmd.topoCfg
	if cmd.File != "" {
		cfg.TopoFile = cmd.File
	}
	return cfg
}

// GetSystem assembles the topology graph of the running system.
func (cmd *TopologyCmd) GetSystem(ctx context.Context) (*topology.System, error) {
	cfg := cmd.TopoConfig()
	return topology.GetSystem(ctx, cmd.Logger, &cfg, hwprov.DefaultDeviceProvider(cmd.Logger))
}

// GetDescription assembles the hardware description document of the
// running system without turning it into a graph.
func (cmd *TopologyCmd) GetDescription(ctx context.Context) (*hwdesc.Document, error) {
	cfg := cmd.TopoConfig()
	return topology.AssembleDescription(ctx, cmd.Logger, &cfg, hwprov.DefaultDeviceProvider(cmd.Logger))
}
