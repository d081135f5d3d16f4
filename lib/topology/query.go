//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

// CPUType returns the architecture, vendor and model of the node's
// first CPU socket.
func (s *System) CPUType() (CPUArch, CPUVendor, CPUModel, error) {
	if len(s.nodes[NodeTypeCPU]) == 0 {
		return CPUArchUnknown, CPUVendorUnknown, CPUModelUnknown, errors.New("no CPU nodes in system")
	}
	cpu := s.nodes[NodeTypeCPU][0].CPU
	return cpu.Arch, cpu.Vendor, cpu.Model, nil
}

// SetAffinity pins the calling process to the CPU socket closest to
// the GPU owned by the given rank. The socket's affinity mask is
// intersected with the mask the process inherited unless the system
// was configured to ignore it. An empty result leaves the process
// affinity untouched.
func (s *System) SetAffinity(rank int) error {
	var cpu, gpu *Node
	for _, g := range s.nodes[NodeTypeGPU] {
		if g.GPU.Rank != rank {
			continue
		}
		gpu = g

		paths := g.PathList(NodeTypeCPU)
		if len(paths) < len(s.nodes[NodeTypeCPU]) {
			return errors.Errorf("no computed CPU paths for GPU %s", g)
		}
		cpuIndex := -1
		minHops := 0
		for c := range s.nodes[NodeTypeCPU] {
			nHops := paths[c].Count
			if cpuIndex == -1 || nHops < minHops {
				cpuIndex = c
				minHops = nHops
			}
		}
		if cpuIndex >= 0 {
			cpu = s.nodes[NodeTypeCPU][cpuIndex]
		}
	}
	if cpu == nil {
		return errors.Errorf("unable to find GPU/CPU for rank %d", rank)
	}

	mask, err := s.affinity.GetAffinity()
	if err != nil {
		return err
	}
	s.log.Tracef("current affinity for GPU %d is %s", gpu.GPU.Dev, CPUSetString(mask))

	cpuMask := cpu.CPU.Affinity
	s.log.Tracef("socket affinity for GPU %d is %s", gpu.GPU.Dev, CPUSetString(cpuMask))

	var finalMask unix.CPUSet
	if s.ignoreCPUAffinity {
		finalMask = cpuMask
	} else {
		finalMask = cpuSetIntersect(mask, cpuMask)
	}

	if finalMask.Count() == 0 {
		return nil
	}

	s.log.Infof("setting affinity for GPU %d to %s", gpu.GPU.Dev, CPUSetString(finalMask))
	return s.affinity.SetAffinity(finalMask)
}

// CollNetDeviceCount returns the number of network endpoints that
// support collective offload.
func (s *System) CollNetDeviceCount() int {
	count := 0
	for _, net := range s.nodes[NodeTypeNet] {
		if net.Net.CollSupport {
			count++
		}
	}
	return count
}
