//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/common/test"
	"github.com/corelink-io/corelink/logging"
)

func cpuRange(lo, hi int) []int {
	out := []int{}
	for cpu := lo; cpu <= hi; cpu++ {
		out = append(out, cpu)
	}
	return out
}

// buildAffinitySystem returns a two socket system with one GPU per
// socket. Rank 0 is one hop from the first socket, rank 1 one hop from
// the second.
func buildAffinitySystem(t *testing.T, log logging.Logger) *System {
	t.Helper()

	s := NewSystem(log)
	for numa, mask := range []string{"0000ffff", "ffff0000"} {
		cpu, err := s.CreateNode(NodeTypeCPU, int64(numa))
		if err != nil {
			t.Fatal(err)
		}
		cpu.CPU.Affinity = ParseCPUSet(mask)
	}

	for rank, id := range []int64{0x17000, 0x65000} {
		gpu, err := s.CreateNode(NodeTypeGPU, id)
		if err != nil {
			t.Fatal(err)
		}
		gpu.GPU.Rank = rank
		gpu.GPU.Dev = rank
	}

	near := Path{Count: 1, Type: PathTypePHB, Width: 12.0}
	far := Path{Count: 3, Type: PathTypeSys, Width: 8.0}
	s.Nodes(NodeTypeGPU)[0].SetPathList(NodeTypeCPU, []Path{near, far})
	s.Nodes(NodeTypeGPU)[1].SetPathList(NodeTypeCPU, []Path{far, near})

	return s
}

func TestTopology_SetAffinity(t *testing.T) {
	for name, tc := range map[string]struct {
		rank    int
		current []int
		ignore  bool
		noPaths bool
		getErr  error
		setErr  error
		expErr  error
		expSet  []int // nil expects no affinity change
	}{
		"pins to closest socket": {
			rank:    0,
			current: cpuRange(0, 31),
			expSet:  cpuRange(0, 15),
		},
		"rank on second socket": {
			rank:    1,
			current: cpuRange(0, 31),
			expSet:  cpuRange(16, 31),
		},
		"intersects inherited mask": {
			rank:    0,
			current: cpuRange(8, 23),
			expSet:  cpuRange(8, 15),
		},
		"ignores inherited mask": {
			rank:    0,
			current: cpuRange(16, 23),
			ignore:  true,
			expSet:  cpuRange(0, 15),
		},
		"empty intersection is a no-op": {
			rank:    0,
			current: cpuRange(16, 31),
		},
		"unknown rank": {
			rank:    7,
			current: cpuRange(0, 31),
			expErr:  errors.New("unable to find GPU/CPU for rank 7"),
		},
		"paths not computed": {
			rank:    0,
			current: cpuRange(0, 31),
			noPaths: true,
			expErr:  errors.New("no computed CPU paths for GPU GPU/17000"),
		},
		"get affinity failure": {
			rank:    0,
			current: cpuRange(0, 31),
			getErr:  errors.New("sched_getaffinity failed"),
			expErr:  errors.New("sched_getaffinity failed"),
		},
		"set affinity failure": {
			rank:    0,
			current: cpuRange(0, 31),
			setErr:  errors.New("sched_setaffinity failed"),
			expErr:  errors.New("sched_setaffinity failed"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			s := buildAffinitySystem(t, log)
			if tc.noPaths {
				s.Nodes(NodeTypeGPU)[0].SetPathList(NodeTypeCPU, nil)
			}

			mockAff := &MockAffinityProvider{
				Current: setCPUs(tc.current...),
				GetErr:  tc.getErr,
				SetErr:  tc.setErr,
			}
			s.WithAffinityProvider(mockAff).WithIgnoreCPUAffinity(tc.ignore)

			gotErr := s.SetAffinity(tc.rank)
			test.CmpErr(t, tc.expErr, gotErr)
			if tc.expErr != nil {
				return
			}

			if tc.expSet == nil {
				test.AssertEqual(t, 0, len(mockAff.SetCalls), "unexpected affinity change")
				return
			}
			test.AssertEqual(t, 1, len(mockAff.SetCalls), "expected one affinity change")
			if diff := cmp.Diff(tc.expSet, cpuList(mockAff.SetCalls[0])); diff != "" {
				t.Fatalf("unexpected affinity mask (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTopology_SetAffinity_TieBreak(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := buildAffinitySystem(t, log)

	// With equal hop counts everywhere the first socket wins.
	if err := (&MockPathProvider{Path: Path{Count: 2, Type: PathTypePHB, Width: 12.0}}).ComputePaths(s); err != nil {
		t.Fatal(err)
	}

	mockAff := &MockAffinityProvider{Current: setCPUs(cpuRange(0, 31)...)}
	s.WithAffinityProvider(mockAff)

	if err := s.SetAffinity(1); err != nil {
		t.Fatal(err)
	}

	test.AssertEqual(t, 1, len(mockAff.SetCalls), "expected one affinity change")
	if diff := cmp.Diff(cpuRange(0, 15), cpuList(mockAff.SetCalls[0])); diff != "" {
		t.Fatalf("unexpected affinity mask (-want, +got):\n%s", diff)
	}
}

func TestTopology_CPUType(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := NewSystem(log)
	_, _, _, err := s.CPUType()
	test.CmpErr(t, errors.New("no CPU nodes in system"), err)

	cpu, err := s.CreateNode(NodeTypeCPU, 0)
	if err != nil {
		t.Fatal(err)
	}
	cpu.CPU.Arch = CPUArchX86
	cpu.CPU.Vendor = CPUVendorIntel
	cpu.CPU.Model = CPUModelIntelSkylake

	// A second socket never changes the answer.
	other, err := s.CreateNode(NodeTypeCPU, 1)
	if err != nil {
		t.Fatal(err)
	}
	other.CPU.Arch = CPUArchARM

	arch, vendor, model, err := s.CPUType()
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, CPUArchX86, arch, "arch")
	test.AssertEqual(t, CPUVendorIntel, vendor, "vendor")
	test.AssertEqual(t, CPUModelIntelSkylake, model, "model")
}

func TestTopology_CollNetDeviceCount(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := NewSystem(log)
	test.AssertEqual(t, 0, s.CollNetDeviceCount(), "empty system")

	for i, coll := range []bool{true, false, true} {
		net, err := s.CreateNode(NodeTypeNet, int64(i))
		if err != nil {
			t.Fatal(err)
		}
		net.Net.CollSupport = coll
	}

	test.AssertEqual(t, 2, s.CollNetDeviceCount(), "collective endpoint count")
}
