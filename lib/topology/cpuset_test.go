//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

func setCPUs(cpus ...int) unix.CPUSet {
	var set unix.CPUSet
	for _, cpu := range cpus {
		set.Set(cpu)
	}
	return set
}

func cpuList(set unix.CPUSet) []int {
	out := []int{}
	for cpu := 0; cpu < maxCPUs; cpu++ {
		if set.IsSet(cpu) {
			out = append(out, cpu)
		}
	}
	return out
}

func TestTopology_ParseCPUSet(t *testing.T) {
	for name, tc := range map[string]struct {
		mask    string
		expCPUs []int
	}{
		"empty": {
			mask:    "",
			expCPUs: []int{},
		},
		"single word": {
			mask:    "0000000f",
			expCPUs: []int{0, 1, 2, 3},
		},
		"high and low bits": {
			mask:    "80000001",
			expCPUs: []int{0, 31},
		},
		"two words": {
			mask:    "3,00000002",
			expCPUs: []int{1, 32, 33},
		},
		"trailing newline": {
			mask:    "0000000f\n",
			expCPUs: []int{0, 1, 2, 3},
		},
		"stops at invalid character": {
			mask:    "f,xyz",
			expCPUs: []int{32, 33, 34, 35},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := ParseCPUSet(tc.mask)

			if diff := cmp.Diff(tc.expCPUs, cpuList(got)); diff != "" {
				t.Fatalf("unexpected CPUs (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTopology_CPUSetString(t *testing.T) {
	for name, tc := range map[string]struct {
		cpus    []int
		expMask string
	}{
		"empty": {
			expMask: "0",
		},
		"first four": {
			cpus:    []int{0, 1, 2, 3},
			expMask: "f",
		},
		"second word": {
			cpus:    []int{32},
			expMask: "1,00000000",
		},
		"both words": {
			cpus:    []int{0, 32},
			expMask: "1,00000001",
		},
	} {
		t.Run(name, func(t *testing.T) {
			set := setCPUs(tc.cpus...)
			got := CPUSetString(set)

			if got != tc.expMask {
				t.Fatalf("expected mask %q, got %q", tc.expMask, got)
			}

			// Formatting and parsing must be inverses.
			roundTrip := ParseCPUSet(got)
			if diff := cmp.Diff(cpuList(set), cpuList(roundTrip)); diff != "" {
				t.Fatalf("round trip mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTopology_cpuSetIntersect(t *testing.T) {
	a := setCPUs(0, 1, 32, 33)
	b := setCPUs(1, 2, 33, 34)

	got := cpuSetIntersect(a, b)

	if diff := cmp.Diff([]int{1, 33}, cpuList(got)); diff != "" {
		t.Fatalf("unexpected intersection (-want, +got):\n%s", diff)
	}
}
