//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// maxCPUs matches the number of bits in a unix.CPUSet.
const maxCPUs = 1024

// ParseCPUSet parses a CPU mask of comma-separated 32 bit hex words
// with the most significant word first ("0000ffff,ffffffff"), the
// format used by the kernel's bitmask files. Parsing stops at the
// first character that is neither a hex digit nor a comma, so
// trailing whitespace is tolerated.
func ParseCPUSet(str string) unix.CPUSet {
	words := []uint32{0}
	cur := &words[0]
scan:
	for _, c := range str {
		switch {
		case c == ',':
			words = append(words, 0)
			cur = &words[len(words)-1]
		case isHexDigit(c):
			*cur = *cur<<4 + uint32(hexVal(c))
		default:
			break scan
		}
	}

	var set unix.CPUSet
	for i, word := range words {
		// The last word holds the lowest numbered CPUs.
		base := (len(words) - 1 - i) * 32
		for bit := 0; bit < 32; bit++ {
			if word&(1<<uint(bit)) != 0 && base+bit < maxCPUs {
				set.Set(base + bit)
			}
		}
	}
	return set
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// CPUSetString formats a CPU set as comma-separated 32 bit hex words
// with the most significant word first. Leading zero words are
// dropped and the empty set formats as "0".
func CPUSetString(set unix.CPUSet) string {
	words := make([]uint32, maxCPUs/32)
	for cpu := 0; cpu < maxCPUs; cpu++ {
		if set.IsSet(cpu) {
			words[cpu/32] |= 1 << (uint(cpu) % 32)
		}
	}

	hi := len(words) - 1
	for hi > 0 && words[hi] == 0 {
		hi--
	}

	parts := make([]string, 0, hi+1)
	parts = append(parts, fmt.Sprintf("%x", words[hi]))
	for i := hi - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprintf("%08x", words[i]))
	}
	return strings.Join(parts, ",")
}

// cpuSetIntersect returns the CPUs present in both sets.
func cpuSetIntersect(a, b unix.CPUSet) (out unix.CPUSet) {
	for cpu := 0; cpu < maxCPUs; cpu++ {
		if a.IsSet(cpu) && b.IsSet(cpu) {
			out.Set(cpu)
		}
	}
	return
}
