//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BusIDToInt64 converts a PCI bus id string ("0000:17:00.0") to its
// packed numeric form. Separator characters are dropped and the
// conversion stops at the first character that is not a hex digit.
func BusIDToInt64(busID string) (int64, error) {
	var sb strings.Builder
	for _, c := range busID {
		if c == ':' || c == '.' {
			continue
		}
		if !isHexDigit(c) {
			break
		}
		sb.WriteRune(c)
	}
	if sb.Len() == 0 {
		return 0, errors.Errorf("invalid PCI bus id %q", busID)
	}

	id, err := strconv.ParseInt(sb.String(), 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid PCI bus id %q", busID)
	}
	return id, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Int64ToBusID is the inverse of BusIDToInt64.
func Int64ToBusID(id int64) string {
	return fmt.Sprintf("%04x:%02x:%02x.%01x", id>>20, (id&0xff000)>>12, (id&0xff0)>>4, id&0xf)
}

// GUIDToUint64 parses a system image GUID of the form
// "0002:c903:00f1:3e7c" into its numeric form.
func GUIDToUint64(guid string) (uint64, error) {
	var a, b, c, d uint64
	if _, err := fmt.Sscanf(guid, "%04x:%04x:%04x:%04x", &a, &b, &c, &d); err != nil {
		return 0, errors.Wrapf(err, "invalid system GUID %q", guid)
	}
	return a<<48 | b<<32 | c<<16 | d, nil
}

// busIDFromPCIPath extracts the bus id of the last device on a sysfs
// PCI path ("/sys/devices/pci0000:17/0000:17:00.0").
func busIDFromPCIPath(path string) (string, error) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 || idx == len(path)-1 {
		return "", errors.Errorf("invalid PCI path %q", path)
	}
	return path[idx+1:], nil
}
