//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/common/test"
)

func TestTopology_BusIDToInt64(t *testing.T) {
	for name, tc := range map[string]struct {
		busID  string
		expID  int64
		expErr error
	}{
		"zero device": {
			busID: "0000:00:00.0",
			expID: 0,
		},
		"typical gpu": {
			busID: "0000:17:00.0",
			expID: 0x17000,
		},
		"nonzero domain": {
			busID: "0001:02:03.4",
			expID: 0x102034,
		},
		"uppercase hex": {
			busID: "0000:5D:00.1",
			expID: 0x5d001,
		},
		"trailing garbage ignored": {
			busID: "0000:17:00.0@pci",
			expID: 0x17000,
		},
		"empty": {
			busID:  "",
			expErr: errors.New(`invalid PCI bus id ""`),
		},
		"no hex digits": {
			busID:  "zz",
			expErr: errors.New(`invalid PCI bus id "zz"`),
		},
	} {
		t.Run(name, func(t *testing.T) {
			gotID, gotErr := BusIDToInt64(tc.busID)

			test.CmpErr(t, tc.expErr, gotErr)
			if tc.expErr != nil {
				return
			}
			test.AssertEqual(t, tc.expID, gotID, "bus id value")
		})
	}
}

func TestTopology_Int64ToBusID(t *testing.T) {
	for name, tc := range map[string]struct {
		id       int64
		expBusID string
	}{
		"zero device": {
			id:       0,
			expBusID: "0000:00:00.0",
		},
		"typical gpu": {
			id:       0x17000,
			expBusID: "0000:17:00.0",
		},
		"nonzero function": {
			id:       0x5d001,
			expBusID: "0000:5d:00.1",
		},
		"nonzero domain": {
			id:       0x102034,
			expBusID: "0001:02:03.4",
		},
	} {
		t.Run(name, func(t *testing.T) {
			test.AssertEqual(t, tc.expBusID, Int64ToBusID(tc.id), "bus id string")

			roundTrip, err := BusIDToInt64(tc.expBusID)
			if err != nil {
				t.Fatal(err)
			}
			test.AssertEqual(t, tc.id, roundTrip, "round trip")
		})
	}
}

func TestTopology_GUIDToUint64(t *testing.T) {
	for name, tc := range map[string]struct {
		guid    string
		expGUID uint64
		expErr  error
	}{
		"mellanox guid": {
			guid:    "0002:c903:00f1:3e7c",
			expGUID: 0x0002c90300f13e7c,
		},
		"zero": {
			guid:    "0000:0000:0000:0000",
			expGUID: 0,
		},
		"missing words": {
			guid:   "0002:c903",
			expErr: errors.New(`invalid system GUID "0002:c903"`),
		},
		"empty": {
			guid:   "",
			expErr: errors.New(`invalid system GUID ""`),
		},
	} {
		t.Run(name, func(t *testing.T) {
			gotGUID, gotErr := GUIDToUint64(tc.guid)

			test.CmpErr(t, tc.expErr, gotErr)
			if tc.expErr != nil {
				return
			}
			test.AssertEqual(t, tc.expGUID, gotGUID, "guid value")
		})
	}
}

func TestTopology_busIDFromPCIPath(t *testing.T) {
	for name, tc := range map[string]struct {
		path     string
		expBusID string
		expErr   error
	}{
		"nested port": {
			path:     "/sys/devices/pci0000:5d/0000:5d:00.0/0000:5e:00.1",
			expBusID: "0000:5e:00.1",
		},
		"single level": {
			path:   "0000:17:00.0",
			expErr: errors.New(`invalid PCI path "0000:17:00.0"`),
		},
		"trailing slash": {
			path:   "/sys/devices/pci0000:5d/",
			expErr: errors.New(`invalid PCI path "/sys/devices/pci0000:5d/"`),
		},
		"empty": {
			path:   "",
			expErr: errors.New(`invalid PCI path ""`),
		},
	} {
		t.Run(name, func(t *testing.T) {
			gotBusID, gotErr := busIDFromPCIPath(tc.path)

			test.CmpErr(t, tc.expErr, gotErr)
			if tc.expErr != nil {
				return
			}
			test.AssertEqual(t, tc.expBusID, gotBusID, "bus id")
		})
	}
}
