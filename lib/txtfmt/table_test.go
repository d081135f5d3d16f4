//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTxtFmt_TableFormatter(t *testing.T) {
	for name, tc := range map[string]struct {
		titles []string
		rows   []TableRow
		expOut string
	}{
		"no titles": {
			rows:   []TableRow{{"a": "1"}},
			expOut: "",
		},
		"header only": {
			titles: []string{"One", "Two"},
			expOut: strings.Join([]string{
				"One Two ",
				"--- --- ",
				"",
			}, "\n"),
		},
		"column alignment": {
			titles: []string{"Name", "Width"},
			rows: []TableRow{
				{"Name": "GPU/17000", "Width": "24.0"},
				{"Name": "CPU/0", "Width": "12.0"},
			},
			expOut: strings.Join([]string{
				"Name      Width ",
				"----      ----- ",
				"GPU/17000 24.0  ",
				"CPU/0     12.0  ",
				"",
			}, "\n"),
		},
		"missing cell renders None": {
			titles: []string{"Name", "Width"},
			rows: []TableRow{
				{"Name": "NVS/0"},
			},
			expOut: strings.Join([]string{
				"Name  Width ",
				"----  ----- ",
				"NVS/0 None  ",
				"",
			}, "\n"),
		},
		"extra cells ignored": {
			titles: []string{"Name"},
			rows: []TableRow{
				{"Name": "NIC/5D000", "Width": "6.0"},
			},
			expOut: strings.Join([]string{
				"Name      ",
				"----      ",
				"NIC/5D000 ",
				"",
			}, "\n"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			out := NewTableFormatter(tc.titles...).Format(tc.rows)

			if diff := cmp.Diff(tc.expOut, out); diff != "" {
				t.Fatalf("unexpected output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTxtFmt_FormatEntity(t *testing.T) {
	for name, tc := range map[string]struct {
		title  string
		attrs  []TableRow
		expOut string
	}{
		"no attributes": {
			title: "System",
			expOut: strings.Join([]string{
				"System",
				"------",
				"",
			}, "\n"),
		},
		"aligned values": {
			title: "System",
			attrs: []TableRow{
				{"GPUs": "2"},
				{"CPU Sockets": "1"},
			},
			expOut: strings.Join([]string{
				"System",
				"------",
				"  GPUs        : 2           ",
				"  CPU Sockets : 1           ",
				"",
			}, "\n"),
		},
		"untitled": {
			attrs: []TableRow{
				{"GPUs": "2"},
			},
			expOut: "  GPUs : 2    \n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			out := FormatEntity(tc.title, tc.attrs)

			if diff := cmp.Diff(tc.expOut, out); diff != "" {
				t.Fatalf("unexpected output (-want, +got):\n%s", diff)
			}
		})
	}
}
