//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/common/test"
	"github.com/corelink-io/corelink/logging"
)

func printTestSystem(t *testing.T, log logging.Logger) *System {
	t.Helper()

	doc := parseDesc(t, `
<system version="1">
  <cpu numaid="0" arch="x86_64" vendor="GenuineIntel" familyid="6" modelid="85">
    <pci busid="0000:11:00.0" class="0x060400" link_speed="8 GT/s" link_width="16">
      <pci busid="0000:17:00.0" class="0x030200" link_speed="16 GT/s" link_width="16">
        <gpu dev="0" sm="70" rank="0" gdr="1">
          <nvlink target="0000:65:00.0" count="2" tclass="0x030200"/>
        </gpu>
      </pci>
      <pci busid="0000:65:00.0" class="0x030200" link_speed="16 GT/s" link_width="16">
        <gpu dev="1" sm="70" rank="1" gdr="1">
          <nvlink target="0000:17:00.0" count="2" tclass="0x030200"/>
        </gpu>
      </pci>
    </pci>
    <pci busid="0000:5d:00.0" class="0x020000" link_speed="8 GT/s" link_width="8">
      <nic>
        <net dev="0" speed="100000" gdr="1" coll="1"/>
      </nic>
    </pci>
  </cpu>
</system>
`)

	s, err := GetSystemFromDescription(log, doc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTopology_PrintTopology(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := printTestSystem(t, log)

	var bld strings.Builder
	if err := PrintTopology(s, &bld); err != nil {
		t.Fatal(err)
	}

	expOut := strings.Join([]string{
		"=== System : maxWidth 42.0 ===",
		"CPU/0 (x86_64/GenuineIntel/Skylake)",
		"+ PCI[12.0] - PCI/11000",
		"              + PCI[24.0] - GPU/17000 (0)",
		"                            + NVL[42.0] - GPU/65000",
		"              + PCI[24.0] - GPU/65000 (1)",
		"                            + NVL[42.0] - GPU/17000",
		"+ PCI[6.0] - NIC/5D000",
		"             + NET[12.5] - NET/0 (0/0/12.500000)",
		strings.Repeat("=", 42),
		"",
	}, "\n")

	if diff := cmp.Diff(expOut, bld.String()); diff != "" {
		t.Fatalf("unexpected output (-want, +got):\n%s", diff)
	}
}

type failWriter struct{}

func (failWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("short write")
}

func TestTopology_PrintTopology_WriterError(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := printTestSystem(t, log)
	test.CmpErr(t, errors.New("short write"), PrintTopology(s, failWriter{}))
}

func TestTopology_PrintPaths(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := NewSystem(log)
	if _, err := s.CreateNode(NodeTypeCPU, 0); err != nil {
		t.Fatal(err)
	}
	gpu, err := s.CreateNode(NodeTypeGPU, 0x17000)
	if err != nil {
		t.Fatal(err)
	}

	// Nothing is written before paths are computed.
	var bld strings.Builder
	if err := PrintPaths(s, &bld); err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, "", bld.String(), "expected no output without paths")

	gpu.SetPathList(NodeTypeCPU, []Path{{Count: 2, Type: PathTypePHB, Width: 12.0}})

	if err := PrintPaths(s, &bld); err != nil {
		t.Fatal(err)
	}

	expOut := strings.Join([]string{
		"Source    Destination Hops Type Width ",
		"------    ----------- ---- ---- ----- ",
		"GPU/17000 CPU/0       2    PHB  12.0  ",
		"",
	}, "\n")

	if diff := cmp.Diff(expOut, bld.String()); diff != "" {
		t.Fatalf("unexpected output (-want, +got):\n%s", diff)
	}
}

func TestTopology_PrintSummary(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	s := printTestSystem(t, log)

	var bld strings.Builder
	if err := PrintSummary(s, &bld); err != nil {
		t.Fatal(err)
	}
	out := bld.String()

	test.AssertTrue(t, strings.HasPrefix(out, "System\n------\n"), "expected entity header")
	for _, want := range []string{
		"CPU Sockets",
		"x86_64/GenuineIntel/Skylake",
		"Collective Endpoints",
		"NET/0 Speed",
		"100 Gb/s",
		"42.0 GB/s",
	} {
		test.AssertTrue(t, strings.Contains(out, want),
			"summary missing "+want)
	}
}
