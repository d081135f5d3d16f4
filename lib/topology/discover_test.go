//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/common/test"
	"github.com/corelink-io/corelink/lib/hwdesc"
	"github.com/corelink-io/corelink/logging"
)

func TestTopology_GetSystem(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	accel1 := MockAccelDevice(1)
	accel1.NUMANode = 1

	prov := NewMockDeviceProvider(&MockDeviceProviderConfig{
		Sockets:  []*CPUSocket{MockCPUSocket(0), MockCPUSocket(1)},
		Accels:   []*AccelDevice{MockAccelDevice(0), accel1},
		Adapters: []*NetAdapter{MockNetAdapter(0)},
	})

	s, err := GetSystem(test.Context(t), log, nil, prov)
	if err != nil {
		t.Fatal(err)
	}

	test.AssertEqual(t, 2, len(s.Nodes(NodeTypeCPU)), "cpu count")
	test.AssertEqual(t, 2, len(s.Nodes(NodeTypeGPU)), "gpu count")
	test.AssertEqual(t, 1, len(s.Nodes(NodeTypeNIC)), "nic count")
	test.AssertEqual(t, 1, len(s.Nodes(NodeTypeNet)), "net count")

	cpu0 := s.GetNode(NodeTypeCPU, 0)
	test.AssertEqual(t, CPUModelIntelSkylake, cpu0.CPU.Model, "cpu model")
	test.AssertEqual(t, "ffffffff", CPUSetString(cpu0.CPU.Affinity), "cpu0 affinity")
	test.AssertEqual(t, "ffffffff,00000000",
		CPUSetString(s.GetNode(NodeTypeCPU, 1).CPU.Affinity), "cpu1 affinity")

	gpu0 := s.GetNode(NodeTypeGPU, 0x17000)
	if diff := cmp.Diff(GPUDevice{
		Dev:         0,
		Rank:        0,
		CudaCompCap: 70,
		GDRSupport:  true,
	}, gpu0.GPU); diff != "" {
		t.Fatalf("unexpected GPU device (-want, +got):\n%s", diff)
	}

	// Each accelerator lands under its own socket, the adapter under
	// the first.
	cmpLinks(t, []string{
		"PCI GPU/17000 12.0",
		"PCI NIC/5D000 12.0",
		"SYS CPU/1 12.0",
	}, cpu0)
	cmpLinks(t, []string{
		"PCI GPU/18000 12.0",
		"SYS CPU/0 12.0",
	}, s.GetNode(NodeTypeCPU, 1))

	net := s.Nodes(NodeTypeNet)[0]
	test.AssertEqual(t, 12.5, net.Net.Width, "net width")
	test.AssertTrue(t, net.Net.GDRSupport, "net gdr support")
}

func TestTopology_GetSystem_SeedWins(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dir, cleanup := test.CreateTestDir(t)
	defer cleanup()

	// The seed pins a Broadwell model id, a faster PCI link and no
	// GDR support; discovery must not override any of it.
	seed := test.CreateTestFile(t, dir, `
<system version="1">
  <cpu numaid="0" arch="x86_64" vendor="GenuineIntel" familyid="6" modelid="79">
    <pci busid="0000:17:00.0" class="0x030200" link_speed="16 GT/s" link_width="16">
      <gpu gdr="0"/>
    </pci>
  </cpu>
</system>
`)

	prov := NewMockDeviceProvider(&MockDeviceProviderConfig{
		Sockets: []*CPUSocket{MockCPUSocket(0)},
		Accels:  []*AccelDevice{MockAccelDevice(0)},
	})

	s, err := GetSystem(test.Context(t), log, &Config{TopoFile: seed}, prov)
	if err != nil {
		t.Fatal(err)
	}

	cpu := s.GetNode(NodeTypeCPU, 0)
	test.AssertEqual(t, CPUModelIntelBroadwell, cpu.CPU.Model, "cpu model")

	gpu := s.GetNode(NodeTypeGPU, 0x17000)
	if diff := cmp.Diff(GPUDevice{
		Dev:         0,
		Rank:        0,
		CudaCompCap: 70,
		GDRSupport:  false,
	}, gpu.GPU); diff != "" {
		t.Fatalf("unexpected GPU device (-want, +got):\n%s", diff)
	}
	cmpLinks(t, []string{"PCI GPU/17000 24.0"}, cpu)
}

func TestTopology_GetSystem_MissingSeed(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dir, cleanup := test.CreateTestDir(t)
	defer cleanup()

	prov := NewMockDeviceProvider(&MockDeviceProviderConfig{
		Sockets: []*CPUSocket{MockCPUSocket(0)},
	})

	cfg := &Config{TopoFile: filepath.Join(dir, "nope.xml")}
	s, err := GetSystem(test.Context(t), log, cfg, prov)
	if err != nil {
		t.Fatal(err)
	}

	test.AssertEqual(t, 1, len(s.Nodes(NodeTypeCPU)), "cpu count")
	test.AssertTrue(t, strings.Contains(buf.String(), "discovering from scratch"),
		"expected notice about missing seed file")
}

func TestTopology_GetSystem_DumpFile(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dir, cleanup := test.CreateTestDir(t)
	defer cleanup()

	prov := NewMockDeviceProvider(&MockDeviceProviderConfig{
		Sockets: []*CPUSocket{MockCPUSocket(0)},
		Accels:  []*AccelDevice{MockAccelDevice(0)},
	})

	dump := filepath.Join(dir, "topo.xml")
	if _, err := GetSystem(test.Context(t), log, &Config{DumpFile: dump}, prov); err != nil {
		t.Fatal(err)
	}

	doc, err := hwdesc.LoadFile(dump)
	if err != nil {
		t.Fatal(err)
	}
	if doc.FindTagAttr("pci", "busid", "0000:17:00.0") == nil {
		t.Fatal("dumped description missing the discovered accelerator")
	}
}

func TestTopology_GetSystem_Errors(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg     *Config
		provCfg *MockDeviceProviderConfig
		nilProv bool
		expErr  error
	}{
		"nil provider": {
			nilProv: true,
			expErr:  errors.New("nil device provider"),
		},
		"socket discovery failure": {
			provCfg: &MockDeviceProviderConfig{
				SocketErr: errors.New("no numa info"),
			},
			expErr: errors.New("discovering CPU sockets: no numa info"),
		},
		"accelerator discovery failure": {
			provCfg: &MockDeviceProviderConfig{
				AccelErr: errors.New("driver not loaded"),
			},
			expErr: errors.New("discovering accelerators: driver not loaded"),
		},
		"adapter discovery failure": {
			provCfg: &MockDeviceProviderConfig{
				AdapterErr: errors.New("no adapters"),
			},
			expErr: errors.New("discovering network adapters: no adapters"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			var prov DeviceProvider
			if !tc.nilProv {
				prov = NewMockDeviceProvider(tc.provCfg)
			}

			_, gotErr := GetSystem(test.Context(t), log, tc.cfg, prov)
			test.CmpErr(t, tc.expErr, gotErr)
		})
	}
}

func TestTopology_GetSystem_BadSeed(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	dir, cleanup := test.CreateTestDir(t)
	defer cleanup()

	seed := test.CreateTestFile(t, dir, `<system version="2"/>`)

	prov := NewMockDeviceProvider(nil)
	_, gotErr := GetSystem(test.Context(t), log, &Config{TopoFile: seed}, prov)
	test.CmpErr(t, errors.New("unsupported description version 2"), gotErr)
}
