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

// ProcessAffinityProvider abstracts reading and writing the calling
// process's CPU affinity mask.
type ProcessAffinityProvider interface {
	GetAffinity() (unix.CPUSet, error)
	SetAffinity(unix.CPUSet) error
}

// schedAffinity implements ProcessAffinityProvider with the
// sched_(get|set)affinity syscalls.
type schedAffinity struct{}

func defaultAffinityProvider() ProcessAffinityProvider {
	return schedAffinity{}
}

func (schedAffinity) GetAffinity() (unix.CPUSet, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return set, errors.Wrap(err, "getting process affinity")
	}
	return set, nil
}

func (schedAffinity) SetAffinity(set unix.CPUSet) error {
	return errors.Wrap(unix.SchedSetaffinity(0, &set), "setting process affinity")
}
