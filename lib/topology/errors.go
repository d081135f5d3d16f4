//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package topology

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrCapacityExceeded indicates that adding a node or link would
// overflow one of the fixed-size tables of a System.
type ErrCapacityExceeded struct {
	Kind  string
	Limit int
}

func (e *ErrCapacityExceeded) Error() string {
	return fmt.Sprintf("%s limit of %d exceeded", e.Kind, e.Limit)
}

// IsCapacityExceeded returns true if the given error resolves to an
// instance of ErrCapacityExceeded.
func IsCapacityExceeded(err error) bool {
	_, ok := errors.Cause(err).(*ErrCapacityExceeded)
	return ok
}

func errNodeCapacity(nt NodeType) error {
	return &ErrCapacityExceeded{
		Kind:  fmt.Sprintf("%s node", nt),
		Limit: MaxNodes,
	}
}

func errLinkCapacity(n *Node) error {
	return &ErrCapacityExceeded{
		Kind:  fmt.Sprintf("%s link", n),
		Limit: MaxNodeLinks,
	}
}

// ErrInvalidDescription indicates that a hardware description could
// not be translated into a topology graph.
type ErrInvalidDescription struct {
	Reason string
}

func (e *ErrInvalidDescription) Error() string {
	return fmt.Sprintf("invalid hardware description: %s", e.Reason)
}

// IsInvalidDescription returns true if the given error resolves to an
// instance of ErrInvalidDescription.
func IsInvalidDescription(err error) bool {
	_, ok := errors.Cause(err).(*ErrInvalidDescription)
	return ok
}

func errInvalidDescriptionf(format string, args ...interface{}) error {
	return &ErrInvalidDescription{Reason: fmt.Sprintf(format, args...)}
}
