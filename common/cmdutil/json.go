//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/corelink-io/corelink/lib/atm"
)

var _ JSONOutputter = (*JSONOutputCmd)(nil)

type (
	// JSONOutputter defines an interface to be implemented by
	// types that can output their results in JSON format.
	JSONOutputter interface {
		EnableJSONOutput(io.Writer, *atm.Bool)
		JSONOutputEnabled() bool
		OutputJSON(interface{}, error) error
	}

	// JSONOutputCmd is an embeddable type that extends a command
	// with JSON output capabilities.
	JSONOutputCmd struct {
		writer         io.Writer
		shouldEmitJSON bool
		wroteJSON      *atm.Bool
	}
)

// OutputJSON writes the given data or error to the writer as a JSON
// response envelope.
func OutputJSON(writer io.Writer, in interface{}, cmdErr error) error {
	status := 0
	var errStr *string
	if cmdErr != nil {
		errStr = func() *string { str := fmt.Sprintf("%s", cmdErr); return &str }()
		status = -1
	}

	data, err := json.MarshalIndent(struct {
		Response interface{} `json:"response"`
		Error    *string     `json:"error"`
		Status   int         `json:"status"`
	}{in, errStr, status}, "", "  ")
	if err != nil {
		return err
	}

	if _, err = writer.Write(append(data, []byte("\n")...)); err != nil {
		return err
	}

	return nil
}

// EnableJSONOutput switches the command to JSON output mode. The
// wroteJSON flag is shared with the caller so that a response is
// only emitted once per invocation.
func (cmd *JSONOutputCmd) EnableJSONOutput(writer io.Writer, flag *atm.Bool) {
	cmd.writer = writer
	cmd.wroteJSON = flag
	cmd.shouldEmitJSON = true
}

// JSONOutputEnabled returns true if the command is configured
// to emit JSON output.
func (cmd *JSONOutputCmd) JSONOutputEnabled() bool {
	return cmd.shouldEmitJSON
}

// OutputJSON emits the given data or error as the command's JSON
// response, unless a response was already emitted.
func (cmd *JSONOutputCmd) OutputJSON(in interface{}, cmdErr error) error {
	if cmd.wroteJSON.IsTrue() {
		return nil
	}
	cmd.wroteJSON.SetTrue()

	return OutputJSON(cmd.writer, in, cmdErr)
}
