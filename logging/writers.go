//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
)

const (
	debugLogFlags = log.Lmicroseconds | log.Lshortfile
	infoLogFlags  = log.LstdFlags
)

// knownWrappers provides a lookup table of known
// function wrapper names to be ignored when determining
// the real caller location.
var knownWrappers = map[string]struct{}{
	"Trace":   {},
	"Tracef":  {},
	"Debug":   {},
	"Debugf":  {},
	"Info":    {},
	"Infof":   {},
	"Notice":  {},
	"Noticef": {},
	"Error":   {},
	"Errorf":  {},
}

// callerDepth adjusts the output depth to account for any
// convenience wrappers between the call site and the output
// routine. Enables printing of correct caller info.
func callerDepth() int {
	depth := logOutputDepth

	pc := make([]uintptr, depth+5)
	n := runtime.Callers(depth, pc)
	if n > 0 {
		pc = pc[:n]
		frames := runtime.CallersFrames(pc)
		for {
			frame, more := frames.Next()
			if !more {
				break
			}
			fnName := frame.Function[strings.LastIndex(frame.Function, ".")+1:]
			if _, found := knownWrappers[fnName]; found {
				depth++
			}
		}
	}

	return depth
}

// NewTraceLogger returns a TraceLogger configured for
// outputting fine-grained tracing messages.
func NewTraceLogger(dest io.Writer) *DefaultTraceLogger {
	return &DefaultTraceLogger{
		baseLogger{
			dest: dest,
			log:  log.New(dest, "TRACE ", debugLogFlags),
		},
	}
}

// DefaultTraceLogger implements the TraceLogger interface.
type DefaultTraceLogger struct {
	baseLogger
}

// Tracef emits a formatted trace message.
func (l *DefaultTraceLogger) Tracef(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(callerDepth(), out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Tracef() failed: %s\n", err)
	}
}

// NewDebugLogger returns a DebugLogger configured for outputting
// debugging messages.
func NewDebugLogger(dest io.Writer) *DefaultDebugLogger {
	return &DefaultDebugLogger{
		baseLogger{
			dest: dest,
			log:  log.New(dest, "DEBUG ", debugLogFlags),
		},
	}
}

// DefaultDebugLogger implements the DebugLogger interface.
type DefaultDebugLogger struct {
	baseLogger
}

// Debugf emits a formatted debug message.
func (l *DefaultDebugLogger) Debugf(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(callerDepth(), out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Debugf() failed: %s\n", err)
	}
}

// NewCommandLineInfoLogger returns an InfoLogger configured
// for outputting unadorned informational messages (i.e. no
// timestamps, source info, etc); typically used for CLI
// utility logging.
func NewCommandLineInfoLogger(output io.Writer) *DefaultInfoLogger {
	return &DefaultInfoLogger{
		baseLogger{
			dest: output,
			log:  log.New(output, "", emptyLogFlags),
		},
	}
}

// NewInfoLogger returns an InfoLogger configured for outputting
// informational messages with standard formatting (e.g. to stderr,
// logfile, etc.)
func NewInfoLogger(prefix string, output io.Writer) *DefaultInfoLogger {
	loggerPrefix := "INFO "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultInfoLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, infoLogFlags),
		},
	}
}

// DefaultInfoLogger implements the InfoLogger interface.
type DefaultInfoLogger struct {
	baseLogger
}

// Infof emits a formatted informational message.
func (l *DefaultInfoLogger) Infof(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Infof() failed: %s\n", err)
	}
}

// NewCommandLineNoticeLogger returns a NoticeLogger configured
// for outputting unadorned notice messages (i.e. no
// timestamps, source info, etc); typically used for CLI
// utility logging.
func NewCommandLineNoticeLogger(output io.Writer) *DefaultNoticeLogger {
	return &DefaultNoticeLogger{
		baseLogger{
			dest: output,
			log:  log.New(output, "NOTICE: ", emptyLogFlags),
		},
	}
}

// NewNoticeLogger returns a NoticeLogger configured for outputting
// notice messages with standard formatting (e.g. to stderr,
// logfile, etc.)
func NewNoticeLogger(prefix string, output io.Writer) *DefaultNoticeLogger {
	loggerPrefix := "NOTICE "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultNoticeLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, infoLogFlags),
		},
	}
}

// DefaultNoticeLogger implements the NoticeLogger interface.
type DefaultNoticeLogger struct {
	baseLogger
}

// Noticef emits a formatted notice message.
func (l *DefaultNoticeLogger) Noticef(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Noticef() failed: %s\n", err)
	}
}

// NewCommandLineErrorLogger returns an ErrorLogger configured
// for outputting unadorned error messages (i.e. no timestamps,
// source info, etc); typically used for CLI utility logging.
func NewCommandLineErrorLogger(output io.Writer) *DefaultErrorLogger {
	return &DefaultErrorLogger{
		baseLogger{
			dest: output,
			log:  log.New(output, "ERROR: ", emptyLogFlags),
		},
	}
}

// NewErrorLogger returns an ErrorLogger configured for outputting
// error messages with standard formatting (e.g. to stderr, logfile, etc.)
func NewErrorLogger(prefix string, output io.Writer) *DefaultErrorLogger {
	loggerPrefix := "ERROR "
	if prefix != "" {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	return &DefaultErrorLogger{
		baseLogger{
			dest:   output,
			prefix: prefix,
			log:    log.New(output, loggerPrefix, infoLogFlags),
		},
	}
}

// DefaultErrorLogger implements the ErrorLogger interface.
type DefaultErrorLogger struct {
	baseLogger
}

// Errorf emits a formatted error message.
func (l *DefaultErrorLogger) Errorf(format string, args ...interface{}) {
	out := fmt.Sprintf(format, args...)
	if err := l.log.Output(logOutputDepth, out); err != nil {
		fmt.Fprintf(os.Stderr, "logger Errorf() failed: %s\n", err)
	}
}
