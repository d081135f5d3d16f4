//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/corelink-io/corelink/build"
	"github.com/corelink-io/corelink/common"
	"github.com/corelink-io/corelink/common/cmdutil"
	"github.com/corelink-io/corelink/lib/atm"
	"github.com/corelink-io/corelink/logging"
)

type cliOptions struct {
	Debug      bool       `short:"d" long:"debug" description:"Enable debug output"`
	JSON       bool       `short:"j" long:"json" description:"Enable JSON output"`
	ConfigPath string     `long:"config-path" description:"Path to topoctl configuration file"`
	LogFile    string     `short:"l" long:"logfile" description:"Full path and filename for topoctl log file"`
	Print      printCmd       `command:"print" description:"Print the topology graph of this node"`
	Summary    summaryCmd     `command:"summary" description:"Print a short topology overview"`
	Dump       dumpCmd        `command:"dump" description:"Dump the assembled hardware description"`
	Version    versionCmd     `command:"version" description:"Print topoctl version"`
	ManPage    cmdutil.ManCmd `command:"manpage" hidden:"true"`
}

func writeManPage(wr io.Writer) {
	var opts cliOptions
	p := flags.NewParser(&opts, flags.Default)
	p.Name = build.ToolName
	p.ShortDescription = "Inspect the interconnect topology of a compute node"
	p.Usage = "[OPTIONS] [COMMAND]"
	p.LongDescription = `topoctl discovers the GPU, PCI, NVLink, CPU and network adapter
layout of the local node and reports on the topology graph a collective
communication runtime would build from it.`
	p.WriteManPage(wr)
}

func versionString() string {
	return build.String(build.ToolName)
}

type versionCmd struct {
	cmdutil.NoArgsCmd
	cmdutil.JSONOutputCmd
}

func (cmd *versionCmd) Execute(_ []string) error {
	if cmd.JSONOutputEnabled() {
		buf, err := build.MarshalJSON(build.ToolName)
		if err != nil {
			return err
		}
		return cmd.OutputJSON(json.RawMessage(buf), nil)
	}

	_, err := fmt.Println(versionString())
	return err
}

func exitWithError(log logging.Logger, err error) {
	log.Errorf("%s: %v", path.Base(os.Args[0]), err)
	os.Exit(1)
}

func parseOpts(args []string, opts *cliOptions, log *logging.LeveledLogger) error {
	var wroteJSON atm.Bool
	p := flags.NewParser(opts, flags.Default)
	p.Options ^= flags.PrintErrors // Don't allow the library to print errors
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		if logCmd, ok := cmd.(cmdutil.LogSetter); ok {
			logCmd.SetLog(log)
		}

		if manCmd, ok := cmd.(cmdutil.ManPageWriter); ok {
			manCmd.SetWriteFunc(writeManPage)
			// Just write the man page and exit.
			return cmd.Execute(args)
		}

		if argsCmd, ok := cmd.(cmdutil.ArgsHandler); ok {
			if err := argsCmd.CheckArgs(args); err != nil {
				return err
			}
		}

		if jsonCmd, ok := cmd.(cmdutil.JSONOutputter); ok && opts.JSON {
			jsonCmd.EnableJSONOutput(os.Stdout, &wroteJSON)
			// disable output on stdout other than JSON
			log.ClearLevel(logging.LogLevelInfo)
		}

		if opts.Debug {
			log.SetLevel(logging.LogLevelTrace)
		}

		if _, ok := cmd.(*versionCmd); ok {
			// no configuration needed
			return cmd.Execute(args)
		}

		cfgPath := opts.ConfigPath
		if cfgPath == "" {
			defaultConfigPath := path.Join(build.ConfigDir, defaultConfigFile)
			if _, err := os.Stat(defaultConfigPath); err == nil {
				cfgPath = defaultConfigPath
			}
		}

		cfg := DefaultConfig()
		if cfgPath != "" {
			var err error
			if cfg, err = LoadConfig(cfgPath); err != nil {
				return errors.WithMessage(err, "failed to load topoctl configuration")
			}

			// Command line debug option overrides log level in config file
			if !opts.Debug {
				log.WithLogLevel(logging.LogLevel(cfg.LogLevel))
			}
			log.Debugf("topoctl config loaded from %s", cfgPath)
		}

		if opts.LogFile != "" {
			log.Debugf("Overriding LogFile path from config file with %s", opts.LogFile)
			cfg.LogFile = opts.LogFile
		}

		if cfg.LogFile != "" {
			f, err := common.AppendFile(cfg.LogFile)
			if err != nil {
				log.Errorf("Failure creating log file: %s", err)
				return err
			}
			defer f.Close()

			// Create an additional set of loggers which append
			// everything to the specified file.
			log.WithErrorLogger(logging.NewErrorLogger("topoctl", f)).
				WithNoticeLogger(logging.NewNoticeLogger("topoctl", f)).
				WithInfoLogger(logging.NewInfoLogger("topoctl", f)).
				WithDebugLogger(logging.NewDebugLogger(f)).
				WithTraceLogger(logging.NewTraceLogger(f))
		}

		if topoCmd, ok := cmd.(cmdutil.TopologyConfigSetter); ok {
			topoCmd.SetTopologyConfig(cfg.Topology)
		}

		err := cmd.Execute(args)
		if opts.JSON && wroteJSON.IsFalse() {
			cmdutil.OutputJSON(os.Stdout, nil, err)
		}

		return err
	}

	_, err := p.ParseArgs(args)
	return err
}

func main() {
	var opts cliOptions
	log := logging.NewCommandLineLogger()

	if err := parseOpts(os.Args[1:], &opts, log); err != nil {
		if fe, ok := errors.Cause(err).(*flags.Error); ok && fe.Type == flags.ErrHelp {
			log.Info(fe.Error())
			os.Exit(0)
		}
		exitWithError(log, err)
	}
}
