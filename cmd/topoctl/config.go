//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/corelink-io/corelink/lib/topology"
	"github.com/corelink-io/corelink/logging"
)

const defaultConfigFile = "topoctl.yml"

// cliLogLevel is a yaml-aware wrapper around logging.LogLevel.
type cliLogLevel logging.LogLevel

// UnmarshalYAML implements yaml.Unmarshaler on cliLogLevel.
func (c *cliLogLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var strLevel string
	if err := unmarshal(&strLevel); err != nil {
		return err
	}

	var level logging.LogLevel
	if err := level.SetString(strLevel); err != nil {
		return err
	}
	*c = cliLogLevel(level)
	return nil
}

func (c cliLogLevel) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c cliLogLevel) String() string {
	return logging.LogLevel(c).String()
}

// Config defines the topoctl configuration.
type Config struct {
	LogLevel cliLogLevel     `yaml:"log_level"`
	LogFile  string          `yaml:"log_file"`
	Topology topology.Config `yaml:",inline"`
}

// LoadConfig reads the configuration from the file at cfgPath.
func LoadConfig(cfgPath string) (*Config, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: cliLogLevel(logging.DefaultLogLevel),
	}
}
