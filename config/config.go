// Copyright (c) 2021 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads engine settings from TOML.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gate.computer/abcjit"
	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

type Config struct {
	JIT JIT `toml:"jit"`
}

type JIT struct {
	Enabled     bool   `toml:"enabled"`
	LogLevel    string `toml:"log-level"`
	DumpIR      bool   `toml:"dump-ir"`
	MaxCodeSize int    `toml:"max-code-size"`
}

// Default settings.  Absent keys keep these values.
func Default() *Config {
	return &Config{
		JIT: JIT{
			Enabled:  true,
			LogLevel: "info",
		},
	}
}

// Parse TOML text.
func Parse(text string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, err
	}
	return c, check(md, c)
}

// Load a TOML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func check(md toml.MetaData, c *Config) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		sort.Strings(names)
		return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
	}

	if _, err := zerolog.ParseLevel(c.JIT.LogLevel); err != nil {
		return err
	}
	if c.JIT.MaxCodeSize < 0 {
		return fmt.Errorf("negative max-code-size: %d", c.JIT.MaxCodeSize)
	}
	return nil
}

// Engine configuration which logs to logOutput and dumps IR to dumpOutput
// if enabled.
func (c *Config) Engine(logOutput, dumpOutput io.Writer) (abcjit.Config, error) {
	level, err := zerolog.ParseLevel(c.JIT.LogLevel)
	if err != nil {
		return abcjit.Config{}, err
	}

	log := zerolog.New(logOutput).Level(level).With().Timestamp().Logger()

	ec := abcjit.Config{
		Logger:      &log,
		Enabled:     c.JIT.Enabled,
		MaxCodeSize: c.JIT.MaxCodeSize,
	}
	if c.JIT.DumpIR {
		ec.DumpIR = dumpOutput
	}
	return ec, nil
}
