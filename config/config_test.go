// Copyright (c) 2021 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.True(t, c.JIT.Enabled)
}

func TestParse(t *testing.T) {
	c, err := Parse(`
[jit]
enabled = false
log-level = "debug"
dump-ir = true
max-code-size = 4096
`)
	require.NoError(t, err)
	assert.Equal(t, JIT{Enabled: false, LogLevel: "debug", DumpIR: true, MaxCodeSize: 4096}, c.JIT)
}

func TestPartial(t *testing.T) {
	c, err := Parse("[jit]\nmax-code-size = 10\n")
	require.NoError(t, err)
	assert.True(t, c.JIT.Enabled)
	assert.Equal(t, "info", c.JIT.LogLevel)
	assert.Equal(t, 10, c.JIT.MaxCodeSize)
}

func TestInvalid(t *testing.T) {
	for name, text := range map[string]string{
		"syntax":      "[jit",
		"unknown key": "[jit]\nturbo = true\n",
		"log level":   "[jit]\nlog-level = \"loud\"\n",
		"size":        "[jit]\nmax-code-size = -1\n",
		"type":        "[jit]\nenabled = 1\n",
	} {
		_, err := Parse(text)
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abcjit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[jit]\nlog-level = \"warn\"\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.JIT.LogLevel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEngine(t *testing.T) {
	c := Default()
	c.JIT.MaxCodeSize = 100

	var logs, dump bytes.Buffer

	ec, err := c.Engine(&logs, &dump)
	require.NoError(t, err)
	assert.True(t, ec.Enabled)
	assert.Equal(t, 100, ec.MaxCodeSize)
	assert.Nil(t, ec.DumpIR)
	require.NotNil(t, ec.Logger)

	ec.Logger.Info().Msg("hello")
	assert.Contains(t, logs.String(), "hello")
	ec.Logger.Debug().Msg("hidden")
	assert.NotContains(t, logs.String(), "hidden")

	c.JIT.DumpIR = true
	ec, err = c.Engine(&logs, &dump)
	require.NoError(t, err)
	assert.NotNil(t, ec.DumpIR)
}
