// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abcjit

import (
	"io"

	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/internal"
	"gate.computer/abcjit/internal/gen/codegen"
	"gate.computer/abcjit/internal/module"
	"gate.computer/abcjit/internal/registry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config for an engine.  Zero values are replaced with effective defaults.
type Config struct {
	Logger      *zerolog.Logger // Defaults to a disabled logger.
	Enabled     bool            // Every method is interpreted unless set.
	MaxCodeSize int             // Longer methods are interpreted.  Zero means no limit.
	DumpIR      io.Writer       // Receives the IR of compiled methods.
	Style       backend.Style   // Formatting of dumped IR.
}

// Compiled is published in the JIT slot of a method.  Native is nil if the
// method is interpreted, and Err tells why.
type Compiled struct {
	ID       uuid.UUID
	Function *backend.Function
	Native   backend.Native
	Err      error
}

// compile without publishing.
func compile(m *abc.Method, config *Config, log zerolog.Logger) *Compiled {
	c := &Compiled{ID: uuid.New()}
	log = log.With().Str("method", m.Name).Str("compile", c.ID.String()).Logger()

	switch {
	case !config.Enabled:
		c.Err = ErrDisabled
		return c

	case config.MaxCodeSize > 0 && len(m.Code) > config.MaxCodeSize:
		c.Err = module.Errorf("code size %d exceeds limit %d", len(m.Code), config.MaxCodeSize)
		log.Info().Err(c.Err).Msg("interpreting")
		return c
	}

	if err := m.Validate(); err != nil {
		c.Err = module.WrapError(err, err.Error())
		log.Info().Err(c.Err).Msg("interpreting")
		return c
	}

	fn, err := codegen.GenMethod(m, registry.Module(), log)
	if err != nil {
		if !internal.DontPanic() {
			panic(err)
		}
		c.Err = err
		log.Info().Err(err).Msg("interpreting")
		return c
	}

	native, err := backend.Lower(fn)
	if err != nil {
		log.Error().Err(err).Msg("generated invalid code")
		panic(err)
	}

	if config.DumpIR != nil {
		if err := fn.DumpStyle(config.DumpIR, config.Style); err != nil {
			log.Warn().Err(err).Msg("IR dump failed")
		}
	}

	log.Debug().Int("blocks", len(fn.Blocks)).Int("instructions", fn.NumInstrs()).Msg("compiled")

	c.Function = fn
	c.Native = native
	return c
}
