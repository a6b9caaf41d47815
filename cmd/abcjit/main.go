// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program abcjit compiles method descriptor files and optionally runs a
// method.
package main

import (
	"flag"
	"fmt"
	"os"

	"gate.computer/abcjit"
	"gate.computer/abcjit/abc"
	"gate.computer/abcjit/backend"
	"gate.computer/abcjit/config"
	"gate.computer/abcjit/object"
	"gate.computer/abcjit/vm"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	red    = color.New(color.FgRed).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
	cyan   = color.New(color.FgCyan).SprintfFunc()
)

func fatal(x interface{}) {
	fmt.Fprintln(os.Stderr, red("%v", x))
	os.Exit(1)
}

func main() {
	var (
		configPath = ""
		dump       = false
		interp     = false
		run        = ""
		noColor    = false
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] file.cbor...\n\nOptions:\n", flag.CommandLine.Name())
		flag.PrintDefaults()
	}

	flag.StringVar(&configPath, "config", configPath, "TOML configuration file")
	flag.BoolVar(&dump, "dump", dump, "print the IR of compiled methods")
	flag.BoolVar(&interp, "interp", interp, "interpret every method")
	flag.StringVar(&run, "run", run, "call the named method without arguments")
	flag.BoolVar(&noColor, "no-color", noColor, "disable colored output")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if noColor {
		color.NoColor = true
	}

	c := config.Default()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			fatal(err)
		}
	}
	if interp {
		c.JIT.Enabled = false
	}

	stdout := zerolog.SyncWriter(os.Stdout)

	ec, err := c.Engine(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}, stdout)
	if err != nil {
		fatal(err)
	}
	ec.Style = backend.Style{Label: cyan, Helper: yellow}

	global := object.NewObject()
	e := abcjit.NewEngine(ec, global)
	global.DecRef()
	defer e.Close()

	files := make([][]*abc.Method, flag.NArg())

	var g errgroup.Group
	for i, filename := range flag.Args() {
		i, filename := i, filename
		g.Go(func() error {
			f, err := os.Open(filename)
			if err != nil {
				return err
			}
			defer f.Close()

			methods, err := abc.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			for _, m := range methods {
				e.Compile(m)
			}
			files[i] = methods
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatal(err)
	}

	var target *abc.Method

	for i, methods := range files {
		for _, m := range methods {
			compiled := e.Compile(m)
			if compiled.Native != nil {
				fmt.Fprintf(stdout, "%s: %s %s\n", flag.Arg(i), m, green("compiled"))
				if dump && !c.JIT.DumpIR {
					compiled.Function.DumpStyle(stdout, ec.Style)
				}
			} else {
				fmt.Fprintf(stdout, "%s: %s %s\n", flag.Arg(i), m, yellow("interpreted: %v", compiled.Err))
			}

			if m.Name == run {
				target = m
			}
			object.SetProperty(e.Global(), m.Name, e.NewFunction(m))
		}
	}

	if run == "" {
		return
	}
	if target == nil {
		fatal(fmt.Sprintf("method not found: %s", run))
	}

	result, err := e.Call(target, object.Undefined, nil)
	if err != nil {
		msg := err.Error()
		if exc, ok := err.(*vm.Exception); ok {
			exc.Value.DecRef()
		}
		fatal(msg)
	}
	defer result.DecRef()

	fmt.Fprintln(stdout, object.ToString(result))
}
