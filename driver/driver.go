// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package driver implements the batch command driver for skslc.
//
// The driver validates job argument lists, resolves the shader stage from
// the input extension and the emission pipeline from the output extension,
// applies in-source /*#pragma settings*/ overrides, and reduces per-job
// outcomes into a single process exit status.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/skslc"
	"github.com/gogpu/skslc/caps"
)

// ResultCode is the outcome of a single job, ordered by increasing
// severity. A batch exits with the worst code any of its jobs produced.
//
// Compile errors rank lowest among the failures because they are expected
// to occur in unit tests; the other kinds are not expected at all during a
// build.
type ResultCode int

const (
	Success      ResultCode = 0
	CompileError ResultCode = 1
	InputError   ResultCode = 2
	OutputError  ResultCode = 3
)

// String returns a human-readable result code name.
func (c ResultCode) String() string {
	switch c {
	case Success:
		return "success"
	case CompileError:
		return "compile error"
	case InputError:
		return "input error"
	case OutputError:
		return "output error"
	default:
		return "unknown"
	}
}

// Driver runs compilation jobs. Jobs execute strictly sequentially; the
// only state shared between them is the capability-bundle factory.
type Driver struct {
	// Compiler is the shader compiler jobs are dispatched to.
	Compiler skslc.Compiler

	// Caps hands out the named capability bundles selected by pragma
	// comments.
	Caps *caps.Factory

	// Stdout receives all user-facing diagnostics. Defaults to os.Stdout.
	Stdout io.Writer
}

// New returns a Driver writing diagnostics to os.Stdout.
func New(compiler skslc.Compiler, factory *caps.Factory) *Driver {
	return &Driver{
		Compiler: compiler,
		Caps:     factory,
		Stdout:   os.Stdout,
	}
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.Stdout, format, args...)
}
