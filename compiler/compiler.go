// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package compiler implements skslc's Compiler interface on top of the
// naga shader compiler.
//
// Source text is parsed and lowered to naga IR, optionally validated, and
// checked for an entry point matching the requested program kind. The
// resulting Program emits SPIR-V, GLSL, or MSL through naga's backends, and
// C++ artifacts through the generators in this package.
package compiler

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/hashicorp/go-multierror"

	"github.com/gogpu/skslc"
)

// Compiler compiles shader source through naga's parse → lower → validate
// pipeline. The zero value compiles without IR validation; New enables it.
type Compiler struct {
	// ValidateIR runs naga's IR validator before code generation. Disable
	// for minimal shaders that the validator rejects.
	ValidateIR bool
}

// New returns a Compiler with IR validation enabled.
func New() *Compiler {
	return &Compiler{ValidateIR: true}
}

// Compile produces a compiled program from shader source. The returned
// error text is the diagnostic shown to the user.
func (c *Compiler) Compile(kind skslc.ProgramKind, source string, settings skslc.Settings,
	flags skslc.CompileFlags) (skslc.Program, error) {

	module, err := c.lower(source)
	if err != nil {
		return nil, err
	}
	if err := c.validate(module); err != nil {
		return nil, err
	}
	stage, err := stageFor(kind)
	if err != nil {
		return nil, err
	}
	if !hasEntryPoint(module, stage) {
		return nil, fmt.Errorf("error: no %s entry point in program", kind)
	}
	return &Program{
		module:   module,
		stage:    stage,
		settings: settings,
		flags:    flags,
	}, nil
}

// lower parses source and lowers it to IR.
func (c *Compiler) lower(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return module, nil
}

// validate runs the IR validator and folds every finding into a single
// diagnostic.
func (c *Compiler) validate(module *ir.Module) error {
	if !c.ValidateIR {
		return nil
	}
	findings, err := ir.Validate(module)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	if len(findings) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, finding := range findings {
		merr = multierror.Append(merr, finding)
	}
	return fmt.Errorf("error: %w", merr)
}

// stageFor maps driver program kinds onto the stages naga models. Fragment
// processors and pipeline stages compile as fragment programs. Geometry
// programs have no naga stage and are rejected.
func stageFor(kind skslc.ProgramKind) (ir.ShaderStage, error) {
	switch kind {
	case skslc.KindVertex:
		return ir.StageVertex, nil
	case skslc.KindFragment, skslc.KindFragmentProcessor, skslc.KindPipelineStage:
		return ir.StageFragment, nil
	case skslc.KindGeometry:
		return 0, fmt.Errorf("error: geometry programs are not supported by this compiler")
	default:
		return 0, fmt.Errorf("error: unknown program kind %q", kind)
	}
}

func hasEntryPoint(module *ir.Module, stage ir.ShaderStage) bool {
	for i := range module.EntryPoints {
		if module.EntryPoints[i].Stage == stage {
			return true
		}
	}
	return false
}

// entryPointName returns the name of the first entry point with the given
// stage, or "" if none exists.
func entryPointName(module *ir.Module, stage ir.ShaderStage) string {
	for i := range module.EntryPoints {
		if module.EntryPoints[i].Stage == stage {
			return module.EntryPoints[i].Name
		}
	}
	return ""
}
