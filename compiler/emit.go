// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"io"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"

	"github.com/gogpu/skslc"
)

// Program is a compiled shader program bound to the settings and capability
// bundle it was compiled with.
type Program struct {
	module   *ir.Module
	stage    ir.ShaderStage
	settings skslc.Settings
	flags    skslc.CompileFlags
}

// EmitSPIRV writes the program as SPIR-V binary.
func (p *Program) EmitSPIRV(w io.Writer) error {
	data, err := naga.GenerateSPIRV(p.module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EmitGLSL writes the program as GLSL text targeting the version the
// capability bundle selects.
func (p *Program) EmitGLSL(w io.Writer) error {
	source, _, err := glsl.Compile(p.module, p.glslOptions())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, source)
	return err
}

// EmitMetal writes the program as Metal Shading Language text.
func (p *Program) EmitMetal(w io.Writer) error {
	opts := msl.DefaultOptions()
	opts.FakeMissingBindings = true
	source, _, err := msl.Compile(p.module, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, source)
	return err
}

func (p *Program) glslOptions() glsl.Options {
	opts := glsl.DefaultOptions()
	opts.EntryPoint = entryPointName(p.module, p.stage)
	opts.ForceHighPrecision = p.settings.ForceHighPrecision
	if c := p.settings.Caps; c != nil {
		opts.LangVersion = glslVersionFor(c.GLSLVersion)
	}
	return opts
}

// glslVersionFor maps a capability bundle's numeric GLSL version onto the
// versions naga can generate. naga's floor is 3.30 core, so legacy targets
// (1.10 and friends) compile as 3.30.
func glslVersionFor(version int) glsl.Version {
	switch {
	case version >= 460:
		return glsl.Version460
	case version >= 450:
		return glsl.Version450
	case version >= 430:
		return glsl.Version430
	case version == 310:
		return glsl.VersionES310
	case version == 300:
		return glsl.VersionES300
	default:
		return glsl.Version330
	}
}
