// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package caps describes target-platform capabilities for shader
// compilation.
//
// A Caps value is an opaque bundle of quirks and limits consulted by the
// compiler and emitters: the shading-language version to target, optional
// feature support, and workarounds for known driver bugs. Bundles are
// selected by name, either programmatically or from an in-source
// /*#pragma settings*/ comment, and each named bundle is constructed once
// per Factory and reused for the life of the process.
package caps

import "sync"

// Caps is a capability bundle. The zero value is not useful; obtain bundles
// from a Factory. Bundles are shared and must not be mutated after
// construction.
type Caps struct {
	// GLSLVersion is the numeric shading-language version to target
	// (110, 400, 450, ...).
	GLSLVersion int

	// VersionDecl is the version directive emitted at the top of generated
	// text shaders.
	VersionDecl string

	// UsesPrecisionModifiers reports whether generated code must carry
	// lowp/mediump/highp qualifiers (GLSL ES targets).
	UsesPrecisionModifiers bool

	// Feature support.
	ShaderDerivativeSupport     bool
	GeometryShaderSupport       bool
	GSInvocationsSupport        bool
	FragCoordConventionsSupport bool
	CanUseFragCoord             bool

	// Extension strings required for optional features; empty when the
	// feature needs no extension on this target.
	ShaderDerivativeExtension     string
	GeometryShaderExtension       string
	GSInvocationsExtension        string
	FragCoordConventionsExtension string

	// Driver bug workarounds.
	AddAndTrueToLoopCondition                   bool
	BlendModesFailRandomlyForAllZeroVec         bool
	CannotUseFractForNegativeValues             bool
	CanUseMinAndAbsTogether                     bool
	EmulateAbsIntFunction                       bool
	IncompleteShortIntPrecision                 bool
	MustForceNegatedAtanParamToFloat            bool
	MustGuardDivisionEvenAfterExplicitZeroCheck bool
	RemovePowWithConstantExponent               bool
	RewriteDoWhileLoops                         bool
	UnfoldShortCircuitAsTernary                 bool
}

// standalone returns the baseline bundle used when nothing is selected: a
// desktop GL 4.0 target with every optional feature available and no
// workarounds engaged.
func standalone() *Caps {
	return &Caps{
		GLSLVersion:                 400,
		VersionDecl:                 "#version 400",
		ShaderDerivativeSupport:     true,
		GeometryShaderSupport:       true,
		GSInvocationsSupport:        true,
		FragCoordConventionsSupport: true,
		CanUseFragCoord:             true,
		CanUseMinAndAbsTogether:     true,
	}
}

// constructors maps bundle names to their one-time constructors. Each entry
// starts from the standalone baseline and flips the quirks the name
// describes.
var constructors = map[string]func() *Caps{
	"AddAndTrueToLoopCondition": func() *Caps {
		c := standalone()
		c.AddAndTrueToLoopCondition = true
		return c
	},
	"BlendModesFailRandomlyForAllZeroVec": func() *Caps {
		c := standalone()
		c.BlendModesFailRandomlyForAllZeroVec = true
		return c
	},
	"CannotUseFractForNegativeValues": func() *Caps {
		c := standalone()
		c.CannotUseFractForNegativeValues = true
		return c
	},
	"CannotUseFragCoord": func() *Caps {
		c := standalone()
		c.CanUseFragCoord = false
		return c
	},
	"CannotUseMinAndAbsTogether": func() *Caps {
		c := standalone()
		c.CanUseMinAndAbsTogether = false
		return c
	},
	"Default": standalone,
	"EmulateAbsIntFunction": func() *Caps {
		c := standalone()
		c.EmulateAbsIntFunction = true
		return c
	},
	"FragCoordsOld": func() *Caps {
		c := standalone()
		c.GLSLVersion = 110
		c.VersionDecl = "#version 110"
		c.FragCoordConventionsExtension = "GL_ARB_fragment_coord_conventions"
		return c
	},
	"FragCoordsNew": func() *Caps {
		c := standalone()
		c.FragCoordConventionsExtension = "GL_ARB_fragment_coord_conventions"
		return c
	},
	"GeometryShaderExtensionString": func() *Caps {
		c := standalone()
		c.GLSLVersion = 310
		c.VersionDecl = "#version 310es"
		c.GeometryShaderExtension = "GL_EXT_geometry_shader"
		c.GSInvocationsExtension = "GL_EXT_geometry_shader"
		c.UsesPrecisionModifiers = true
		return c
	},
	"GeometryShaderSupport": func() *Caps {
		// Geometry support is already on in the baseline; the named bundle
		// exists so shaders can request it explicitly.
		return standalone()
	},
	"GSInvocationsExtensionString": func() *Caps {
		c := standalone()
		c.GSInvocationsExtension = "GL_ARB_gpu_shader5"
		return c
	},
	"IncompleteShortIntPrecision": func() *Caps {
		c := standalone()
		c.GLSLVersion = 310
		c.VersionDecl = "#version 310es"
		c.UsesPrecisionModifiers = true
		c.IncompleteShortIntPrecision = true
		return c
	},
	"MustGuardDivisionEvenAfterExplicitZeroCheck": func() *Caps {
		c := standalone()
		c.MustGuardDivisionEvenAfterExplicitZeroCheck = true
		return c
	},
	"MustForceNegatedAtanParamToFloat": func() *Caps {
		c := standalone()
		c.MustForceNegatedAtanParamToFloat = true
		return c
	},
	"NoGSInvocationsSupport": func() *Caps {
		c := standalone()
		c.GSInvocationsSupport = false
		return c
	},
	"RemovePowWithConstantExponent": func() *Caps {
		c := standalone()
		c.RemovePowWithConstantExponent = true
		return c
	},
	"RewriteDoWhileLoops": func() *Caps {
		c := standalone()
		c.RewriteDoWhileLoops = true
		return c
	},
	"ShaderDerivativeExtensionString": func() *Caps {
		c := standalone()
		c.GLSLVersion = 100
		c.VersionDecl = "#version 100"
		c.UsesPrecisionModifiers = true
		c.ShaderDerivativeExtension = "GL_OES_standard_derivatives"
		return c
	},
	"UnfoldShortCircuitAsTernary": func() *Caps {
		c := standalone()
		c.UnfoldShortCircuitAsTernary = true
		return c
	},
	"UsesPrecisionModifiers": func() *Caps {
		c := standalone()
		c.UsesPrecisionModifiers = true
		return c
	},
	"Version110": func() *Caps {
		c := standalone()
		c.GLSLVersion = 110
		c.VersionDecl = "#version 110"
		return c
	},
	"Version450Core": func() *Caps {
		c := standalone()
		c.GLSLVersion = 450
		c.VersionDecl = "#version 450 core"
		return c
	},
}

// names is the fixed order in which the settings-pragma parser tests bundle
// selectors. The order is stable across releases because it affects which
// bundle wins when several appear in one pragma.
var names = []string{
	"AddAndTrueToLoopCondition",
	"BlendModesFailRandomlyForAllZeroVec",
	"CannotUseFractForNegativeValues",
	"CannotUseFragCoord",
	"CannotUseMinAndAbsTogether",
	"Default",
	"EmulateAbsIntFunction",
	"FragCoordsOld",
	"FragCoordsNew",
	"GeometryShaderExtensionString",
	"GeometryShaderSupport",
	"GSInvocationsExtensionString",
	"IncompleteShortIntPrecision",
	"MustGuardDivisionEvenAfterExplicitZeroCheck",
	"MustForceNegatedAtanParamToFloat",
	"NoGSInvocationsSupport",
	"RemovePowWithConstantExponent",
	"RewriteDoWhileLoops",
	"ShaderDerivativeExtensionString",
	"UnfoldShortCircuitAsTernary",
	"UsesPrecisionModifiers",
	"Version110",
	"Version450Core",
}

// Factory hands out capability bundles by name. Each named bundle is
// constructed on first use and cached for the life of the Factory, so
// repeated lookups return the same instance. A Factory is safe for
// concurrent use.
type Factory struct {
	mu      sync.Mutex
	bundles map[string]*Caps
}

// NewFactory returns an empty Factory. Bundles are constructed lazily.
func NewFactory() *Factory {
	return &Factory{bundles: make(map[string]*Caps)}
}

// Named returns the singleton bundle for name, constructing it on first
// use. The second result is false if the name is not a known bundle.
func (f *Factory) Named(name string) (*Caps, bool) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.bundles[name]
	if !ok {
		c = ctor()
		f.bundles[name] = c
	}
	return c, true
}

// Default returns the standalone bundle jobs start from.
func (f *Factory) Default() *Caps {
	c, _ := f.Named("Default")
	return c
}

// Names returns the bundle names in the fixed order the pragma parser tests
// them. The returned slice must not be modified.
func Names() []string {
	return names
}
