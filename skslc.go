// Package skslc provides the batch command driver for an offline shader
// compiler.
//
// skslc turns (input, output, flags) triples into compiled artifacts. The
// shader stage is inferred from the input file extension, the backend code
// generator from the output file extension, and an optional in-source
// /*#pragma settings*/ comment can override compilation options and target
// capabilities. Multiple jobs are separated by "--" on the command line and
// the process exits with the worst result observed.
//
// The packages are layered as follows:
//
//   - caps holds the named capability bundles describing target-platform
//     quirks, with a process-wide singleton cache.
//   - driver is the core: argument batching, stage and backend resolution,
//     the settings-pragma parser, and result-code aggregation.
//   - compiler implements the Compiler interface on top of the naga shader
//     compiler.
//
// This package defines the vocabulary shared by all of them: program kinds,
// the settings record, and the narrow interfaces through which the driver
// reaches the compiler and its emitters.
package skslc

import (
	"io"

	"github.com/gogpu/skslc/caps"
)

// ProgramKind identifies which shading pipeline step a source file
// represents. It is derived exclusively from the input path's extension.
type ProgramKind uint8

const (
	// KindVertex is a vertex program (.vert).
	KindVertex ProgramKind = iota

	// KindFragment is a fragment program (.frag or .sksl).
	KindFragment

	// KindGeometry is a geometry program (.geom).
	KindGeometry

	// KindFragmentProcessor is a fragment-processor module (.fp) used for
	// C++ code generation.
	KindFragmentProcessor

	// KindPipelineStage is a runtime-effect pipeline stage (.stage).
	KindPipelineStage
)

// String returns a human-readable program kind name.
func (k ProgramKind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindFragment:
		return "fragment"
	case KindGeometry:
		return "geometry"
	case KindFragmentProcessor:
		return "fragment processor"
	case KindPipelineStage:
		return "pipeline stage"
	default:
		return "unknown"
	}
}

// DefaultInlineThreshold is the function size limit below which the compiler
// inlines calls when no pragma overrides it.
const DefaultInlineThreshold = 50

// Settings is the per-job record of compilation toggles. It is mutated only
// by the settings-pragma parser and read-only thereafter; each job owns its
// own instance.
type Settings struct {
	// FlipY inverts the Y coordinate convention of the generated code.
	FlipY bool

	// ForceHighPrecision promotes all mediump variables to highp.
	ForceHighPrecision bool

	// InlineThreshold is the function size limit for automatic inlining.
	// Zero disables inlining entirely.
	InlineThreshold int

	// SharpenTextures applies a negative mip LOD bias to texture samples.
	SharpenTextures bool

	// ReplaceSettings controls whether generated code bakes these settings
	// in. The C++ pipelines force it off so the host program supplies its
	// own settings at runtime.
	ReplaceSettings bool

	// Caps is the selected capability bundle. Never nil after
	// DefaultSettings.
	Caps *caps.Caps
}

// DefaultSettings returns the settings a job starts from: all toggles off,
// the default inline threshold, and the standalone capability bundle.
func DefaultSettings(factory *caps.Factory) Settings {
	return Settings{
		InlineThreshold: DefaultInlineThreshold,
		ReplaceSettings: true,
		Caps:            factory.Default(),
	}
}

// CompileFlags adjust compiler behavior for particular pipelines.
type CompileFlags uint32

const (
	// PermitInvalidStaticTests allows static tests whose conditions cannot
	// be evaluated at compile time. The C++ generation pipelines set it
	// because the host program resolves those tests later.
	PermitInvalidStaticTests CompileFlags = 1 << iota
)

// Compiler is the narrow interface through which the driver reaches the
// shader compiler. The error returned by either method carries the
// diagnostic text reported to the user.
type Compiler interface {
	// Compile produces a compiled program from shader source.
	Compile(kind ProgramKind, source string, settings Settings, flags CompileFlags) (Program, error)

	// LoadModule loads and compiles a shared module from a file, ready for
	// dehydration.
	LoadModule(kind ProgramKind, path string) (Dehydrated, error)
}

// Program is a compiled shader program. Each emitter writes one artifact
// format to the given stream.
type Program interface {
	EmitSPIRV(w io.Writer) error
	EmitGLSL(w io.Writer) error
	EmitMetal(w io.Writer) error

	// EmitCPP writes a C++ subclass implementation. baseName is the class
	// name stem derived from the input filename.
	EmitCPP(baseName string, w io.Writer) error

	// EmitH writes the matching C++ header.
	EmitH(baseName string, w io.Writer) error
}

// Dehydrated is a module serialized to a portable byte blob.
type Dehydrated interface {
	// Bytes returns the serialized module.
	Bytes() []byte

	// PrefixAtOffset returns a string to emit before the byte at the given
	// offset, allowing the writer to break lines at element boundaries.
	PrefixAtOffset(offset int) string
}
