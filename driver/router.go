// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/skslc"
)

// runPipeline dispatches a job to the emission pipeline selected by the
// output extension. Unknown extensions are an input error and touch neither
// the compiler nor the filesystem.
func (d *Driver) runPipeline(kind skslc.ProgramKind, inputPath, outputPath, text string, settings skslc.Settings) ResultCode {
	switch {
	case strings.HasSuffix(outputPath, ".spirv"):
		return d.emitPipeline(kind, text, settings, 0, outputPath,
			func(p skslc.Program, w io.Writer) error { return p.EmitSPIRV(w) })

	case strings.HasSuffix(outputPath, ".glsl"):
		return d.emitPipeline(kind, text, settings, 0, outputPath,
			func(p skslc.Program, w io.Writer) error { return p.EmitGLSL(w) })

	case strings.HasSuffix(outputPath, ".metal"):
		return d.emitPipeline(kind, text, settings, 0, outputPath,
			func(p skslc.Program, w io.Writer) error { return p.EmitMetal(w) })

	case strings.HasSuffix(outputPath, ".h"):
		// The host program supplies its own settings at runtime.
		settings.ReplaceSettings = false
		base := baseName(inputPath, "Gr", ".fp")
		return d.emitPipeline(kind, text, settings, skslc.PermitInvalidStaticTests, outputPath,
			func(p skslc.Program, w io.Writer) error { return p.EmitH(base, w) })

	case strings.HasSuffix(outputPath, ".cpp"):
		settings.ReplaceSettings = false
		base := baseName(inputPath, "Gr", ".fp")
		return d.emitPipeline(kind, text, settings, skslc.PermitInvalidStaticTests, outputPath,
			func(p skslc.Program, w io.Writer) error { return p.EmitCPP(base, w) })

	case strings.HasSuffix(outputPath, ".dehydrated.sksl"):
		return d.dehydratePipeline(kind, inputPath, outputPath)

	default:
		d.printf("expected output filename to end with '.spirv', '.glsl', '.cpp', '.h', or '.metal'\n")
		return InputError
	}
}

// emitPipeline is the uniform three-step pipeline shared by the single-
// artifact backends: open the destination, compile, emit, then a checked
// close. A close failure supersedes an otherwise successful run.
func (d *Driver) emitPipeline(kind skslc.ProgramKind, text string, settings skslc.Settings,
	flags skslc.CompileFlags, outputPath string, emit func(skslc.Program, io.Writer) error) ResultCode {

	out, err := os.Create(outputPath)
	if err != nil {
		d.printf("error writing '%s'\n", outputPath)
		return OutputError
	}
	program, err := d.Compiler.Compile(kind, text, settings, flags)
	if err != nil {
		d.emitCompileError(out, outputPath, err)
		return CompileError
	}
	if err := emit(program, out); err != nil {
		d.emitCompileError(out, outputPath, err)
		return CompileError
	}
	if err := out.Close(); err != nil {
		d.printf("error writing '%s'\n", outputPath)
		return OutputError
	}
	return Success
}

// dehydratePipeline serializes a shared module's symbols and declarations
// into a byte array literal written as generated C-style source.
func (d *Driver) dehydratePipeline(kind skslc.ProgramKind, inputPath, outputPath string) ResultCode {
	out, err := os.Create(outputPath)
	if err != nil {
		d.printf("error writing '%s'\n", outputPath)
		return OutputError
	}
	module, err := d.Compiler.LoadModule(kind, inputPath)
	if err != nil {
		d.emitCompileError(out, outputPath, err)
		return CompileError
	}

	base := baseName(inputPath, "", ".sksl")
	fmt.Fprintf(out, "static uint8_t SKSL_INCLUDE_%s[] = {", base)
	for i, b := range module.Bytes() {
		fmt.Fprintf(out, "%s%d,", module.PrefixAtOffset(i), b)
	}
	fmt.Fprintf(out, "};\n")
	fmt.Fprintf(out, "static constexpr size_t SKSL_INCLUDE_%s_LENGTH = sizeof(SKSL_INCLUDE_%s);\n",
		base, base)

	if err := out.Close(); err != nil {
		d.printf("error writing '%s'\n", outputPath)
		return OutputError
	}
	return Success
}

// emitCompileError overwrites the half-produced artifact with a failure
// banner followed by the compiler's diagnostic, and echoes the diagnostic
// to stdout.
func (d *Driver) emitCompileError(out *os.File, outputPath string, compileErr error) {
	out.Close()
	errorText := compileErr.Error()
	if replaced, err := os.Create(outputPath); err == nil {
		fmt.Fprintf(replaced, "### Compilation failed:\n\n%s\n", errorText)
		replaced.Close()
	}
	d.printf("%s\n", errorText)
}

// baseName returns the "base name" of a path: the final component with the
// given prefix and suffix removed. Given "src/gpu/effects/GrFooFragment.fp"
// with prefix "Gr" and suffix ".fp" it returns "FooFragment". Both '/' and
// '\' separate components. If the filename does not carry both the prefix
// and the suffix, the result is the empty string.
func baseName(path, prefix, suffix string) string {
	file := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		file = path[i+1:]
	}
	if len(file) < len(prefix)+len(suffix) {
		return ""
	}
	if !strings.HasPrefix(file, prefix) || !strings.HasSuffix(file, suffix) {
		return ""
	}
	return file[len(prefix) : len(file)-len(suffix)]
}
