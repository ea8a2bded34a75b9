// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"fmt"
	"io"

	"github.com/gogpu/naga/glsl"
)

// cppBanner matches the header Skia places on generated processor sources.
const cppBanner = `/**************************************************************************************************
 *** This file was autogenerated from Gr%[1]s.fp; do not modify.
 **************************************************************************************************/
`

// EmitH writes a C++ header declaring the fragment-processor subclass for
// this program. baseName is the class name stem; the emitted class is
// Gr<baseName>.
func (p *Program) EmitH(baseName string, w io.Writer) error {
	var err error
	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr(cppBanner, baseName)
	pr("#ifndef Gr%s_DEFINED\n", baseName)
	pr("#define Gr%s_DEFINED\n\n", baseName)
	pr("#include \"include/core/SkTypes.h\"\n\n")
	pr("#include \"src/gpu/GrFragmentProcessor.h\"\n\n")
	pr("class Gr%s : public GrFragmentProcessor {\n", baseName)
	pr("public:\n")
	pr("    static std::unique_ptr<GrFragmentProcessor> Make() {\n")
	pr("        return std::unique_ptr<GrFragmentProcessor>(new Gr%s());\n", baseName)
	pr("    }\n")
	pr("    Gr%s(const Gr%s& src);\n", baseName, baseName)
	pr("    std::unique_ptr<GrFragmentProcessor> clone() const override;\n")
	pr("    const char* name() const override { return \"%s\"; }\n", baseName)
	pr("private:\n")
	pr("    Gr%s()\n", baseName)
	pr("            : INHERITED(kGr%s_ClassID, kNone_OptimizationFlags) {}\n", baseName)
	pr("    GrGLSLFragmentProcessor* onCreateGLSLInstance() const override;\n")
	pr("    void onGetGLSLProcessorKey(const GrShaderCaps&, GrProcessorKeyBuilder*) const override;\n")
	pr("    bool onIsEqual(const GrFragmentProcessor&) const override;\n")
	pr("    typedef GrFragmentProcessor INHERITED;\n")
	pr("};\n")
	pr("#endif\n")
	return err
}

// EmitCPP writes the C++ subclass implementation, embedding the program's
// GLSL translation as the shader the processor emits at runtime.
func (p *Program) EmitCPP(baseName string, w io.Writer) error {
	source, _, err := glsl.Compile(p.module, p.glslOptions())
	if err != nil {
		return err
	}

	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr(cppBanner, baseName)
	pr("#include \"Gr%s.h\"\n\n", baseName)
	pr("#include \"src/gpu/glsl/GrGLSLFragmentProcessor.h\"\n")
	pr("#include \"src/gpu/glsl/GrGLSLFragmentShaderBuilder.h\"\n")
	pr("#include \"src/gpu/glsl/GrGLSLProgramBuilder.h\"\n\n")
	pr("class GrGLSL%s : public GrGLSLFragmentProcessor {\n", baseName)
	pr("public:\n")
	pr("    GrGLSL%s() {}\n", baseName)
	pr("    void emitCode(EmitArgs& args) override {\n")
	pr("        GrGLSLFPFragmentBuilder* fragBuilder = args.fFragBuilder;\n")
	pr("        fragBuilder->codeAppendf(\n")
	pr("R\"(%s)\");\n", source)
	pr("    }\n")
	pr("};\n\n")
	pr("GrGLSLFragmentProcessor* Gr%s::onCreateGLSLInstance() const {\n", baseName)
	pr("    return new GrGLSL%s();\n", baseName)
	pr("}\n")
	pr("void Gr%s::onGetGLSLProcessorKey(const GrShaderCaps& caps, GrProcessorKeyBuilder* b) const {\n", baseName)
	pr("}\n")
	pr("bool Gr%s::onIsEqual(const GrFragmentProcessor& other) const {\n", baseName)
	pr("    return true;\n")
	pr("}\n")
	pr("Gr%s::Gr%s(const Gr%s& src)\n", baseName, baseName, baseName)
	pr("        : INHERITED(kGr%s_ClassID, src.optimizationFlags()) {}\n", baseName)
	pr("std::unique_ptr<GrFragmentProcessor> Gr%s::clone() const {\n", baseName)
	pr("    return std::unique_ptr<GrFragmentProcessor>(new Gr%s(*this));\n", baseName)
	pr("}\n")
	return err
}
