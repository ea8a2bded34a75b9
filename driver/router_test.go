// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/skslc"
)

func TestRunPipelineUnknownOutputExtension(t *testing.T) {
	d, fc, out := newTestDriver(t)
	settings := skslc.DefaultSettings(d.Caps)

	outputPath := filepath.Join(t.TempDir(), "shader.wat")
	code := d.runPipeline(skslc.KindFragment, "shader.frag", outputPath, "src", settings)

	assert.Equal(t, InputError, code)
	assert.Zero(t, fc.compileCalls)
	assert.NoFileExists(t, outputPath)
	assert.Contains(t, out.String(), "expected output filename")
}

func TestRunPipelineEmitsArtifact(t *testing.T) {
	for _, ext := range []string{".spirv", ".glsl", ".metal"} {
		t.Run(ext, func(t *testing.T) {
			d, fc, _ := newTestDriver(t)
			settings := skslc.DefaultSettings(d.Caps)

			outputPath := filepath.Join(t.TempDir(), "shader"+ext)
			code := d.runPipeline(skslc.KindFragment, "shader.frag", outputPath, "src", settings)

			require.Equal(t, Success, code)
			assert.Equal(t, 1, fc.compileCalls)
			data, err := os.ReadFile(outputPath)
			require.NoError(t, err)
			assert.Equal(t, "compiled\n", string(data))
		})
	}
}

func TestRunPipelineCompileErrorWritesBanner(t *testing.T) {
	d, fc, out := newTestDriver(t)
	fc.failOn = "bad token"
	settings := skslc.DefaultSettings(d.Caps)

	outputPath := filepath.Join(t.TempDir(), "shader.glsl")
	code := d.runPipeline(skslc.KindFragment, "shader.frag", outputPath, "bad token", settings)

	assert.Equal(t, CompileError, code)
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "### Compilation failed:\n\nerror: 1: expected expression\n", string(data))
	assert.Contains(t, out.String(), "error: 1: expected expression")
}

func TestRunPipelineEmitterFailureIsCompileError(t *testing.T) {
	d, fc, out := newTestDriver(t)
	fc.program.emitErr = errors.New("error: unsupported feature")
	settings := skslc.DefaultSettings(d.Caps)

	outputPath := filepath.Join(t.TempDir(), "shader.metal")
	code := d.runPipeline(skslc.KindFragment, "shader.frag", outputPath, "src", settings)

	assert.Equal(t, CompileError, code)
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Compilation failed:")
	assert.Contains(t, out.String(), "unsupported feature")
}

func TestRunPipelineUnwritableOutput(t *testing.T) {
	d, fc, out := newTestDriver(t)
	settings := skslc.DefaultSettings(d.Caps)

	outputPath := filepath.Join(t.TempDir(), "no", "such", "dir", "shader.glsl")
	code := d.runPipeline(skslc.KindFragment, "shader.frag", outputPath, "src", settings)

	assert.Equal(t, OutputError, code)
	assert.Zero(t, fc.compileCalls)
	assert.Contains(t, out.String(), "error writing")
}

// The C++ pipelines hand the compiler a base name derived from the input
// path and disable ReplaceSettings.
func TestRunPipelineCPPAndHeader(t *testing.T) {
	for _, ext := range []string{".h", ".cpp"} {
		t.Run(ext, func(t *testing.T) {
			d, fc, _ := newTestDriver(t)
			settings := skslc.DefaultSettings(d.Caps)

			outputPath := filepath.Join(t.TempDir(), "GrFoo"+ext)
			code := d.runPipeline(skslc.KindFragmentProcessor, "src/gpu/effects/GrFoo.fp",
				outputPath, "src", settings)

			require.Equal(t, Success, code)
			assert.Equal(t, "Foo", fc.program.lastBase)
			assert.False(t, fc.lastSettings.ReplaceSettings)
			assert.Equal(t, skslc.PermitInvalidStaticTests, fc.lastFlags)
		})
	}
}

func TestRunPipelineDehydrated(t *testing.T) {
	d, fc, _ := newTestDriver(t)
	settings := skslc.DefaultSettings(d.Caps)

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "sksl_gpu.sksl")
	outputPath := filepath.Join(dir, "sksl_gpu.dehydrated.sksl")
	code := d.runPipeline(skslc.KindFragment, inputPath, outputPath, "src", settings)

	require.Equal(t, Success, code)
	assert.Equal(t, 1, fc.loadCalls)
	assert.Zero(t, fc.compileCalls)
	assert.Equal(t, inputPath, fc.lastPath)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t,
		"static uint8_t SKSL_INCLUDE_sksl_gpu[] = {\n1,2,3,};\n"+
			"static constexpr size_t SKSL_INCLUDE_sksl_gpu_LENGTH = sizeof(SKSL_INCLUDE_sksl_gpu);\n",
		string(data))
}

func TestRunPipelineDehydratedLoadFailure(t *testing.T) {
	d, fc, out := newTestDriver(t)
	fc.loadErr = errors.New("error: module is malformed")
	settings := skslc.DefaultSettings(d.Caps)

	outputPath := filepath.Join(t.TempDir(), "sksl_gpu.dehydrated.sksl")
	code := d.runPipeline(skslc.KindFragment, "sksl_gpu.sksl", outputPath, "src", settings)

	assert.Equal(t, CompileError, code)
	assert.Contains(t, out.String(), "module is malformed")
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path, prefix, suffix, want string
	}{
		{"a/b/GrFoo.fp", "Gr", ".fp", "Foo"},
		{"src/gpu/effects/GrFooFragmentProcessor.fp", "Gr", ".fp", "FooFragmentProcessor"},
		{`a\b\GrFoo.fp`, "Gr", ".fp", "Foo"},
		{"GrFoo.fp", "Gr", ".fp", "Foo"},
		{"a/b/Foo.fp", "Gr", ".fp", ""},
		{"a/b/GrFoo.frag", "Gr", ".fp", ""},
		{"a/b/sksl_gpu.sksl", "", ".sksl", "sksl_gpu"},
		{"Gr.fp", "Gr", ".fp", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, baseName(tt.path, tt.prefix, tt.suffix),
			"baseName(%q, %q, %q)", tt.path, tt.prefix, tt.suffix)
	}
}
