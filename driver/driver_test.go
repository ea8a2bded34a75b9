// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/skslc"
	"github.com/gogpu/skslc/caps"
)

// fakeProgram is a Program whose emitters write a fixed payload or fail.
type fakeProgram struct {
	output   string
	emitErr  error
	lastBase string
}

func (p *fakeProgram) emit(w io.Writer) error {
	if p.emitErr != nil {
		return p.emitErr
	}
	_, err := io.WriteString(w, p.output)
	return err
}

func (p *fakeProgram) EmitSPIRV(w io.Writer) error { return p.emit(w) }
func (p *fakeProgram) EmitGLSL(w io.Writer) error  { return p.emit(w) }
func (p *fakeProgram) EmitMetal(w io.Writer) error { return p.emit(w) }

func (p *fakeProgram) EmitCPP(baseName string, w io.Writer) error {
	p.lastBase = baseName
	return p.emit(w)
}

func (p *fakeProgram) EmitH(baseName string, w io.Writer) error {
	p.lastBase = baseName
	return p.emit(w)
}

// fakeModule is a Dehydrated with fixed bytes and one break offset.
type fakeModule struct {
	data   []byte
	breaks map[int]bool
}

func (m *fakeModule) Bytes() []byte { return m.data }

func (m *fakeModule) PrefixAtOffset(offset int) string {
	if m.breaks[offset] {
		return "\n"
	}
	return ""
}

// fakeCompiler records every call and fails on demand. Sources containing
// failOn produce a compile diagnostic, which lets batch tests mix outcomes.
type fakeCompiler struct {
	program *fakeProgram
	module  *fakeModule
	loadErr error
	failOn  string

	compileCalls int
	loadCalls    int
	lastKind     skslc.ProgramKind
	lastSource   string
	lastSettings skslc.Settings
	lastFlags    skslc.CompileFlags
	lastPath     string
}

func (c *fakeCompiler) Compile(kind skslc.ProgramKind, source string, settings skslc.Settings,
	flags skslc.CompileFlags) (skslc.Program, error) {

	c.compileCalls++
	c.lastKind = kind
	c.lastSource = source
	c.lastSettings = settings
	c.lastFlags = flags
	if c.failOn != "" && strings.Contains(source, c.failOn) {
		return nil, errors.New("error: 1: expected expression")
	}
	return c.program, nil
}

func (c *fakeCompiler) LoadModule(kind skslc.ProgramKind, path string) (skslc.Dehydrated, error) {
	c.loadCalls++
	c.lastKind = kind
	c.lastPath = path
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	return c.module, nil
}

// newTestDriver returns a driver wired to a fake compiler, with stdout
// captured.
func newTestDriver(t *testing.T) (*Driver, *fakeCompiler, *bytes.Buffer) {
	t.Helper()
	fc := &fakeCompiler{
		program: &fakeProgram{output: "compiled\n"},
		module:  &fakeModule{data: []byte{1, 2, 3}, breaks: map[int]bool{0: true}},
	}
	out := &bytes.Buffer{}
	d := New(fc, caps.NewFactory())
	d.Stdout = out
	return d, fc, out
}
