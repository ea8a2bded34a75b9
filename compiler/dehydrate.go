// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package compiler

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/skslc"
)

// dehydratedVersion is bumped whenever the serialized layout changes, so a
// rehydrating reader can reject blobs from another release.
const dehydratedVersion = 1

// LoadModule reads, parses, and lowers a shared module, returning its
// dehydrated form: the module's symbols (types, constants, globals,
// functions) and declarations serialized into a portable byte blob.
func (c *Compiler) LoadModule(kind skslc.ProgramKind, path string) (skslc.Dehydrated, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading '%s': %w", path, err)
	}
	module, err := c.lower(string(source))
	if err != nil {
		return nil, err
	}
	if err := c.validate(module); err != nil {
		return nil, err
	}

	d := newDehydrator()
	d.writeModule(module)
	return d.finish(), nil
}

// Dehydrated is a serialized module together with the element-boundary
// offsets used to break lines in the generated byte-array literal.
type Dehydrated struct {
	data   []byte
	breaks map[int]struct{}
}

// Bytes returns the serialized module.
func (d *Dehydrated) Bytes() []byte {
	return d.data
}

// PrefixAtOffset returns "\n" when the byte at offset starts a new element,
// so the generated array literal stays readable, and "" otherwise.
func (d *Dehydrated) PrefixAtOffset(offset int) string {
	if _, ok := d.breaks[offset]; ok {
		return "\n"
	}
	return ""
}

// dehydrator serializes a module into a compact length-prefixed binary
// form. All multi-byte values are little-endian; strings are written as a
// one-byte length followed by the bytes, truncated at 255.
type dehydrator struct {
	buf    bytes.Buffer
	breaks map[int]struct{}
}

func newDehydrator() *dehydrator {
	return &dehydrator{breaks: make(map[int]struct{})}
}

func (d *dehydrator) markBreak() {
	d.breaks[d.buf.Len()] = struct{}{}
}

func (d *dehydrator) writeU8(v uint8) {
	d.buf.WriteByte(v)
}

func (d *dehydrator) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	d.buf.Write(b[:])
}

func (d *dehydrator) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	d.buf.Write(b[:])
}

func (d *dehydrator) writeString(s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	d.writeU8(uint8(len(s)))
	d.buf.WriteString(s)
}

// writeModule serializes the symbol table followed by the declarations.
// Every top-level element starts at a line-break boundary.
func (d *dehydrator) writeModule(module *ir.Module) {
	d.writeU16(dehydratedVersion)

	d.markBreak()
	d.writeU16(uint16(len(module.Types)))
	for i := range module.Types {
		d.markBreak()
		d.writeString(module.Types[i].Name)
	}

	d.markBreak()
	d.writeU16(uint16(len(module.Constants)))
	for i := range module.Constants {
		d.markBreak()
		c := &module.Constants[i]
		d.writeString(c.Name)
		d.writeU32(uint32(c.Type))
	}

	d.markBreak()
	d.writeU16(uint16(len(module.GlobalVariables)))
	for i := range module.GlobalVariables {
		d.markBreak()
		g := &module.GlobalVariables[i]
		d.writeString(g.Name)
		d.writeU8(uint8(g.Space))
		d.writeU32(uint32(g.Type))
	}

	d.markBreak()
	d.writeU16(uint16(len(module.Functions)))
	for i := range module.Functions {
		d.markBreak()
		f := &module.Functions[i]
		d.writeString(f.Name)
		d.writeU8(uint8(len(f.Arguments)))
		for j := range f.Arguments {
			d.writeString(f.Arguments[j].Name)
			d.writeU32(uint32(f.Arguments[j].Type))
		}
	}

	d.markBreak()
	d.writeU16(uint16(len(module.EntryPoints)))
	for i := range module.EntryPoints {
		d.markBreak()
		ep := &module.EntryPoints[i]
		d.writeString(ep.Name)
		d.writeU8(uint8(ep.Stage))
		d.writeU32(uint32(ep.Function))
	}
}

func (d *dehydrator) finish() *Dehydrated {
	return &Dehydrated{data: d.buf.Bytes(), breaks: d.breaks}
}
