// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/skslc"
)

func TestProgramKindForInput(t *testing.T) {
	tests := []struct {
		path string
		kind skslc.ProgramKind
	}{
		{"shader.vert", skslc.KindVertex},
		{"shader.frag", skslc.KindFragment},
		{"shader.sksl", skslc.KindFragment},
		{"module.dehydrated.sksl", skslc.KindFragment},
		{"shader.geom", skslc.KindGeometry},
		{"src/gpu/effects/GrFoo.fp", skslc.KindFragmentProcessor},
		{"effect.stage", skslc.KindPipelineStage},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := programKindForInput(tt.path)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestProgramKindForInputUnrecognized(t *testing.T) {
	for _, path := range []string{"shader.glsl", "shader.txt", "shader", "vert"} {
		_, ok := programKindForInput(path)
		assert.False(t, ok, "path %q should not resolve", path)
	}
}
