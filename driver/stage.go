// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"strings"

	"github.com/gogpu/skslc"
)

// inputExtensionList names the recognized input extensions for the
// bad-extension diagnostic.
const inputExtensionList = "'.vert', '.frag', '.geom', '.fp', '.stage', or '.sksl'"

// programKindForInput maps an input path to the shader stage it contains.
// The second result is false for an unrecognized extension; there is no
// default stage.
func programKindForInput(path string) (skslc.ProgramKind, bool) {
	switch {
	case strings.HasSuffix(path, ".vert"):
		return skslc.KindVertex, true
	case strings.HasSuffix(path, ".frag"), strings.HasSuffix(path, ".sksl"):
		return skslc.KindFragment, true
	case strings.HasSuffix(path, ".geom"):
		return skslc.KindGeometry, true
	case strings.HasSuffix(path, ".fp"):
		return skslc.KindFragmentProcessor, true
	case strings.HasSuffix(path, ".stage"):
		return skslc.KindPipelineStage, true
	default:
		return 0, false
	}
}
