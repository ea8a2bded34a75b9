// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"fmt"
	"math"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/gogpu/skslc"
	"github.com/gogpu/skslc/caps"
)

// settingsPragma is the literal marker that opens a settings comment:
//
//	/*#pragma settings Default Sharpen*/
const settingsPragma = "/*#pragma settings "

// pragmaToggles are the recognized settings toggles, in the fixed order the
// parser tests them after the capability-bundle selectors.
var pragmaToggles = []string{
	"FlipY",
	"ForceHighPrecision",
	"NoInline",
	"InlineThresholdMax",
	"Sharpen",
}

// detectShaderSettings searches text for a settings pragma and applies it
// to settings. Tokens are consumed right to left by repeatedly stripping
// recognized suffixes: every candidate is tested on each pass, and a pass
// that strips nothing from a non-empty remainder means the remainder is
// malformed. Capability-bundle selectors overwrite settings.Caps, so when
// several appear the one stripped last (the leftmost) wins.
//
// A missing marker or terminator leaves settings untouched.
func (d *Driver) detectShaderSettings(text string, settings *skslc.Settings) error {
	start := strings.Index(text, settingsPragma)
	if start < 0 {
		return nil
	}
	// Keep the leading space so suffix stripping can consume the first
	// token.
	rest := text[start+len(settingsPragma)-1:]
	end := strings.Index(rest, "*/")
	if end < 0 {
		return nil
	}
	pragma := rest[:end]

	for pragma != "" {
		remaining := len(pragma)

		for _, name := range caps.Names() {
			if trimmed, ok := strings.CutSuffix(pragma, " "+name); ok {
				pragma = trimmed
				settings.Caps, _ = d.Caps.Named(name)
			}
		}
		if trimmed, ok := strings.CutSuffix(pragma, " FlipY"); ok {
			pragma = trimmed
			settings.FlipY = true
		}
		if trimmed, ok := strings.CutSuffix(pragma, " ForceHighPrecision"); ok {
			pragma = trimmed
			settings.ForceHighPrecision = true
		}
		if trimmed, ok := strings.CutSuffix(pragma, " NoInline"); ok {
			pragma = trimmed
			settings.InlineThreshold = 0
		}
		if trimmed, ok := strings.CutSuffix(pragma, " InlineThresholdMax"); ok {
			pragma = trimmed
			settings.InlineThreshold = math.MaxInt32
		}
		if trimmed, ok := strings.CutSuffix(pragma, " Sharpen"); ok {
			pragma = trimmed
			settings.SharpenTextures = true
		}

		if pragma == "" {
			break
		}
		if len(pragma) == remaining {
			remainder := strings.TrimSpace(pragma)
			return fmt.Errorf("unrecognized #pragma settings: %s%s",
				remainder, suggestPragmaToken(remainder))
		}
	}
	return nil
}

// suggestPragmaToken returns a "did you mean" hint when the last token of a
// malformed remainder is close to a recognized one.
func suggestPragmaToken(remainder string) string {
	token := remainder
	if i := strings.LastIndexByte(token, ' '); i >= 0 {
		token = token[i+1:]
	}
	if token == "" {
		return ""
	}

	best := ""
	bestDist := len(token)/2 + 1
	candidates := append(append([]string{}, caps.Names()...), pragmaToggles...)
	for _, cand := range candidates {
		dist := levenshtein.DistanceForStrings(
			[]rune(token), []rune(cand), levenshtein.DefaultOptions)
		if dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
