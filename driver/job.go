// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"os"

	"github.com/gogpu/skslc"
)

const usageText = `usage: skslc <input> <output> <flags> -- <input2> <output2> <flags> -- ...

Allowed flags:
--settings:   honor embedded /*#pragma settings*/ comments.
--nosettings: ignore /*#pragma settings*/ comments
`

// showUsage displays the usage banner; used when the command line arguments
// don't make sense.
func (d *Driver) showUsage() {
	d.printf("%s", usageText)
}

// ProcessCommand runs a single job. args holds the program name followed by
// the job's own arguments: input path, output path, and an optional
// --settings/--nosettings flag. Validation happens before any file I/O.
func (d *Driver) ProcessCommand(args []string) ResultCode {
	honorSettings := true
	switch {
	case len(args) == 4:
		switch args[3] {
		case "--settings":
			honorSettings = true
		case "--nosettings":
			honorSettings = false
		default:
			d.printf("unrecognized flag: %s\n\n", args[3])
			d.showUsage()
			return InputError
		}
	case len(args) != 3:
		d.showUsage()
		return InputError
	}

	inputPath := args[1]
	kind, ok := programKindForInput(inputPath)
	if !ok {
		d.printf("input filename must end in %s\n", inputExtensionList)
		return InputError
	}

	text, err := os.ReadFile(inputPath)
	if err != nil {
		d.printf("error reading '%s'\n", inputPath)
		return InputError
	}

	settings := skslc.DefaultSettings(d.Caps)
	if honorSettings {
		if err := d.detectShaderSettings(string(text), &settings); err != nil {
			d.printf("%v\n", err)
			return InputError
		}
	}

	return d.runPipeline(kind, inputPath, args[2], string(text), settings)
}
