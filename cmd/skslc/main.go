// Command skslc is the offline shader compiler driver.
//
// Usage:
//
//	skslc <input> <output> [--settings|--nosettings] [-- <input2> <output2> ...]
//
// The shader stage is inferred from the input extension (.vert, .frag,
// .geom, .fp, .stage, .sksl) and the backend from the output extension
// (.spirv, .glsl, .metal, .h, .cpp, .dehydrated.sksl). Jobs are separated
// by "--" and the process exits with the worst result any job produced:
//
//	0  success
//	1  compile error
//	2  input error (bad arguments, unreadable input, unknown extension,
//	   malformed pragma)
//	3  output error (destination could not be opened or closed)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/skslc/caps"
	"github.com/gogpu/skslc/compiler"
	"github.com/gogpu/skslc/driver"
)

const skslcVersion = "0.1.0-dev"

func main() {
	code := driver.Success

	root := &cobra.Command{
		Use:   "skslc <input> <output> [--settings|--nosettings] [-- <input2> <output2> ...]",
		Short: "Compile shader source into SPIR-V, GLSL, Metal, or C++ artifacts",
		Long: `skslc compiles batches of shader jobs. Each job names an input file, an
output file, and optionally --settings or --nosettings to control whether
embedded /*#pragma settings*/ comments are honored. Jobs are separated by
"--" and run in order; the exit status is the worst outcome observed.`,
		Args: cobra.ArbitraryArgs,
		// The driver owns the argument grammar, including "--" delimiters
		// and the --settings flags.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 && args[0] == "--version" {
				fmt.Printf("skslc version %s\n", skslcVersion)
				return
			}
			d := driver.New(compiler.New(), caps.NewFactory())
			code = d.RunBatch(append([]string{"skslc"}, args...))
		},
	}

	if err := root.Execute(); err != nil {
		os.Exit(int(driver.InputError))
	}
	os.Exit(int(code))
}
