package main

import (
	"fmt"
	"os"
)

const usage = `Usage:
  cextract <header> [-i <pattern>]... [options] [-- <clang args>...]

Extracts a JSON description of the C API declared by <header>: types,
structs/unions, enums, functions, global variables and #define constants.

Options:
  -i, --include <pattern>  Only emit declarations from files matching the
                           regex pattern (repeatable; default: all files).
  -o, --output <file>      Output file (default: stdout).
  --source                 Include declarations' verbatim source text.
  --size                   Include type sizes in bytes.
  --offset                 Include record field offsets in bytes.
  --compact                Minified JSON instead of 2 space indentation.
  -h, --help               Show this help message.

Environment:
  CEXTRACT_CLANG_ARGS      Extra frontend flags (whitespace-separated).
  CEXTRACT_COMPACT         Same as --compact.
  CEXTRACT_OUTPUT          Default output path.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Print(usage)
		os.Exit(0)
	}

	headerFile := os.Args[1]
	cfg := ConfigFromEnv()
	opts := &Options{
		ClangArgs: cfg.ClangArgs,
		Compact:   cfg.Compact,
	}
	outputFile := cfg.Output

	for i := 2; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "-i", "--include":
			if i+1 >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "missing pattern after", os.Args[i])
				os.Exit(1)
			}
			opts.IncludePatterns = append(opts.IncludePatterns, os.Args[i+1])
			i++
		case "-o", "--output":
			if i+1 >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "missing file after", os.Args[i])
				os.Exit(1)
			}
			outputFile = os.Args[i+1]
			i++
		case "--source":
			opts.IncludeSource = true
		case "--size":
			opts.IncludeSize = true
		case "--offset":
			opts.IncludeOffset = true
		case "--compact":
			opts.Compact = true
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		case "--":
			opts.ClangArgs = append(opts.ClangArgs, os.Args[i+1:]...)
			i = len(os.Args)
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n%s", os.Args[i], usage)
			os.Exit(1)
		}
	}

	defs, err := Extract(headerFile, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cextract: %v\n", err)
		os.Exit(1)
	}

	output, err := Serialize(defs, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cextract: %v\n", err)
		os.Exit(1)
	}

	if outputFile == "-" || outputFile == "" {
		fmt.Println(string(output))
	} else {
		if err := os.WriteFile(outputFile, output, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "cextract: %v\n", err)
			os.Exit(1)
		}
		types, functions, variables, constants := 0, 0, 0, 0
		for _, def := range defs {
			switch def.(type) {
			case *Type:
				types++
			case Function:
				functions++
			case Variable:
				variables++
			case Constant:
				constants++
			}
		}
		fmt.Printf("Wrote %s\n", outputFile)
		fmt.Printf("Types: %d\n", types)
		fmt.Printf("Functions: %d\n", functions)
		fmt.Printf("Variables: %d\n", variables)
		fmt.Printf("Constants: %d\n", constants)
	}
}
