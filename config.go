package main

import (
	"strings"

	"github.com/xyproto/env/v2"
)

// EnvConfig holds defaults picked up from the environment. Command-line
// flags override them.
type EnvConfig struct {
	// Extra frontend flags, whitespace-separated, appended before any
	// flags given after "--" on the command line.
	ClangArgs []string
	Compact   bool
	// Output path; "-" means stdout.
	Output string
}

func ConfigFromEnv() EnvConfig {
	cfg := EnvConfig{
		Compact: env.Bool("CEXTRACT_COMPACT"),
		Output:  env.Str("CEXTRACT_OUTPUT", "-"),
	}
	if raw := env.Str("CEXTRACT_CLANG_ARGS"); raw != "" {
		cfg.ClangArgs = strings.Fields(raw)
	}
	return cfg
}
