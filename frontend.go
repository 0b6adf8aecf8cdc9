package main

import (
	"fmt"
	"os"

	"github.com/go-clang/clang-v13/clang"
)

// Frontend wraps one libclang index for the lifetime of an extraction
// run: the initial header parse plus every macro probe compilation.
// Diagnostics printing is left off; parse failures surface through the
// returned error instead.
type Frontend struct {
	idx clang.Index
}

func NewFrontend() *Frontend {
	return &Frontend{idx: clang.NewIndex(0, 0)}
}

func (f *Frontend) Dispose() {
	f.idx.Dispose()
}

// ParseHeader compiles the root header into a translation unit. Any
// error-severity diagnostic is fatal: the run aborts with no output.
func (f *Frontend) ParseHeader(path string, args []string) (clang.TranslationUnit, error) {
	tu := f.idx.ParseTranslationUnit(path, args, nil, 0)
	if tu == (clang.TranslationUnit{}) {
		return tu, &CompilationError{Path: path}
	}
	if hasErrors(tu, os.Stderr) {
		tu.Dispose()
		return clang.TranslationUnit{}, &CompilationError{Path: path}
	}
	return tu, nil
}

// CompileProbe compiles a synthesized unit written to a scratch file that
// is removed before returning. Reports false on any compile error; probe
// diagnostics are suppressed since failures are expected.
func (f *Frontend) CompileProbe(source string, args []string) (clang.TranslationUnit, bool) {
	scratch, err := os.CreateTemp("", "cextract_probe_*.c")
	if err != nil {
		return clang.TranslationUnit{}, false
	}
	defer os.Remove(scratch.Name())
	if _, err := scratch.WriteString(source); err != nil {
		scratch.Close()
		return clang.TranslationUnit{}, false
	}
	if err := scratch.Close(); err != nil {
		return clang.TranslationUnit{}, false
	}

	tu := f.idx.ParseTranslationUnit(scratch.Name(), args, nil, 0)
	if tu == (clang.TranslationUnit{}) {
		return clang.TranslationUnit{}, false
	}
	if hasErrors(tu, nil) {
		tu.Dispose()
		return clang.TranslationUnit{}, false
	}
	return tu, true
}

// hasErrors reports whether the unit carries error-severity diagnostics,
// echoing them to sink when one is given.
func hasErrors(tu clang.TranslationUnit, sink *os.File) bool {
	failed := false
	for _, diagnostic := range tu.Diagnostics() {
		switch diagnostic.Severity() {
		case clang.Diagnostic_Error, clang.Diagnostic_Fatal:
			failed = true
			if sink != nil {
				fmt.Fprintln(sink, diagnostic.Spelling())
			}
		}
	}
	return failed
}
