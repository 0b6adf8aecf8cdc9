package main

import "fmt"

// CompilationError means the initial parse of the target header failed.
// The frontend has already written its diagnostics to stderr; extraction
// aborts with no output.
type CompilationError struct {
	Path string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile %s", e.Path)
}

// UnsupportedTypeError means the frontend reported a type kind the
// canonicalizer has no mapping for. Silently dropping the type would
// produce a misleading API description, so this aborts extraction.
type UnsupportedTypeError struct {
	ClangKind string
	Spelling  string
	Location  string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("unsupported clang type kind %s: %s @ %s", e.ClangKind, e.Spelling, e.Location)
	}
	return fmt.Sprintf("unsupported clang type kind %s: %s", e.ClangKind, e.Spelling)
}
