package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-clang/clang-v13/clang"
)

// An identifier right after "#define", separated by blanks and followed
// by replacement text on the same line, is a candidate object-like
// constant macro. Function-like macros never match (their name is glued
// to the opening parenthesis) and neither do macros with no replacement
// text, such as include guards.
var macroDefineRe = regexp.MustCompile(`#define[ \t]+(\w+)[ \t]+\S`)

// macroScanner gathers candidate macro names from the raw text of each
// file the collector visits, once per file, in discovery order.
type macroScanner struct {
	names     []string
	seenNames map[string]bool
	seenFiles map[string]bool
}

func newMacroScanner() *macroScanner {
	return &macroScanner{
		seenNames: make(map[string]bool),
		seenFiles: make(map[string]bool),
	}
}

func (m *macroScanner) ScanFile(path string) {
	if m.seenFiles[path] {
		return
	}
	m.seenFiles[path] = true
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, match := range macroDefineRe.FindAllStringSubmatch(string(content), -1) {
		name := match[1]
		if !m.seenNames[name] {
			m.seenNames[name] = true
			m.names = append(m.names, name)
		}
	}
}

// Names returns the candidates in discovery order.
func (m *macroScanner) Names() []string {
	return m.names
}

// probeCompiler is the narrow frontend surface macro resolution needs:
// compile a synthesized translation unit and report whether it was
// error-free.
type probeCompiler interface {
	CompileProbe(source string, args []string) (clang.TranslationUnit, bool)
}

// probeProgram synthesizes the one-line unit that assigns the macro to an
// implicitly typed constant. The frontend's own constant folding decides
// whether the macro is a usable constant expression and of which type.
func probeProgram(headerPath, macroName string) string {
	return fmt.Sprintf("#include \"%s\"\n__auto_type %s = %s;\n",
		headerPath, probeVariableName(macroName), macroName)
}

func probeVariableName(macroName string) string {
	return "cextract_probe_" + macroName
}

// ResolveMacros probes every candidate in order and emits a Constant for
// each macro that compiles as a constant expression. Probe failures are
// expected (types, statements, ill-formed fragments) and skip silently;
// they never abort the run.
func ResolveMacros(compiler probeCompiler, canon *Canonicalizer, headerPath string, names []string, opts *Options) []Definition {
	if len(names) == 0 {
		return nil
	}
	absHeader, err := filepath.Abs(headerPath)
	if err != nil {
		absHeader = headerPath
	}
	var constants []Definition
	for _, name := range names {
		tu, ok := compiler.CompileProbe(probeProgram(absHeader, name), opts.ClangArgs)
		if !ok {
			continue
		}
		if probeType := probeResultType(tu, canon, name); probeType != nil {
			constants = append(constants, Constant{Name: name, Type: probeType})
		}
		tu.Dispose()
	}
	return constants
}

// probeResultType finds the synthesized constant's declaration in the
// probe unit and canonicalizes its inferred type.
func probeResultType(tu clang.TranslationUnit, canon *Canonicalizer, macroName string) *Type {
	wanted := probeVariableName(macroName)
	var result *Type
	tu.TranslationUnitCursor().Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if cursor.Kind() != clang.Cursor_VarDecl || cursor.Spelling() != wanted {
			return clang.ChildVisit_Continue
		}
		if t, err := canon.Canonicalize(cursor.Type()); err == nil {
			result = t
		}
		return clang.ChildVisit_Break
	})
	return result
}
