package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/divan/num2words"
	"github.com/go-clang/clang-v13/clang"
)

// Options are the logical parameters of one extraction run.
type Options struct {
	// ClangArgs are passed through verbatim to the frontend (include
	// paths, defines, language standard, ...).
	ClangArgs []string

	// IncludePatterns restricts which files declarations are emitted
	// from; a declaration survives when its (cwd-relative when possible)
	// file path matches at least one pattern. Empty means match-all.
	// Patterns are unanchored regular expressions.
	IncludePatterns []string

	IncludeSource bool
	IncludeSize   bool
	IncludeOffset bool
	Compact       bool
}

func (o *Options) compilePatterns() ([]*regexp.Regexp, error) {
	if len(o.IncludePatterns) == 0 {
		return []*regexp.Regexp{regexp.MustCompile(`.*`)}, nil
	}
	patterns := make([]*regexp.Regexp, len(o.IncludePatterns))
	for i, raw := range o.IncludePatterns {
		pattern, err := regexp.Compile(raw)
		if err != nil {
			return nil, err
		}
		patterns[i] = pattern
	}
	return patterns, nil
}

// sourceReader hands out verbatim declaration text by extent offsets,
// caching each file's content for the duration of one extraction run.
// Files are only ever read.
type sourceReader struct {
	files map[string][]byte
}

func newSourceReader() *sourceReader {
	return &sourceReader{files: make(map[string][]byte)}
}

func (r *sourceReader) textFor(cursor clang.Cursor) string {
	extent := cursor.Extent()
	file, _, _, start := extent.Start().FileLocation()
	_, _, _, end := extent.End().FileLocation()
	name := file.Name()
	if name == "" {
		return ""
	}
	content, ok := r.files[name]
	if !ok {
		data, err := os.ReadFile(name)
		if err != nil {
			return ""
		}
		content = data
		r.files[name] = content
	}
	if int(end) > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

// Collector walks the top-level children of a translation unit and turns
// the declarations of interest into output definitions. Nested
// declarations are only reached through the type graph.
type Collector struct {
	canon    *Canonicalizer
	macros   *macroScanner
	opts     *Options
	patterns []*regexp.Regexp
	cwd      string

	// Variables and functions in traversal order. Type definitions live
	// in the canonicalizer's registry and are prepended at the end.
	decls []Definition
}

func NewCollector(canon *Canonicalizer, opts *Options) (*Collector, error) {
	patterns, err := opts.compilePatterns()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return &Collector{
		canon:    canon,
		macros:   newMacroScanner(),
		opts:     opts,
		patterns: patterns,
		cwd:      cwd,
	}, nil
}

// ScanHeader gathers macro candidates from a header directly. The walk
// only reaches a file through its declarations, so a header holding
// nothing but #define lines would otherwise contribute no candidates.
func (c *Collector) ScanHeader(path string) {
	path = c.relativePath(path)
	if c.pathIncluded(path) {
		c.macros.ScanFile(path)
	}
}

// Collect processes every top-level child of the translation unit cursor.
func (c *Collector) Collect(root clang.Cursor) error {
	var visitErr error
	root.Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if err := c.processDeclaration(cursor); err != nil {
			visitErr = err
			return clang.ChildVisit_Break
		}
		return clang.ChildVisit_Continue
	})
	return visitErr
}

func (c *Collector) processDeclaration(cursor clang.Cursor) error {
	path, ok := c.declarationPath(cursor)
	if !ok {
		// Builtin and compiler-synthesized declarations have no file.
		return nil
	}
	if !c.pathIncluded(path) {
		return nil
	}
	c.macros.ScanFile(path)

	switch cursor.Kind() {
	case clang.Cursor_VarDecl:
		return c.collectVariable(cursor)
	case clang.Cursor_FunctionDecl:
		return c.collectFunction(cursor)
	case clang.Cursor_TypedefDecl, clang.Cursor_EnumDecl,
		clang.Cursor_StructDecl, clang.Cursor_UnionDecl:
		// Type declarations are not appended here; canonicalization
		// registers them and the registry is flattened into the output
		// ahead of the declarations that reference them.
		_, err := c.canon.Canonicalize(cursor.Type())
		return err
	}
	return nil
}

// declarationPath resolves the declaration's file, relative to the
// current working directory when it lies beneath it.
func (c *Collector) declarationPath(cursor clang.Cursor) (string, bool) {
	file, _, _, _ := cursor.Location().FileLocation()
	name := file.Name()
	if name == "" {
		return "", false
	}
	return c.relativePath(name), true
}

// relativePath rewrites a path below the current working directory to
// its cwd-relative form, matching how include patterns are written.
func (c *Collector) relativePath(name string) string {
	if c.cwd != "" {
		if rel, err := filepath.Rel(c.cwd, name); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return name
}

func (c *Collector) pathIncluded(path string) bool {
	for _, pattern := range c.patterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

func (c *Collector) collectVariable(cursor clang.Cursor) error {
	varType, err := c.canon.Canonicalize(cursor.Type())
	if err != nil {
		return err
	}
	variable := Variable{
		Name: cursor.Spelling(),
		Type: varType,
	}
	if c.opts.IncludeSource {
		variable.Source = c.canon.source.textFor(cursor)
	}
	c.decls = append(c.decls, variable)
	return nil
}

func (c *Collector) collectFunction(cursor clang.Cursor) error {
	funcType, err := c.canon.Canonicalize(cursor.Type())
	if err != nil {
		return err
	}
	function := Function{
		Name:     cursor.Spelling(),
		Return:   funcType.Return,
		Variadic: funcType.Variadic,
	}
	numParams := cursor.NumArguments()
	for i := uint32(0); i < uint32(numParams); i++ {
		param := cursor.Argument(i)
		paramType, err := c.canon.Canonicalize(param.Type())
		if err != nil {
			return err
		}
		name := param.Spelling()
		if name == "" {
			name = fallbackArgName(int(i))
		}
		function.Arguments = append(function.Arguments, Argument{
			Name: name,
			Type: paramType,
		})
	}
	if c.opts.IncludeSource {
		function.Source = c.canon.source.textFor(cursor)
	}
	c.decls = append(c.decls, function)
	return nil
}

// fallbackArgName names a parameter the header left unnamed. Words keep
// the output readable and stable across runs.
func fallbackArgName(index int) string {
	word := num2words.Convert(index + 1)
	word = strings.ReplaceAll(word, " ", "_")
	word = strings.ReplaceAll(word, "-", "_")
	return "arg_" + word
}

// Extract runs the whole pipeline over one header: parse, collect
// declarations, resolve macro constants, and assemble the ordered
// definition list.
func Extract(headerPath string, opts *Options) ([]Definition, error) {
	frontend := NewFrontend()
	defer frontend.Dispose()

	tu, err := frontend.ParseHeader(headerPath, opts.ClangArgs)
	if err != nil {
		return nil, err
	}
	defer tu.Dispose()

	canon := NewCanonicalizer(opts)
	collector, err := NewCollector(canon, opts)
	if err != nil {
		return nil, err
	}
	collector.ScanHeader(headerPath)
	if err := collector.Collect(tu.TranslationUnitCursor()); err != nil {
		return nil, err
	}

	constants := ResolveMacros(frontend, canon, headerPath, collector.macros.Names(), opts)

	var defs []Definition
	for _, t := range canon.RegisteredTypes() {
		defs = append(defs, t)
	}
	defs = append(defs, collector.decls...)
	defs = append(defs, constants...)
	return defs, nil
}
