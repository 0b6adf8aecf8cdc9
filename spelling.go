package main

import (
	"regexp"
	"strings"
)

// Text transforms over clang type spellings. These are deliberately
// regex-defined so they track the exact textual forms clang produces.

var (
	// Matches the location marker clang puts in the spelling of an
	// aggregate or enum that has no tag name, e.g.
	// "struct (unnamed at ./demo.h:12:9)". Older clang spells it
	// "(anonymous at ...)".
	anonymousRe = regexp.MustCompile(`\((?:anonymous|unnamed)(?: [a-z]+)? at ([^)]+)\)`)

	nonIdentifierRe = regexp.MustCompile(`\W`)

	recordNameRe = regexp.MustCompile(`^(union|struct)\s+(.+)$`)
	enumNameRe   = regexp.MustCompile(`^enum\s+(.+)$`)

	baseTypeRe       = regexp.MustCompile(`^(?:\s*\b(?:const|volatile|restrict)\b\s*)*(([^[*(]+)(\(?).*)$`)
	typeComponentsRe = regexp.MustCompile(`^([^(]*\(\**|[^[]*)(.*)$`)
)

// SynthesizeAnonymousName derives a stable identifier for a tagless
// aggregate/enum from the location marker in its spelling. Two runs over
// the same header produce the same name. Reports false for named types.
func SynthesizeAnonymousName(spelling string) (string, bool) {
	m := anonymousRe.FindStringSubmatch(spelling)
	if m == nil {
		return "", false
	}
	return nonIdentifierRe.ReplaceAllString("anonymous at "+m[1], "_"), true
}

// RecordName splits a record spelling like "struct Foo" into its tag kind
// and name, sanitizing the name when it embeds a location marker.
func RecordName(spelling string) (tag string, name string, ok bool) {
	m := recordNameRe.FindStringSubmatch(spelling)
	if m == nil {
		return "", "", false
	}
	return m[1], nonIdentifierRe.ReplaceAllString(m[2], "_"), true
}

// EnumName extracts the tag name from an "enum Foo" spelling.
func EnumName(spelling string) (string, bool) {
	m := enumNameRe.FindStringSubmatch(spelling)
	if m == nil {
		return "", false
	}
	return nonIdentifierRe.ReplaceAllString(m[1], "_"), true
}

// BaseType strips const/volatile/restrict specifiers, pointers and array
// suffixes from a spelling, leaving the root type name. Function-pointer
// spellings keep their full declarator shape since there is no shorter
// meaningful root.
func BaseType(spelling string) string {
	m := baseTypeRe.FindStringSubmatch(spelling)
	if m == nil {
		return spelling
	}
	if m[3] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

// TypedDeclaration composes a C declaration of identifier with the given
// type spelling, placing the identifier correctly for array lengths and
// function pointer argument lists.
func TypedDeclaration(spelling, identifier string) string {
	m := typeComponentsRe.FindStringSubmatch(spelling)
	head, tail := m[1], m[2]
	if tail == "" {
		return head + " " + identifier
	}
	return head + identifier + tail
}
