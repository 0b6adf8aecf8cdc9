package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMacroCandidateScan(t *testing.T) {
	header := `#ifndef DEMO_H
#define DEMO_H

#define MAX 100
#define SQUARE(x) ((x)*(x))
#define	TABBED	42
#define GREETING "hello"
#define MAX 100

int demo(void);

#endif
`
	path := filepath.Join(t.TempDir(), "demo.h")
	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		t.Fatal(err)
	}

	scanner := newMacroScanner()
	scanner.ScanFile(path)
	scanner.ScanFile(path) // second visit of the same file is a no-op

	got := scanner.Names()
	want := []string{"MAX", "TABBED", "GREETING"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, name := range got {
		switch name {
		case "SQUARE":
			t.Error("function-like macro SQUARE was scanned as a candidate")
		case "DEMO_H":
			t.Error("replacement-free include guard DEMO_H was scanned as a candidate")
		}
	}
}

func TestMacroScanUnreadableFile(t *testing.T) {
	scanner := newMacroScanner()
	scanner.ScanFile(filepath.Join(t.TempDir(), "missing.h"))
	if len(scanner.Names()) != 0 {
		t.Errorf("Names() = %v for unreadable file", scanner.Names())
	}
}

func TestProbeProgram(t *testing.T) {
	got := probeProgram("/include/demo.h", "MAX")
	if !strings.Contains(got, `#include "/include/demo.h"`) {
		t.Errorf("probe does not include the header: %s", got)
	}
	if !strings.Contains(got, "__auto_type cextract_probe_MAX = MAX;") {
		t.Errorf("probe does not assign the macro: %s", got)
	}
}
