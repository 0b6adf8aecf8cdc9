package main

import "testing"

func TestSynthesizeAnonymousName(t *testing.T) {
	tests := []struct {
		name     string
		spelling string
		want     string
		wantOK   bool
	}{
		{
			name:     "unnamed_struct",
			spelling: "struct (unnamed at /tmp/demo.h:12:9)",
			want:     "anonymous_at__tmp_demo_h_12_9",
			wantOK:   true,
		},
		{
			name:     "anonymous_union_older_clang",
			spelling: "union (anonymous union at ./geometry.h:3:1)",
			want:     "anonymous_at___geometry_h_3_1",
			wantOK:   true,
		},
		{
			name:     "unnamed_enum",
			spelling: "enum (unnamed at colors.h:7:1)",
			want:     "anonymous_at_colors_h_7_1",
			wantOK:   true,
		},
		{
			name:     "named_struct",
			spelling: "struct Point",
			wantOK:   false,
		},
		{
			name:     "primitive",
			spelling: "unsigned int",
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SynthesizeAnonymousName(tt.spelling)
			if ok != tt.wantOK {
				t.Fatalf("SynthesizeAnonymousName(%q) ok = %v, want %v", tt.spelling, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SynthesizeAnonymousName(%q) = %q, want %q", tt.spelling, got, tt.want)
			}
		})
	}
}

func TestSynthesizeAnonymousNameIsStable(t *testing.T) {
	spelling := "struct (unnamed at /usr/include/demo.h:42:5)"
	first, _ := SynthesizeAnonymousName(spelling)
	second, _ := SynthesizeAnonymousName(spelling)
	if first != second {
		t.Errorf("two runs disagree: %q vs %q", first, second)
	}
}

func TestRecordName(t *testing.T) {
	tag, name, ok := RecordName("struct Point")
	if !ok || tag != "struct" || name != "Point" {
		t.Errorf("RecordName(struct Point) = %q, %q, %v", tag, name, ok)
	}
	tag, name, ok = RecordName("union Value")
	if !ok || tag != "union" || name != "Value" {
		t.Errorf("RecordName(union Value) = %q, %q, %v", tag, name, ok)
	}
	if _, _, ok := RecordName("Point"); ok {
		t.Error("RecordName(Point) matched a typedef-style spelling")
	}
}

func TestEnumName(t *testing.T) {
	name, ok := EnumName("enum Color")
	if !ok || name != "Color" {
		t.Errorf("EnumName(enum Color) = %q, %v", name, ok)
	}
	if _, ok := EnumName("Color"); ok {
		t.Error("EnumName(Color) matched without the enum tag")
	}
}

func TestBaseType(t *testing.T) {
	tests := []struct {
		spelling string
		want     string
	}{
		{"int", "int"},
		{"unsigned long long", "unsigned long long"},
		{"const char *", "char"},
		{"const volatile int", "int"},
		{"struct Point", "struct Point"},
		{"struct Point *", "struct Point"},
		{"int [10]", "int"},
		{"int *[8]", "int"},
		{"void (*)(int)", "void (*)(int)"},
		{"restrict const char *", "char"},
	}
	for _, tt := range tests {
		t.Run(tt.spelling, func(t *testing.T) {
			if got := BaseType(tt.spelling); got != tt.want {
				t.Errorf("BaseType(%q) = %q, want %q", tt.spelling, got, tt.want)
			}
		})
	}
}

func TestTypedDeclaration(t *testing.T) {
	tests := []struct {
		spelling   string
		identifier string
		want       string
	}{
		{"int", "x", "int x"},
		{"const char *", "name", "const char * name"},
		{"int [10]", "arr", "int arr[10]"},
		{"void (*)(int)", "cb", "void (*cb)(int)"},
		{"int (*)[4]", "rows", "int (*rows)[4]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := TypedDeclaration(tt.spelling, tt.identifier); got != tt.want {
				t.Errorf("TypedDeclaration(%q, %q) = %q, want %q", tt.spelling, tt.identifier, got, tt.want)
			}
		})
	}
}
