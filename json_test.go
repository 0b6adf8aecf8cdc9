package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func intType() *Type {
	return &Type{Kind: KindInt, Spelling: "int", Base: "int"}
}

func TestVariableSerialization(t *testing.T) {
	defs := []Definition{
		Variable{Name: "answer", Type: intType()},
	}
	got, err := Serialize(defs, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"kind":"var","name":"answer","type":{"kind":"int","spelling":"int","base":"int"}}]`
	if string(got) != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestQualifierOnBaseNotWrapper(t *testing.T) {
	char := &Type{Kind: KindChar, Spelling: "const char", Const: true, Base: "char"}
	pointer := &Type{
		Kind:     KindPointer,
		Spelling: "const char",
		Markers:  []any{ArrayIncomplete},
		Element:  char,
		Base:     "char",
	}
	got, err := Serialize([]Definition{Variable{Name: "s", Type: pointer}}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}

	var parsed []map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatal(err)
	}
	ref := parsed[0]["type"].(map[string]any)
	if _, ok := ref["const"]; ok {
		t.Error("pointer wrapper carries const")
	}
	element := ref["element_type"].(map[string]any)
	if element["const"] != true {
		t.Error("base char type does not carry const")
	}
}

func TestFunctionPointerPayload(t *testing.T) {
	void := &Type{Kind: KindVoid, Spelling: "void", Base: "void"}
	fn := &Type{
		Kind:      KindFunction,
		Spelling:  "void (int)",
		Return:    void,
		Arguments: []*Type{intType()},
		Base:      "void (int)",
	}
	pointer := &Type{
		Kind:     KindPointer,
		Spelling: "void (int)",
		Markers:  []any{ArrayIncomplete},
		Element:  fn,
		Function: fn,
		Base:     "void (int)",
	}
	got, err := Serialize([]Definition{Variable{Name: "cb", Type: pointer}}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}

	var parsed []map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatal(err)
	}
	ref := parsed[0]["type"].(map[string]any)
	function, ok := ref["function"].(map[string]any)
	if !ok {
		t.Fatal("pointer to function carries no function payload")
	}
	if function["return_type"].(map[string]any)["kind"] != "void" {
		t.Error("wrong return type in function payload")
	}
	args := function["arguments"].([]any)
	if len(args) != 1 || args[0].(map[string]any)["kind"] != "int" {
		t.Errorf("wrong arguments in function payload: %v", args)
	}
}

func TestArrayOfPointersDecompositionOrder(t *testing.T) {
	// int *arr[10] is an array of 10 pointers to int: marker 10 first,
	// then the pointer marker, then the int base.
	array := &Type{
		Kind:     KindArray,
		Spelling: "int",
		Markers:  []any{int64(10), ArrayIncomplete},
		Element:  intType(),
		Base:     "int",
	}
	got, err := Serialize([]Definition{Variable{Name: "arr", Type: array}}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"array":[10,"*"]`) {
		t.Errorf("markers not outer-to-inner: %s", got)
	}
}

func TestEnumDefinition(t *testing.T) {
	enum := &Type{
		Kind:     KindEnum,
		Name:     "Color",
		Spelling: "enum Color",
		Base:     "enum Color",
		EnumType: &Type{Kind: KindUint, Spelling: "unsigned int", Base: "unsigned int"},
		Values: []EnumValue{
			{Name: "RED", Value: 0},
			{Name: "GREEN", Value: 5},
			{Name: "BLUE", Value: 6},
		},
	}
	got, err := Serialize([]Definition{enum}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	want := `"values":[{"name":"RED","value":0},{"name":"GREEN","value":5},{"name":"BLUE","value":6}]`
	if !strings.Contains(string(got), want) {
		t.Errorf("enum values out of order or missing:\n%s", got)
	}
}

func TestSelfReferentialStructSerializes(t *testing.T) {
	node := &Type{
		Kind:     KindStruct,
		Name:     "node",
		Spelling: "struct node",
		Base:     "struct node",
	}
	next := &Type{
		Kind:     KindPointer,
		Spelling: "struct node",
		Markers:  []any{ArrayIncomplete},
		Element:  node,
		Base:     "struct node",
	}
	node.Fields = []Field{
		{Name: "value", Type: intType()},
		{Name: "next", Type: next},
	}

	got, err := Serialize([]Definition{node}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}

	var parsed []map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatal(err)
	}
	fields := parsed[0]["fields"].([]any)
	nextField := fields[1].(map[string]any)["type"].(map[string]any)
	element := nextField["element_type"].(map[string]any)
	if element["name"] != "node" {
		t.Errorf("self reference lost its name: %v", element)
	}
	if _, ok := element["fields"]; ok {
		t.Error("reference form expanded fields; cycles would not terminate")
	}
}

func TestTypedefAliasPreferred(t *testing.T) {
	anon := &Type{
		Kind:      KindStruct,
		Name:      "anonymous_at_demo_h_1_9",
		Alias:     "Point",
		Anonymous: true,
		Spelling:  "struct anonymous_at_demo_h_1_9",
		Base:      "struct anonymous_at_demo_h_1_9",
		Fields:    []Field{{Name: "a", Type: intType()}},
	}
	got, err := Serialize([]Definition{anon}, &Options{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	var parsed []map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed[0]["name"] != "Point" {
		t.Errorf("name = %v, want alias Point", parsed[0]["name"])
	}
	if parsed[0]["anonymous"] != true {
		t.Error("anonymous flag missing")
	}
}

func TestOptionalAttributesGated(t *testing.T) {
	record := &Type{
		Kind:     KindStruct,
		Name:     "S",
		Spelling: "struct S",
		Base:     "struct S",
		Size:     8,
		Source:   "struct S { long x; };",
		Fields:   []Field{{Name: "x", Type: intType(), Offset: 0}},
	}
	tests := []struct {
		name    string
		opts    Options
		present []string
		absent  []string
	}{
		{
			name:    "all_off",
			opts:    Options{Compact: true},
			absent:  []string{`"size"`, `"source"`, `"offset"`},
			present: []string{`"fields"`},
		},
		{
			name:    "all_on",
			opts:    Options{Compact: true, IncludeSize: true, IncludeSource: true, IncludeOffset: true},
			present: []string{`"size":8`, `"source"`, `"offset":0`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize([]Definition{record}, &tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.present {
				if !strings.Contains(string(got), want) {
					t.Errorf("missing %s in %s", want, got)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(string(got), unwanted) {
					t.Errorf("unexpected %s in %s", unwanted, got)
				}
			}
		})
	}
}

func TestSerializeDeterministic(t *testing.T) {
	defs := []Definition{
		&Type{Kind: KindStruct, Name: "S", Spelling: "struct S", Base: "struct S",
			Fields: []Field{{Name: "x", Type: intType()}}},
		Function{Name: "f", Return: intType(),
			Arguments: []Argument{{Name: "arg_one", Type: intType()}}, Variadic: true},
		Constant{Name: "MAX", Type: intType()},
	}
	first, err := Serialize(defs, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Serialize(defs, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two serializations of the same definitions differ")
	}
}

func TestIndentedOutput(t *testing.T) {
	got, err := Serialize([]Definition{Constant{Name: "MAX", Type: intType()}}, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "\n  ") {
		t.Errorf("expected 2 space indentation:\n%s", got)
	}
}
