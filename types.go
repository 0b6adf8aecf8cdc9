package main

// TypeKind is the coarse classification of a canonical type node. Signed
// integer widths collapse to Int, unsigned widths to Uint and all floating
// widths to Float; downstream generators re-derive exact widths from the
// spelling and size.
type TypeKind string

const (
	KindVoid     TypeKind = "void"
	KindBool     TypeKind = "bool"
	KindChar     TypeKind = "char"
	KindInt      TypeKind = "int"
	KindUint     TypeKind = "uint"
	KindFloat    TypeKind = "float"
	KindPointer  TypeKind = "pointer"
	KindArray    TypeKind = "array"
	KindFunction TypeKind = "function"
	KindEnum     TypeKind = "enum"
	KindStruct   TypeKind = "struct"
	KindUnion    TypeKind = "union"
	KindTypedef  TypeKind = "typedef"
)

// ArrayIncomplete marks a pointer indirection or an array dimension of
// unknown length in a decomposition chain. Fixed array dimensions are
// recorded as int64 lengths instead.
const ArrayIncomplete = "*"

// Field is one member of a struct or union, in declaration order.
// Offset is a byte offset and only populated when offset output is on.
type Field struct {
	Name   string
	Type   *Type
	Offset int64
}

// EnumValue is one enumerator, in declaration order.
type EnumValue struct {
	Name  string
	Value int64
}

// Type is a canonical type node. Exactly one node exists per underlying
// struct/union/enum/typedef declaration; all references share it. The
// payload fields below Kind are populated per kind only (see json.go for
// which fields each kind serializes).
type Type struct {
	Kind     TypeKind
	Spelling string

	// Name is set for named (or anonymous-synthesized) aggregates, enums
	// and typedefs. Alias is a later typedef's name adopted as the
	// preferred display name of an anonymous aggregate; Name stays the
	// canonical identity.
	Name      string
	Alias     string
	Anonymous bool

	// Qualifiers of the base type reached after unwrapping any
	// pointer/array chain. Never set on the wrapper itself.
	Const    bool
	Volatile bool
	Restrict bool

	// Base is the textual root type name with qualifiers and indirections
	// stripped, for grouping in downstream tools.
	Base string

	// Size in bytes as reported by the frontend; 0 for incomplete types.
	// Only serialized when size output is on.
	Size int64

	// struct/union payload. Opaque means the declaration was visible but
	// carried no field list (forward declaration).
	Fields []Field
	Opaque bool

	// enum payload: the underlying integer type and the enumerators.
	EnumType *Type
	Values   []EnumValue

	// typedef payload.
	Underlying *Type

	// pointer/array payload: the decomposition chain outer-to-inner and
	// the shared base element type. Function is set for pointers whose
	// ultimate pointee is a function type.
	Markers  []any
	Element  *Type
	Function *Type

	// function payload.
	Return    *Type
	Arguments []*Type
	Variadic  bool

	// Verbatim declaration text, only when source output is on.
	Source string
}

// DisplayName prefers a typedef alias adopted by an anonymous aggregate
// over the synthesized canonical name.
func (t *Type) DisplayName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// registered reports whether this node is the kind that lives in the
// canonical registry and is emitted as its own top-level definition.
func (t *Type) registered() bool {
	switch t.Kind {
	case KindStruct, KindUnion, KindEnum, KindTypedef:
		return true
	}
	return false
}

// Argument is a named function parameter.
type Argument struct {
	Name string
	Type *Type
}

// Variable is a global variable declaration.
type Variable struct {
	Name   string
	Type   *Type
	Source string
}

// Function is a function declaration with named parameters.
type Function struct {
	Name      string
	Return    *Type
	Arguments []Argument
	Variadic  bool
	Source    string
}

// Constant is an object-like macro resolved to a typed constant by probe
// compilation.
type Constant struct {
	Name string
	Type *Type
}
