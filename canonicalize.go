package main

import (
	"fmt"

	"github.com/go-clang/clang-v13/clang"

	orderedmap "cextract/ordered_map"
)

// Canonicalizer turns clang type handles into canonical Type nodes. Nodes
// for structs, unions, enums and typedefs are memoized by the hash of
// their underlying declaration cursor, so every reference to the same
// declaration shares one node. The registry doubles as the ordered list
// of type definitions for the output: first canonicalization wins the
// position.
type Canonicalizer struct {
	registry *orderedmap.OrderedMap[uint32, *Type]
	// Cursor hashes are only stable within one translation unit. Probe
	// compilations re-declare the same header types in fresh units, so
	// the normalized spelling (which embeds the location for anonymous
	// types) serves as the cross-unit identity.
	bySpelling map[string]*Type
	opts       *Options
	source     *sourceReader
}

func NewCanonicalizer(opts *Options) *Canonicalizer {
	return &Canonicalizer{
		registry:   orderedmap.New[uint32, *Type](),
		bySpelling: make(map[string]*Type),
		opts:       opts,
		source:     newSourceReader(),
	}
}

// RegisteredTypes returns the canonical struct/union/enum/typedef nodes
// in first-seen order.
func (c *Canonicalizer) RegisteredTypes() []*Type {
	return c.registry.Values()
}

func (c *Canonicalizer) lookup(hash uint32, spelling string) (*Type, bool) {
	if cached, ok := c.registry.Get(hash); ok {
		return cached, true
	}
	cached, ok := c.bySpelling[spelling]
	return cached, ok
}

func (c *Canonicalizer) register(hash uint32, t *Type) {
	c.registry.Set(hash, t)
	c.bySpelling[t.Spelling] = t
}

var primitiveKinds = map[clang.TypeKind]TypeKind{
	clang.Type_Void: KindVoid,
	clang.Type_Bool: KindBool,

	clang.Type_Char_S: KindChar,
	clang.Type_Char_U: KindChar,
	clang.Type_SChar:  KindChar,
	clang.Type_UChar:  KindChar,
	clang.Type_WChar:  KindChar,
	clang.Type_Char16: KindChar,
	clang.Type_Char32: KindChar,

	clang.Type_Short:    KindInt,
	clang.Type_Int:      KindInt,
	clang.Type_Long:     KindInt,
	clang.Type_LongLong: KindInt,
	clang.Type_Int128:   KindInt,

	clang.Type_UShort:    KindUint,
	clang.Type_UInt:      KindUint,
	clang.Type_ULong:     KindUint,
	clang.Type_ULongLong: KindUint,
	clang.Type_UInt128:   KindUint,

	clang.Type_Float:      KindFloat,
	clang.Type_Double:     KindFloat,
	clang.Type_LongDouble: KindFloat,
	clang.Type_Float128:   KindFloat,
}

// Canonicalize resolves a clang type handle to its canonical node.
// Unknown clang type kinds are a fatal extraction error: silently
// dropping a type would leave a hole in the API description.
func (c *Canonicalizer) Canonicalize(ty clang.Type) (*Type, error) {
	kind := ty.Kind()

	// Compiler-level wrappers resolve to the type they name before any
	// dispatch happens.
	switch kind {
	case clang.Type_Elaborated:
		return c.Canonicalize(ty.NamedType())
	case clang.Type_Auto, clang.Type_Unexposed:
		canonical := ty.CanonicalType()
		if canonical.Kind() != kind {
			return c.Canonicalize(canonical)
		}
	}

	if primitive, ok := primitiveKinds[kind]; ok {
		return c.primitive(ty, primitive), nil
	}

	switch kind {
	case clang.Type_Pointer:
		return c.pointerOrArray(ty, KindPointer)
	case clang.Type_ConstantArray, clang.Type_IncompleteArray, clang.Type_VariableArray:
		return c.pointerOrArray(ty, KindArray)
	case clang.Type_FunctionProto, clang.Type_FunctionNoProto:
		return c.functionType(ty)
	case clang.Type_Record:
		return c.recordType(ty)
	case clang.Type_Enum:
		return c.enumType(ty)
	case clang.Type_Typedef:
		return c.typedefType(ty)
	}

	return nil, &UnsupportedTypeError{
		ClangKind: ty.Kind().Spelling(),
		Spelling:  ty.Spelling(),
		Location:  cursorLocation(ty.Declaration()),
	}
}

// primitive builds an unregistered leaf node for a coarse primitive
// bucket. The exact spelling is preserved for downstream width recovery.
func (c *Canonicalizer) primitive(ty clang.Type, kind TypeKind) *Type {
	t := &Type{
		Kind:     kind,
		Spelling: ty.Spelling(),
	}
	c.annotate(t, ty)
	return t
}

// pointerOrArray decomposes the whole indirection chain outer-to-inner,
// one marker per level, then canonicalizes the ultimate base type once.
func (c *Canonicalizer) pointerOrArray(ty clang.Type, kind TypeKind) (*Type, error) {
	markers, base := decompose(ty)
	element, err := c.Canonicalize(base)
	if err != nil {
		return nil, err
	}
	t := &Type{
		Kind:     kind,
		Spelling: base.Spelling(),
		Markers:  markers,
		Element:  element,
	}
	if kind == KindPointer && element.Kind == KindFunction {
		t.Function = element
	}
	// Qualifiers stay on the element node; the wrapper only records the
	// stripped textual root and its own size.
	t.Base = BaseType(t.Spelling)
	if c.opts.IncludeSize {
		if size := ty.SizeOf(); size > 0 {
			t.Size = size
		}
	}
	return t, nil
}

// decompose walks pointers and array dimensions from the outside in,
// recording "*" for pointers and incomplete dimensions and the length for
// fixed dimensions, until a non-pointer non-array type remains.
func decompose(ty clang.Type) ([]any, clang.Type) {
	var markers []any
	for {
		switch ty.Kind() {
		case clang.Type_Pointer:
			markers = append(markers, ArrayIncomplete)
			ty = ty.PointeeType()
		case clang.Type_ConstantArray:
			markers = append(markers, ty.ArraySize())
			ty = ty.ArrayElementType()
		case clang.Type_IncompleteArray, clang.Type_VariableArray:
			markers = append(markers, ArrayIncomplete)
			ty = ty.ArrayElementType()
		case clang.Type_Elaborated:
			ty = ty.NamedType()
		default:
			return markers, ty
		}
	}
}

func (c *Canonicalizer) functionType(ty clang.Type) (*Type, error) {
	returnType, err := c.Canonicalize(ty.ResultType())
	if err != nil {
		return nil, err
	}
	t := &Type{
		Kind:     KindFunction,
		Spelling: ty.Spelling(),
		Return:   returnType,
	}
	// A function type without a prototype cannot enumerate parameters
	// and is never variadic.
	if ty.Kind() == clang.Type_FunctionProto {
		numArgs := ty.NumArgTypes()
		for i := uint32(0); i < uint32(numArgs); i++ {
			argument, err := c.Canonicalize(ty.ArgType(i))
			if err != nil {
				return nil, err
			}
			t.Arguments = append(t.Arguments, argument)
		}
		t.Variadic = ty.IsFunctionTypeVariadic()
	}
	c.annotate(t, ty)
	return t, nil
}

func (c *Canonicalizer) recordType(ty clang.Type) (*Type, error) {
	declaration := ty.Declaration()
	if primitive, ok := BuiltinKind(declaration.Spelling()); ok {
		return c.primitive(ty, primitive), nil
	}

	kind := KindStruct
	tag := "struct"
	if declaration.Kind() == clang.Cursor_UnionDecl {
		kind = KindUnion
		tag = "union"
	}

	spelling := ty.Spelling()
	t := &Type{Kind: kind}
	if name, ok := SynthesizeAnonymousName(spelling); ok {
		t.Name = name
		t.Anonymous = true
	} else if _, name, ok := RecordName(spelling); ok {
		t.Name = name
	} else {
		t.Name = spelling
	}
	t.Spelling = fmt.Sprintf("%s %s", tag, t.Name)

	if cached, ok := c.lookup(declaration.HashCursor(), t.Spelling); ok {
		return cached, nil
	}

	c.annotate(t, ty)
	if c.opts.IncludeSource {
		t.Source = c.source.textFor(declaration)
	}

	// Register before recursing so a self-referential aggregate resolves
	// to this node instead of recursing forever.
	c.register(declaration.HashCursor(), t)

	var visitErr error
	declaration.Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if cursor.Kind() != clang.Cursor_FieldDecl {
			return clang.ChildVisit_Continue
		}
		fieldType, err := c.Canonicalize(cursor.Type())
		if err != nil {
			visitErr = err
			return clang.ChildVisit_Break
		}
		field := Field{Name: cursor.Spelling(), Type: fieldType}
		if c.opts.IncludeOffset {
			field.Offset = cursor.OffsetOfField() / 8
		}
		t.Fields = append(t.Fields, field)
		return clang.ChildVisit_Continue
	})
	if visitErr != nil {
		return nil, visitErr
	}
	t.Opaque = len(t.Fields) == 0
	return t, nil
}

func (c *Canonicalizer) enumType(ty clang.Type) (*Type, error) {
	declaration := ty.Declaration()

	spelling := ty.Spelling()
	t := &Type{Kind: KindEnum}
	if name, ok := SynthesizeAnonymousName(spelling); ok {
		t.Name = name
		t.Anonymous = true
	} else if name, ok := EnumName(spelling); ok {
		t.Name = name
	} else {
		t.Name = spelling
	}
	t.Spelling = fmt.Sprintf("enum %s", t.Name)

	if cached, ok := c.lookup(declaration.HashCursor(), t.Spelling); ok {
		return cached, nil
	}

	c.annotate(t, ty)
	if c.opts.IncludeSource {
		t.Source = c.source.textFor(declaration)
	}
	c.register(declaration.HashCursor(), t)

	underlying, err := c.Canonicalize(declaration.EnumDeclIntegerType())
	if err != nil {
		return nil, err
	}
	t.EnumType = underlying

	declaration.Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if cursor.Kind() == clang.Cursor_EnumConstantDecl {
			t.Values = append(t.Values, EnumValue{
				Name:  cursor.Spelling(),
				Value: cursor.EnumConstantDeclValue(),
			})
		}
		return clang.ChildVisit_Continue
	})
	return t, nil
}

func (c *Canonicalizer) typedefType(ty clang.Type) (*Type, error) {
	declaration := ty.Declaration()
	name := declaration.Spelling()
	if primitive, ok := BuiltinKind(name); ok {
		return c.primitive(ty, primitive), nil
	}
	if cached, ok := c.lookup(declaration.HashCursor(), name); ok {
		return cached, nil
	}

	t := &Type{
		Kind:     KindTypedef,
		Name:     name,
		Spelling: name,
	}
	c.annotate(t, ty)
	if c.opts.IncludeSource {
		t.Source = c.source.textFor(declaration)
	}
	c.register(declaration.HashCursor(), t)

	underlying, err := c.Canonicalize(declaration.TypedefDeclUnderlyingType())
	if err != nil {
		return nil, err
	}
	t.Underlying = underlying

	// A typedef naming an otherwise anonymous aggregate becomes its
	// preferred display alias; the synthesized name stays the canonical
	// identity.
	if underlying.Anonymous && underlying.Alias == "" {
		underlying.Alias = name
	}
	return t, nil
}

// annotate captures the attributes every non-wrapper node carries: its
// own qualifier flags, the stripped textual root and, when requested, the
// byte size of the handle.
func (c *Canonicalizer) annotate(t *Type, ty clang.Type) {
	t.Const = ty.IsConstQualifiedType()
	t.Volatile = ty.IsVolatileQualifiedType()
	t.Restrict = ty.IsRestrictQualifiedType()
	t.Base = BaseType(t.Spelling)
	if c.opts.IncludeSize {
		if size := ty.SizeOf(); size > 0 {
			t.Size = size
		}
	}
}

func cursorLocation(cursor clang.Cursor) string {
	if cursor.IsNull() {
		return ""
	}
	file, line, column, _ := cursor.Location().FileLocation()
	if file.Name() == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", file.Name(), line, column)
}
