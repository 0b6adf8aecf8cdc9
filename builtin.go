package main

// builtinKinds maps typedef and record names that belong to the C
// standard library or the platform ABI to the primitive kind they fold
// into. A declaration whose name appears here is never re-expanded into a
// user-facing struct/typedef definition; downstream generators already
// know these types.
var builtinKinds = map[string]TypeKind{
	"size_t":    KindUint,
	"rsize_t":   KindUint,
	"ssize_t":   KindInt,
	"ptrdiff_t": KindInt,
	"intptr_t":  KindInt,
	"uintptr_t": KindUint,

	"int8_t":   KindInt,
	"int16_t":  KindInt,
	"int32_t":  KindInt,
	"int64_t":  KindInt,
	"uint8_t":  KindUint,
	"uint16_t": KindUint,
	"uint32_t": KindUint,
	"uint64_t": KindUint,

	"int_least8_t":   KindInt,
	"int_least16_t":  KindInt,
	"int_least32_t":  KindInt,
	"int_least64_t":  KindInt,
	"uint_least8_t":  KindUint,
	"uint_least16_t": KindUint,
	"uint_least32_t": KindUint,
	"uint_least64_t": KindUint,
	"int_fast8_t":    KindInt,
	"int_fast16_t":   KindInt,
	"int_fast32_t":   KindInt,
	"int_fast64_t":   KindInt,
	"uint_fast8_t":   KindUint,
	"uint_fast16_t":  KindUint,
	"uint_fast32_t":  KindUint,
	"uint_fast64_t":  KindUint,

	"intmax_t":  KindInt,
	"uintmax_t": KindUint,
	"wchar_t":   KindInt,
	"wint_t":    KindInt,
	"char16_t":  KindChar,
	"char32_t":  KindChar,

	"float_t":  KindFloat,
	"double_t": KindFloat,
}

// BuiltinKind reports the primitive kind a reserved builtin type name
// folds into.
func BuiltinKind(name string) (TypeKind, bool) {
	kind, ok := builtinKinds[name]
	return kind, ok
}
