package main

import (
	"bytes"
	"encoding/json"

	orderedmap "cextract/ordered_map"
)

// jsonObject is a JSON object whose keys marshal in insertion order, so
// two runs over the same header render byte-identical output.
type jsonObject struct {
	fields *orderedmap.OrderedMap[string, any]
}

func newJSONObject() *jsonObject {
	return &jsonObject{fields: orderedmap.New[string, any]()}
}

func (o *jsonObject) set(key string, value any) {
	o.fields.Set(key, value)
}

func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.fields.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, _ := o.fields.Get(key)
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Definition is anything that serializes as a top-level entry of the
// output list: canonical type definitions, variables, functions and macro
// constants.
type Definition interface {
	definitionJSON(opts *Options) *jsonObject
}

// Serialize renders the ordered definition list, two-space indented by
// default or minified when opts.Compact is set.
func Serialize(defs []Definition, opts *Options) ([]byte, error) {
	objects := make([]*jsonObject, len(defs))
	for i, def := range defs {
		objects[i] = def.definitionJSON(opts)
	}
	if opts.Compact {
		return json.Marshal(objects)
	}
	return json.MarshalIndent(objects, "", "  ")
}

// referenceJSON is the compact form a type takes when mentioned inside
// another definition. Registered types (struct/union/enum/typedef) appear
// by name only; their payload lives in their own top-level definition.
// This shallowness is also what makes cyclic type graphs serializable.
func (t *Type) referenceJSON(opts *Options) *jsonObject {
	obj := newJSONObject()
	obj.set("kind", string(t.Kind))
	obj.set("spelling", t.Spelling)
	if t.registered() {
		obj.set("name", t.DisplayName())
		if t.Anonymous {
			obj.set("anonymous", true)
		}
	}
	switch t.Kind {
	case KindPointer:
		obj.set("pointer", t.Markers)
		obj.set("element_type", t.Element.referenceJSON(opts))
		if t.Function != nil {
			obj.set("function", t.Function.referenceJSON(opts))
		}
	case KindArray:
		obj.set("array", t.Markers)
		obj.set("element_type", t.Element.referenceJSON(opts))
	case KindFunction:
		obj.set("return_type", t.Return.referenceJSON(opts))
		obj.set("arguments", typeListJSON(t.Arguments, opts))
		if t.Variadic {
			obj.set("variadic", true)
		}
	}
	t.qualifierJSON(obj)
	obj.set("base", t.Base)
	if opts.IncludeSize {
		obj.set("size", t.Size)
	}
	return obj
}

func (t *Type) qualifierJSON(obj *jsonObject) {
	if t.Const {
		obj.set("const", true)
	}
	if t.Volatile {
		obj.set("volatile", true)
	}
	if t.Restrict {
		obj.set("restrict", true)
	}
}

func typeListJSON(types []*Type, opts *Options) []*jsonObject {
	list := make([]*jsonObject, len(types))
	for i, t := range types {
		list[i] = t.referenceJSON(opts)
	}
	return list
}

// definitionJSON is the full form a registered type takes as its own
// top-level output entry.
func (t *Type) definitionJSON(opts *Options) *jsonObject {
	obj := newJSONObject()
	obj.set("kind", string(t.Kind))
	obj.set("name", t.DisplayName())
	obj.set("spelling", t.Spelling)
	if t.Anonymous {
		obj.set("anonymous", true)
	}
	switch t.Kind {
	case KindStruct, KindUnion:
		if t.Opaque {
			obj.set("opaque", true)
		}
		fields := make([]*jsonObject, len(t.Fields))
		for i, field := range t.Fields {
			entry := newJSONObject()
			entry.set("name", field.Name)
			entry.set("type", field.Type.referenceJSON(opts))
			if opts.IncludeOffset {
				entry.set("offset", field.Offset)
			}
			fields[i] = entry
		}
		obj.set("fields", fields)
	case KindEnum:
		obj.set("type", t.EnumType.referenceJSON(opts))
		values := make([]*jsonObject, len(t.Values))
		for i, value := range t.Values {
			entry := newJSONObject()
			entry.set("name", value.Name)
			entry.set("value", value.Value)
			values[i] = entry
		}
		obj.set("values", values)
	case KindTypedef:
		obj.set("type", t.Underlying.referenceJSON(opts))
	}
	if opts.IncludeSize {
		obj.set("size", t.Size)
	}
	if opts.IncludeSource && t.Source != "" {
		obj.set("source", t.Source)
	}
	return obj
}

func (v Variable) definitionJSON(opts *Options) *jsonObject {
	obj := newJSONObject()
	obj.set("kind", "var")
	obj.set("name", v.Name)
	obj.set("type", v.Type.referenceJSON(opts))
	if opts.IncludeSource && v.Source != "" {
		obj.set("source", v.Source)
	}
	return obj
}

func (f Function) definitionJSON(opts *Options) *jsonObject {
	obj := newJSONObject()
	obj.set("kind", "function")
	obj.set("name", f.Name)
	obj.set("return_type", f.Return.referenceJSON(opts))
	args := make([]*jsonObject, len(f.Arguments))
	for i, arg := range f.Arguments {
		entry := newJSONObject()
		entry.set("name", arg.Name)
		entry.set("type", arg.Type.referenceJSON(opts))
		args[i] = entry
	}
	obj.set("arguments", args)
	if f.Variadic {
		obj.set("variadic", true)
	}
	if opts.IncludeSource && f.Source != "" {
		obj.set("source", f.Source)
	}
	return obj
}

func (c Constant) definitionJSON(opts *Options) *jsonObject {
	obj := newJSONObject()
	obj.set("kind", "const")
	obj.set("name", c.Name)
	obj.set("type", c.Type.referenceJSON(opts))
	return obj
}
