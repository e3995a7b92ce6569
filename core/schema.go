package core

import (
	"fmt"
	"strings"
)

// CoerceFunc converts an incoming value to its canonical in-memory form.
// It may fail on invalid input; the setter logs and propagates the failure.
type CoerceFunc func(value any) (any, error)

// ToPrimitiveFunc converts a canonical in-memory value to its wire form.
type ToPrimitiveFunc func(codec *Codec, value any) (any, error)

// FromPrimitiveFunc converts a wire value back to the canonical in-memory
// form before it is handed to the field setter.
type FromPrimitiveFunc func(codec *Codec, caller *RequestContext, value any) (any, error)

// FieldDescriptor declares a single named, typed slot on an object type.
// ToPrimitive and FromPrimitive are optional; when absent the stored value
// is assumed wire-safe as-is.
type FieldDescriptor struct {
	Name          string
	Coerce        CoerceFunc
	ToPrimitive   ToPrimitiveFunc
	FromPrimitive FromPrimitiveFunc
}

// Schema is a type's effective field set: its own declarations merged over
// all ancestors', most-derived winning on name collision. A Schema is built
// once at type definition time and never mutated afterwards; merging copies
// the parent's descriptors so no ancestor schema is ever altered.
type Schema struct {
	fields map[string]FieldDescriptor
	order  []string
}

func NewSchema(parent *Schema, fields ...FieldDescriptor) (*Schema, error) {
	s := &Schema{fields: map[string]FieldDescriptor{}}
	if parent != nil {
		for _, name := range parent.order {
			s.fields[name] = parent.fields[name]
			s.order = append(s.order, name)
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, fmt.Errorf("core: field name is required")
		}
		if field.Coerce == nil {
			return nil, fmt.Errorf("core: field %q requires a coercion function", name)
		}
		field.Name = name
		if _, inherited := s.fields[name]; !inherited {
			s.order = append(s.order, name)
		}
		s.fields[name] = field
	}
	return s, nil
}

// MustSchema is NewSchema for definition-time construction.
func MustSchema(parent *Schema, fields ...FieldDescriptor) *Schema {
	s, err := NewSchema(parent, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Lookup(name string) (FieldDescriptor, bool) {
	if s == nil {
		return FieldDescriptor{}, false
	}
	field, ok := s.fields[name]
	return field, ok
}

func (s *Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names returns field names in declaration order, inherited names first.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}
