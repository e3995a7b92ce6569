package core

import (
	"fmt"
)

const objectsFieldName = "objects"

// ObjectsField is the single field an object list carries: an ordered
// sequence of objects serialized as an array of individually-encoded child
// primitives.
func ObjectsField() FieldDescriptor {
	return FieldDescriptor{
		Name:   objectsFieldName,
		Coerce: coerceObjectSlice,
		ToPrimitive: func(codec *Codec, value any) (any, error) {
			elems, _ := value.([]*Object)
			out := make([]any, 0, len(elems))
			for i, elem := range elems {
				encoded, err := codec.ToPrimitive(elem)
				if err != nil {
					return nil, fmt.Errorf("core: encode list element %d: %w", i, err)
				}
				out = append(out, encoded)
			}
			return out, nil
		},
		FromPrimitive: func(codec *Codec, caller *RequestContext, value any) (any, error) {
			raw, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: expected array of encoded objects, got %T", ErrCoercionFailed, value)
			}
			elems := make([]*Object, 0, len(raw))
			for i, item := range raw {
				payload, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%w: list element %d is not an encoded object", ErrCoercionFailed, i)
				}
				elem, err := codec.FromPrimitive(payload, caller)
				if err != nil {
					return nil, fmt.Errorf("core: decode list element %d: %w", i, err)
				}
				elems = append(elems, elem)
			}
			return elems, nil
		},
	}
}

func coerceObjectSlice(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return []*Object(nil), nil
	case []*Object:
		return append([]*Object(nil), v...), nil
	case []any:
		out := make([]*Object, 0, len(v))
		for _, item := range v {
			obj, ok := item.(*Object)
			if !ok {
				return nil, fmt.Errorf("%w: expected object element, got %T", ErrCoercionFailed, item)
			}
			out = append(out, obj)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected object slice, got %T", ErrCoercionFailed, value)
	}
}

// ListSchema is the field set of an object list: just "objects".
func ListSchema() *Schema {
	return MustSchema(nil, ObjectsField())
}

// NewListDefinition builds a definition for an ordered collection of
// objects of a conceptually uniform element type.
func NewListDefinition(name string, version string) *Definition {
	return &Definition{
		Name:    name,
		Version: version,
		Schema:  ListSchema(),
		IsList:  true,
	}
}

// List is an ordered, versioned, serializable collection of objects.
type List struct {
	*Object
}

func NewList(def *Definition, caller *RequestContext, elems ...*Object) (*List, error) {
	if def == nil || !def.IsList {
		return nil, fmt.Errorf("core: list definition is required")
	}
	obj, err := NewObject(def, caller, nil)
	if err != nil {
		return nil, err
	}
	list := &List{Object: obj}
	if len(elems) > 0 {
		if err := list.SetObjects(elems); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// AsList wraps an already-hydrated list object, typically the result of
// decoding a list payload.
func AsList(obj *Object) (*List, error) {
	if obj == nil || !obj.def.IsList {
		return nil, fmt.Errorf("core: object is not a list")
	}
	return &List{Object: obj}, nil
}

// Objects returns the element slice; an unset slot reads as empty.
func (l *List) Objects() []*Object {
	elems, _ := l.values[objectsFieldName].([]*Object)
	return append([]*Object(nil), elems...)
}

func (l *List) SetObjects(elems []*Object) error {
	return l.Set(objectsFieldName, elems)
}

func (l *List) Len() int {
	elems, _ := l.values[objectsFieldName].([]*Object)
	return len(elems)
}

func (l *List) At(index int) (*Object, error) {
	elems, _ := l.values[objectsFieldName].([]*Object)
	if index < 0 || index >= len(elems) {
		return nil, fmt.Errorf("core: list index %d out of range [0,%d)", index, len(elems))
	}
	return elems[index], nil
}
