package core

import (
	"fmt"
)

// Set is an unordered value collection. The primitive encoding has no native
// set type, so sets travel as arrays with unspecified element order.
type Set map[any]struct{}

func NewSet(values ...any) Set {
	s := make(Set, len(values))
	for _, value := range values {
		s[value] = struct{}{}
	}
	return s
}

func (s Set) Add(value any) { s[value] = struct{}{} }

func (s Set) Has(value any) bool {
	_, ok := s[value]
	return ok
}

func (s Set) Len() int { return len(s) }

// Values returns the elements in unspecified order.
func (s Set) Values() []any {
	out := make([]any, 0, len(s))
	for value := range s {
		out = append(out, value)
	}
	return out
}

// Serializer is the object-aware entity codec handed to the transport
// layer. It applies the primitive codec recursively through slices and
// sets, hydrates any map carrying the namespace name key back into an
// object, and passes everything else through untouched.
type Serializer struct {
	codec *Codec
}

func NewSerializer(codec *Codec) (*Serializer, error) {
	if codec == nil {
		var err error
		codec, err = NewCodec(nil, "")
		if err != nil {
			return nil, err
		}
	}
	return &Serializer{codec: codec}, nil
}

func (s *Serializer) SerializeEntity(caller *RequestContext, entity any) (any, error) {
	switch v := entity.(type) {
	case *Object:
		return s.codec.ToPrimitive(v)
	case *List:
		return s.codec.ToPrimitive(v.Object)
	case []any:
		out := make([]any, 0, len(v))
		for i, item := range v {
			serialized, err := s.SerializeEntity(caller, item)
			if err != nil {
				return nil, fmt.Errorf("core: serialize element %d: %w", i, err)
			}
			out = append(out, serialized)
		}
		return out, nil
	case Set:
		out := make([]any, 0, len(v))
		for item := range v {
			serialized, err := s.SerializeEntity(caller, item)
			if err != nil {
				return nil, err
			}
			out = append(out, serialized)
		}
		return out, nil
	default:
		return entity, nil
	}
}

func (s *Serializer) DeserializeEntity(caller *RequestContext, entity any) (any, error) {
	switch v := entity.(type) {
	case map[string]any:
		if _, ok := v[s.codec.NameKey()]; ok {
			return s.codec.FromPrimitive(v, caller)
		}
		return entity, nil
	case []any:
		out := make([]any, 0, len(v))
		for i, item := range v {
			deserialized, err := s.DeserializeEntity(caller, item)
			if err != nil {
				return nil, fmt.Errorf("core: deserialize element %d: %w", i, err)
			}
			out = append(out, deserialized)
		}
		return out, nil
	case Set:
		out := make(Set, len(v))
		for item := range v {
			deserialized, err := s.DeserializeEntity(caller, item)
			if err != nil {
				return nil, err
			}
			out[deserialized] = struct{}{}
		}
		return out, nil
	default:
		return entity, nil
	}
}
