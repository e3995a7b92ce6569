package core

import (
	"fmt"
	"time"
)

// Coercion helpers for common field shapes. Consumers declare richer ones as
// needed; everything here normalizes wire-friendly inputs (JSON decodes
// numbers as float64, timestamps as strings) into canonical Go values.

func CoerceString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("%w: expected string, got %T", ErrCoercionFailed, value)
	}
}

func CoerceInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrCoercionFailed, v)
		}
		return int(v), nil
	default:
		return nil, fmt.Errorf("%w: expected integer, got %T", ErrCoercionFailed, value)
	}
}

func CoerceBool(value any) (any, error) {
	v, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%w: expected bool, got %T", ErrCoercionFailed, value)
	}
	return v, nil
}

func CoerceFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("%w: expected float, got %T", ErrCoercionFailed, value)
	}
}

// CoerceTime accepts a time.Time or an RFC3339 string.
func CoerceTime(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCoercionFailed, err)
		}
		return parsed.UTC(), nil
	default:
		return nil, fmt.Errorf("%w: expected time, got %T", ErrCoercionFailed, value)
	}
}

func CoerceStringSlice(value any) (any, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected string element, got %T", ErrCoercionFailed, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected string slice, got %T", ErrCoercionFailed, value)
	}
}

func CoerceMap(value any) (any, error) {
	v, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map, got %T", ErrCoercionFailed, value)
	}
	out := make(map[string]any, len(v))
	for key, item := range v {
		out[key] = item
	}
	return out, nil
}

// Nullable wraps a coercion function so it passes nil through untouched.
func Nullable(fn CoerceFunc) CoerceFunc {
	return func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		return fn(value)
	}
}

// TimeToPrimitive serializes a canonical time.Time field to RFC3339.
func TimeToPrimitive(_ *Codec, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	v, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%w: expected time, got %T", ErrCoercionFailed, value)
	}
	return v.UTC().Format(time.RFC3339Nano), nil
}

// TimeFromPrimitive restores an RFC3339 wire timestamp.
func TimeFromPrimitive(_ *Codec, _ *RequestContext, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return CoerceTime(value)
}

// TimeField declares a nullable timestamp field with RFC3339 wire hooks.
func TimeField(name string) FieldDescriptor {
	return FieldDescriptor{
		Name:          name,
		Coerce:        Nullable(CoerceTime),
		ToPrimitive:   TimeToPrimitive,
		FromPrimitive: TimeFromPrimitive,
	}
}

// BaseSchema is the field set every object type inherits: creation and
// update timestamps with datetime wire hooks.
func BaseSchema() *Schema {
	return MustSchema(nil,
		TimeField("created_at"),
		TimeField("updated_at"),
	)
}
