package core

import (
	"fmt"
	"strings"
)

// DefaultNamespace is the wire namespace tag stamped on every primitive
// payload unless the runtime is configured otherwise.
const DefaultNamespace = "objects"

// Codec converts object graphs to and from the namespace-tagged primitive
// representation used for wire transport and storage:
//
//	{
//	  "<ns>.name":      "<type name>",
//	  "<ns>.namespace": "<ns>",
//	  "<ns>.version":   "<major>.<minor>",
//	  "<ns>.data":      {field: primitive, ...},
//	  "<ns>.changes":   [field, ...],      // only when non-empty
//	}
type Codec struct {
	registry  *TypeRegistry
	namespace string
}

func NewCodec(registry *TypeRegistry, namespace string) (*Codec, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if strings.ContainsAny(namespace, ". ") {
		return nil, fmt.Errorf("core: invalid codec namespace %q", namespace)
	}
	return &Codec{registry: registry, namespace: namespace}, nil
}

func (c *Codec) Registry() *TypeRegistry { return c.registry }

func (c *Codec) Namespace() string { return c.namespace }

func (c *Codec) key(suffix string) string {
	return c.namespace + "." + suffix
}

// NameKey is the payload key whose presence marks a map as an encoded
// object; the serializer keys off it during deserialization.
func (c *Codec) NameKey() string { return c.key("name") }

// ToPrimitive encodes every currently-set field of obj, applying per-field
// wire hooks where the type declares them.
func (c *Codec) ToPrimitive(obj *Object) (map[string]any, error) {
	if obj == nil {
		return nil, fmt.Errorf("core: cannot encode a nil object")
	}
	data := map[string]any{}
	for _, name := range obj.Schema().Names() {
		value, set := obj.values[name]
		if !set {
			continue
		}
		field, _ := obj.Schema().Lookup(name)
		if field.ToPrimitive != nil {
			encoded, err := field.ToPrimitive(c, value)
			if err != nil {
				return nil, fmt.Errorf("core: encode %s.%s: %w", obj.TypeName(), name, err)
			}
			data[name] = encoded
			continue
		}
		data[name] = value
	}
	payload := map[string]any{
		c.key("name"):      obj.TypeName(),
		c.key("namespace"): c.namespace,
		c.key("version"):   obj.Version(),
		c.key("data"):      data,
	}
	if changed := obj.WhatChanged(); len(changed) > 0 {
		payload[c.key("changes")] = changed
	}
	return payload, nil
}

// FromPrimitive hydrates a payload into an instance of the registered type
// resolved for the payload's name and version, bound to caller. Fields the
// resolved schema does not recognize are dropped silently, as are reported
// changes for them; that is what lets a lower minor revision consume
// payloads from a higher one.
func (c *Codec) FromPrimitive(payload map[string]any, caller *RequestContext) (*Object, error) {
	if payload == nil {
		return nil, fmt.Errorf("core: cannot decode a nil payload")
	}
	namespace, _ := payload[c.key("namespace")].(string)
	if namespace != c.namespace {
		return nil, fmt.Errorf("%w: %s.%v", ErrUnsupportedObjectType, namespace, payload[c.key("name")])
	}
	name, ok := payload[c.key("name")].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("core: payload is missing %s", c.key("name"))
	}
	version, ok := payload[c.key("version")].(string)
	if !ok {
		return nil, fmt.Errorf("core: payload is missing %s", c.key("version"))
	}

	def, err := c.registry.Resolve(name, version)
	if err != nil {
		return nil, err
	}
	obj, err := NewObject(def, caller, nil)
	if err != nil {
		return nil, err
	}
	obj.setVersion(version)

	data, _ := payload[c.key("data")].(map[string]any)
	for _, fieldName := range def.Schema.Names() {
		raw, present := data[fieldName]
		if !present {
			continue
		}
		field, _ := def.Schema.Lookup(fieldName)
		value := raw
		if field.FromPrimitive != nil {
			value, err = field.FromPrimitive(c, caller, raw)
			if err != nil {
				return nil, fmt.Errorf("core: decode %s.%s: %w", name, fieldName, err)
			}
		}
		if err := obj.Set(fieldName, value); err != nil {
			return nil, err
		}
	}

	obj.replaceChanged(stringSlice(payload[c.key("changes")]))
	return obj, nil
}

// Dump recursively turns a value into bare primitives: object lists become
// arrays, objects become nested mappings of their set fields, everything
// else passes through.
func (c *Codec) Dump(value any) any {
	switch v := value.(type) {
	case *List:
		return c.Dump(v.Object)
	case *Object:
		if v.def.IsList {
			elems, _ := v.values[objectsFieldName].([]*Object)
			out := make([]any, 0, len(elems))
			for _, elem := range elems {
				out = append(out, c.Dump(elem))
			}
			return out
		}
		result := map[string]any{}
		for name, item := range v.values {
			result[name] = c.Dump(item)
		}
		return result
	case []*Object:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, c.Dump(item))
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, c.Dump(item))
		}
		return out
	default:
		return value
	}
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
