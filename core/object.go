package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Definition describes a registered object type: its canonical wire name,
// schema version, effective field set, and optional storage hooks. A
// Definition is built once at type definition time and registered with a
// TypeRegistry; it is never mutated afterwards.
type Definition struct {
	Name    string
	Version string
	Schema  *Schema

	// ExtraAttributes are read-only derived attribute names exposed next to
	// the field set but excluded from the wire schema.
	ExtraAttributes []string

	// IsList marks object-list definitions so the recursive primitive dump
	// can render them as arrays.
	IsList bool

	Loader    AttributeLoader
	Persister Persister
	Logger    Logger
}

func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("core: object definition is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("core: object type name is required")
	}
	if _, err := ParseVersion(d.Version); err != nil {
		return err
	}
	if d.Schema == nil {
		return fmt.Errorf("core: object type %s requires a schema", d.Name)
	}
	return nil
}

func (d *Definition) logger() Logger {
	if d != nil && d.Logger != nil {
		return d.Logger
	}
	return glog.Nop()
}

// Object is a single versioned object instance. Field slots are two-state
// (unset or holding a coerced value); every mutation through Set records the
// field in the changed-set. Instances are not safe for concurrent mutation.
type Object struct {
	def     *Definition
	version string
	caller  *RequestContext
	values  map[string]any
	changed map[string]struct{}
	extra   map[string]any
}

// NewObject creates an instance of def bound to caller, applying initial
// field values through the regular setters.
func NewObject(def *Definition, caller *RequestContext, initial map[string]any) (*Object, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	o := &Object{
		def:     def,
		version: def.Version,
		caller:  caller,
		values:  map[string]any{},
		changed: map[string]struct{}{},
	}
	if err := o.Update(initial); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Object) Definition() *Definition { return o.def }

func (o *Object) Schema() *Schema { return o.def.Schema }

// TypeName is the canonical identifier used over the wire for hydration.
func (o *Object) TypeName() string { return o.def.Name }

// Version is the instance's stamped version. It matches the definition's
// version unless the instance was hydrated from a payload produced by a
// compatible older schema revision.
func (o *Object) Version() string { return o.version }

func (o *Object) setVersion(version string) { o.version = version }

func (o *Object) Caller() *RequestContext { return o.caller }

// Bind attaches the instance to a caller context. Binding nil orphans it.
func (o *Object) Bind(caller *RequestContext) { o.caller = caller }

// Set coerces value through the field's coercion function, stores the
// canonical result, and records the field as changed. Coercion failures are
// logged with the fully qualified field name and propagated.
func (o *Object) Set(name string, value any) error {
	field, ok := o.def.Schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, o.TypeName(), name)
	}
	coerced, err := field.Coerce(value)
	if err != nil {
		o.def.logger().Error("error setting attribute",
			"attribute", o.TypeName()+"."+name,
			"error", err.Error(),
		)
		return fmt.Errorf("core: error setting %s.%s: %w", o.TypeName(), name, err)
	}
	o.values[name] = coerced
	o.changed[name] = struct{}{}
	return nil
}

// Get returns the field's canonical value. An unset slot triggers the
// definition's lazy-load hook exactly once before the read; an unknown name
// fails regardless of storage state.
func (o *Object) Get(ctx context.Context, name string) (any, error) {
	if !o.def.Schema.Has(name) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, o.TypeName(), name)
	}
	if value, ok := o.values[name]; ok {
		return value, nil
	}
	if err := o.LoadAttribute(ctx, name); err != nil {
		return nil, err
	}
	value, ok := o.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s was not populated by its loader", ErrUnsetAttribute, o.TypeName(), name)
	}
	return value, nil
}

// LoadAttribute invokes the definition's attribute loader. The base
// behavior, with no loader configured, is unsupported.
func (o *Object) LoadAttribute(ctx context.Context, name string) error {
	if o.def.Loader == nil {
		return fmt.Errorf("%w: cannot load %s.%s", ErrNotImplemented, o.TypeName(), name)
	}
	return o.def.Loader.LoadAttribute(ctx, o, name)
}

// Save writes changed fields back to the store via the definition's
// persister. The base behavior, with no persister configured, is
// unsupported.
func (o *Object) Save(ctx context.Context, caller *RequestContext) error {
	if o.def.Persister == nil {
		return fmt.Errorf("%w: cannot save %s", ErrNotImplemented, o.TypeName())
	}
	if caller == nil {
		caller = o.caller
	}
	return o.def.Persister.Save(ctx, caller, o)
}

// Update applies a value map through the regular setters, in sorted key
// order for determinism.
func (o *Object) Update(values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := o.Set(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// AttrIsSet reports whether the named attribute holds a value. Unknown
// names fail; extra derived attributes count as attributes here.
func (o *Object) AttrIsSet(name string) (bool, error) {
	if o.def.Schema.Has(name) {
		_, set := o.values[name]
		return set, nil
	}
	for _, extra := range o.def.ExtraAttributes {
		if extra == name {
			_, set := o.extra[name]
			return set, nil
		}
	}
	return false, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, o.TypeName(), name)
}

// SetExtra stores a read-only derived attribute declared in the
// definition's ExtraAttributes. Extras never enter the wire schema or the
// changed-set.
func (o *Object) SetExtra(name string, value any) error {
	for _, extra := range o.def.ExtraAttributes {
		if extra == name {
			if o.extra == nil {
				o.extra = map[string]any{}
			}
			o.extra[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, o.TypeName(), name)
}

func (o *Object) Extra(name string) (any, bool) {
	value, ok := o.extra[name]
	return value, ok
}

// Fields lists every attribute name the instance exposes: the effective
// field set plus extra derived attributes.
func (o *Object) Fields() []string {
	names := o.def.Schema.Names()
	return append(names, o.def.ExtraAttributes...)
}

// WhatChanged returns the sorted names of fields mutated since the last
// reset.
func (o *Object) WhatChanged() []string {
	if len(o.changed) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.changed))
	for name := range o.changed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetChanges returns changed field names mapped to their current values.
func (o *Object) GetChanges() map[string]any {
	changes := make(map[string]any, len(o.changed))
	for name := range o.changed {
		changes[name] = o.values[name]
	}
	return changes
}

// ResetChanges clears the changed-set, or only the given fields. This is
// not "revert to previous values".
func (o *Object) ResetChanges(fields ...string) {
	if len(fields) == 0 {
		o.changed = map[string]struct{}{}
		return
	}
	for _, name := range fields {
		delete(o.changed, name)
	}
}

func (o *Object) replaceChanged(fields []string) {
	next := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if o.def.Schema.Has(name) {
			next[name] = struct{}{}
		}
	}
	o.changed = next
}

// AsDict is a shallow view over currently-set fields.
func (o *Object) AsDict() map[string]any {
	out := make(map[string]any, len(o.values))
	for name, value := range o.values {
		out[name] = value
	}
	return out
}

// Clone is a structural deep copy: it iterates only the declared field set,
// never a generic object graph, and rebinds the copy to the same caller
// context. The changed-set carries over.
func (o *Object) Clone() *Object {
	clone := &Object{
		def:     o.def,
		version: o.version,
		caller:  o.caller,
		values:  make(map[string]any, len(o.values)),
		changed: make(map[string]struct{}, len(o.changed)),
	}
	for _, name := range o.def.Schema.Names() {
		value, set := o.values[name]
		if !set {
			continue
		}
		clone.values[name] = deepCopyValue(value)
	}
	for name := range o.changed {
		clone.changed[name] = struct{}{}
	}
	if len(o.extra) > 0 {
		clone.extra = make(map[string]any, len(o.extra))
		for name, value := range o.extra {
			clone.extra[name] = value
		}
	}
	return clone
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case *Object:
		return v.Clone()
	case []*Object:
		out := make([]*Object, len(v))
		for i, item := range v {
			out[i] = item.Clone()
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopyValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopyValue(item)
		}
		return out
	case Set:
		out := make(Set, len(v))
		for item := range v {
			out[item] = struct{}{}
		}
		return out
	case time.Time:
		return v
	default:
		return v
	}
}
