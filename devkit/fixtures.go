package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-objects/core"
)

// WidgetSchema returns the sample field set used across fixture versions.
// Revisions add fields on top of this base without removing any.
func WidgetSchema(extra ...core.FieldDescriptor) (*core.Schema, error) {
	fields := []core.FieldDescriptor{
		{Name: "id", Coerce: core.CoerceString},
		{Name: "name", Coerce: core.CoerceString},
		{Name: "count", Coerce: core.CoerceInt},
	}
	fields = append(fields, extra...)
	return core.NewSchema(core.BaseSchema(), fields...)
}

// WidgetDefinition builds the fixture type at one of its published
// revisions: 1.0 (base fields), 1.5 (adds tags), 2.0 (adds enabled and
// drops nothing).
func WidgetDefinition(version string) (*core.Definition, error) {
	var extra []core.FieldDescriptor
	switch version {
	case "1.0":
	case "1.5":
		extra = []core.FieldDescriptor{
			{Name: "tags", Coerce: core.CoerceStringSlice},
		}
	case "2.0":
		extra = []core.FieldDescriptor{
			{Name: "tags", Coerce: core.CoerceStringSlice},
			{Name: "enabled", Coerce: core.CoerceBool},
		}
	default:
		return nil, fmt.Errorf("devkit: unknown widget fixture version %q", version)
	}

	schema, err := WidgetSchema(extra...)
	if err != nil {
		return nil, err
	}
	return &core.Definition{
		Name:    "Widget",
		Version: version,
		Schema:  schema,
	}, nil
}

// NewWidgetRegistry returns a registry preloaded with the fixture type at
// the requested versions, or at 1.5 when none are given.
func NewWidgetRegistry(versions ...string) (*core.TypeRegistry, error) {
	if len(versions) == 0 {
		versions = []string{"1.5"}
	}
	registry := core.NewTypeRegistry()
	for _, version := range versions {
		def, err := WidgetDefinition(version)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// NewWidgetCodec returns a codec over a fixture registry in the "objects"
// namespace.
func NewWidgetCodec(versions ...string) (*core.Codec, error) {
	registry, err := NewWidgetRegistry(versions...)
	if err != nil {
		return nil, err
	}
	return core.NewCodec(registry, "objects")
}

// Caller returns a populated request context for fixture calls.
func Caller() *core.RequestContext {
	return &core.RequestContext{
		RequestID: "req_fixture",
		Subject:   "usr_fixture",
		Tenant:    "acme",
	}
}

// MemoryObjectStore is an in-memory object store for tests. It keeps
// primitive payloads keyed by type name and logical id, so reads always
// rehydrate fresh instances through the codec.
type MemoryObjectStore struct {
	mu      sync.Mutex
	codec   *core.Codec
	objects map[string]map[string]any
}

func NewMemoryObjectStore(codec *core.Codec) (*MemoryObjectStore, error) {
	if codec == nil {
		return nil, fmt.Errorf("devkit: codec is required")
	}
	return &MemoryObjectStore{
		codec:   codec,
		objects: map[string]map[string]any{},
	}, nil
}

func (s *MemoryObjectStore) key(typeName, objectID string) string {
	return typeName + "/" + objectID
}

func (s *MemoryObjectStore) SaveObject(_ context.Context, _ *core.RequestContext, obj *core.Object) error {
	if obj == nil {
		return fmt.Errorf("devkit: object is required")
	}
	set, err := obj.AttrIsSet("id")
	if err != nil {
		return err
	}
	if !set {
		return fmt.Errorf("devkit: %s has no id value", obj.TypeName())
	}
	objectID := fmt.Sprint(obj.AsDict()["id"])

	payload, err := s.codec.ToPrimitive(obj)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.objects[s.key(obj.TypeName(), objectID)] = payload
	s.mu.Unlock()

	obj.ResetChanges()
	return nil
}

func (s *MemoryObjectStore) GetObject(_ context.Context, caller *core.RequestContext, typeName string, objectID string) (*core.Object, error) {
	s.mu.Lock()
	payload, ok := s.objects[s.key(typeName, objectID)]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("devkit: object not found: %s/%s", typeName, objectID)
	}
	obj, err := s.codec.FromPrimitive(payload, caller)
	if err != nil {
		return nil, err
	}
	obj.ResetChanges()
	return obj, nil
}

func (s *MemoryObjectStore) DeleteObject(_ context.Context, _ *core.RequestContext, typeName string, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(typeName, objectID)
	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("devkit: object not found: %s/%s", typeName, objectID)
	}
	delete(s.objects, key)
	return nil
}

// Save lets fixture definitions use the store as their persister.
func (s *MemoryObjectStore) Save(ctx context.Context, caller *core.RequestContext, obj *core.Object) error {
	return s.SaveObject(ctx, caller, obj)
}

// LoadAttribute hydrates a single unset field from the stored payload
// without dirtying the object.
func (s *MemoryObjectStore) LoadAttribute(ctx context.Context, obj *core.Object, name string) error {
	if obj == nil {
		return fmt.Errorf("devkit: object is required")
	}
	objectID := fmt.Sprint(obj.AsDict()["id"])
	stored, err := s.GetObject(ctx, obj.Caller(), obj.TypeName(), objectID)
	if err != nil {
		return err
	}
	set, err := stored.AttrIsSet(name)
	if err != nil {
		return err
	}
	if !set {
		return fmt.Errorf("devkit: stored %s/%s has no %s value", obj.TypeName(), objectID, name)
	}
	value, err := stored.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := obj.Set(name, value); err != nil {
		return err
	}
	obj.ResetChanges(name)
	return nil
}

var (
	_ core.ObjectStore     = (*MemoryObjectStore)(nil)
	_ core.Persister       = (*MemoryObjectStore)(nil)
	_ core.AttributeLoader = (*MemoryObjectStore)(nil)
)
