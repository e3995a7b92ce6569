package core

import (
	"context"
	"fmt"
	"sync"
)

func widgetSchema() *Schema {
	return MustSchema(BaseSchema(),
		FieldDescriptor{Name: "id", Coerce: CoerceString},
		FieldDescriptor{Name: "name", Coerce: CoerceString},
		FieldDescriptor{Name: "count", Coerce: CoerceInt},
		FieldDescriptor{Name: "tags", Coerce: CoerceStringSlice},
		FieldDescriptor{Name: "enabled", Coerce: CoerceBool},
	)
}

func widgetDefinition(version string) *Definition {
	return &Definition{
		Name:    "Widget",
		Version: version,
		Schema:  widgetSchema(),
	}
}

func newTestRegistry(defs ...*Definition) *TypeRegistry {
	registry := NewTypeRegistry()
	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			panic(err)
		}
	}
	return registry
}

func newTestCodec(defs ...*Definition) *Codec {
	codec, err := NewCodec(newTestRegistry(defs...), "objects")
	if err != nil {
		panic(err)
	}
	return codec
}

func testCaller() *RequestContext {
	return &RequestContext{RequestID: "req_1", Subject: "usr_1", Tenant: "acme"}
}

type countingLoader struct {
	mu     sync.Mutex
	calls  int
	values map[string]any
	err    error
}

func (l *countingLoader) LoadAttribute(_ context.Context, obj *Object, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return l.err
	}
	value, ok := l.values[name]
	if !ok {
		return fmt.Errorf("loader: no value for %s", name)
	}
	if err := obj.Set(name, value); err != nil {
		return err
	}
	obj.ResetChanges(name)
	return nil
}

type recordingPersister struct {
	mu    sync.Mutex
	calls int
	last  map[string]any
}

func (p *recordingPersister) Save(_ context.Context, _ *RequestContext, obj *Object) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.last = obj.GetChanges()
	obj.ResetChanges()
	return nil
}

type classCall struct {
	typeName string
	method   string
	version  string
	args     []any
	kwargs   map[string]any
}

type instanceCall struct {
	typeName string
	method   string
	args     []any
	kwargs   map[string]any
}

type fakeIndirection struct {
	mu            sync.Mutex
	classCalls    []classCall
	instanceCalls []instanceCall

	classResult any
	updates     map[string]any
	result      any
	err         error
}

func (f *fakeIndirection) ObjectClassAction(
	_ context.Context,
	_ *RequestContext,
	typeName string,
	method string,
	version string,
	args []any,
	kwargs map[string]any,
) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classCalls = append(f.classCalls, classCall{
		typeName: typeName,
		method:   method,
		version:  version,
		args:     args,
		kwargs:   kwargs,
	})
	if f.err != nil {
		return nil, f.err
	}
	return f.classResult, nil
}

func (f *fakeIndirection) ObjectAction(
	_ context.Context,
	_ *RequestContext,
	obj *Object,
	method string,
	args []any,
	kwargs map[string]any,
) (map[string]any, any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instanceCalls = append(f.instanceCalls, instanceCall{
		typeName: obj.TypeName(),
		method:   method,
		args:     args,
		kwargs:   kwargs,
	})
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.updates, f.result, nil
}

type stubObjectStore struct {
	mu      sync.Mutex
	saved   []*Object
	objects map[string]*Object
	deleted []string
}

func (s *stubObjectStore) SaveObject(_ context.Context, _ *RequestContext, obj *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, obj)
	return nil
}

func (s *stubObjectStore) GetObject(_ context.Context, _ *RequestContext, typeName string, objectID string) (*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[typeName+"/"+objectID]
	if !ok {
		return nil, fmt.Errorf("store: object not found: %s/%s", typeName, objectID)
	}
	return obj, nil
}

func (s *stubObjectStore) DeleteObject(_ context.Context, _ *RequestContext, typeName string, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, typeName+"/"+objectID)
	return nil
}
