package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-objects/core"
)

// ClassCall records one forwarded class-level action.
type ClassCall struct {
	Caller   *core.RequestContext
	TypeName string
	Method   string
	Version  string
	Args     []any
	Kwargs   map[string]any
}

// InstanceCall records one forwarded instance-level action.
type InstanceCall struct {
	Caller   *core.RequestContext
	TypeName string
	ObjectID string
	Method   string
	Args     []any
	Kwargs   map[string]any
}

// IndirectionScript is the canned response for one forwarded instance call.
type IndirectionScript struct {
	Updates map[string]any
	Result  any
	Err     error
}

// FakeIndirection is a recording endpoint double. Class calls return
// ClassResult (or ClassErr); instance calls consume scripts in order and
// repeat the last one once exhausted.
type FakeIndirection struct {
	mu            sync.Mutex
	classResult   any
	classErr      error
	scripts       []IndirectionScript
	classCalls    []ClassCall
	instanceCalls []InstanceCall
}

func NewFakeIndirection(scripts ...IndirectionScript) *FakeIndirection {
	return &FakeIndirection{scripts: append([]IndirectionScript(nil), scripts...)}
}

func (f *FakeIndirection) ScriptClassResult(result any, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classResult = result
	f.classErr = err
}

func (f *FakeIndirection) ObjectClassAction(
	_ context.Context,
	caller *core.RequestContext,
	typeName string,
	method string,
	version string,
	args []any,
	kwargs map[string]any,
) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.classCalls = append(f.classCalls, ClassCall{
		Caller:   caller.Clone(),
		TypeName: typeName,
		Method:   method,
		Version:  version,
		Args:     append([]any(nil), args...),
		Kwargs:   cloneKwargs(kwargs),
	})
	if f.classErr != nil {
		return nil, f.classErr
	}
	return f.classResult, nil
}

func (f *FakeIndirection) ObjectAction(
	_ context.Context,
	caller *core.RequestContext,
	obj *core.Object,
	method string,
	args []any,
	kwargs map[string]any,
) (map[string]any, any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := InstanceCall{
		Caller: caller.Clone(),
		Method: method,
		Args:   append([]any(nil), args...),
		Kwargs: cloneKwargs(kwargs),
	}
	if obj != nil {
		call.TypeName = obj.TypeName()
		call.ObjectID = fmt.Sprint(obj.AsDict()["id"])
	}
	f.instanceCalls = append(f.instanceCalls, call)

	index := len(f.instanceCalls) - 1
	var script IndirectionScript
	switch {
	case index < len(f.scripts):
		script = f.scripts[index]
	case len(f.scripts) > 0:
		script = f.scripts[len(f.scripts)-1]
	}
	if script.Err != nil {
		return nil, nil, script.Err
	}
	return cloneKwargs(script.Updates), script.Result, nil
}

func (f *FakeIndirection) ClassCalls() []ClassCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ClassCall(nil), f.classCalls...)
}

func (f *FakeIndirection) InstanceCalls() []InstanceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]InstanceCall(nil), f.instanceCalls...)
}

func cloneKwargs(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

var _ core.Indirection = (*FakeIndirection)(nil)
