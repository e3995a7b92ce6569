package core

import (
	"context"
	"fmt"
	"sort"

	glog "github.com/goliatone/go-logger/glog"
)

// ChangedFieldsKey is the reserved key under which a remote ObjectAction
// reports the authoritative instance's changed-set alongside field updates.
const ChangedFieldsKey = "obj_what_changed"

// MethodFunc is the local implementation of a remotable instance method.
type MethodFunc func(ctx context.Context, caller *RequestContext, args []any, kwargs map[string]any) (any, error)

// ClassMethodFunc is the local implementation of a remotable class method.
type ClassMethodFunc func(ctx context.Context, caller *RequestContext, args []any, kwargs map[string]any) (any, error)

// Dispatcher routes remotable method calls either to their local
// implementation or to a configured indirection endpoint, making "operate on
// the authoritative object" and "operate by remote call" indistinguishable
// to calling code. A nil endpoint means local execution.
type Dispatcher struct {
	endpoint Indirection
	codec    *Codec
	logger   Logger
}

func NewDispatcher(endpoint Indirection, codec *Codec, logger Logger) (*Dispatcher, error) {
	if codec == nil {
		var err error
		codec, err = NewCodec(nil, "")
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = glog.Nop()
	}
	return &Dispatcher{endpoint: endpoint, codec: codec, logger: logger}, nil
}

// Remote reports whether calls are being forwarded to an indirection
// endpoint.
func (d *Dispatcher) Remote() bool {
	return d != nil && d.endpoint != nil
}

// CallClass executes a remotable class method. With an endpoint configured
// the call is forwarded whole; a versioned-object result is stamped with the
// caller's context either way.
func (d *Dispatcher) CallClass(
	ctx context.Context,
	caller *RequestContext,
	def *Definition,
	method string,
	args []any,
	kwargs map[string]any,
	local ClassMethodFunc,
) (any, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var result any
	var err error
	if d.Remote() {
		result, err = d.endpoint.ObjectClassAction(ctx, caller, def.Name, method, def.Version, args, kwargs)
	} else {
		if local == nil {
			return nil, fmt.Errorf("%w: %s.%s has no local implementation", ErrNotImplemented, def.Name, method)
		}
		result, err = local(ctx, caller, args, kwargs)
	}
	if err != nil {
		return nil, err
	}
	bindResult(result, caller)
	return result, nil
}

// Call executes a remotable instance method. The effective context is the
// explicit caller when given, else the instance's bound context; with
// neither the object is orphaned and the call fails before any dispatch.
// With an endpoint configured, reported field updates are reconciled onto
// the instance and its changed-set is replaced with the reported one.
func (d *Dispatcher) Call(
	ctx context.Context,
	caller *RequestContext,
	obj *Object,
	method string,
	args []any,
	kwargs map[string]any,
	local MethodFunc,
) (any, error) {
	if obj == nil {
		return nil, fmt.Errorf("core: object is required")
	}
	if caller == nil {
		caller = obj.Caller()
	}
	if caller == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrOrphanedObject, obj.TypeName(), method)
	}

	if !d.Remote() {
		if local == nil {
			return nil, fmt.Errorf("%w: %s.%s has no local implementation", ErrNotImplemented, obj.TypeName(), method)
		}
		return local(ctx, caller, args, kwargs)
	}

	updates, result, err := d.endpoint.ObjectAction(ctx, caller, obj, method, args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := d.applyUpdates(obj, caller, updates); err != nil {
		return nil, err
	}
	return result, nil
}

// applyUpdates reconciles the field updates a remote call reports: updates
// for recognized fields go through the per-field wire hook and setter,
// unknown names are skipped, and the changed-set is replaced wholesale with
// the reported one.
func (d *Dispatcher) applyUpdates(obj *Object, caller *RequestContext, updates map[string]any) error {
	names := make([]string, 0, len(updates))
	for name := range updates {
		if name == ChangedFieldsKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := obj.Schema().Lookup(name)
		if !ok {
			d.logger.Info("skipping unrecognized field update",
				"object", obj.TypeName(),
				"attribute", name,
			)
			continue
		}
		value := updates[name]
		if field.FromPrimitive != nil {
			decoded, err := field.FromPrimitive(d.codec, caller, value)
			if err != nil {
				return fmt.Errorf("core: apply update %s.%s: %w", obj.TypeName(), name, err)
			}
			value = decoded
		}
		if err := obj.Set(name, value); err != nil {
			return err
		}
	}

	obj.replaceChanged(stringSlice(updates[ChangedFieldsKey]))
	return nil
}

func bindResult(result any, caller *RequestContext) {
	switch v := result.(type) {
	case *Object:
		v.Bind(caller)
	case *List:
		v.Bind(caller)
	}
}
