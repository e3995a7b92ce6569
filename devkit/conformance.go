package devkit

import (
	"context"
	"fmt"
	"reflect"

	"github.com/goliatone/go-objects/core"
)

// ValidateObjectStoreConformance drives a store through the save, read,
// update, and delete cycle every object store must support.
func ValidateObjectStoreConformance(
	ctx context.Context,
	store core.ObjectStore,
	def *core.Definition,
	caller *core.RequestContext,
) error {
	if store == nil {
		return fmt.Errorf("devkit: object store is required")
	}
	if def == nil {
		return fmt.Errorf("devkit: object definition is required")
	}

	obj, err := core.NewObject(def, caller, map[string]any{
		"id":    "conformance_1",
		"name":  "first",
		"count": 1,
	})
	if err != nil {
		return err
	}
	if err := store.SaveObject(ctx, caller, obj); err != nil {
		return err
	}
	if changed := obj.WhatChanged(); changed != nil {
		return fmt.Errorf("devkit: save should clear changes, got %v", changed)
	}

	loaded, err := store.GetObject(ctx, caller, def.Name, "conformance_1")
	if err != nil {
		return err
	}
	name, err := loaded.Get(ctx, "name")
	if err != nil {
		return err
	}
	if name != "first" {
		return fmt.Errorf("devkit: expected stored name first, got %v", name)
	}
	if changed := loaded.WhatChanged(); changed != nil {
		return fmt.Errorf("devkit: loaded object should be clean, got %v", changed)
	}

	if err := loaded.Set("name", "second"); err != nil {
		return err
	}
	if err := store.SaveObject(ctx, caller, loaded); err != nil {
		return err
	}
	updated, err := store.GetObject(ctx, caller, def.Name, "conformance_1")
	if err != nil {
		return err
	}
	name, err = updated.Get(ctx, "name")
	if err != nil {
		return err
	}
	if name != "second" {
		return fmt.Errorf("devkit: expected updated name second, got %v", name)
	}

	if err := store.DeleteObject(ctx, caller, def.Name, "conformance_1"); err != nil {
		return err
	}
	if _, err := store.GetObject(ctx, caller, def.Name, "conformance_1"); err == nil {
		return fmt.Errorf("devkit: read after delete should fail")
	}
	if err := store.DeleteObject(ctx, caller, def.Name, "conformance_1"); err == nil {
		return fmt.Errorf("devkit: second delete should fail")
	}
	return nil
}

// ValidateAttributeLoaderConformance checks that a loader fills an unset
// field with the expected value without marking the object dirty.
func ValidateAttributeLoaderConformance(
	ctx context.Context,
	loader core.AttributeLoader,
	obj *core.Object,
	name string,
	want any,
) error {
	if loader == nil {
		return fmt.Errorf("devkit: attribute loader is required")
	}
	if obj == nil {
		return fmt.Errorf("devkit: object is required")
	}
	set, err := obj.AttrIsSet(name)
	if err != nil {
		return err
	}
	if set {
		return fmt.Errorf("devkit: %s must be unset before the loader runs", name)
	}
	if err := loader.LoadAttribute(ctx, obj, name); err != nil {
		return err
	}
	set, err = obj.AttrIsSet(name)
	if err != nil {
		return err
	}
	if !set {
		return fmt.Errorf("devkit: loader did not populate %s", name)
	}
	value, err := obj.Get(ctx, name)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(value, want) {
		return fmt.Errorf("devkit: expected loaded %s=%v, got %v", name, want, value)
	}
	if changed := obj.WhatChanged(); changed != nil {
		return fmt.Errorf("devkit: loader should not dirty the object, got %v", changed)
	}
	return nil
}

// ValidateCodecRoundTrip encodes an object and decodes it back, checking
// that set fields, version, and the changed set survive the trip.
func ValidateCodecRoundTrip(codec *core.Codec, obj *core.Object) error {
	if codec == nil {
		return fmt.Errorf("devkit: codec is required")
	}
	if obj == nil {
		return fmt.Errorf("devkit: object is required")
	}
	payload, err := codec.ToPrimitive(obj)
	if err != nil {
		return err
	}
	decoded, err := codec.FromPrimitive(payload, obj.Caller())
	if err != nil {
		return err
	}
	if decoded.TypeName() != obj.TypeName() {
		return fmt.Errorf("devkit: type name changed in round trip: %s != %s", decoded.TypeName(), obj.TypeName())
	}
	if decoded.Version() != obj.Version() {
		return fmt.Errorf("devkit: version changed in round trip: %s != %s", decoded.Version(), obj.Version())
	}
	if !reflect.DeepEqual(decoded.AsDict(), obj.AsDict()) {
		return fmt.Errorf("devkit: fields changed in round trip")
	}
	if !reflect.DeepEqual(decoded.WhatChanged(), obj.WhatChanged()) {
		return fmt.Errorf("devkit: changed set lost in round trip: %v != %v", decoded.WhatChanged(), obj.WhatChanged())
	}
	return nil
}
