package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestRegistryResolveExactMatch(t *testing.T) {
	v10 := widgetDefinition("1.0")
	v15 := widgetDefinition("1.5")
	registry := newTestRegistry(v10, v15)

	def, err := registry.Resolve("Widget", "1.0")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if def != v10 {
		t.Fatalf("Resolve returned %s@%s, want exact 1.0", def.Name, def.Version)
	}
}

func TestRegistryResolveCompatibleMatch(t *testing.T) {
	v15 := widgetDefinition("1.5")
	registry := newTestRegistry(v15)

	// an older minor is servable by a newer same-major definition
	def, err := registry.Resolve("Widget", "1.2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if def != v15 {
		t.Fatalf("Resolve returned %s@%s, want 1.5", def.Name, def.Version)
	}
}

func TestRegistryResolveIncompatibleReportsHighest(t *testing.T) {
	registry := newTestRegistry(
		widgetDefinition("1.9"),
		widgetDefinition("1.4"),
		widgetDefinition("2.1"),
	)

	_, err := registry.Resolve("Widget", "3.0")
	if !IsIncompatibleVersion(err) {
		t.Fatalf("expected incompatible version error, got %v", err)
	}
	if !strings.Contains(err.Error(), "requested 3.0") || !strings.Contains(err.Error(), "supported 2.1") {
		t.Fatalf("error does not report requested and highest supported: %v", err)
	}
}

func TestRegistryResolveNewerMinorRejected(t *testing.T) {
	registry := newTestRegistry(widgetDefinition("1.5"))

	_, err := registry.Resolve("Widget", "1.9")
	if !IsIncompatibleVersion(err) {
		t.Fatalf("expected incompatible version error, got %v", err)
	}
}

func TestRegistryResolveUnknownType(t *testing.T) {
	registry := newTestRegistry(widgetDefinition("1.0"))

	_, err := registry.Resolve("Gizmo", "1.0")
	if !IsUnsupportedObjectType(err) {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestRegistryResolveHighestTracksLateRegistration(t *testing.T) {
	registry := newTestRegistry(widgetDefinition("1.1"))

	_, err := registry.Resolve("Widget", "4.0")
	if err == nil || !strings.Contains(err.Error(), "supported 1.1") {
		t.Fatalf("expected supported 1.1, got %v", err)
	}

	if err := registry.Register(widgetDefinition("2.3")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err = registry.Resolve("Widget", "4.0")
	if err == nil || !strings.Contains(err.Error(), "supported 2.3") {
		t.Fatalf("highest version not recomputed: %v", err)
	}
}

func TestRegistryRegisterRejectsDuplicates(t *testing.T) {
	registry := newTestRegistry(widgetDefinition("1.0"))
	if err := registry.Register(widgetDefinition("1.0")); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := registry.Register(widgetDefinition("1.1")); err != nil {
		t.Fatalf("new version rejected: %v", err)
	}
}

func TestRegistryRegisterValidates(t *testing.T) {
	registry := NewTypeRegistry()
	if err := registry.Register(&Definition{Name: "Widget", Version: "bad", Schema: widgetSchema()}); err == nil {
		t.Fatal("expected invalid definition to fail registration")
	}
}

func TestRegistryNames(t *testing.T) {
	gizmo := widgetDefinition("1.0")
	gizmo.Name = "Gizmo"
	registry := newTestRegistry(widgetDefinition("1.0"), gizmo)

	want := []string{"Gizmo", "Widget"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestRegistryDefinitionsCopy(t *testing.T) {
	registry := newTestRegistry(widgetDefinition("1.0"), widgetDefinition("1.1"))

	defs := registry.Definitions("Widget")
	if len(defs) != 2 {
		t.Fatalf("Definitions() = %d entries", len(defs))
	}
	defs[0] = nil
	if registry.Definitions("Widget")[0] == nil {
		t.Fatal("Definitions() exposed internal slice")
	}
}
