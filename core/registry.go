package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TypeRegistry maps a logical object-type name to the definitions registered
// under it. Multiple versions of one name may coexist, which is what lets
// old and new schema revisions run concurrently during a rolling upgrade.
// Registration happens once per concrete type at definition time; reads are
// concurrent afterwards.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string][]*Definition
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string][]*Definition)}
}

func (r *TypeRegistry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	name := strings.TrimSpace(def.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.types[name] {
		if existing.Version == def.Version {
			return fmt.Errorf("core: object type already registered: %s@%s", name, def.Version)
		}
	}
	r.types[name] = append(r.types[name], def)
	return nil
}

// Resolve returns the definition implementing name at the requested version:
// an exact match when one is registered, else the first compatible match
// under the major-equal, minor-greater-or-equal rule. Failure reports the
// requested version and the highest version registered for the name,
// computed fresh on every call.
func (r *TypeRegistry) Resolve(name string, version string) (*Definition, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := r.types[name]
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedObjectType, name)
	}

	for _, def := range defs {
		if def.Version == version {
			return def, nil
		}
	}

	var latest Version
	var compatible *Definition
	for _, def := range defs {
		available, err := ParseVersion(def.Version)
		if err != nil {
			return nil, err
		}
		if latest.Compare(available) < 0 {
			latest = available
		}
		ok, err := IsCompatible(version, def.Version)
		if err != nil {
			return nil, err
		}
		if ok && compatible == nil {
			compatible = def
		}
	}
	if compatible != nil {
		return compatible, nil
	}
	return nil, fmt.Errorf("%w: %s requested %s, supported %s",
		ErrIncompatibleVersion, name, version, latest.String())
}

// Names lists registered type names in deterministic order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns every definition registered under name.
func (r *TypeRegistry) Definitions(name string) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Definition(nil), r.types[strings.TrimSpace(name)]...)
}

var defaultRegistry = NewTypeRegistry()

// DefaultRegistry is the process-wide registry definition-time registration
// targets.
func DefaultRegistry() *TypeRegistry {
	return defaultRegistry
}

func Register(def *Definition) error {
	return defaultRegistry.Register(def)
}

// MustRegister registers with the default registry, panicking on invalid
// definitions. Intended for package init blocks.
func MustRegister(def *Definition) {
	if err := Register(def); err != nil {
		panic(err)
	}
}
