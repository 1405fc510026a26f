package ioc

import "reflect"

// Factory builds a new value for a lazy singleton or transient binding.
type Factory func() any

// binding represents a registration request before it is stored.
type binding struct {
	token    token
	lifetime Lifetime
	instance any
	factory  Factory

	// static result type of factory, nil when unknown
	impl reflect.Type
}

// bindingTable holds every registered binding. A key appears in at most one
// of the three maps. Callers must hold the container lock.
type bindingTable struct {
	singletons map[Key]any
	lazy       map[Key]Factory
	transients map[Key]Factory

	// keys in singletons that were built from a lazy factory
	materialized map[Key]bool
	// lazy factories that are running; the key stays bound meanwhile
	building map[Key]Factory
}

func newBindingTable() *bindingTable {
	return &bindingTable{
		singletons:   make(map[Key]any, 16),
		lazy:         make(map[Key]Factory, 16),
		transients:   make(map[Key]Factory, 16),
		materialized: make(map[Key]bool),
		building:     make(map[Key]Factory),
	}
}

// lifetimeOf returns the lifetime key was registered with.
func (t *bindingTable) lifetimeOf(key Key) (Lifetime, bool) {
	if _, ok := t.singletons[key]; ok {
		if t.materialized[key] {
			return LifetimeLazySingleton, true
		}
		return LifetimeSingleton, true
	}
	if _, ok := t.lazy[key]; ok {
		return LifetimeLazySingleton, true
	}
	if _, ok := t.building[key]; ok {
		return LifetimeLazySingleton, true
	}
	if _, ok := t.transients[key]; ok {
		return LifetimeTransient, true
	}
	return "", false
}

func (t *bindingTable) contains(key Key) bool {
	_, ok := t.lifetimeOf(key)
	return ok
}

// containsFor reports whether key is bound in the table that serves the
// given lifetime. Materialized lazy singletons live with the eager ones, so
// both singleton lifetimes also look there.
func (t *bindingTable) containsFor(key Key, lifetime Lifetime) bool {
	switch lifetime {
	case LifetimeSingleton:
		_, ok := t.singletons[key]
		return ok
	case LifetimeLazySingleton:
		if _, ok := t.lazy[key]; ok {
			return true
		}
		if _, ok := t.building[key]; ok {
			return true
		}
		_, ok := t.singletons[key]
		return ok && t.materialized[key]
	case LifetimeTransient:
		_, ok := t.transients[key]
		return ok
	}
	return false
}

// put stores b, replacing whatever was bound to its key.
func (t *bindingTable) put(b binding) {
	key := b.token.key
	t.remove(key)
	switch b.lifetime {
	case LifetimeSingleton:
		t.singletons[key] = b.instance
	case LifetimeLazySingleton:
		t.lazy[key] = b.factory
	case LifetimeTransient:
		t.transients[key] = b.factory
	}
}

// beginBuild marks the lazy singleton bound to key as under construction
// and returns its factory.
func (t *bindingTable) beginBuild(key Key) (Factory, bool) {
	factory, ok := t.lazy[key]
	if ok {
		delete(t.lazy, key)
		t.building[key] = factory
	}
	return factory, ok
}

// finishBuild stores instance for a key still under construction. It
// reports false when the key was overwritten or cleaned while building.
func (t *bindingTable) finishBuild(key Key, instance any) bool {
	if _, ok := t.building[key]; !ok {
		return false
	}
	delete(t.building, key)
	t.singletons[key] = instance
	t.materialized[key] = true
	return true
}

// abortBuild returns a key under construction to factory state.
func (t *bindingTable) abortBuild(key Key) {
	if factory, ok := t.building[key]; ok {
		delete(t.building, key)
		t.lazy[key] = factory
	}
}

func (t *bindingTable) remove(key Key) {
	delete(t.materialized, key)
	delete(t.building, key)
	delete(t.singletons, key)
	delete(t.lazy, key)
	delete(t.transients, key)
}

func (t *bindingTable) keys() []Key {
	out := make([]Key, 0, len(t.singletons)+len(t.lazy)+len(t.building)+len(t.transients))
	for k := range t.singletons {
		out = append(out, k)
	}
	for k := range t.lazy {
		out = append(out, k)
	}
	for k := range t.building {
		out = append(out, k)
	}
	for k := range t.transients {
		out = append(out, k)
	}
	return out
}

func (t *bindingTable) reset() {
	t.singletons = make(map[Key]any, 16)
	t.lazy = make(map[Key]Factory, 16)
	t.transients = make(map[Key]Factory, 16)
	t.materialized = make(map[Key]bool)
	t.building = make(map[Key]Factory)
}
