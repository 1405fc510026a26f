package ioc

import "sync/atomic"

// Dependency is a lazily resolved handle to the implementation bound to T.
// Nothing is resolved until Get is called, and the handle caches nothing
// itself: singleton lifetimes yield the same instance on every Get because
// the container caches them, transient lifetimes yield a new one.
//
// The zero value resolves from the process-wide container and is required.
//
//	type Handler struct {
//	    clock ioc.Dependency[Clock]
//	}
//
//	now := h.clock.Get().Now()
type Dependency[T any] struct {
	container   *Container
	optional    bool
	initialized atomic.Bool
}

// Inject returns a required dependency on T resolved from c.
// A nil c selects the process-wide container.
func Inject[T any](c *Container) *Dependency[T] {
	return &Dependency[T]{container: c}
}

// InjectOptional returns a dependency on T that yields the zero value
// instead of failing when T is not bound.
func InjectOptional[T any](c *Container) *Dependency[T] {
	return &Dependency[T]{container: c, optional: true}
}

// Get resolves T. Failures are programmer errors and are reported to the
// container's FatalHandler, which terminates the process by default. If the
// handler returns, Get returns the zero value of T.
func (d *Dependency[T]) Get() T {
	c := d.containerOrDefault()
	v, err := d.lookup(c)
	if err != nil {
		c.fail(err)
	}
	return v
}

// Optional reports whether an unbound T is tolerated.
func (d *Dependency[T]) Optional() bool {
	return d.optional
}

// Initialized reports whether Get has resolved a bound value at least once.
func (d *Dependency[T]) Initialized() bool {
	return d.initialized.Load()
}

// lookup validates and resolves under one critical section.
func (d *Dependency[T]) lookup(c *Container) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	key := KeyOf[T]()
	if !c.table.contains(key) {
		if d.optional {
			return zero, nil
		}
		return zero, &NotRegisteredError{Type: key.String()}
	}

	v, err := Resolve[T](c)
	if err != nil {
		return zero, err
	}
	d.initialized.Store(true)
	return v, nil
}

func (d *Dependency[T]) containerOrDefault() *Container {
	if d.container != nil {
		return d.container
	}
	return Default()
}
