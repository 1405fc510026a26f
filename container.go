package ioc

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Container binds declared types to implementations and resolves them.
// Every operation runs under a single re-entrant lock, so factories may
// resolve other bindings from the goroutine that is resolving them.
type Container struct {
	mu     reentrantMutex
	table  *bindingTable
	logger *zap.Logger
	fatal  FatalHandler
}

var (
	once             sync.Once
	defaultContainer *Container
)

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		table:  newBindingTable(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fatal == nil {
		c.fatal = c.logFatal
	}
	return c
}

// Default returns the process-wide container.
// It is created on first access and configured from the environment.
func Default() *Container {
	once.Do(func() {
		defaultContainer = New(WithConfig(ConfigFromEnv()))
	})
	return defaultContainer
}

func (c *Container) register(b binding) error {
	return c.bind(b, false)
}

func (c *Container) overwrite(b binding) error {
	return c.bind(b, true)
}

// bind validates b and stores it. Nothing is stored unless every check
// passes.
func (c *Container) bind(b binding, overwrite bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := b.token.key
	if err := b.check(); err != nil {
		c.logger.Warn("binding rejected",
			zap.String("interface", key.String()),
			zap.String("lifetime", string(b.lifetime)),
			zap.Error(err))
		return err
	}

	if overwrite {
		if !c.table.containsFor(key, b.lifetime) {
			err := &NotRegisteredError{Type: key.String()}
			c.logger.Warn("overwrite of unbound type",
				zap.String("interface", key.String()),
				zap.String("lifetime", string(b.lifetime)),
				zap.Error(err))
			return err
		}
	} else if c.table.contains(key) {
		err := &AlreadyRegisteredError{Type: key.String()}
		c.logger.Warn("duplicate registration",
			zap.String("interface", key.String()),
			zap.String("lifetime", string(b.lifetime)),
			zap.Error(err))
		return err
	}

	c.table.put(b)
	c.logger.Debug("binding stored",
		zap.String("interface", key.String()),
		zap.String("lifetime", string(b.lifetime)),
		zap.Bool("overwrite", overwrite))
	return nil
}

// check verifies conformance as far as it can be known before resolution.
func (b binding) check() error {
	switch b.lifetime {
	case LifetimeSingleton:
		if !b.token.conforms(b.instance) {
			return &DoesNotConformError{Actual: typeName(b.instance), Expected: b.token.key.String()}
		}
	case LifetimeLazySingleton, LifetimeTransient:
		if b.factory == nil {
			return &DoesNotConformError{Actual: "<nil>", Expected: b.token.key.String()}
		}
		if b.impl != nil && b.token.staticallyNonConforming(b.impl) {
			return &DoesNotConformError{Actual: b.impl.String(), Expected: b.token.key.String()}
		}
	}
	return nil
}

func (c *Container) resolve(tok token) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := tok.key
	if factory, ok := c.table.transients[key]; ok {
		v := factory()
		if !tok.conforms(v) {
			return nil, c.resolveFailed(&DoesNotConformError{Actual: typeName(v), Expected: key.String()})
		}
		return v, nil
	}

	if factory, ok := c.table.beginBuild(key); ok {
		return c.materialize(tok, factory)
	}

	if v, ok := c.table.singletons[key]; ok {
		if !tok.conforms(v) {
			return nil, c.resolveFailed(&DoesNotConformError{Actual: typeName(v), Expected: key.String()})
		}
		return v, nil
	}

	// a lazy singleton resolving itself from its own factory lands here
	return nil, c.resolveFailed(&NotRegisteredError{Type: key.String()})
}

// materialize runs the factory of a lazy singleton that is under
// construction. The key stays bound while the factory runs, so nested
// registrations of it are rejected. On failure the key returns to factory
// state. If the factory overwrote or cleaned its own key, the value is
// returned without being cached.
func (c *Container) materialize(tok token, factory Factory) (any, error) {
	key := tok.key
	built := false
	defer func() {
		if !built {
			c.table.abortBuild(key)
		}
	}()

	v := factory()
	if !tok.conforms(v) {
		return nil, c.resolveFailed(&DoesNotConformError{Actual: typeName(v), Expected: key.String()})
	}

	built = true
	if c.table.finishBuild(key, v) {
		c.logger.Debug("lazy singleton materialized",
			zap.String("interface", key.String()),
			zap.String("implementation", typeName(v)))
	}
	return v, nil
}

func (c *Container) resolveFailed(err error) error {
	c.logger.Warn("resolution failed", zap.Error(err))
	return err
}

// Validate reports whether key is bound under any lifetime.
func (c *Container) Validate(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.contains(key)
}

// Lifetime returns the lifetime key was registered with.
func (c *Container) Lifetime(key Key) (Lifetime, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.lifetimeOf(key)
}

// Keys returns every bound key, in no particular order.
func (c *Container) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.keys()
}

// Clean removes every binding and any materialized instance.
// This function is intended for testing purposes only.
func (c *Container) Clean() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.table.keys())
	c.table.reset()
	c.logger.Debug("container cleaned", zap.Int("bindings", n))
}

// Resolve returns the implementation bound to T.
// Returns NotRegisteredError if T is not bound.
// Returns DoesNotConformError if the stored or constructed value does not
// satisfy T.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	v, err := c.resolve(tokenOf[T]())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// MustResolve is like Resolve but reports failures to the container's
// FatalHandler. If the handler returns, the zero value of T is returned.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		c.fail(err)
	}
	return v
}

// IsRegistered reports whether T is bound in c.
func IsRegistered[T any](c *Container) bool {
	return c.Validate(KeyOf[T]())
}

func implType[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}
