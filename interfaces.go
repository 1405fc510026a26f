package ioc

// Package ioc provides a process-wide dependency injection container.

// Lifetime defines when and how often a bound implementation is constructed.
type Lifetime string

// Available lifetimes
const (
	// LifetimeSingleton holds an instance built before registration
	LifetimeSingleton Lifetime = "singleton"
	// LifetimeLazySingleton builds the instance on first resolution and reuses it
	LifetimeLazySingleton Lifetime = "lazy-singleton"
	// LifetimeTransient builds a new instance on every resolution
	LifetimeTransient Lifetime = "transient"
)

// Registrar is the capability handed to a Module. It accepts new bindings
// and rejects keys that are already bound.
type Registrar interface {
	register(b binding) error
}

// Overwriter is the capability handed to an OverwriteModule. In addition to
// registering, it replaces bindings that already exist for the same lifetime.
type Overwriter interface {
	Registrar
	overwrite(b binding) error
}

// Module groups a set of registrations.
type Module interface {
	// Register is called exactly once per registration request.
	Register(r Registrar) error
}

// OverwriteModule groups registrations that may replace existing bindings,
// typically to swap implementations for tests.
type OverwriteModule interface {
	// Register is called exactly once per registration request.
	Register(o Overwriter) error
}

// FatalHandler receives the description of an unrecoverable injection
// failure. Production handlers must not return.
type FatalHandler func(msg string)
