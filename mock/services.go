package mock

import (
	"fmt"
	"sync/atomic"

	"github.com/centraunit/ioc"
	"github.com/google/uuid"
)

// Core interfaces
type SingletonService interface {
	ID() string
}

type LazySingletonService interface {
	ID() string
}

type TypeService interface {
	ID() string
}

// NotReferencedService is never registered by any module in this package.
type NotReferencedService interface {
	Unused()
}

// Implementations
type NotReferenced struct{}

func NewNotReferenced() *NotReferenced { return &NotReferenced{} }

func (n *NotReferenced) Unused() {}

type Singleton struct {
	id string
}

func NewSingleton() *Singleton {
	return &Singleton{id: uuid.NewString()}
}

func (s *Singleton) ID() string { return s.id }

type LazySingleton struct {
	Singleton *ioc.Dependency[SingletonService]
	id        string
}

func NewLazySingleton(c *ioc.Container) *LazySingleton {
	return &LazySingleton{
		Singleton: ioc.InjectOptional[SingletonService](c),
		id:        uuid.NewString(),
	}
}

func (l *LazySingleton) ID() string { return l.id }

// Type depends on both singleton lifetimes.
type Type struct {
	Singleton     *ioc.Dependency[SingletonService]
	LazySingleton *ioc.Dependency[LazySingletonService]
	id            string
}

func NewType(c *ioc.Container) *Type {
	return &Type{
		Singleton:     ioc.Inject[SingletonService](c),
		LazySingleton: ioc.Inject[LazySingletonService](c),
		id:            uuid.NewString(),
	}
}

func (t *Type) ID() string { return t.id }

// Overwrite implementations report their type name as ID so tests can tell
// which implementation was resolved.
type MockSingleton struct{}

func (m *MockSingleton) ID() string { return fmt.Sprintf("%T", m) }

type MockLazySingleton struct{}

func (m *MockLazySingleton) ID() string { return fmt.Sprintf("%T", m) }

type MockType struct{}

func (m *MockType) ID() string { return fmt.Sprintf("%T", m) }

// Counter counts factory invocations.
type Counter struct {
	calls atomic.Int64
}

func (c *Counter) Calls() int64 { return c.calls.Load() }

// NewSingletonFactory returns a factory that builds a Singleton and records
// every call.
func (c *Counter) NewSingletonFactory() func() *Singleton {
	return func() *Singleton {
		c.calls.Add(1)
		return NewSingleton()
	}
}
