package mock

import "github.com/centraunit/ioc"

// ReferenceModule registers one binding per lifetime.
type ReferenceModule struct {
	Container *ioc.Container
}

func (m ReferenceModule) Register(r ioc.Registrar) error {
	if err := ioc.RegisterSingleton[SingletonService](r, NewSingleton()); err != nil {
		return err
	}
	if err := ioc.RegisterLazySingleton[LazySingletonService](r, func() *LazySingleton {
		return NewLazySingleton(m.Container)
	}); err != nil {
		return err
	}
	return ioc.RegisterType[TypeService](r, func() *Type {
		return NewType(m.Container)
	})
}

// WrongSingletonModule binds an instance that does not satisfy the declared type.
type WrongSingletonModule struct{}

func (WrongSingletonModule) Register(r ioc.Registrar) error {
	return ioc.RegisterSingleton[NotReferencedService](r, NewSingleton())
}

// WrongLazySingletonModule binds a factory whose result type does not
// satisfy the declared type.
type WrongLazySingletonModule struct{}

func (WrongLazySingletonModule) Register(r ioc.Registrar) error {
	return ioc.RegisterLazySingleton[NotReferencedService](r, NewSingleton)
}

type WrongTypeModule struct{}

func (WrongTypeModule) Register(r ioc.Registrar) error {
	return ioc.RegisterType[NotReferencedService](r, NewSingleton)
}

// TwoSameSingletonsModule registers the same type twice.
type TwoSameSingletonsModule struct{}

func (TwoSameSingletonsModule) Register(r ioc.Registrar) error {
	if err := ioc.RegisterSingleton[SingletonService](r, NewSingleton()); err != nil {
		return err
	}
	return ioc.RegisterSingleton[SingletonService](r, NewSingleton())
}

type TwoSameLazySingletonsModule struct{}

func (TwoSameLazySingletonsModule) Register(r ioc.Registrar) error {
	if err := ioc.RegisterLazySingleton[SingletonService](r, NewSingleton); err != nil {
		return err
	}
	return ioc.RegisterLazySingleton[SingletonService](r, NewSingleton)
}

type TwoSameTypesModule struct{}

func (TwoSameTypesModule) Register(r ioc.Registrar) error {
	if err := ioc.RegisterType[SingletonService](r, NewSingleton); err != nil {
		return err
	}
	return ioc.RegisterType[SingletonService](r, NewSingleton)
}

// SingletonOverwriteModule swaps the singleton for MockSingleton.
type SingletonOverwriteModule struct{}

func (SingletonOverwriteModule) Register(o ioc.Overwriter) error {
	return ioc.OverwriteSingleton[SingletonService](o, &MockSingleton{})
}

type LazySingletonOverwriteModule struct{}

func (LazySingletonOverwriteModule) Register(o ioc.Overwriter) error {
	return ioc.OverwriteLazySingleton[LazySingletonService](o, func() *MockLazySingleton {
		return &MockLazySingleton{}
	})
}

type TypeOverwriteModule struct{}

func (TypeOverwriteModule) Register(o ioc.Overwriter) error {
	return ioc.OverwriteType[TypeService](o, func() *MockType {
		return &MockType{}
	})
}

// NotRegisteredOverwriteModule overwrites a type that was never registered
// under the given lifetime.
type NotRegisteredOverwriteModule struct {
	Lifetime ioc.Lifetime
}

func (m NotRegisteredOverwriteModule) Register(o ioc.Overwriter) error {
	switch m.Lifetime {
	case ioc.LifetimeLazySingleton:
		return ioc.OverwriteLazySingleton[NotReferencedService](o, NewNotReferenced)
	case ioc.LifetimeTransient:
		return ioc.OverwriteType[NotReferencedService](o, NewNotReferenced)
	default:
		return ioc.OverwriteSingleton[NotReferencedService](o, NewNotReferenced())
	}
}
