package ioc

// RegisterSingleton binds T to an already constructed instance.
// The same instance is returned for the lifetime of the container.
// Returns DoesNotConformError if instance does not satisfy T.
// Returns AlreadyRegisteredError if T is already bound under any lifetime.
//
//	err := ioc.RegisterSingleton[Clock](c, &systemClock{})
func RegisterSingleton[T, I any](r Registrar, instance I) error {
	return r.register(singletonBinding[T](instance))
}

// RegisterLazySingleton binds T to a factory that is invoked on the first
// resolution only. The result is reused afterwards.
func RegisterLazySingleton[T, I any](r Registrar, factory func() I) error {
	return r.register(factoryBinding[T](LifetimeLazySingleton, factory))
}

// RegisterType binds T to a factory that is invoked on every resolution.
func RegisterType[T, I any](r Registrar, factory func() I) error {
	return r.register(factoryBinding[T](LifetimeTransient, factory))
}

// OverwriteSingleton replaces the singleton bound to T.
// Returns NotRegisteredError if T has no singleton binding.
func OverwriteSingleton[T, I any](o Overwriter, instance I) error {
	return o.overwrite(singletonBinding[T](instance))
}

// OverwriteLazySingleton replaces the lazy singleton bound to T. An instance
// that was already built is discarded and the new factory runs on the next
// resolution.
// Returns NotRegisteredError if T has no lazy singleton binding.
func OverwriteLazySingleton[T, I any](o Overwriter, factory func() I) error {
	return o.overwrite(factoryBinding[T](LifetimeLazySingleton, factory))
}

// OverwriteType replaces the transient factory bound to T.
// Returns NotRegisteredError if T has no transient binding.
func OverwriteType[T, I any](o Overwriter, factory func() I) error {
	return o.overwrite(factoryBinding[T](LifetimeTransient, factory))
}

func singletonBinding[T, I any](instance I) binding {
	return binding{
		token:    tokenOf[T](),
		lifetime: LifetimeSingleton,
		instance: instance,
	}
}

func factoryBinding[T, I any](lifetime Lifetime, factory func() I) binding {
	b := binding{
		token:    tokenOf[T](),
		lifetime: lifetime,
		impl:     implType[I](),
	}
	if factory != nil {
		b.factory = func() any { return factory() }
	}
	return b
}
