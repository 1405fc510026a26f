package ioc_test

import (
	"errors"
	"testing"

	"github.com/centraunit/ioc"
	"github.com/centraunit/ioc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type countingModule struct {
	calls int
	err   error
}

func (m *countingModule) Register(r ioc.Registrar) error {
	m.calls++
	return m.err
}

func TestRegisterInvokesEachModuleOnce(t *testing.T) {
	c := ioc.New()
	first := &countingModule{}
	second := &countingModule{}

	require.NoError(t, c.Register(first, second))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestRegisterCombinesModuleErrors(t *testing.T) {
	c := ioc.New()
	failing := &countingModule{err: errors.New("module failed")}
	after := &countingModule{}

	err := c.Register(
		mock.TwoSameSingletonsModule{},
		failing,
		mock.WrongTypeModule{},
		after,
	)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Equal(t, 1, after.calls)

	var dup *ioc.AlreadyRegisteredError
	assert.True(t, errors.As(err, &dup))
	var conformErr *ioc.DoesNotConformError
	assert.True(t, errors.As(err, &conformErr))

	// the first singleton of the duplicate pair stays registered
	assert.Len(t, c.Keys(), 1)
}

func TestDuplicateModulesFail(t *testing.T) {
	for name, module := range map[string]ioc.Module{
		"Singleton":     mock.TwoSameSingletonsModule{},
		"LazySingleton": mock.TwoSameLazySingletonsModule{},
		"Type":          mock.TwoSameTypesModule{},
	} {
		t.Run(name, func(t *testing.T) {
			c := ioc.New()
			err := c.Register(module)
			var dup *ioc.AlreadyRegisteredError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, "mock.SingletonService", dup.Type)
			assert.True(t, ioc.IsRegistered[mock.SingletonService](c))
		})
	}
}

func TestWrongModulesDoNotRegister(t *testing.T) {
	for name, module := range map[string]ioc.Module{
		"Singleton":     mock.WrongSingletonModule{},
		"LazySingleton": mock.WrongLazySingletonModule{},
		"Type":          mock.WrongTypeModule{},
	} {
		t.Run(name, func(t *testing.T) {
			c := ioc.New()
			err := c.Register(module)
			var conformErr *ioc.DoesNotConformError
			require.True(t, errors.As(err, &conformErr))
			assert.False(t, ioc.IsRegistered[mock.NotReferencedService](c))
		})
	}
}

func TestPackageLevelRegistration(t *testing.T) {
	ioc.Clean()
	t.Cleanup(ioc.Clean)

	require.NoError(t, ioc.Register(mock.ReferenceModule{}))
	require.NoError(t, ioc.RegisterAndOverwrite(mock.SingletonOverwriteModule{}))

	single, err := ioc.Resolve[mock.SingletonService](ioc.Default())
	require.NoError(t, err)
	assert.Equal(t, "*mock.MockSingleton", single.ID())

	// Type resolves its dependencies from the process-wide container
	typ, ok := ioc.MustResolve[mock.TypeService](ioc.Default()).(*mock.Type)
	require.True(t, ok)
	assert.Same(t, single, typ.Singleton.Get())

	ioc.Clean()
	assert.Empty(t, ioc.Default().Keys())
}
