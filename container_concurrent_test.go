package ioc_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/centraunit/ioc"
	"github.com/centraunit/ioc/mock"
	"github.com/stretchr/testify/suite"
)

type ConcurrentTestSuite struct {
	suite.Suite
	c *ioc.Container
}

func (s *ConcurrentTestSuite) SetupTest() {
	s.c = ioc.New()
}

func (s *ConcurrentTestSuite) TestLazySingletonBuiltOnce() {
	counter := &mock.Counter{}
	err := ioc.RegisterLazySingleton[mock.SingletonService](s.c, counter.NewSingletonFactory())
	s.Require().NoError(err)

	const workers = 50
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]mock.SingletonService, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			<-start
			instance, err := ioc.Resolve[mock.SingletonService](s.c)
			if err != nil {
				errs <- err
				return
			}
			results[id] = instance
		}(i)
	}

	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.Equal(int64(1), counter.Calls())
	for _, r := range results {
		s.Same(results[0], r)
	}
}

func (s *ConcurrentTestSuite) TestConcurrentResolutionStress() {
	counter := &mock.Counter{}
	s.Require().NoError(ioc.RegisterSingleton[mock.SingletonService](s.c, mock.NewSingleton()))
	s.Require().NoError(ioc.RegisterLazySingleton[mock.LazySingletonService](s.c, counter.NewSingletonFactory()))
	s.Require().NoError(ioc.RegisterType[mock.TypeService](s.c, mock.NewSingleton))

	const (
		workers     = 10
		resolutions = 10000
	)
	var (
		wg       sync.WaitGroup
		failures atomic.Int64
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < resolutions; j++ {
				var err error
				switch (id + j) % 3 {
				case 0:
					_, err = ioc.Resolve[mock.SingletonService](s.c)
				case 1:
					_, err = ioc.Resolve[mock.LazySingletonService](s.c)
				default:
					_, err = ioc.Resolve[mock.TypeService](s.c)
				}
				if err != nil {
					failures.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int64(0), failures.Load())
	s.Equal(int64(1), counter.Calls())
	s.Len(s.c.Keys(), 3)
	s.True(ioc.IsRegistered[mock.SingletonService](s.c))
	s.True(ioc.IsRegistered[mock.LazySingletonService](s.c))
	s.True(ioc.IsRegistered[mock.TypeService](s.c))
}

func (s *ConcurrentTestSuite) TestNestedResolutionFromFactory() {
	s.Require().NoError(s.c.Register(mock.ReferenceModule{Container: s.c}))
	s.Require().NoError(ioc.RegisterLazySingleton[mock.NotReferencedService](s.c, func() *mock.NotReferenced {
		// resolving from inside a factory re-enters the container lock
		_, err := ioc.Resolve[mock.TypeService](s.c)
		s.NoError(err)
		s.True(s.c.Validate(ioc.KeyOf[mock.SingletonService]()))
		return mock.NewNotReferenced()
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := ioc.Resolve[mock.NotReferencedService](s.c)
		s.NoError(err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.FailNow("nested resolution deadlocked")
	}
}

func (s *ConcurrentTestSuite) TestOtherGoroutinesWaitForFactory() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.Require().NoError(ioc.RegisterLazySingleton[mock.SingletonService](s.c, func() *mock.Singleton {
		close(started)
		<-release
		return mock.NewSingleton()
	}))

	resolved := make(chan struct{})
	go func() {
		defer close(resolved)
		_, _ = ioc.Resolve[mock.SingletonService](s.c)
	}()
	<-started

	validated := make(chan bool, 1)
	go func() {
		validated <- s.c.Validate(ioc.KeyOf[mock.SingletonService]())
	}()

	select {
	case <-validated:
		close(release)
		s.FailNow("validate ran while a factory held the container")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-resolved
	s.True(<-validated)
}

func (s *ConcurrentTestSuite) TestConcurrentRegistrationAndClean() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = ioc.RegisterSingleton[mock.SingletonService](s.c, mock.NewSingleton())
		}()
		go func() {
			defer wg.Done()
			_, _ = ioc.Resolve[mock.SingletonService](s.c)
		}()
		go func() {
			defer wg.Done()
			s.c.Clean()
		}()
	}
	wg.Wait()

	s.LessOrEqual(len(s.c.Keys()), 1)
}

func TestConcurrentSuite(t *testing.T) {
	suite.Run(t, new(ConcurrentTestSuite))
}
