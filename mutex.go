package ioc

import "sync"

// reentrantMutex is a mutual exclusion lock that the owning goroutine may
// acquire again without blocking. Each Lock must be paired with an Unlock.
// Goroutine IDs start at 1, so owner 0 means unlocked.
type reentrantMutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64
	depth int
}

func (m *reentrantMutex) Lock() {
	id := currentGoroutine()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.depth > 0 && m.owner == id {
		m.depth++
		return
	}
	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}
	for m.depth > 0 {
		m.cond.Wait()
	}
	m.owner = id
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.depth == 0 {
		panic("ioc: unlock of unlocked mutex")
	}
	m.depth--
	if m.depth == 0 {
		m.owner = 0
		if m.cond != nil {
			m.cond.Signal()
		}
	}
}
