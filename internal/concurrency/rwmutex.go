package concurrency

import "sync"

// RWMutex provides shared (reader) and exclusive (writer) acquisition
// with writer preference: once a writer is waiting, new readers block
// until that writer has run, preventing writer starvation at the cost of
// possible reader starvation under continuous write load.
type RWMutex struct {
	mu             sync.Mutex
	readerCond     *sync.Cond
	writerCond     *sync.Cond
	concurrentCount int
	exclusiveCount  int
	exclusiveOwner  uint64
}

// NewRWMutex returns a ready-to-use RWMutex.
func NewRWMutex() *RWMutex {
	m := &RWMutex{}
	m.readerCond = sync.NewCond(&m.mu)
	m.writerCond = sync.NewCond(&m.mu)
	return m
}

// LockRead acquires the lock for shared (reader) access.
func (m *RWMutex) LockRead() {
	m.mu.Lock()
	for m.exclusiveCount != 0 {
		m.readerCond.Wait()
	}
	m.concurrentCount++
	m.mu.Unlock()
}

// TryLockRead attempts a non-blocking shared acquisition.
func (m *RWMutex) TryLockRead() bool {
	if !m.mu.TryLock() {
		return false
	}
	defer m.mu.Unlock()
	if m.exclusiveCount != 0 {
		return false
	}
	m.concurrentCount++
	return true
}

// LockWrite acquires the lock for exclusive (writer) access. token must
// be a non-zero value unique to the calling goroutine.
func (m *RWMutex) LockWrite(token uint64) {
	if token == invalidOwner {
		panic("rwmutex: token must be non-zero")
	}
	m.mu.Lock()
	m.exclusiveCount++
	for m.concurrentCount != 0 {
		m.writerCond.Wait()
	}
	m.exclusiveCount--
	m.exclusiveOwner = token
	// the internal mutex is handed off to the caller: Unlock releases it.
}

// TryLockWrite attempts a non-blocking exclusive acquisition; it also
// fails if any readers are currently active.
func (m *RWMutex) TryLockWrite(token uint64) bool {
	if token == invalidOwner {
		panic("rwmutex: token must be non-zero")
	}
	if !m.mu.TryLock() {
		return false
	}
	if m.concurrentCount != 0 {
		m.mu.Unlock()
		return false
	}
	m.exclusiveOwner = token
	// held: caller must Unlock.
	return true
}

// Unlock releases whichever kind of lock the calling goroutine holds.
// token identifies the caller for the write-unlock path; pass
// invalidOwner (0) from a reader.
func (m *RWMutex) Unlock(token uint64) {
	if token != invalidOwner && m.exclusiveOwner == token {
		m.exclusiveOwner = invalidOwner
		m.readerCond.Broadcast()
		m.writerCond.Broadcast()
		m.mu.Unlock()
		return
	}

	// read-unlock path: the internal mutex is not held on entry.
	m.mu.Lock()
	m.concurrentCount--
	m.mu.Unlock()
	m.writerCond.Broadcast()
}
