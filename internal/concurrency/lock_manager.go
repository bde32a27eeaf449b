package concurrency

import (
	"sync"
)

// LockManager handles named locks. The scheduler uses it as the per-job
// overlap guard: a job whose previous run is still in flight is skipped.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryAcquire attempts to take the named lock without blocking. Callers that
// get true must call Release with the same key.
func (lm *LockManager) TryAcquire(key string) bool {
	return lm.GetLock(key).TryLock()
}

// Release unlocks the named lock.
func (lm *LockManager) Release(key string) {
	lm.GetLock(key).Unlock()
}
