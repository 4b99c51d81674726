// Package concurrency holds keyed locks for read-modify-write sequences on
// stored records, such as flipping an order's one-way flags.
package concurrency

import "sync"

// LockManager hands out one mutex per key. Mutexes are never evicted, so
// callers lock only keys of records that exist.
type LockManager struct {
	locks sync.Map // key -> *sync.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{}
}

// Lock blocks until key is free and returns its release func
func (lm *LockManager) Lock(key string) (unlock func()) {
	mu, _ := lm.locks.LoadOrStore(key, new(sync.Mutex))
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Len reports how many keys have a mutex
func (lm *LockManager) Len() int {
	n := 0
	lm.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
