// Package mysync provides a test-and-set spin lock.
package mysync

import (
	"runtime"
	"sync/atomic"
)

//==============================================================================
// TAS lock struct and methods
//==============================================================================

// TASLock is a test and set lock.
// @state: 0 = unlocked, 1 = locked
// obs: the zero value is an unlocked lock; must not be copied after first use
type TASLock struct {
	state atomic.Bool
}

// Lock spins, yielding the processor, until the lock is acquired.
func (lock *TASLock) Lock() {
	for lock.state.Swap(true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock.
func (lock *TASLock) Unlock() {
	lock.state.Store(false)
}
