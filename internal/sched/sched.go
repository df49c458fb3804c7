// Package sched emulates the two kernel primitives the console core is
// built against: a spinlock that excludes interrupt-time mutation from
// reader copy-out, and a sleep/wakeup channel a blocked reader waits on.
//
// A real kernel disables interrupts on the lock-holding CPU and parks
// sleeping processes on a wait queue keyed by a channel address; on a
// userland host with no interrupts to disable, the design notes (spec.md
// §9) call for the direct substitute: a mutex plus a condition variable.
// That is what Lock and Chan are. This is the one concern in the module
// that is deliberately built on the standard library rather than a
// third-party dependency — see DESIGN.md.
package sched

import "sync"

// Lock is the console's single spinlock (cons.lock in the design notes).
// It excludes all editor mutation, all reader copy-out, and all console
// output from running concurrently.
type Lock struct {
	mu sync.Mutex
}

// Acquire takes the lock.
func (l *Lock) Acquire() { l.mu.Lock() }

// Release releases the lock.
func (l *Lock) Release() { l.mu.Unlock() }

// Chan is a wait channel a reader can Sleep on and a writer can Wakeup.
// It must always be slept on while holding the Lock it was built from;
// Sleep atomically releases that lock for the duration of the wait, exactly
// as the kernel's sleep(chan, lock) does.
type Chan struct {
	cond *sync.Cond
}

// NewChan builds a wait channel guarded by lock.
func NewChan(lock *Lock) *Chan {
	return &Chan{cond: sync.NewCond(&lock.mu)}
}

// Sleep blocks the caller, which must hold the guarding Lock, until the
// next Wakeup. The lock is released while blocked and is held again when
// Sleep returns.
func (c *Chan) Sleep() { c.cond.Wait() }

// Wakeup wakes every caller currently blocked in Sleep. Like the kernel's
// wakeup(chan), it must be called while holding the guarding Lock so the
// waiter observes the state change that justified the wakeup.
func (c *Chan) Wakeup() { c.cond.Broadcast() }
