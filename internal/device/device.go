// Package device models the character-device contract the console binds
// to: a blocking read entry point bracketed by an inode lock, a
// non-blocking write entry point, and the device-switch registration that
// hands both to a major/minor pair.
package device

import (
	"errors"
	"sync"

	"console/internal/ring"
	"console/internal/sched"
)

// ControlD is the literal EOF byte a reader may find committed at the head
// of a line.
const ControlD = 0x04

// ErrKilled is returned by Read when the calling process was marked killed
// while blocked waiting for input. No bytes are consumed in this case.
var ErrKilled = errors.New("device: reader killed")

// Inode is the lock a blocking read is bracketed by: released before
// waiting on the console and reacquired once the console work is done, so a
// blocked reader never holds both locks at once.
type Inode struct {
	mu sync.Mutex
}

// Lock and Unlock satisfy the bracketing pattern in Read.
func (i *Inode) Lock()   { i.mu.Lock() }
func (i *Inode) Unlock() { i.mu.Unlock() }

// IO is the console's DeviceIO: blocking byte read, non-blocking byte
// write, bound to a LineBuffer, a Screen-driven writer, and the console's
// lock/wait-channel pair.
type IO struct {
	lb       *ring.LineBuffer
	lock     *sched.Lock
	readChan *sched.Chan
	put      func(b int)
}

// New builds a DeviceIO over lb, guarded by lock, with readers parked on
// readChan while the line is empty. put renders a written byte (normally
// Screen.Put).
func New(lb *ring.LineBuffer, lock *sched.Lock, readChan *sched.Chan, put func(b int)) *IO {
	return &IO{lb: lb, lock: lock, readChan: readChan, put: put}
}

// Read copies up to len(dst) bytes into dst, blocking on readChan while the
// line has nothing committed. killed is polled after every wakeup; if it
// reports true the call returns ErrKilled without consuming any byte for
// this wakeup. An EOF byte consumed as the very first byte of the call
// yields (0, nil); one encountered after bytes were already copied is
// pushed back for the next call and the copied count is returned.
func (d *IO) Read(inode *Inode, dst []byte, killed func() bool) (int, error) {
	inode.Unlock()
	defer inode.Lock()

	d.lock.Acquire()
	defer d.lock.Release()

	target := len(dst)
	n := target
	for n > 0 {
		for d.lb.Pending() == 0 {
			d.readChan.Sleep()
			if killed != nil && killed() {
				return -1, ErrKilled
			}
		}
		b := d.lb.ReadByte()
		if b == ControlD {
			if target-n > 0 {
				d.lb.UnreadByte()
			}
			break
		}
		dst[target-n] = b
		n--
		if b == '\n' {
			break
		}
	}
	return target - n, nil
}

// Write renders every byte of src (masked to 8 bits) and always reports
// len(src) copied.
func (d *IO) Write(src []byte) int {
	d.lock.Acquire()
	defer d.lock.Release()
	for _, b := range src {
		d.put(int(b & 0xff))
	}
	return len(src)
}

// Entry is a pair of device-switch entry points, matching the shape the
// real device table binds a major/minor pair to.
type Entry struct {
	Read  func(dst []byte, killed func() bool) (int, error)
	Write func(src []byte) int
}

// Table is a small major/minor device-switch registry.
type Table struct {
	mu      sync.Mutex
	entries map[[2]int]Entry
}

// NewTable returns an empty device-switch table.
func NewTable() *Table {
	return &Table{entries: make(map[[2]int]Entry)}
}

// Register binds an Entry to a major/minor pair, as the console's init does
// at boot for its fixed major number.
func (t *Table) Register(major, minor int, e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[[2]int{major, minor}] = e
}

// Lookup returns the Entry bound to major/minor, if any.
func (t *Table) Lookup(major, minor int) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[[2]int{major, minor}]
	return e, ok
}
