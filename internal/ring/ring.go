// Package ring implements the console's editable-line ring buffer.
//
// A LineBuffer holds a single logical input line in a fixed-size byte ring.
// Four monotonically-advancing indices, interpreted modulo the ring size,
// partition the ring into a committed-but-undelivered region, an editable
// region, and free space:
//
//	r  read cursor; [r, w) is committed and awaiting delivery to a reader
//	w  write watermark; [w, e) is the region currently being edited
//	e  end of editable content
//	c  logical caret, w <= c <= e
//
// Indices never wrap in storage; callers mask by Size when touching the
// underlying array. This keeps r <= w <= e <= r+Size comparisons simple
// integer arithmetic instead of modular reasoning.
package ring

import "fmt"

// Size is the capacity of the ring, B in the design notes.
const Size = 128

// LineBuffer is a fixed-capacity ring holding one logical input line.
type LineBuffer struct {
	buf  [Size]byte
	R, W, E, C int
}

// mask reduces an unbounded index to a storage slot.
func mask(i int) int { return i % Size }

// Reset returns the buffer to its zero state, as at boot.
func (l *LineBuffer) Reset() {
	l.R, l.W, l.E, l.C = 0, 0, 0, 0
}

// Pending reports the number of committed-but-undelivered bytes, w-r.
func (l *LineBuffer) Pending() int { return l.W - l.R }

// Editable reports the number of bytes in the editable region, e-w.
func (l *LineBuffer) Editable() int { return l.E - l.W }

// Full reports whether the ring has reached capacity: the undelivered and
// editable bytes together (e-r) occupy all Size slots.
func (l *LineBuffer) Full() bool { return l.E-l.R >= Size }

// ByteAt returns the byte stored at unbounded logical index i.
func (l *LineBuffer) ByteAt(i int) byte { return l.buf[mask(i)] }

// ReadByte consumes one byte from [r, w) for delivery to a reader.
// It panics if called with r == w; callers must check Pending first.
func (l *LineBuffer) ReadByte() byte {
	if l.R == l.W {
		panic("ring: ReadByte with empty read region")
	}
	b := l.buf[mask(l.R)]
	l.R++
	return b
}

// UnreadByte pushes r back by one, retaining a byte for the next read.
// Used to retain an EOF byte (see device package) across read calls.
func (l *LineBuffer) UnreadByte() {
	if l.R == 0 {
		panic("ring: UnreadByte at r == 0")
	}
	l.R--
}

// TryInsert inserts c at logical position pos in [w, e], shifting [pos, e)
// right by one. It reports false without mutating the buffer if the ring is
// full. pos must satisfy w <= pos <= e.
func (l *LineBuffer) TryInsert(pos int, c byte) bool {
	if pos < l.W || pos > l.E {
		panic(fmt.Sprintf("ring: TryInsert pos %d out of [%d,%d]", pos, l.W, l.E))
	}
	if l.E-l.R >= Size {
		return false
	}
	for i := l.E; i > pos; i-- {
		l.buf[mask(i)] = l.buf[mask(i-1)]
	}
	l.buf[mask(pos)] = c
	l.E++
	l.C = pos + 1
	return true
}

// DeleteRange removes [lo, hi) from the editable region, shifting [hi, e)
// left by hi-lo. lo and hi must satisfy w <= lo <= hi <= e.
func (l *LineBuffer) DeleteRange(lo, hi int) {
	if lo < l.W || hi > l.E || lo > hi {
		panic(fmt.Sprintf("ring: DeleteRange [%d,%d) out of [%d,%d]", lo, hi, l.W, l.E))
	}
	n := hi - lo
	if n == 0 {
		return
	}
	for i := lo; i < l.E-n; i++ {
		l.buf[mask(i)] = l.buf[mask(i+n)]
	}
	l.E -= n
	l.C = lo
}

// AppendNewlineAndCommit appends '\n' at e and commits the line by setting
// w := e (after the append) and c := w. Used for a real newline.
func (l *LineBuffer) AppendNewlineAndCommit() {
	l.buf[mask(l.E)] = '\n'
	l.E++
	l.W = l.E
	l.C = l.W
}

// Commit advances w to e and sets c := w, without appending a byte. Used by
// the empty-line Ctrl-D path, which injects the EOF byte itself before
// calling Commit, and by the buffer-full forced commit.
func (l *LineBuffer) Commit() {
	l.W = l.E
	l.C = l.W
}

// CheckInvariants reports whether the structural invariants from the design
// (r <= w <= e, w <= c <= e, e-r <= Size) currently hold. Intended for tests.
func (l *LineBuffer) CheckInvariants() error {
	if !(l.R <= l.W && l.W <= l.E) {
		return fmt.Errorf("ring: r<=w<=e violated: r=%d w=%d e=%d", l.R, l.W, l.E)
	}
	if !(l.W <= l.C && l.C <= l.E) {
		return fmt.Errorf("ring: w<=c<=e violated: w=%d c=%d e=%d", l.W, l.C, l.E)
	}
	if l.E-l.R > Size {
		return fmt.Errorf("ring: e-r<=%d violated: r=%d e=%d", Size, l.R, l.E)
	}
	return nil
}
