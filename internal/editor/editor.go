// Package editor implements the console's key-code dispatcher: the single
// state machine that turns one key code at a time into mutations of the
// line buffer, the screen, the selection, the clipboard, and the undo log.
//
// Dispatch assumes its caller already holds the console lock (see the
// console package); Editor does no locking of its own.
package editor

import (
	"console/internal/clipboard"
	"console/internal/complete"
	"console/internal/ring"
	"console/internal/screen"
	"console/internal/selection"
	"console/internal/undo"
)

// Editor glues the six editing components together and drives them from a
// single Dispatch entry point.
type Editor struct {
	lb   *ring.LineBuffer
	scr  *screen.Screen
	sel  *selection.Selection
	clip *clipboard.Clipboard
	log  *undo.Log
	comp *complete.Completer

	wake func()

	dumpRequested bool
}

// New builds an Editor over the given components. wake is called whenever a
// line is committed or the reader should otherwise be woken; it is expected
// to wrap a sched.Chan's Wakeup.
func New(lb *ring.LineBuffer, scr *screen.Screen, sel *selection.Selection, clip *clipboard.Clipboard, log *undo.Log, comp *complete.Completer, wake func()) *Editor {
	if wake == nil {
		wake = func() {}
	}
	return &Editor{lb: lb, scr: scr, sel: sel, clip: clip, log: log, comp: comp, wake: wake}
}

// TakeDumpRequest reports whether Ctrl-P was pressed since the last call,
// clearing the flag. The caller is expected to invoke the real process-dump
// callback only after releasing the console lock.
func (e *Editor) TakeDumpRequest() bool {
	r := e.dumpRequested
	e.dumpRequested = false
	return r
}

// Dispatch handles one key code, as delivered by the interrupt path under
// the console lock.
func (e *Editor) Dispatch(code int) {
	if code == int(KeyTabByte) {
		e.sel.Clear(e.scr, e.lb.W, e.lb.E, e.screenOfW())
		e.comp.Tab(e.scr, e.lb, e.log)
		return
	}

	// Every other key cancels an in-progress two-Tab disambiguation.
	e.comp.ResetLatch()

	switch code {
	case int(KeySelect):
		e.toggleSelection()
	case int(KeyCopy):
		e.copySelection()
	case int(KeyPaste):
		e.pasteClipboard()
	case int(KeyWordLeft):
		e.wordLeft()
	case int(KeyEOF):
		e.eofOrWordRight()
	case int(KeyDumpProcs):
		e.dumpRequested = true
	case int(KeyKillLine):
		e.killLine()
	case int(KeyBackspace), int(KeyDEL):
		e.backspace()
	case int(KeyUndo):
		e.undo()
	case KeyLeft:
		if e.lb.C > e.lb.W {
			e.moveCaretTo(e.lb.C - 1)
		}
	case KeyRight:
		if e.lb.C < e.lb.E {
			e.moveCaretTo(e.lb.C + 1)
		}
	default:
		if code != 0 {
			e.insertOrCommit(code)
		}
	}
}

// screenOfW returns the on-screen cell corresponding to logical index w,
// derived from the hardware cursor (which tracks c) and the distance c-w.
func (e *Editor) screenOfW() int {
	return e.scr.GetCursor() - (e.lb.C - e.lb.W)
}

// moveCaretTo repositions the logical caret and walks the hardware cursor
// by the same delta.
func (e *Editor) moveCaretTo(newC int) {
	delta := newC - e.lb.C
	e.scr.SetCursor(e.scr.GetCursor() + delta)
	e.lb.C = newC
}

// toggleSelection cycles none -> anchored -> active -> none.
func (e *Editor) toggleSelection() {
	switch {
	case e.sel.IsActive():
		e.sel.Clear(e.scr, e.lb.W, e.lb.E, e.screenOfW())
	case e.sel.Selecting():
		e.sel.End(e.lb.C)
		e.sel.Highlight(e.scr, e.lb.W, e.lb.E, e.screenOfW(), true)
	default:
		e.sel.Begin(e.lb.C)
	}
}

// copySelection copies the active range to the clipboard, or clears a
// stale selection and empties the clipboard if there is nothing to copy.
func (e *Editor) copySelection() {
	lo, hi, ok := e.sel.Normalized(e.lb.W, e.lb.E)
	if !ok {
		e.sel.Clear(e.scr, e.lb.W, e.lb.E, e.screenOfW())
		e.clip.Clear()
		return
	}
	buf := make([]byte, hi-lo)
	for i := lo; i < hi; i++ {
		buf[i-lo] = e.lb.ByteAt(i)
	}
	e.clip.Copy(buf)
}

// pasteClipboard replaces an active selection (if any) with the clipboard
// contents, inserted byte by byte with undo recording.
func (e *Editor) pasteClipboard() {
	if e.clip.Empty() {
		return
	}
	e.deleteSelectionIfAny()
	for _, b := range e.clip.Paste() {
		e.insertByteWithUndo(b)
	}
	e.sel.Clear(e.scr, e.lb.W, e.lb.E, e.screenOfW())
}

// wordLeft walks the caret back past any trailing whitespace and then past
// the word before it, without crossing w.
func (e *Editor) wordLeft() {
	pos := e.lb.C
	for pos > e.lb.W && isSpace(e.lb.ByteAt(pos-1)) {
		pos--
	}
	for pos > e.lb.W && !isSpace(e.lb.ByteAt(pos-1)) {
		pos--
	}
	e.moveCaretTo(pos)
}

// eofOrWordRight implements Ctrl-D's dual role: on an empty line it injects
// and commits a literal EOF byte; otherwise it moves the caret forward one
// word, without crossing e.
func (e *Editor) eofOrWordRight() {
	if e.lb.E == e.lb.W {
		e.lb.TryInsert(e.lb.E, Ctrl('D'))
		e.lb.Commit()
		e.log.Clear()
		e.wake()
		return
	}
	if e.lb.C >= e.lb.E {
		return
	}
	pos := e.lb.C
	for pos < e.lb.E && !isSpace(e.lb.ByteAt(pos)) {
		pos++
	}
	for pos < e.lb.E && isSpace(e.lb.ByteAt(pos)) {
		pos++
	}
	e.moveCaretTo(pos)
}

// killLine walks the caret to e, then erases back to w with a visible
// backspace per character, and drops the undo log along with it.
func (e *Editor) killLine() {
	e.moveCaretTo(e.lb.E)
	origE := e.lb.E
	n := origE - e.lb.W
	for i := 0; i < n; i++ {
		e.scr.Put(screen.Backspace)
	}
	if n > 0 {
		e.lb.DeleteRange(e.lb.W, origE)
	}
	e.log.Clear()
}

// backspace deletes the active selection if there is one, otherwise the
// single byte before the caret.
func (e *Editor) backspace() {
	if lo, hi, ok := e.sel.Normalized(e.lb.W, e.lb.E); ok {
		oldC := e.lb.C
		n := hi - lo
		e.lb.DeleteRange(lo, hi)
		e.redrawAfterDelete(oldC, n)
		e.sel.Reset()
		return
	}
	if e.lb.C > e.lb.W {
		oldC := e.lb.C
		e.lb.DeleteRange(e.lb.C-1, e.lb.C)
		e.redrawAfterDelete(oldC, 1)
	}
}

// undo pops and reverts the most recent insertion by deleting the byte back
// out. The log never records deletions, so a backspace or selection delete
// can leave an entry whose byte no longer sits at its recorded position;
// such an entry is popped and discarded without changing the line.
func (e *Editor) undo() {
	op, ok := e.log.Pop()
	if !ok {
		return
	}
	if op.Pos < e.lb.W || op.Pos >= e.lb.E || e.lb.ByteAt(op.Pos) != op.Ch {
		return
	}
	oldC := e.lb.C
	e.lb.DeleteRange(op.Pos, op.Pos+1)
	e.redrawAfterDelete(oldC, 1)
}

// insertOrCommit handles the default path: a plain byte, a line terminator,
// or a forced commit on a full buffer.
func (e *Editor) insertOrCommit(code int) {
	b := byte(code)
	if b == '\r' {
		b = '\n'
	}
	e.deleteSelectionIfAny()
	if b == '\n' {
		e.scr.Put('\n')
		e.lb.AppendNewlineAndCommit()
		e.log.Clear()
		e.wake()
		return
	}
	if e.lb.Full() {
		// No room for b: commit what's already in the editable region as
		// is, without appending a newline that was never typed. b itself
		// is dropped.
		e.lb.Commit()
		e.log.Clear()
		e.wake()
		return
	}
	e.insertByteWithUndo(b)
}

// deleteSelectionIfAny removes the active selection, if any, and repaints
// the shortened tail.
func (e *Editor) deleteSelectionIfAny() {
	lo, hi, ok := e.sel.Normalized(e.lb.W, e.lb.E)
	if !ok {
		return
	}
	oldC := e.lb.C
	n := hi - lo
	e.lb.DeleteRange(lo, hi)
	e.redrawAfterDelete(oldC, n)
	e.sel.Reset()
}

// insertByteWithUndo inserts b at the caret, records the insertion, and
// repaints the shifted tail. It reports false if the ring has no room.
func (e *Editor) insertByteWithUndo(b byte) bool {
	pos := e.lb.C
	if !e.lb.TryInsert(pos, b) {
		return false
	}
	e.log.PushInsert(pos, b)
	e.redrawFrom(pos)
	return true
}

// redrawFrom repaints [from, e) after an insertion and walks the hardware
// cursor back to the logical caret.
func (e *Editor) redrawFrom(from int) {
	for i := from; i < e.lb.E; i++ {
		e.scr.Put(int(e.lb.ByteAt(i)))
	}
	if back := e.lb.E - e.lb.C; back > 0 {
		e.scr.SetCursor(e.scr.GetCursor() - back)
	}
}

// redrawAfterDelete repaints the line from the caret (which DeleteRange has
// already set to the gap start) through e, blanks the removed trailing
// cells, and walks the hardware cursor back to the caret. oldC is the
// logical caret position before the delete, needed because the hardware
// cursor still sits at cell(oldC) when this is called and must first be
// walked back to cell(c) before anything is painted.
func (e *Editor) redrawAfterDelete(oldC, removed int) {
	e.scr.SetCursor(e.scr.GetCursor() - (oldC - e.lb.C))

	from := e.lb.C
	for i := from; i < e.lb.E; i++ {
		e.scr.Put(int(e.lb.ByteAt(i)))
	}
	for i := 0; i < removed; i++ {
		e.scr.Put(' ')
	}
	back := (e.lb.E - e.lb.C) + removed
	e.scr.SetCursor(e.scr.GetCursor() - back)
}

func isSpace(b byte) bool { return b == ' ' }
