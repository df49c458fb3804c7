// Package complete implements first-word command-name completion with the
// two-press Tab disambiguation latch described in the design.
package complete

import (
	"strings"

	"console/internal/ring"
	"console/internal/screen"
	"console/internal/undo"
)

// Prompt is reprinted after a multi-match listing.
const Prompt = "$ "

// DefaultCommands is used when no configuration supplies a command list.
var DefaultCommands = []string{
	"cat", "echo", "find_sum", "forktest", "grep", "kill",
	"ln", "ls", "mkdir", "rm", "sh", "wc", "zombie",
}

// Completer holds the known command list and the one-bit Tab latch.
type Completer struct {
	commands      []string
	lastKeyWasTab bool
}

// New returns a Completer over the given command list, or DefaultCommands
// if cmds is empty.
func New(cmds []string) *Completer {
	if len(cmds) == 0 {
		cmds = DefaultCommands
	}
	c := make([]string, len(cmds))
	copy(c, cmds)
	return &Completer{commands: c}
}

// ResetLatch clears the two-press Tab latch. The Editor calls this on every
// non-Tab key, per the design note that only Tab itself updates the latch.
func (c *Completer) ResetLatch() { c.lastKeyWasTab = false }

// Tab runs one Tab-press worth of completion against the editable region of
// lb, issuing whatever Screen operations the outcome requires.
func (c *Completer) Tab(scr *screen.Screen, lb *ring.LineBuffer, log *undo.Log) {
	if lb.C != lb.E {
		// complete and listMatches both render by appending at the
		// hardware cursor and assume that cursor sits at e; a caret
		// parked mid-line would make them overwrite existing text
		// instead of extending it, so completion is only offered at the
		// end of the line.
		c.ResetLatch()
		return
	}

	prefix := make([]byte, 0, lb.Editable())
	for i := lb.W; i < lb.E; i++ {
		b := lb.ByteAt(i)
		if b == ' ' {
			// Not the first word: abort and reset the latch.
			c.ResetLatch()
			return
		}
		prefix = append(prefix, b)
	}

	var matches []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, string(prefix)) {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		c.ResetLatch()
	case 1:
		c.complete(scr, lb, matches[0][len(prefix):])
		c.ResetLatch()
	default:
		if c.lastKeyWasTab {
			c.listMatches(scr, lb, log, matches)
			c.ResetLatch()
			return
		}
		lcp := longestCommonPrefix(matches)
		if len(lcp) > len(prefix) {
			c.complete(scr, lb, lcp[len(prefix):])
		}
		c.lastKeyWasTab = true
	}
}

// complete appends suffix to the editable region, rendering each byte as it
// is typed and advancing the caret to the new end of line.
func (c *Completer) complete(scr *screen.Screen, lb *ring.LineBuffer, suffix string) {
	for i := 0; i < len(suffix); i++ {
		if !lb.TryInsert(lb.E, suffix[i]) {
			break
		}
		scr.Put(int(suffix[i]))
	}
	lb.C = lb.E
}

// listMatches implements the second-Tab branch: erase the in-progress
// rendering of the current edit region back to w (the "Prompt redraw
// steps" in the design: walk the caret to e, backspace to w, blank the
// stray cell), then print a newline, the matches joined by two spaces, a
// fresh prompt, and finally redraw the edit region itself by re-echoing
// [w, e) so editing can continue exactly where it left off. See DESIGN.md
// for why the caret is restored to c, not to w: the design note's literal
// "restore c := w" would make the next typed byte insert before the
// existing prefix instead of after it, which contradicts the worked
// example in spec.md's completion scenario.
func (c *Completer) listMatches(scr *screen.Screen, lb *ring.LineBuffer, log *undo.Log, matches []string) {
	scr.SetCursor(scr.GetCursor() + (lb.E - lb.C))
	for i := lb.E; i > lb.W; i-- {
		scr.Put(screen.Backspace)
	}
	scr.Put(' ')

	scr.Put('\n')
	for i, m := range matches {
		if i > 0 {
			scr.Put(' ')
			scr.Put(' ')
		}
		for j := 0; j < len(m); j++ {
			scr.Put(int(m[j]))
		}
	}
	scr.Put('\n')
	for i := 0; i < len(Prompt); i++ {
		scr.Put(int(Prompt[i]))
	}

	for i := lb.W; i < lb.E; i++ {
		scr.Put(int(lb.ByteAt(i)))
	}
	if lb.C < lb.E {
		scr.SetCursor(scr.GetCursor() - (lb.E - lb.C))
	}
	log.Clear()
}

// longestCommonPrefix scans column-wise across matches, stopping at the
// first divergence or the end of the shortest string.
func longestCommonPrefix(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	prefix := matches[0]
	for col := 0; col < len(prefix); col++ {
		for _, m := range matches[1:] {
			if col >= len(m) || m[col] != prefix[col] {
				return prefix[:col]
			}
		}
	}
	return prefix
}
