package console

import (
	"io"
	"testing"

	"console/internal/config"
	"console/internal/device"
	"console/internal/editor"
)

func configWithCommands(cmds ...string) config.Config {
	cfg := config.Default()
	cfg.Completion.Commands = cmds
	return cfg
}

// feed turns a slice of key codes (literal bytes plus named control codes)
// into a one-shot getc_fn and drives it through ConsoleIntr, matching how a real
// keyboard ISR drains one batch of decoded keystrokes.
func feed(c *Console, codes []int) {
	i := 0
	c.ConsoleIntr(func() int {
		if i >= len(codes) {
			return -1
		}
		code := codes[i]
		i++
		return code
	})
}

func codesOf(s string) []int {
	codes := make([]int, len(s))
	for i, b := range []byte(s) {
		codes[i] = int(b)
	}
	return codes
}

func TestScenarioEchoLine(t *testing.T) {
	c := New()
	feed(c, codesOf("hello\n"))

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 || string(dst[:6]) != "hello\n" {
		t.Fatalf("got n=%d dst=%q, want 6 \"hello\\n\"", n, dst[:n])
	}
}

func TestScenarioEmptyLineEOF(t *testing.T) {
	c := New()
	feed(c, []int{int(editor.KeyEOF)})

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("got n=%d, want 0", n)
	}
}

func TestScenarioMidLineEOFRetention(t *testing.T) {
	c := New()
	feed(c, []int{'a', 'b', int(editor.KeyEOF)})

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || string(dst[:2]) != "ab" {
		t.Fatalf("first read got n=%d dst=%q, want 2 \"ab\"", n, dst[:n])
	}

	n, err = c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("second read got n=%d, want 0 (EOF consumed)", n)
	}
}

func TestScenarioInsertMiddleAndUndo(t *testing.T) {
	c := New()
	feed(c, []int{'a', 'c', editor.KeyLeft, 'b', int(editor.KeyUndo), '\n'})

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(dst[:n]) != "ac\n" {
		t.Fatalf("got %q, want \"ac\\n\"", dst[:n])
	}
}

func TestScenarioSelectCutPaste(t *testing.T) {
	c := New()
	// "hello", caret walked back to just after 'h', anchor the selection
	// there, then walk forward to just before the final 'o' and close it:
	// selects "ell".
	feed(c, []int{
		'h', 'e', 'l', 'l', 'o',
		editor.KeyLeft, editor.KeyLeft, editor.KeyLeft, editor.KeyLeft,
		int(editor.KeySelect),
		editor.KeyRight, editor.KeyRight, editor.KeyRight,
		int(editor.KeySelect),
		int(editor.KeyCopy),
		int(editor.KeyKillLine),
		int(editor.KeyPaste),
		'\n',
	})

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(dst[:n]) != "ell\n" {
		t.Fatalf("got %q, want \"ell\\n\"", dst[:n])
	}
}

func TestScenarioTabCompletionTwoMatches(t *testing.T) {
	c := New(WithConfig(configWithCommands("forktest", "find_sum")))
	feed(c, []int{'f', int(editor.KeyTabByte), int(editor.KeyTabByte), 'i', int(editor.KeyTabByte), '\n'})

	dst := make([]byte, 16)
	n, err := c.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(dst[:n]) != "find_sum\n" {
		t.Fatalf("got %q, want \"find_sum\\n\"", dst[:n])
	}
}

func TestRegisterAndReadThroughDeviceTable(t *testing.T) {
	c := New()
	table := device.NewTable()
	c.Register(table)

	entry, ok := table.Lookup(MajorConsole, MinorConsole)
	if !ok {
		t.Fatal("expected console registered under MajorConsole/MinorConsole")
	}

	if n := entry.Write([]byte("x")); n != 1 {
		t.Fatalf("got write n=%d, want 1", n)
	}

	feed(c, codesOf("hi\n"))
	dst := make([]byte, 8)
	n, err := entry.Read(dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(dst[:n]) != "hi\n" {
		t.Fatalf("got %q, want \"hi\\n\"", dst[:n])
	}
}

func TestDumpCallbackInvokedAfterLockRelease(t *testing.T) {
	var dumped bool
	var c *Console
	c = New(WithDump(func(w io.Writer) {
		// Write takes the console lock, so it would block here if
		// ConsoleIntr still held that lock.
		c.Write([]byte("x"))
		dumped = true
	}, nil))
	feed(c, []int{int(editor.KeyDumpProcs)})
	if !dumped {
		t.Fatal("expected Ctrl-P to invoke the dump callback")
	}
}
