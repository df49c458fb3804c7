// Package console assembles the line-editing core (LineBuffer, Screen,
// Selection, Clipboard, UndoLog, Completer, Editor) with the scheduling
// primitives and device-switch plumbing into the single object a caller
// drives: feed it key codes from an interrupt source, read committed lines
// out the other side, write bytes in to be rendered.
package console

import (
	"io"

	"console/internal/clipboard"
	"console/internal/complete"
	"console/internal/config"
	"console/internal/device"
	"console/internal/editor"
	"console/internal/ring"
	"console/internal/sched"
	"console/internal/screen"
	"console/internal/selection"
	"console/internal/undo"
)

// MajorConsole is the fixed major device number the console registers
// under, matching spec.md §6's "fixed major number" contract.
const MajorConsole = 1

// MinorConsole is the console's minor number within MajorConsole.
const MinorConsole = 1

// Console is the assembled line-editing console.
type Console struct {
	lb   *ring.LineBuffer
	scr  *screen.Screen
	ed   *editor.Editor
	lock *sched.Lock
	dev  *device.IO

	inode device.Inode

	dumpFunc func(io.Writer)
	dumpOut  io.Writer
}

// Option configures a new Console.
type Option func(*options)

type options struct {
	sink     screen.Sink
	painter  screen.Painter
	cfg      config.Config
	dumpFunc func(io.Writer)
	dumpOut  io.Writer
}

// WithSink attaches the raw byte sink every rendered byte is mirrored to
// (see the serialsink package).
func WithSink(s screen.Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithPainter attaches an observer mirroring framebuffer writes onto a
// real display (see the term package).
func WithPainter(p screen.Painter) Option {
	return func(o *options) { o.painter = p }
}

// WithConfig supplies the loaded completion/screen configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithDump wires Ctrl-P's deferred process-dump callback, invoked with w
// after the console lock has been released.
func WithDump(fn func(io.Writer), w io.Writer) Option {
	return func(o *options) { o.dumpFunc, o.dumpOut = fn, w }
}

// New assembles a Console from the given options, falling back to
// config.Default() and a discard sink/painter when not overridden.
func New(opts ...Option) *Console {
	o := &options{cfg: config.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var screenOpts []screen.Option
	if o.sink != nil {
		screenOpts = append(screenOpts, screen.WithSink(o.sink))
	}
	if o.painter != nil {
		screenOpts = append(screenOpts, screen.WithPainter(o.painter))
	}
	if o.cfg.Screen.Normal != nil && o.cfg.Screen.Highlight != nil {
		screenOpts = append(screenOpts, screen.WithAttrs(*o.cfg.Screen.Normal, *o.cfg.Screen.Highlight))
	}
	scr := screen.New(screenOpts...)

	lb := &ring.LineBuffer{}
	lock := &sched.Lock{}
	readChan := sched.NewChan(lock)
	sel := selection.New()
	clip := &clipboard.Clipboard{}
	undoLog := &undo.Log{}
	comp := complete.New(o.cfg.Completion.Commands)

	ed := editor.New(lb, scr, sel, clip, undoLog, comp, readChan.Wakeup)
	dev := device.New(lb, lock, readChan, scr.Put)

	return &Console{
		lb:       lb,
		scr:      scr,
		ed:       ed,
		lock:     lock,
		dev:      dev,
		dumpFunc: o.dumpFunc,
		dumpOut:  o.dumpOut,
	}
}

// Register binds the console's read/write entry points into table under
// MajorConsole/MinorConsole, as Init does at boot in the design.
func (c *Console) Register(table *device.Table) {
	table.Register(MajorConsole, MinorConsole, device.Entry{
		Read:  func(dst []byte, killed func() bool) (int, error) { return c.Read(dst, killed) },
		Write: c.Write,
	})
}

// Inode returns the console's single inode handle, used to bracket Read
// calls per spec.md §4.8.
func (c *Console) Inode() *device.Inode { return &c.inode }

// ConsoleIntr drains getc() until it returns a negative value, dispatching
// each non-negative code to the editor under the console lock. A
// process-dump request raised during dispatch is invoked only after the
// lock is released, per spec.md §5's deferred-work rule.
func (c *Console) ConsoleIntr(getc func() int) {
	c.lock.Acquire()
	for {
		code := getc()
		if code < 0 {
			break
		}
		c.ed.Dispatch(code)
	}
	dumpRequested := c.ed.TakeDumpRequest()
	c.lock.Release()

	if dumpRequested && c.dumpFunc != nil {
		c.dumpFunc(c.dumpOut)
	}
}

// Read blocks until a full committed line (or EOF) is available, per
// spec.md §4.8. It brackets the call with the console's inode lock.
func (c *Console) Read(dst []byte, killed func() bool) (int, error) {
	c.inode.Lock()
	defer c.inode.Unlock()
	return c.dev.Read(&c.inode, dst, killed)
}

// Write renders every byte of src and always reports len(src).
func (c *Console) Write(src []byte) int {
	return c.dev.Write(src)
}
