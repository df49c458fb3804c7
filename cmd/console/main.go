// Command console runs the line-editing console against the local
// terminal: it puts stdin into raw mode, feeds decoded keystrokes through
// the same dispatcher a kernel's keyboard ISR would drive, and renders the
// resulting 25x80 framebuffer every frame.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"console/console"
	"console/internal/config"
	"console/internal/screen"
	"console/internal/serialsink"
	"console/internal/term"
)

func main() {
	configPath := flag.String("config", "", "path to a console.toml config file")
	devicePath := flag.String("device", "", "path to a serial device to mirror output to (Linux only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	sink, closeSink := openSink(*devicePath)
	if closeSink != nil {
		defer closeSink()
	}

	renderer := term.NewRenderer()

	fd := int(os.Stdin.Fd())
	st, err := term.EnterRaw(fd)
	if err != nil {
		log.Fatal(err)
	}
	defer term.Restore(fd, st)

	var cons *console.Console
	dispatch := func(code int) {
		cons.ConsoleIntr(oneShot(code))
	}
	cons = console.New(
		console.WithConfig(cfg),
		console.WithSink(sink),
		console.WithPainter(renderer),
		console.WithDump(dumpRunqueue, os.Stderr),
	)

	model := term.NewModel(renderer, dispatch)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		log.Fatal(err)
	}
}

// oneShot turns a single decoded key code into the one-shot getc_fn
// ConsoleIntr expects: the code once, then a negative sentinel.
func oneShot(code int) func() int {
	done := false
	return func() int {
		if done {
			return -1
		}
		done = true
		return code
	}
}

// openSink opens the configured serial device as the raw byte sink, or
// returns a discard sink on an empty path. serialsink.Open is built on
// Linux only, so this binary builds on Linux only.
func openSink(path string) (screen.Sink, func() error) {
	if path == "" {
		return serialsink.Discard{}, nil
	}
	sink, err := serialsink.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	return sink, sink.Close
}

// dumpRunqueue is Ctrl-P's deferred process-dump callback. With no real
// scheduler to introspect, it reports that the request was received.
func dumpRunqueue(w io.Writer) {
	fmt.Fprintln(w, "console: process dump requested")
}
