// Package serialsink provides concrete backing implementations of the
// console's "raw UART byte sink" external collaborator: a real serial port
// (Serial, built on Linux only), and a discard sink for when no device path
// is configured.
package serialsink

// Discard drops every byte. It satisfies screen.Sink and is the default
// when no serial device is configured.
type Discard struct{}

// WriteByte is a no-op.
func (Discard) WriteByte(byte) error { return nil }
