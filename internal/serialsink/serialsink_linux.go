//go:build linux

package serialsink

import (
	"fmt"

	serial "github.com/daedaluz/goserial"
)

// Serial mirrors Screen.Put's byte stream onto a real Linux serial device.
type Serial struct {
	port *serial.Port
}

// Open opens name (e.g. "/dev/ttyS0") in raw mode and returns a Sink
// writing to it.
func Open(name string) (*Serial, error) {
	port, err := serial.Open(name, serial.NewOptions())
	if err != nil {
		return nil, fmt.Errorf("serialsink: open %s: %w", name, err)
	}
	if err := port.MakeRaw(); err != nil {
		port.Close()
		return nil, fmt.Errorf("serialsink: set raw mode on %s: %w", name, err)
	}
	return &Serial{port: port}, nil
}

// WriteByte writes a single byte to the serial port.
func (s *Serial) WriteByte(b byte) error {
	_, err := s.port.Write([]byte{b})
	return err
}

// Close releases the underlying file descriptor.
func (s *Serial) Close() error {
	return s.port.Close()
}
