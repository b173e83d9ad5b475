package serial

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// Read timeout in milliseconds (0 = blocking). On POSIX a timed out
	// read returns EOF, which ends a Tail, so the console blocks.
	ReadTimeout int
}

// DefaultConfig returns a default configuration for the flasher's USB console
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   115200,
	}
}

// Port is a read-only console connection to the firmware
type Port struct {
	rc   io.ReadCloser
	name string

	closeOnce sync.Once
	closeErr  error
}

// Open opens the console device with tarm/serial
func Open(cfg *Config) (*Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return newPort(port, cfg.Device), nil
}

func newPort(rc io.ReadCloser, name string) *Port {
	return &Port{rc: rc, name: name}
}

// Name returns the device path
func (p *Port) Name() string { return p.name }

// Read reads raw console bytes
func (p *Port) Read(b []byte) (int, error) {
	return p.rc.Read(b)
}

// Close closes the device. Safe to call more than once.
func (p *Port) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.rc.Close()
	})
	return p.closeErr
}

// Tail hands every console line to fn until ctx is done or the device
// goes away. Cancelling ctx closes the port to unblock a pending read.
func (p *Port) Tail(ctx context.Context, fn func(Record)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Close()
		case <-done:
		}
	}()

	err := Tail(ctx, p, fn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
