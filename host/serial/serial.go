package serial

import (
	"context"
	"errors"
	"io"
)

// Port is an open serial connection to the board's debug console
type Port interface {
	io.ReadWriteCloser

	// Flush discards buffered input and output
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC on the Teensy ignores this)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration used for the Teensy debug console.
// Reads time out so a monitor can notice cancellation while the board is quiet.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 200,
	}
}

// idleReader turns read timeouts into retries until ctx is done
type idleReader struct {
	ctx context.Context
	r   io.Reader
}

// NewIdleReader wraps a port opened with a ReadTimeout. A timed-out read
// (0 bytes, nil or io.EOF) is retried; once ctx is done the reader reports
// io.EOF so line scanners finish cleanly.
func NewIdleReader(ctx context.Context, r io.Reader) io.Reader {
	return &idleReader{ctx: ctx, r: r}
}

func (ir *idleReader) Read(b []byte) (int, error) {
	for {
		if ir.ctx.Err() != nil {
			return 0, io.EOF
		}
		n, err := ir.r.Read(b)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
	}
}
