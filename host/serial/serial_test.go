package serial

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" {
		t.Errorf("expected device /dev/ttyACM0, got %s", cfg.Device)
	}
	if cfg.Baud != 115200 {
		t.Errorf("expected baud 115200, got %d", cfg.Baud)
	}
	if cfg.ReadTimeout == 0 {
		t.Error("default config must not block forever on reads")
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) should fail")
	}
	if _, err := Open(&Config{Baud: 115200}); err == nil {
		t.Error("Open with empty device should fail")
	}
}

// timeoutPort returns scripted reads; an empty chunk is a read timeout
type timeoutPort struct {
	chunks []string
	reads  int
	cancel context.CancelFunc
}

func (p *timeoutPort) Read(b []byte) (int, error) {
	p.reads++
	if len(p.chunks) == 0 {
		// Quiet board: every read times out until the monitor is stopped
		if p.cancel != nil && p.reads > 3 {
			p.cancel()
		}
		return 0, io.EOF
	}
	chunk := p.chunks[0]
	p.chunks = p.chunks[1:]
	if chunk == "" {
		return 0, io.EOF
	}
	return copy(b, chunk), nil
}

func TestIdleReaderRetriesTimeoutsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port := &timeoutPort{
		chunks: []string{"", "line one\n", "", "", "line two\n"},
		cancel: cancel,
	}
	scanner := bufio.NewScanner(NewIdleReader(ctx, port))

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "line one" || lines[1] != "line two" {
		t.Errorf("unexpected lines %v", lines)
	}
	if ctx.Err() == nil {
		t.Error("reader returned before cancellation")
	}
}

func TestIdleReaderStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	port := &timeoutPort{chunks: []string{"never read\n"}}
	n, err := NewIdleReader(ctx, port).Read(make([]byte, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("expected (0, EOF) after cancel, got (%d, %v)", n, err)
	}
	if port.reads != 0 {
		t.Errorf("port read after cancellation")
	}
}

type failingPort struct{}

func (failingPort) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestIdleReaderPassesErrors(t *testing.T) {
	_, err := NewIdleReader(context.Background(), failingPort{}).Read(make([]byte, 4))
	if err == nil || err.Error() != "device unplugged" {
		t.Errorf("expected device error, got %v", err)
	}
}
