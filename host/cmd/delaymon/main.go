package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"teensydelay/host/serial"
	"teensydelay/host/trace"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	timeout = flag.Int("timeout", 200, "Read timeout in milliseconds, bounds Ctrl-C latency")
	verbose = flag.Bool("verbose", false, "Report malformed timing lines")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	if *timeout > 0 {
		cfg.ReadTimeout = *timeout
	}

	fmt.Printf("Opening %s...\n", cfg.Device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	// Ctrl-C is noticed at the next read timeout and ends Consume
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats := trace.NewStats()
	err = stats.Consume(serial.NewIdleReader(ctx, port), func(line string, err error) {
		if *verbose {
			fmt.Fprintf(os.Stderr, "skip %q: %v\n", line, err)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read stopped: %v\n", err)
	}

	fmt.Print(stats.Summary())
}
