// Package trace parses the timing ring dumps printed by the delay firmware
// and aggregates them into per-channel statistics.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	linePrefix  = "[TIMING] "
	dumpStart   = "=== Timing Ring Dump ==="
	dumpEnd     = "=== End Dump ==="
	headerTimer = "timer="
)

// ErrNotTiming is returned for lines that are not timing ring output
var ErrNotTiming = errors.New("not a timing line")

// Event is one decoded timing ring entry
type Event struct {
	Name    string
	Seq     uint32
	Channel uint8
	Clock   uint32
	Value1  uint32
	Value2  uint32
}

// ParseLine decodes a line of the form
// "[TIMING] FIRE seq=17 ch=2 clock=1250 v1=208 v2=0".
// Dump markers and the timer header yield ErrNotTiming.
func ParseLine(line string) (Event, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, linePrefix) {
		return Event{}, ErrNotTiming
	}
	body := strings.TrimPrefix(line, linePrefix)
	if strings.HasPrefix(body, "===") || strings.HasPrefix(body, headerTimer) {
		return Event{}, ErrNotTiming
	}

	fields := strings.Fields(body)
	if len(fields) != 6 {
		return Event{}, fmt.Errorf("expected 6 fields, got %d in %q", len(fields), line)
	}

	evt := Event{Name: fields[0]}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Event{}, fmt.Errorf("malformed field %q", field)
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Event{}, fmt.Errorf("field %s: %w", key, err)
		}
		switch key {
		case "seq":
			evt.Seq = uint32(n)
		case "ch":
			if n > 255 {
				return Event{}, fmt.Errorf("channel %d out of range", n)
			}
			evt.Channel = uint8(n)
		case "clock":
			evt.Clock = uint32(n)
		case "v1":
			evt.Value1 = uint32(n)
		case "v2":
			evt.Value2 = uint32(n)
		default:
			return Event{}, fmt.Errorf("unknown field %q", key)
		}
	}
	return evt, nil
}

// ChannelStats aggregates events for one delay channel
type ChannelStats struct {
	Triggers  int
	Fires     int
	Cancels   int
	Strays    int
	LastClock uint32

	// Latency of the last fire after its compare value, in ticks
	LastLatency uint32

	lastCompare uint32
	armed       bool
}

// Stats aggregates events across dumps
type Stats struct {
	Timer    string
	Begins   int
	Dumps    int
	Channels map[uint8]*ChannelStats

	// Lost counts events overwritten in the ring before they were drained,
	// from gaps in the sequence numbers
	Lost int

	lastSeq uint32
}

// NewStats creates an empty aggregate
func NewStats() *Stats {
	return &Stats{
		Channels: make(map[uint8]*ChannelStats),
	}
}

func (s *Stats) channel(ch uint8) *ChannelStats {
	cs, ok := s.Channels[ch]
	if !ok {
		cs = &ChannelStats{}
		s.Channels[ch] = cs
	}
	return cs
}

// Add folds one event into the aggregate. The firmware drains its ring on
// every dump, so each event arrives once; a sequence number going backwards
// means the board restarted.
func (s *Stats) Add(evt Event) {
	if s.lastSeq != 0 && evt.Seq > s.lastSeq+1 {
		s.Lost += int(evt.Seq - s.lastSeq - 1)
	}
	s.lastSeq = evt.Seq

	switch evt.Name {
	case "BEGIN":
		s.Begins++
		return
	case "ADD_CHANNEL":
		s.channel(evt.Channel)
		return
	}

	cs := s.channel(evt.Channel)
	cs.LastClock = evt.Clock
	switch evt.Name {
	case "TRIGGER":
		cs.Triggers++
		cs.lastCompare = evt.Value1
		cs.armed = true
	case "FIRE":
		cs.Fires++
		if cs.armed {
			cs.LastLatency = (evt.Clock - cs.lastCompare) & 0xFFFF
			cs.armed = false
		}
	case "CANCEL":
		cs.Cancels++
		cs.armed = false
	case "STRAY_FLAG!":
		cs.Strays++
	}
}

// Consume reads r line by line until EOF, folding timing lines into s.
// Non-timing lines are skipped; malformed timing lines are reported through
// onError when it is not nil.
func (s *Stats) Consume(r io.Reader, onError func(line string, err error)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		s.observeMarkers(line)

		evt, err := ParseLine(line)
		if errors.Is(err, ErrNotTiming) {
			continue
		}
		if err != nil {
			if onError != nil {
				onError(line, err)
			}
			continue
		}
		s.Add(evt)
	}
	return scanner.Err()
}

func (s *Stats) observeMarkers(line string) {
	body := strings.TrimPrefix(strings.TrimSpace(line), linePrefix)
	switch {
	case body == dumpEnd:
		s.Dumps++
	case strings.HasPrefix(body, headerTimer):
		timer, _, _ := strings.Cut(strings.TrimPrefix(body, headerTimer), " ")
		s.Timer = timer
	}
}

// Summary renders the aggregate, one line per channel in ascending order
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "timer=%s begins=%d dumps=%d lost=%d\n", s.Timer, s.Begins, s.Dumps, s.Lost)

	channels := make([]int, 0, len(s.Channels))
	for ch := range s.Channels {
		channels = append(channels, int(ch))
	}
	sort.Ints(channels)

	for _, ch := range channels {
		cs := s.Channels[uint8(ch)]
		fmt.Fprintf(&b, "  ch%d triggers=%d fires=%d cancels=%d strays=%d latency=%d\n",
			ch, cs.Triggers, cs.Fires, cs.Cancels, cs.Strays, cs.LastLatency)
	}
	return b.String()
}
