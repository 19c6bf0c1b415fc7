package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a delay channel event for post-mortem analysis
type TimingEvent struct {
	Seq       uint32 // Monotonic event number, survives ring overwrites
	EventType uint8  // Event type code
	Channel   uint8  // Delay channel
	Clock     uint32 // Timer counter at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtBegin      = 1 // Begin ran (v1=channels, v2=prescale)
	EvtAddChannel = 2 // Callback registered
	EvtTrigger    = 3 // Channel armed (v1=compare value)
	EvtFire       = 4 // Channel fired (v1=CnSC before disarm)
	EvtCancel     = 5 // Channel cancelled
	EvtStrayFlag  = 6 // Flag set on a channel that was not armed
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln output is active
	debugEnabled bool = false

	// Timing capture ring buffer, written from both contexts
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
	timingSeq      uint32
	timingEnabled  bool = true

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetTimingEnabled turns timing capture on or off
func SetTimingEnabled(enabled bool) {
	timingEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Drops the message if the channel is full
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordTiming captures a timing event in the ring buffer.
// Never blocks or allocates, so it is usable from the delay ISR. Callers in
// the application context must hold interrupts masked.
func RecordTiming(eventType, channel uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	timingSeq++
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		Seq:       timingSeq,
		EventType: eventType,
		Channel:   channel,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// EventName returns the dump label of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtBegin:
		return "BEGIN"
	case EvtAddChannel:
		return "ADD_CHANNEL"
	case EvtTrigger:
		return "TRIGGER"
	case EvtFire:
		return "FIRE"
	case EvtCancel:
		return "CANCEL"
	case EvtStrayFlag:
		return "STRAY_FLAG!"
	default:
		return "UNKNOWN"
	}
}

// DumpTimingRing outputs the timing ring buffer, oldest first, and leaves it
// intact. Call it from the application context, never from the ISR.
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}
	printTimingRing(&timingRing, timingRingHead)
}

// DrainTimingRing outputs the timing ring and empties it, so consecutive
// drains never repeat an event. The ring is copied with interrupts masked
// and printed afterwards. Sequence numbers keep counting across drains.
func DrainTimingRing() {
	if debugPrintln == nil {
		return
	}

	state := disableInterrupts()
	snapshot := timingRing
	head := timingRingHead
	clearTimingEvents()
	restoreInterrupts(state)

	printTimingRing(&snapshot, head)
}

func printTimingRing(ring *[TimingRingSize]TimingEvent, head uint8) {
	debugPrintln("[TIMING] === Timing Ring Dump ===")
	debugPrintln("[TIMING] timer=" + UseTimer.String() + " channels=" + itoa(MaxChannel))

	for i := uint8(0); i < TimingRingSize; i++ {
		idx := (head + i) % TimingRingSize
		evt := &ring[idx]
		if evt.EventType == 0 {
			continue // Empty slot
		}

		debugPrintln("[TIMING] " + EventName(evt.EventType) +
			" seq=" + Utoa(evt.Seq) +
			" ch=" + Utoa(uint32(evt.Channel)) +
			" clock=" + Utoa(evt.Clock) +
			" v1=" + Utoa(evt.Value1) +
			" v2=" + Utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// DumpChannels prints CnSC of every delay channel of the configured timer
func DumpChannels() {
	if debugPrintln == nil || defaultDelay.regs == nil {
		return
	}
	r := defaultDelay.regs
	for ch := uint8(0); ch < MaxChannel; ch++ {
		debugPrintln("[DELAY] ch=" + Utoa(uint32(ch)) + " sc=0x" + hex8(r.ChannelSC(ch)))
	}
}

// ClearTimingRing clears the timing buffer and restarts sequence numbering
func ClearTimingRing() {
	clearTimingEvents()
	timingSeq = 0
}

func clearTimingEvents() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
