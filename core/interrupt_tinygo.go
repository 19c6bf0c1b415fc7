//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so the application context can update a
// channel without racing the delay ISR
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the mask saved by disableInterrupts
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
