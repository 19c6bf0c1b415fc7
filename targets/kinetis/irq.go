//go:build nxp && mk66f18

package kinetis

import (
	"runtime/interrupt"

	"teensydelay/core"
)

// MK66F18 NVIC interrupt numbers
const (
	irqFTM0 = 42
	irqFTM1 = 43
	irqFTM2 = 44
	irqFTM3 = 71
	irqTPM1 = 79
	irqTPM2 = 80
)

var timerIRQ interrupt.Interrupt

// Install binds the configured timer to the core delay API and hooks its
// interrupt to core.Dispatch. Call before core.Begin.
func Install() *Timer {
	t := NewTimer(core.UseTimer)
	timerIRQ = newTimerIRQ(core.UseTimer)
	core.SetTimerRegisters(t)
	return t
}

func handleTimerIRQ(interrupt.Interrupt) {
	core.Dispatch()
}

// interrupt.New needs a constant interrupt number at each call site. Only the
// selected instance is ever enabled, the other vectors stay masked.
func newTimerIRQ(id core.TimerID) interrupt.Interrupt {
	switch id {
	case core.TimerFTM1:
		return interrupt.New(irqFTM1, handleTimerIRQ)
	case core.TimerFTM2:
		return interrupt.New(irqFTM2, handleTimerIRQ)
	case core.TimerFTM3:
		return interrupt.New(irqFTM3, handleTimerIRQ)
	case core.TimerTPM1:
		return interrupt.New(irqTPM1, handleTimerIRQ)
	case core.TimerTPM2:
		return interrupt.New(irqTPM2, handleTimerIRQ)
	default:
		return interrupt.New(irqFTM0, handleTimerIRQ)
	}
}
