package core

// TimerRegisters is the register-level view of one FTM/TPM instance that the
// delay logic is written against. Target code provides a memory-mapped
// implementation; host builds use SimTimer.
type TimerRegisters interface {
	// EnableClock gates the peripheral clock on and selects its clock source
	EnableClock()

	// GetSC / SetSC access the status and control register
	GetSC() uint32
	SetSC(v uint32)

	// SetMOD sets the counter modulus
	SetMOD(v uint32)

	// Count reads the free-running counter
	Count() uint32

	// Status returns one CHF bit per channel (bit0 = channel 0)
	Status() uint32

	// ChannelSC / SetChannelSC access CnSC
	ChannelSC(ch uint8) uint32
	SetChannelSC(ch uint8, v uint32)

	// SetChannelValue writes the compare value CnV
	SetChannelValue(ch uint8, v uint32)

	// EnableIRQ enables the timer's interrupt line at the NVIC
	EnableIRQ()
}

// Global singleton used by the package-level API.
var timerRegs TimerRegisters

// SetTimerRegisters is called by target-specific code to register its timer.
func SetTimerRegisters(r TimerRegisters) {
	timerRegs = r
	defaultDelay.regs = r
}

// MustTimer returns the configured register block or panics if missing.
func MustTimer() TimerRegisters {
	if timerRegs == nil {
		panic("timer registers not configured")
	}
	return timerRegs
}
