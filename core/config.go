package core

// TimerID selects the physical FTM/TPM instance backing the delay channels.
type TimerID uint8

const (
	TimerFTM0 TimerID = iota
	TimerFTM1
	TimerFTM2
	TimerFTM3
	TimerTPM1
	TimerTPM2
)

// Build configuration. Change these before flashing; they are not meant to be
// modified at runtime.
const (
	// UseTimer is the timer driving the delay channels
	UseTimer = TimerFTM0

	// MaxChannel is the number of delay channels (FTM0 has 8, TPM1/TPM2 have 2)
	MaxChannel = 4

	// Prescale is the FTM_SC_PS value: timer clock = TimerClockHz / 2^Prescale
	Prescale = 5

	// TimerClockHz is the bus clock feeding the timer (F_BUS on a Teensy 3.6 at 180MHz)
	TimerClockHz = 60000000
)

// channelMask selects the STATUS bits belonging to [0, MaxChannel)
const channelMask = 1<<MaxChannel - 1

// IsFTM reports whether id is one of the FlexTimer instances.
func (id TimerID) IsFTM() bool {
	return id <= TimerFTM3
}

// String returns the peripheral name, e.g. "FTM0".
func (id TimerID) String() string {
	switch id {
	case TimerFTM0:
		return "FTM0"
	case TimerFTM1:
		return "FTM1"
	case TimerFTM2:
		return "FTM2"
	case TimerFTM3:
		return "FTM3"
	case TimerTPM1:
		return "TPM1"
	case TimerTPM2:
		return "TPM2"
	default:
		return "UNKNOWN"
	}
}

// FamilyOf returns the register family of a timer instance.
func FamilyOf(id TimerID) *Family {
	if id.IsFTM() {
		return FamilyA
	}
	return FamilyB
}
