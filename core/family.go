package core

// Channel status and control (CnSC) bits, shared by FTM and TPM
const (
	CSC_CHF  = 0x80 // Channel flag
	CSC_CHIE = 0x40 // Channel interrupt enable
	CSC_MSB  = 0x20 // Channel mode select B
	CSC_MSA  = 0x10 // Channel mode select A
	CSC_ELSB = 0x08 // Edge or level select B
	CSC_ELSA = 0x04 // Edge or level select A
)

// Status and control (SC) fields
const (
	SC_TOF  = 0x80 // Timer overflow flag
	SC_TOIE = 0x40 // Timer overflow interrupt enable
)

// SC_CLKS returns the clock source selection field (0 = stopped, 1 = system clock).
func SC_CLKS(n uint32) uint32 {
	return (n & 0x3) << 3
}

// SC_PS returns the prescaler field (divide by 2^n).
func SC_PS(n uint32) uint32 {
	return n & 0x7
}

// Family describes how a timer family clears its channel flags.
// FTM and TPM share the channel register layout but use opposite write
// polarity on CHF.
type Family struct {
	Name string

	// ClearByWrite1 is true when CHF is cleared by writing 1 (TPM),
	// false when it is cleared by writing 0 after reading it set (FTM).
	ClearByWrite1 bool

	FlagBit   uint32
	EnableBit uint32
}

var (
	// FamilyA is the FlexTimer (FTM0-FTM3)
	FamilyA = &Family{Name: "FTM", ClearByWrite1: false, FlagBit: CSC_CHF, EnableBit: CSC_CHIE}

	// FamilyB is the low power TPM (TPM1, TPM2)
	FamilyB = &Family{Name: "TPM", ClearByWrite1: true, FlagBit: CSC_CHF, EnableBit: CSC_CHIE}
)

// ClearFlag returns the CnSC value that clears the channel flag and leaves
// the other bits of sc untouched.
func (f *Family) ClearFlag(sc uint32) uint32 {
	if f.ClearByWrite1 {
		return sc | f.FlagBit
	}
	return sc &^ f.FlagBit
}

// Disarm returns the CnSC value that clears the channel flag and the
// interrupt enable in a single write.
func (f *Family) Disarm(sc uint32) uint32 {
	return f.ClearFlag(sc) &^ f.EnableBit
}

// FlagPending reports whether sc has the channel flag set.
func (f *Family) FlagPending(sc uint32) bool {
	return sc&f.FlagBit != 0
}

// Armed reports whether sc has the channel interrupt enabled.
func (f *Family) Armed(sc uint32) bool {
	return sc&f.EnableBit != 0
}
