//go:build nxp && mk66f18

package kinetis

import (
	"runtime/volatile"
	"unsafe"

	"teensydelay/core"
)

// FTM/TPM register block; both families share this layout up to STATUS
type timerBlock struct {
	SC     volatile.Register32 // 0x00
	CNT    volatile.Register32 // 0x04
	MOD    volatile.Register32 // 0x08
	CH     [8]channelBlock     // 0x0C
	CNTIN  volatile.Register32 // 0x4C
	STATUS volatile.Register32 // 0x50
}

type channelBlock struct {
	SC volatile.Register32
	V  volatile.Register32
}

// MK66F18 peripheral base addresses
const (
	ftm0Base = 0x40038000
	ftm1Base = 0x40039000
	ftm2Base = 0x400B8000
	ftm3Base = 0x400B9000
	tpm1Base = 0x400C9000
	tpm2Base = 0x400CA000

	simSOPT2 = 0x40048004
	simSCGC2 = 0x4004802C
	simSCGC3 = 0x40048030
	simSCGC6 = 0x4004803C
)

// SIM clock gate bits
const (
	scgc2TPM1 = 1 << 9
	scgc2TPM2 = 1 << 10
	scgc3FTM2 = 1 << 24
	scgc3FTM3 = 1 << 25
	scgc6FTM0 = 1 << 24
	scgc6FTM1 = 1 << 25
	scgc6FTM2 = 1 << 26

	sopt2TPMSRCMask = 3 << 24
)

func sopt2TPMSRC(n uint32) uint32 {
	return (n & 3) << 24
}

var (
	regSOPT2 = (*volatile.Register32)(unsafe.Pointer(uintptr(simSOPT2)))
	regSCGC2 = (*volatile.Register32)(unsafe.Pointer(uintptr(simSCGC2)))
	regSCGC3 = (*volatile.Register32)(unsafe.Pointer(uintptr(simSCGC3)))
	regSCGC6 = (*volatile.Register32)(unsafe.Pointer(uintptr(simSCGC6)))
)

// Timer is the memory-mapped core.TimerRegisters implementation for one
// FTM or TPM instance.
type Timer struct {
	id   core.TimerID
	regs *timerBlock
}

// NewTimer returns the register block of id.
func NewTimer(id core.TimerID) *Timer {
	var base uintptr
	switch id {
	case core.TimerFTM0:
		base = ftm0Base
	case core.TimerFTM1:
		base = ftm1Base
	case core.TimerFTM2:
		base = ftm2Base
	case core.TimerFTM3:
		base = ftm3Base
	case core.TimerTPM1:
		base = tpm1Base
	case core.TimerTPM2:
		base = tpm2Base
	}
	return &Timer{
		id:   id,
		regs: (*timerBlock)(unsafe.Pointer(base)),
	}
}

// EnableClock gates the timer clock on. TPM instances also get their
// counter clock source (TPMSRC=2, OSCERCLK).
func (t *Timer) EnableClock() {
	switch t.id {
	case core.TimerFTM0:
		regSCGC6.SetBits(scgc6FTM0)
	case core.TimerFTM1:
		regSCGC6.SetBits(scgc6FTM1)
	case core.TimerFTM2:
		regSCGC6.SetBits(scgc6FTM2)
		regSCGC3.SetBits(scgc3FTM2)
	case core.TimerFTM3:
		regSCGC3.SetBits(scgc3FTM3)
	case core.TimerTPM1:
		regSCGC2.SetBits(scgc2TPM1)
		regSOPT2.ReplaceBits(sopt2TPMSRC(2), sopt2TPMSRCMask, 0)
	case core.TimerTPM2:
		regSCGC2.SetBits(scgc2TPM2)
		regSOPT2.ReplaceBits(sopt2TPMSRC(2), sopt2TPMSRCMask, 0)
	}
}

func (t *Timer) GetSC() uint32 {
	return t.regs.SC.Get()
}

func (t *Timer) SetSC(v uint32) {
	t.regs.SC.Set(v)
}

func (t *Timer) SetMOD(v uint32) {
	t.regs.MOD.Set(v)
}

func (t *Timer) Count() uint32 {
	return t.regs.CNT.Get()
}

func (t *Timer) Status() uint32 {
	return t.regs.STATUS.Get()
}

func (t *Timer) ChannelSC(ch uint8) uint32 {
	return t.regs.CH[ch].SC.Get()
}

func (t *Timer) SetChannelSC(ch uint8, v uint32) {
	t.regs.CH[ch].SC.Set(v)
}

func (t *Timer) SetChannelValue(ch uint8, v uint32) {
	t.regs.CH[ch].V.Set(v)
}

// EnableIRQ enables the NVIC line registered by InstallIRQ.
func (t *Timer) EnableIRQ() {
	timerIRQ.Enable()
}
