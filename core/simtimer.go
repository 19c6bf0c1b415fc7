//go:build !tinygo

package core

// simChannels is the channel count of the largest instance (FTM0)
const simChannels = 8

// channel mode bits; a channel with none of them set is disabled and never
// latches a compare match
const csc_mode = CSC_MSB | CSC_MSA | CSC_ELSB | CSC_ELSA

// SimTimer is an in-memory FTM/TPM register block for host builds and tests.
// It counts in timer ticks (after the prescaler) and honours the flag write
// polarity of its Family.
type SimTimer struct {
	Family *Family

	sc  uint32
	mod uint32
	cnt uint32
	csc [simChannels]uint32
	cv  [simChannels]uint32

	// flagSeen is set when CnSC is read with CHF set; FamilyA only clears
	// CHF on a 0 write after such a read
	flagSeen [simChannels]bool

	clockGated bool
	irqEnabled bool

	// irq is called when an enabled channel flag is pending and the
	// interrupt line is enabled
	irq func()

	// writes logs every CnSC write per channel
	writes [simChannels][]uint32

	// IRQCount counts interrupt entries
	IRQCount int
}

// NewSimTimer creates a simulated timer; irq is invoked as the interrupt
// handler (usually a Delay's Dispatch).
func NewSimTimer(family *Family, irq func()) *SimTimer {
	return &SimTimer{
		Family: family,
		irq:    irq,
	}
}

// SetIRQHandler replaces the interrupt handler.
func (s *SimTimer) SetIRQHandler(irq func()) {
	s.irq = irq
}

func (s *SimTimer) EnableClock() {
	s.clockGated = true
}

func (s *SimTimer) GetSC() uint32 {
	return s.sc
}

func (s *SimTimer) SetSC(v uint32) {
	s.sc = v
}

func (s *SimTimer) SetMOD(v uint32) {
	s.mod = v & 0xFFFF
}

func (s *SimTimer) Count() uint32 {
	return s.cnt
}

func (s *SimTimer) Status() uint32 {
	var status uint32
	for ch := 0; ch < simChannels; ch++ {
		if s.csc[ch]&CSC_CHF != 0 {
			status |= 1 << ch
		}
	}
	return status
}

func (s *SimTimer) ChannelSC(ch uint8) uint32 {
	if s.csc[ch]&CSC_CHF != 0 {
		s.flagSeen[ch] = true
	}
	return s.csc[ch]
}

// SetChannelSC writes CnSC. CHF cannot be set by software. FamilyA clears it
// by writing 0 after reading CnSC with CHF set; FamilyB clears it by
// writing 1.
func (s *SimTimer) SetChannelSC(ch uint8, v uint32) {
	s.writes[ch] = append(s.writes[ch], v)

	flag := s.csc[ch] & CSC_CHF
	if s.Family.ClearByWrite1 {
		if v&CSC_CHF != 0 {
			flag = 0
		}
	} else if v&CSC_CHF == 0 && s.flagSeen[ch] {
		flag = 0
	}
	if flag == 0 {
		s.flagSeen[ch] = false
	}
	s.csc[ch] = v&^CSC_CHF | flag
}

func (s *SimTimer) SetChannelValue(ch uint8, v uint32) {
	s.cv[ch] = v & 0xFFFF
}

func (s *SimTimer) EnableIRQ() {
	s.irqEnabled = true
}

// Running reports whether the counter clock is gated on and selected.
func (s *SimTimer) Running() bool {
	return s.clockGated && s.sc&SC_CLKS(3) != 0
}

// IRQEnabled reports whether EnableIRQ has been called.
func (s *SimTimer) IRQEnabled() bool {
	return s.irqEnabled
}

// SetCount forces the counter value.
func (s *SimTimer) SetCount(v uint32) {
	s.cnt = v & 0xFFFF
}

// ChannelValue returns the programmed compare value.
func (s *SimTimer) ChannelValue(ch uint8) uint32 {
	return s.cv[ch]
}

// ChannelWrites returns every value written to CnSC of ch, oldest first.
func (s *SimTimer) ChannelWrites(ch uint8) []uint32 {
	return s.writes[ch]
}

// ResetWriteLog forgets all logged CnSC writes.
func (s *SimTimer) ResetWriteLog() {
	for i := range s.writes {
		s.writes[i] = nil
	}
}

// Advance runs the counter for n ticks, latching compare matches and raising
// the interrupt after each tick that leaves an enabled flag pending.
func (s *SimTimer) Advance(n uint32) {
	if !s.Running() {
		return
	}
	for ; n > 0; n-- {
		if s.cnt >= s.mod {
			s.cnt = 0
		} else {
			s.cnt++
		}
		for ch := 0; ch < simChannels; ch++ {
			if s.csc[ch]&csc_mode != 0 && s.cv[ch] == s.cnt {
				s.latch(uint8(ch))
			}
		}
		s.raise()
	}
}

// AdvanceTo runs the counter forward until it reads target.
func (s *SimTimer) AdvanceTo(target uint16) {
	n := (uint32(target) - s.cnt) & 0xFFFF
	s.Advance(n)
}

// Match latches a compare match on ch regardless of its compare value and
// raises the interrupt if it is pending.
func (s *SimTimer) Match(ch uint8) {
	s.latch(ch)
	s.raise()
}

// latch sets CHF. A fresh latch must be read again before FamilyA can clear it.
func (s *SimTimer) latch(ch uint8) {
	if s.csc[ch]&CSC_CHF == 0 {
		s.flagSeen[ch] = false
	}
	s.csc[ch] |= CSC_CHF
}

// Pending reports whether any channel has both CHF and CHIE set.
func (s *SimTimer) Pending() bool {
	for ch := 0; ch < simChannels; ch++ {
		if s.csc[ch]&(CSC_CHF|CSC_CHIE) == CSC_CHF|CSC_CHIE {
			return true
		}
	}
	return false
}

// raise enters the interrupt handler once if the line is asserted. The NVIC
// does not re-enter a running vector, so a single entry per call is modelled.
func (s *SimTimer) raise() {
	if !s.irqEnabled || s.irq == nil || !s.Pending() {
		return
	}
	s.IRQCount++
	s.irq()
}
