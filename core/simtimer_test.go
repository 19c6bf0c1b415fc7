//go:build !tinygo

package core

import "testing"

func TestSimTimerFlagPolarity(t *testing.T) {
	for _, f := range families {
		sim := NewSimTimer(f, nil)
		sim.csc[0] = CSC_MSA | CSC_CHF

		// Writing the "wrong" polarity leaves the flag latched
		if f.ClearByWrite1 {
			sim.SetChannelSC(0, CSC_MSA)
		} else {
			sim.SetChannelSC(0, CSC_MSA|CSC_CHF)
		}
		if sim.Status()&1 == 0 {
			t.Errorf("%s: flag cleared by the wrong write polarity", f.Name)
		}

		sim.ChannelSC(0)
		sim.SetChannelSC(0, f.ClearFlag(CSC_MSA))
		if sim.Status()&1 != 0 {
			t.Errorf("%s: flag not cleared by ClearFlag write", f.Name)
		}
		if sim.ChannelSC(0) != CSC_MSA {
			t.Errorf("%s: expected sc 0x10, got 0x%02x", f.Name, sim.ChannelSC(0))
		}
	}
}

func TestSimTimerFTMClearNeedsRead(t *testing.T) {
	sim := NewSimTimer(FamilyA, nil)
	sim.Match(0)

	sim.SetChannelSC(0, CSC_MSA)
	if sim.Status()&1 == 0 {
		t.Fatal("FTM flag cleared by a 0 write without reading CnSC")
	}

	if sim.ChannelSC(0)&CSC_CHF == 0 {
		t.Fatal("read did not report the latched flag")
	}
	sim.SetChannelSC(0, CSC_MSA)
	if sim.Status()&1 != 0 {
		t.Error("FTM flag not cleared by read then 0 write")
	}

	// A new latch needs a new read
	sim.Match(0)
	sim.SetChannelSC(0, CSC_MSA)
	if sim.Status()&1 == 0 {
		t.Error("relatched flag cleared without a fresh read")
	}
}

func TestSimTimerSoftwareCannotSetFlag(t *testing.T) {
	for _, f := range families {
		sim := NewSimTimer(f, nil)
		sim.SetChannelSC(0, CSC_CHF|CSC_MSA)
		if sim.Status() != 0 {
			t.Errorf("%s: software write set CHF", f.Name)
		}
	}
}

func TestSimTimerStoppedClock(t *testing.T) {
	sim := NewSimTimer(FamilyA, nil)
	sim.SetMOD(0xFFFF)
	sim.Advance(10)
	if sim.Count() != 0 {
		t.Error("counter advanced without clock gate")
	}

	sim.EnableClock()
	sim.Advance(10)
	if sim.Count() != 0 {
		t.Error("counter advanced with CLKS=0")
	}

	sim.SetSC(SC_CLKS(1))
	sim.Advance(10)
	if sim.Count() != 10 {
		t.Errorf("expected count 10, got %d", sim.Count())
	}
}

func TestSimTimerDisabledChannelIgnoresMatch(t *testing.T) {
	sim := NewSimTimer(FamilyA, nil)
	sim.EnableClock()
	sim.SetSC(SC_CLKS(1))
	sim.SetMOD(0xFFFF)
	sim.SetChannelValue(0, 5)
	sim.SetChannelValue(1, 5)
	sim.SetChannelSC(1, CSC_MSA)

	sim.Advance(5)
	if sim.Status() != 0x2 {
		t.Errorf("expected only channel 1 latched, status=0x%x", sim.Status())
	}
}

func TestSimTimerRaisesOnlyForEnabledFlags(t *testing.T) {
	calls := 0
	sim := NewSimTimer(FamilyB, func() { calls++ })
	sim.EnableClock()
	sim.SetSC(SC_CLKS(1))
	sim.SetMOD(0xFFFF)
	sim.EnableIRQ()

	sim.Match(0)
	if calls != 0 {
		t.Error("interrupt raised without CHIE")
	}

	sim.SetChannelSC(1, CSC_MSA|CSC_CHIE)
	sim.Match(1)
	if calls != 1 || sim.IRQCount != 1 {
		t.Errorf("expected one interrupt entry, got calls=%d irqs=%d", calls, sim.IRQCount)
	}
}
