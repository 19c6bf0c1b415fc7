package core

import "testing"

func TestFamilyClearAndDisarm(t *testing.T) {
	testCases := []struct {
		family  *Family
		sc      uint32
		clear   uint32
		disarm  uint32
		pending bool
		armed   bool
	}{
		{FamilyA, CSC_CHF | CSC_CHIE | CSC_MSA, CSC_CHIE | CSC_MSA, CSC_MSA, true, true},
		{FamilyA, CSC_MSA, CSC_MSA, CSC_MSA, false, false},
		{FamilyB, CSC_CHF | CSC_CHIE | CSC_MSA, CSC_CHF | CSC_CHIE | CSC_MSA, CSC_CHF | CSC_MSA, true, true},
		{FamilyB, CSC_CHIE | CSC_MSA, CSC_CHF | CSC_CHIE | CSC_MSA, CSC_CHF | CSC_MSA, false, true},
	}

	for _, tc := range testCases {
		if got := tc.family.ClearFlag(tc.sc); got != tc.clear {
			t.Errorf("%s ClearFlag(0x%02x): expected 0x%02x, got 0x%02x", tc.family.Name, tc.sc, tc.clear, got)
		}
		if got := tc.family.Disarm(tc.sc); got != tc.disarm {
			t.Errorf("%s Disarm(0x%02x): expected 0x%02x, got 0x%02x", tc.family.Name, tc.sc, tc.disarm, got)
		}
		if got := tc.family.FlagPending(tc.sc); got != tc.pending {
			t.Errorf("%s FlagPending(0x%02x) = %v", tc.family.Name, tc.sc, got)
		}
		if got := tc.family.Armed(tc.sc); got != tc.armed {
			t.Errorf("%s Armed(0x%02x) = %v", tc.family.Name, tc.sc, got)
		}
	}
}

func TestFamilyOf(t *testing.T) {
	for _, id := range []TimerID{TimerFTM0, TimerFTM1, TimerFTM2, TimerFTM3} {
		if FamilyOf(id) != FamilyA {
			t.Errorf("%s should use FamilyA", id)
		}
	}
	for _, id := range []TimerID{TimerTPM1, TimerTPM2} {
		if FamilyOf(id) != FamilyB {
			t.Errorf("%s should use FamilyB", id)
		}
	}
}

func TestSCFields(t *testing.T) {
	if got := SC_CLKS(1) | SC_PS(5); got != 0x0D {
		t.Errorf("expected SC 0x0d, got 0x%02x", got)
	}
	if SC_PS(9) != 1 {
		t.Errorf("SC_PS must mask to 3 bits")
	}
}
