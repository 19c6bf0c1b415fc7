package core

import "testing"

func TestTimerFromUS(t *testing.T) {
	if TimerFreq != 1875000 {
		t.Fatalf("test table assumes 1.875MHz timer, got %d", TimerFreq)
	}

	testCases := []struct {
		us    uint32
		ticks uint16
	}{
		{0, 0},
		{1, 1},
		{100, 187},
		{1000, 1875},
		{20000, 37500},
		{34952, 65535},
		{1000000, MaxDelayTicks},
	}

	for _, tc := range testCases {
		if got := TimerFromUS(tc.us); got != tc.ticks {
			t.Errorf("TimerFromUS(%d): expected %d, got %d", tc.us, tc.ticks, got)
		}
	}
}

func TestTimerToUS(t *testing.T) {
	if got := TimerToUS(1875); got != 1000 {
		t.Errorf("TimerToUS(1875): expected 1000, got %d", got)
	}
	if got := TimerToUS(MaxDelayTicks); got != 34952 {
		t.Errorf("TimerToUS(max): expected 34952, got %d", got)
	}
}
