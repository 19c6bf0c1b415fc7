package core

// TimerFreq is the counter rate after the prescaler
const TimerFreq = TimerClockHz >> Prescale

// MaxDelayTicks is the longest delay a 16 bit compare can express
const MaxDelayTicks = 0xFFFF

// TimerFromUS converts microseconds to timer ticks, saturating at MaxDelayTicks.
func TimerFromUS(us uint32) uint16 {
	ticks := uint64(us) * TimerFreq / 1000000
	if ticks > MaxDelayTicks {
		return MaxDelayTicks
	}
	return uint16(ticks)
}

// TimerToUS converts timer ticks to microseconds.
func TimerToUS(ticks uint16) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TriggerUS arms channel (default 0) to fire us microseconds from now.
func TriggerUS(us uint32, channel ...uint8) {
	defaultDelay.Trigger(TimerFromUS(us), channelArg(channel))
}
