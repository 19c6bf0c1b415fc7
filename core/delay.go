package core

// Delay multiplexes one-shot delay channels onto the compare channels of a
// single FTM/TPM instance. Each channel fires its callback once per arming,
// from the timer interrupt.
//
// Registration and arming run in the application context; Dispatch runs in
// the interrupt. A channel must not be re-registered while its interrupt can
// be in flight: Cancel it first.
type Delay struct {
	regs      TimerRegisters
	family    *Family
	callbacks [MaxChannel]func()
}

// noop fills registry slots that were never registered so Dispatch never
// calls a nil func.
func noop() {}

// defaultDelay backs the package-level API and is bound to the compile-time
// timer selection. Target code attaches its registers with SetTimerRegisters.
var defaultDelay = NewDelay(nil, FamilyOf(UseTimer))

// NewDelay creates a Delay over regs using the flag polarity of family.
func NewDelay(regs TimerRegisters, family *Family) *Delay {
	d := &Delay{
		regs:   regs,
		family: family,
	}
	for i := range d.callbacks {
		d.callbacks[i] = noop
	}
	return d
}

// Begin powers up the timer, clears and disables every delay channel and
// starts the free-running counter. It must run before any channel is armed.
func (d *Delay) Begin() {
	r := d.regs
	f := d.family

	r.EnableClock()

	// Stop the counter while reconfiguring, full 16 bit range
	r.SetSC(SC_CLKS(0))
	r.SetMOD(0xFFFF)

	for ch := uint8(0); ch < MaxChannel; ch++ {
		r.SetChannelSC(ch, f.ClearFlag(r.ChannelSC(ch)))
		r.SetChannelSC(ch, r.ChannelSC(ch)&^f.EnableBit)
		r.SetChannelSC(ch, 0)
	}

	r.SetSC(SC_CLKS(1) | SC_PS(Prescale))
	r.EnableIRQ()

	state := disableInterrupts()
	RecordTiming(EvtBegin, 0, r.Count(), MaxChannel, Prescale)
	restoreInterrupts(state)
	DebugPrintln("[DELAY] begin " + f.Name + " channels=" + itoa(MaxChannel) + " ps=" + itoa(Prescale))
}

// AddDelayChannel stores callback for channel, replacing any previous one.
// The channel is not range checked.
func (d *Delay) AddDelayChannel(callback func(), channel uint8) {
	if callback == nil {
		callback = noop
	}

	state := disableInterrupts()
	d.callbacks[channel] = callback
	RecordTiming(EvtAddChannel, channel, 0, 0, 0)
	restoreInterrupts(state)
}

// Dispatch services every pending channel flag in ascending channel order.
// It is the body of the timer interrupt handler.
//
// Each flagged channel is disarmed (flag and interrupt enable cleared) before
// its callback runs. A flagged channel whose interrupt enable was already
// clear is cleared but its callback is not invoked.
func (d *Delay) Dispatch() {
	r := d.regs
	f := d.family

	status := r.Status() & channelMask
	for ch := uint8(0); status != 0; ch, status = ch+1, status>>1 {
		if status&1 == 0 {
			continue
		}

		sc := r.ChannelSC(ch)
		r.SetChannelSC(ch, f.Disarm(sc))

		if !f.Armed(sc) {
			RecordTiming(EvtStrayFlag, ch, r.Count(), sc, 0)
			continue
		}

		RecordTiming(EvtFire, ch, r.Count(), sc, 0)
		d.callbacks[ch]()
	}
}

// TriggerAt arms channel to fire when the counter reaches value.
func (d *Delay) TriggerAt(value uint16, channel uint8) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	d.arm(value, channel)
}

// Trigger arms channel to fire delay timer ticks from now.
func (d *Delay) Trigger(delay uint16, channel uint8) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	d.arm(uint16(d.regs.Count())+delay, channel)
}

func (d *Delay) arm(value uint16, channel uint8) {
	r := d.regs
	r.SetChannelValue(channel, uint32(value))

	// FTM only clears CHF on a 0 write if CnSC was read with CHF set, and
	// a disarmed channel relatches on every counter wrap
	r.ChannelSC(channel)

	// Software compare mode with the interrupt enabled, discarding any
	// stale flag in the same write
	r.SetChannelSC(channel, d.family.ClearFlag(CSC_MSA|CSC_CHIE))
	RecordTiming(EvtTrigger, channel, r.Count(), uint32(value), 0)
}

// Cancel disarms channel. A pending compare match is dropped silently.
func (d *Delay) Cancel(channel uint8) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	r := d.regs
	r.SetChannelSC(channel, d.family.Disarm(r.ChannelSC(channel)))
	RecordTiming(EvtCancel, channel, r.Count(), 0, 0)
}

// IsRunning reports whether channel is armed and has not fired yet.
func (d *Delay) IsRunning(channel uint8) bool {
	return d.family.Armed(d.regs.ChannelSC(channel))
}

// channelArg returns the optional channel argument, defaulting to 0.
func channelArg(channel []uint8) uint8 {
	if len(channel) == 0 {
		return 0
	}
	return channel[0]
}

// Begin initializes the configured timer. Call once at startup after
// SetTimerRegisters. Panics if no registers were attached.
func Begin() {
	defaultDelay.regs = MustTimer()
	defaultDelay.Begin()
}

// AddDelayChannel registers callback for channel (default 0).
func AddDelayChannel(callback func(), channel ...uint8) {
	defaultDelay.AddDelayChannel(callback, channelArg(channel))
}

// Dispatch runs the delay interrupt handler for the configured timer.
func Dispatch() {
	defaultDelay.Dispatch()
}

// Trigger arms channel (default 0) to fire delay ticks from now.
func Trigger(delay uint16, channel ...uint8) {
	defaultDelay.Trigger(delay, channelArg(channel))
}

// TriggerAt arms channel (default 0) to fire at an absolute counter value.
func TriggerAt(value uint16, channel ...uint8) {
	defaultDelay.TriggerAt(value, channelArg(channel))
}

// Cancel disarms channel (default 0).
func Cancel(channel ...uint8) {
	defaultDelay.Cancel(channelArg(channel))
}

// IsRunning reports whether channel (default 0) is armed.
func IsRunning(channel ...uint8) bool {
	return defaultDelay.IsRunning(channelArg(channel))
}
