//go:build nxp && mk66f18

package main

import (
	"machine"
	"time"

	"teensydelay/core"
	"teensydelay/targets/kinetis"
)

// Delay channel assignment
const (
	pulseChannel     = 0 // ends the step pulse
	heartbeatChannel = 1 // self re-arming heartbeat
)

const (
	pulseWidthUS     = 20
	heartbeatUS      = 25000
	stepIntervalMS   = 5
	dumpIntervalStep = 200
)

var (
	stepPin = machine.D02
	led     = machine.LED

	heartbeats uint32
	steps      uint32
)

func main() {
	stepPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	core.SetDebugWriter(func(s string) { println(s) })
	core.InitAsyncDebug()

	kinetis.Install()
	core.Begin()

	core.AddDelayChannel(endPulse, pulseChannel)
	core.AddDelayChannel(heartbeat, heartbeatChannel)
	core.TriggerUS(heartbeatUS, heartbeatChannel)

	core.DumpChannels()

	for {
		// Start a step pulse; the delay channel ends it
		if !core.IsRunning(pulseChannel) {
			stepPin.High()
			core.TriggerUS(pulseWidthUS, pulseChannel)
			steps++

			if steps%dumpIntervalStep == 0 {
				core.DebugAsync("[DELAY] steps=" + core.Utoa(steps) + " heartbeats=" + core.Utoa(heartbeats))
				core.DrainTimingRing()
			}
		}

		time.Sleep(stepIntervalMS * time.Millisecond)
	}
}

// endPulse runs in the timer interrupt
func endPulse() {
	stepPin.Low()
}

// heartbeat runs in the timer interrupt and re-arms its own channel
func heartbeat() {
	heartbeats++
	led.Set(heartbeats&0x10 != 0)
	core.TriggerUS(heartbeatUS, heartbeatChannel)
}
