//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"
)

const (
	// watchdogTimeoutMS is the reset deadline; the loop clears it every iteration
	watchdogTimeoutMS = 250

	// sleepSliceMS bounds one low-power wait. The watchdog keeps running
	// while the core sleeps, so sleep comes back well inside its window.
	sleepSliceMS = 20
)

// Power implements core.PowerDriver with the RP2040 watchdog and
// short runtime sleeps that end early on a button edge
type Power struct {
	wake func() bool
}

// NewPower returns a driver whose Sleep ends as soon as wake reports true
func NewPower(wake func() bool) *Power {
	return &Power{wake: wake}
}

// StartWatchdog arms the watchdog. Until then ClearWatchdog is harmless.
func (p *Power) StartWatchdog() error {
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: watchdogTimeoutMS})
	if err != nil {
		return err
	}
	return machine.Watchdog.Start()
}

func (p *Power) ClearWatchdog() {
	machine.Watchdog.Update()
}

func (p *Power) Sleep() {
	for i := 0; i < sleepSliceMS; i++ {
		if p.wake() {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
