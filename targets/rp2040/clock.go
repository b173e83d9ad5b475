//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"ledflasher/core"
)

// RP2040/RP2350 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// GetHardwareTime reads the RP2040 hardware timer
// Returns the low 32 bits of the microsecond counter
func GetHardwareTime() core.Ticks {
	return core.Ticks(timerRAWL.Get())
}

// GetHardwareUptime reads the full 64-bit RP2040 hardware timer
func GetHardwareUptime() uint64 {
	// Must read high first, then low, then high again to detect rollover
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// UpdateSystemTime updates the core timer with hardware time
// Called at the top of every loop iteration
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}

// HardwareClock implements core.Clock straight from the µs counter. The
// button logic reads it right after a sleep, before the loop has
// refreshed the system time.
type HardwareClock struct{}

func (HardwareClock) Now() core.Ticks { return GetHardwareTime() }

// BlinkTimer implements core.TimerDriver as a one-shot over the µs
// counter. The core polls it every iteration, so a hardware alarm would
// buy nothing; the alarms are left to the TinyGo runtime's sleep.
type BlinkTimer struct {
	running bool
	start   core.Ticks
	preset  core.Ticks
	fired   bool
	expired bool
}

func (t *BlinkTimer) Reload(preset core.Ticks) {
	t.start = GetHardwareTime()
	t.preset = preset
	t.fired = false
}

func (t *BlinkTimer) Start() { t.running = true }
func (t *BlinkTimer) Stop()  { t.running = false }

func (t *BlinkTimer) Expired() bool {
	if t.running && !t.fired && core.Elapsed(GetHardwareTime(), t.start) >= t.preset {
		t.fired = true
		t.expired = true
	}
	return t.expired
}

func (t *BlinkTimer) ClearExpired() { t.expired = false }
