package sim

import "ledflasher/core"

// Transition is a change of the LED drive enable
type Transition struct {
	At core.Ticks
	On bool
}

// PWM simulates a double-buffered PWM with a load-acknowledge flag
type PWM struct {
	b *Board

	enabled bool
	staged  core.DutyCycle
	latched core.DutyCycle
	pending bool
	ackAt   core.Ticks

	Reloads     int
	Transitions []Transition
}

func (p *PWM) Enable() {
	if !p.enabled {
		p.Transitions = append(p.Transitions, Transition{At: p.b.now, On: true})
	}
	p.enabled = true
}

func (p *PWM) Disable() {
	if p.enabled {
		p.Transitions = append(p.Transitions, Transition{At: p.b.now, On: false})
	}
	p.enabled = false
}

func (p *PWM) Enabled() bool { return p.enabled }

func (p *PWM) SetDuty(d core.DutyCycle) { p.staged = d }

func (p *PWM) RequestReload() {
	p.Reloads++
	p.pending = true
	p.ackAt = p.b.now + p.b.cfg.ReloadLatency
}

// ReloadPending burns SpinTime per poll, like the firmware's busy wait
func (p *PWM) ReloadPending() bool {
	if p.pending && core.Elapsed(p.b.now, p.ackAt) < 1<<31 {
		p.pending = false
		p.latched = p.staged
	}
	if p.pending {
		p.b.Advance(p.b.cfg.SpinTime)
	}
	return p.pending
}

// Duty returns the duty cycle the hardware is currently running
func (p *PWM) Duty() core.DutyCycle {
	p.ReloadPending()
	return p.latched
}

// ADC simulates a single-channel converter sampling the plant
type ADC struct {
	b *Board

	enabled bool
	busy    bool
	doneAt  core.Ticks
	result  core.ADCValue

	Conversions int
}

func (a *ADC) Enable()  { a.enabled = true }
func (a *ADC) Disable() { a.enabled = false; a.busy = false }

func (a *ADC) StartConversion() {
	if !a.enabled {
		return
	}
	a.busy = true
	a.doneAt = a.b.now + a.b.cfg.ConversionTime
}

func (a *ADC) CancelConversion() { a.busy = false }

func (a *ADC) ConversionDone() bool {
	if a.busy && core.Elapsed(a.b.now, a.doneAt) < 1<<31 {
		a.busy = false
		a.result = a.b.sense()
		a.Conversions++
	}
	return !a.busy
}

func (a *ADC) Result() core.ADCValue { return a.result }

// Enabled reports whether the converter is powered
func (a *ADC) Enabled() bool { return a.enabled }

// Vref simulates the switchable sense reference
type Vref struct{ enabled bool }

func (v *Vref) Enable()  { v.enabled = true }
func (v *Vref) Disable() { v.enabled = false }

// Enabled reports whether the reference is on
func (v *Vref) Enabled() bool { return v.enabled }

// Timer simulates the blink timer on virtual time. It is one-shot: a
// reload rearms it.
type Timer struct {
	b *Board

	running bool
	start   core.Ticks
	preset  core.Ticks
	fired   bool
	expired bool
}

func (t *Timer) Reload(preset core.Ticks) {
	t.start = t.b.now
	t.preset = preset
	t.fired = false
}

func (t *Timer) Start() { t.running = true }
func (t *Timer) Stop()  { t.running = false }

func (t *Timer) Expired() bool {
	if t.running && !t.fired && core.Elapsed(t.b.now, t.start) >= t.preset {
		t.fired = true
		t.expired = true
	}
	return t.expired
}

func (t *Timer) ClearExpired() { t.expired = false }

// Running reports whether the timer is counting
func (t *Timer) Running() bool { return t.running }

// Preset returns the last reload preset
func (t *Timer) Preset() core.Ticks { return t.preset }

// Button simulates an active-low push button with a falling-edge latch
type Button struct {
	pressed bool
	edge    core.EdgeLatch
}

func (b *Button) Pressed() bool  { return b.pressed }
func (b *Button) EdgeFlag() bool { return b.edge.Test() }
func (b *Button) ClearEdge()     { b.edge.Clear() }

// Press closes the contacts
func (b *Button) Press() {
	b.pressed = true
	b.edge.Set()
}

// Release opens the contacts
func (b *Button) Release() { b.pressed = false }

// Glitch latches an edge without a press, as contact bounce or EMI does
func (b *Button) Glitch() { b.edge.Set() }

// Power tracks watchdog kicks and simulates low-power waits
type Power struct {
	b *Board

	lastKick core.Ticks
	MaxGap   core.Ticks
	Resets   int
	Sleeps   int
}

func (p *Power) ClearWatchdog() {
	gap := core.Elapsed(p.b.now, p.lastKick)
	if gap > p.MaxGap {
		p.MaxGap = gap
	}
	if gap > p.b.cfg.WatchdogTimeout {
		p.Resets++
	}
	p.lastKick = p.b.now
}

// Sleep waits for the button edge for at most one SleepSlice
func (p *Power) Sleep() {
	p.Sleeps++
	if p.b.Button.EdgeFlag() {
		return
	}
	p.b.advanceUntil(p.b.now+p.b.cfg.SleepSlice, p.b.Button.EdgeFlag)
}
