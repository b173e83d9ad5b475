package core

// In-memory drivers for host tests. Each fake records what the core
// asked of it; tests flip the inputs (conversion results, timer expiry,
// button level) directly.

type fakeClock struct{ now Ticks }

func (c *fakeClock) Now() Ticks          { return c.now }
func (c *fakeClock) advanceMS(ms uint32) { c.now += TicksFromMS(ms) }

type fakePWM struct {
	enabled  bool
	staged   DutyCycle
	latched  DutyCycle
	reloads  int
	pending  bool
	ackPolls int // ReloadPending polls before the hardware acks
	left     int
	stuck    bool   // never acks
	polls    int    // ReloadPending calls while pending
	spin     func() // runs on every pending poll, e.g. to move a clock
}

func (p *fakePWM) Enable()             { p.enabled = true }
func (p *fakePWM) Disable()            { p.enabled = false }
func (p *fakePWM) Enabled() bool       { return p.enabled }
func (p *fakePWM) SetDuty(d DutyCycle) { p.staged = d }
func (p *fakePWM) RequestReload() {
	p.reloads++
	p.pending = true
	p.left = p.ackPolls
}
func (p *fakePWM) ReloadPending() bool {
	if !p.pending {
		return false
	}
	p.polls++
	if p.spin != nil {
		p.spin()
	}
	if p.stuck {
		return true
	}
	if p.left > 0 {
		p.left--
		return true
	}
	p.pending = false
	p.latched = p.staged
	return false
}

type fakeADC struct {
	enabled bool
	done    bool
	result  ADCValue
	starts  int
	cancels int
}

func (a *fakeADC) Enable()              { a.enabled = true }
func (a *fakeADC) Disable()             { a.enabled = false }
func (a *fakeADC) StartConversion()     { a.starts++; a.done = false }
func (a *fakeADC) CancelConversion()    { a.cancels++; a.done = false }
func (a *fakeADC) ConversionDone() bool { return a.done }
func (a *fakeADC) Result() ADCValue     { return a.result }

// complete finishes the in-flight conversion with v
func (a *fakeADC) complete(v ADCValue) {
	a.result = v
	a.done = true
}

type fakeVref struct{ enabled bool }

func (v *fakeVref) Enable()  { v.enabled = true }
func (v *fakeVref) Disable() { v.enabled = false }

type fakeTimer struct {
	running bool
	preset  Ticks
	expired bool
	reloads int
}

func (t *fakeTimer) Reload(preset Ticks) { t.preset = preset; t.reloads++ }
func (t *fakeTimer) Start()              { t.running = true }
func (t *fakeTimer) Stop()               { t.running = false }
func (t *fakeTimer) Expired() bool       { return t.expired }
func (t *fakeTimer) ClearExpired()       { t.expired = false }

type fakeButton struct {
	pressed bool
	edge    EdgeLatch
}

func (b *fakeButton) Pressed() bool  { return b.pressed }
func (b *fakeButton) EdgeFlag() bool { return b.edge.Test() }
func (b *fakeButton) ClearEdge()     { b.edge.Clear() }

// press closes the contacts, latching a falling edge
func (b *fakeButton) press() {
	b.pressed = true
	b.edge.Set()
}

func (b *fakeButton) release() { b.pressed = false }

type fakePower struct {
	kicks  int
	sleeps int
}

func (p *fakePower) ClearWatchdog() { p.kicks++ }
func (p *fakePower) Sleep()         { p.sleeps++ }

type fakeBoard struct {
	clock  fakeClock
	pwm    fakePWM
	adc    fakeADC
	vref   fakeVref
	timer  fakeTimer
	button fakeButton
	power  fakePower
}

func (b *fakeBoard) peripherals() Peripherals {
	return Peripherals{
		PWM:    &b.pwm,
		ADC:    &b.adc,
		Vref:   &b.vref,
		Timer:  &b.timer,
		Button: &b.button,
		Power:  &b.power,
		Clock:  &b.clock,
	}
}

// runFor steps the controller once per millisecond of fake time
func runFor(c *Controller, b *fakeBoard, ms int) {
	for i := 0; i < ms; i++ {
		c.Step()
		b.clock.advanceMS(1)
	}
}

// cleanPress performs one bounce-free press and release
func cleanPress(c *Controller, b *fakeBoard) {
	b.button.press()
	runFor(c, b, 60)
	b.button.release()
	runFor(c, b, 60)
}
