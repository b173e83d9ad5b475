// Package sim is an in-memory board for running the control core on a
// host: virtual time, a linear LED/sense-resistor plant, a scriptable
// push button and a watchdog that counts the resets it would have caused.
package sim

import (
	"math/rand"
	"sort"

	"ledflasher/core"
)

// Config describes the simulated hardware
type Config struct {
	// SenseGain is the sense reading per duty step while the LED is driven
	SenseGain float64
	// Noise is the peak of the uniform noise added to each conversion
	Noise int
	Seed  int64

	ConversionTime  core.Ticks // one ADC conversion
	ReloadLatency   core.Ticks // PWM period; a reload latches at the next boundary
	SpinTime        core.Ticks // time burned by one poll of a busy flag
	LoopTime        core.Ticks // time of one controller Step
	SleepSlice      core.Ticks // longest single low-power wait
	WatchdogTimeout core.Ticks
}

// DefaultConfig returns a plant that settles at duty 24 for the default target
func DefaultConfig() Config {
	return Config{
		SenseGain:       0.5,
		Seed:            1,
		ConversionTime:  core.TicksFromUS(120),
		ReloadLatency:   core.TicksFromUS(500),
		SpinTime:        core.TicksFromUS(10),
		LoopTime:        core.TicksFromUS(50),
		SleepSlice:      core.TicksFromMS(20),
		WatchdogTimeout: core.TicksFromMS(250),
	}
}

type action struct {
	at core.Ticks
	fn func()
}

// Board implements every core HAL interface on virtual time
type Board struct {
	cfg Config
	now core.Ticks
	rng *rand.Rand

	PWM    *PWM
	ADC    *ADC
	Vref   *Vref
	Timer  *Timer
	Button *Button
	Power  *Power

	pending []action
}

// NewBoard creates a board at time zero with everything powered down
func NewBoard(cfg Config) *Board {
	b := &Board{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	b.PWM = &PWM{b: b}
	b.ADC = &ADC{b: b}
	b.Vref = &Vref{}
	b.Timer = &Timer{b: b}
	b.Button = &Button{}
	b.Power = &Power{b: b}
	return b
}

// Now implements core.Clock
func (b *Board) Now() core.Ticks { return b.now }

// Peripherals returns the board as the controller's driver set
func (b *Board) Peripherals() core.Peripherals {
	return core.Peripherals{
		PWM:    b.PWM,
		ADC:    b.ADC,
		Vref:   b.Vref,
		Timer:  b.Timer,
		Button: b.Button,
		Power:  b.Power,
		Clock:  b,
	}
}

// At schedules fn to run once virtual time reaches at
func (b *Board) At(at core.Ticks, fn func()) {
	b.pending = append(b.pending, action{at: at, fn: fn})
	sort.SliceStable(b.pending, func(i, j int) bool {
		return b.pending[i].at < b.pending[j].at
	})
}

// After schedules fn d ticks from now
func (b *Board) After(d core.Ticks, fn func()) {
	b.At(b.now+d, fn)
}

// Advance moves virtual time forward by d, running due actions in order
func (b *Board) Advance(d core.Ticks) {
	b.advanceUntil(b.now+d, nil)
}

// advanceUntil moves time to end, or to the first action after which
// stop returns true
func (b *Board) advanceUntil(end core.Ticks, stop func() bool) {
	for len(b.pending) > 0 && b.pending[0].at <= end {
		a := b.pending[0]
		b.pending = b.pending[1:]
		if a.at > b.now {
			b.now = a.at
		}
		a.fn()
		if stop != nil && stop() {
			return
		}
	}
	b.now = end
}

// RunFor steps c until d ticks of virtual time have passed
func (b *Board) RunFor(c *core.Controller, d core.Ticks) {
	start := b.now
	for core.Elapsed(b.now, start) < d {
		c.Step()
		b.Advance(b.cfg.LoopTime)
	}
}

// sense returns the plant's sense reading for the current drive
func (b *Board) sense() core.ADCValue {
	if !b.PWM.enabled || !b.Vref.enabled {
		return 0
	}
	v := int(float64(b.PWM.latched)*b.cfg.SenseGain + 0.5)
	if b.cfg.Noise > 0 {
		v += b.rng.Intn(2*b.cfg.Noise+1) - b.cfg.Noise
	}
	if v < 0 {
		v = 0
	}
	if v > 1023 {
		v = 1023
	}
	return core.ADCValue(v)
}

// Tap schedules a clean press at at, held for hold
func (b *Board) Tap(at, hold core.Ticks) {
	b.At(at, b.Button.Press)
	b.At(at+hold, b.Button.Release)
}

// Chatter schedules a press whose contacts bounce n times over the first
// few milliseconds before settling closed
func (b *Board) Chatter(at, hold core.Ticks, n int) {
	step := core.TicksFromUS(400)
	for i := 0; i < n; i++ {
		t := at + core.Ticks(2*i)*step
		b.At(t, b.Button.Press)
		b.At(t+step, b.Button.Release)
	}
	b.Tap(at+core.Ticks(2*n)*step, hold)
}
