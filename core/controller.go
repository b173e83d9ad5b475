package core

import "context"

// ModeController owns the operating mode and reconfigures the
// peripherals on every transition.
type ModeController struct {
	mode  Mode
	cfg   Config
	pwm   PWMDriver
	adc   ADCDriver
	vref  VrefDriver
	timer TimerDriver
}

// NewModeController returns a controller in Off with the outputs configured for Off
func NewModeController(cfg Config, p Peripherals) *ModeController {
	mc := &ModeController{
		cfg:   cfg,
		pwm:   p.PWM,
		adc:   p.ADC,
		vref:  p.Vref,
		timer: p.Timer,
	}
	mc.Configure(ModeOff)
	return mc
}

// Mode returns the active mode
func (mc *ModeController) Mode() Mode { return mc.mode }

// Advance selects the next mode in the cycle and configures it
func (mc *ModeController) Advance() Mode {
	return mc.Configure(mc.mode.Next())
}

// Configure switches to m. An invalid mode is treated as corruption:
// everything is shut down and the controller lands in Off.
func (mc *ModeController) Configure(m Mode) Mode {
	if !m.Valid() {
		RecordEvent(EvtCorruptMode, uint32(m), 0)
		DebugAsync("mode: corrupt value " + utoa(uint32(m)) + ", forcing off")
		m = ModeOff
	}

	switch m {
	case ModeOff:
		mc.pwm.Disable()
		mc.vref.Disable()
		mc.adc.CancelConversion()
		mc.adc.Disable()
		mc.timer.Stop()
		mc.timer.ClearExpired()
	case ModeFast, ModeSlow:
		mc.pwm.Enable()
		mc.vref.Enable()
		mc.adc.Enable()
		mc.adc.StartConversion()
		mc.timer.Reload(mc.cfg.Preset(m))
		mc.timer.Start()
	case ModeOn:
		mc.pwm.Enable()
		mc.vref.Enable()
		mc.adc.Enable()
		mc.adc.StartConversion()
		mc.timer.Stop()
	}

	RecordEvent(EvtModeChange, uint32(mc.mode), uint32(m))
	DebugAsync("mode: " + mc.mode.String() + " -> " + m.String())
	mc.mode = m
	return m
}

// Status is a snapshot of the controller for logging and host tools
type Status struct {
	Mode       Mode
	Duty       DutyCycle
	Estimate   ADCValue
	LEDEnabled bool
	Debounce   DebounceState
	Presses    uint32
	Bounces    uint32
	Toggles    uint32
}

// Controller is the whole control core: one Step is one pass of the
// firmware super-loop. All mutable state lives here.
type Controller struct {
	cfg Config
	per Peripherals

	modes     *ModeController
	button    *ButtonMonitor
	blink     *BlinkScheduler
	regulator *CurrentRegulator

	steps uint32
}

// NewController validates cfg and the drivers and starts in Off
func NewController(cfg Config, p Peripherals) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:       cfg,
		per:       p,
		regulator: NewCurrentRegulator(cfg, p.PWM, p.ADC, p.Clock),
		blink:     NewBlinkScheduler(p.Timer, p.PWM),
		button:    NewButtonMonitor(cfg, p.Button, p.Power, p.Clock),
	}
	c.modes = NewModeController(cfg, p)
	return c, nil
}

// Step runs one loop iteration: button, blink, regulation, watchdog.
func (c *Controller) Step() {
	if c.button.Poll(c.modes.Mode()) {
		c.modes.Advance()
	}

	m := c.modes.Mode()
	if m.Blinks() {
		c.blink.Poll(c.cfg.Preset(m))
	}
	if m != ModeOff && c.per.PWM.Enabled() {
		c.regulator.Poll()
	}

	c.per.Power.ClearWatchdog()
	c.steps++
}

// Run calls Step until ctx is cancelled. before, if set, runs at the
// top of every iteration (the firmware refreshes the system time there).
func (c *Controller) Run(ctx context.Context, before func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if before != nil {
			before()
		}
		c.Step()
	}
}

// Reset forces Off, as after a recovered fault
func (c *Controller) Reset() {
	c.modes.Configure(ModeOff)
	c.per.Power.ClearWatchdog()
}

// Mode returns the active mode
func (c *Controller) Mode() Mode { return c.modes.Mode() }

// Duty returns the regulator's duty cycle
func (c *Controller) Duty() DutyCycle { return c.regulator.Duty() }

// Steps returns the number of loop iterations run
func (c *Controller) Steps() uint32 { return c.steps }

// Modes exposes the mode controller
func (c *Controller) Modes() *ModeController { return c.modes }

// Regulator exposes the current regulator
func (c *Controller) Regulator() *CurrentRegulator { return c.regulator }

// Button exposes the button monitor
func (c *Controller) Button() *ButtonMonitor { return c.button }

// Status returns a snapshot of the control state
func (c *Controller) Status() Status {
	return Status{
		Mode:       c.modes.Mode(),
		Duty:       c.regulator.Duty(),
		Estimate:   c.regulator.Estimate(),
		LEDEnabled: c.per.PWM.Enabled(),
		Debounce:   c.button.State(),
		Presses:    c.button.Presses(),
		Bounces:    c.button.Bounces(),
		Toggles:    c.blink.Toggles(),
	}
}

// String renders the status as one log line
func (s Status) String() string {
	led := "off"
	if s.LEDEnabled {
		led = "on"
	}
	return "mode=" + s.Mode.String() +
		" led=" + led +
		" duty=" + utoa(uint32(s.Duty)) +
		" est=" + utoa(uint32(s.Estimate)) +
		" btn=" + s.Debounce.String() +
		" presses=" + utoa(s.Presses) +
		" bounces=" + utoa(s.Bounces) +
		" toggles=" + utoa(s.Toggles)
}
