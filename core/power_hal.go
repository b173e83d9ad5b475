package core

// PowerDriver covers watchdog and low-power handling.
type PowerDriver interface {
	// ClearWatchdog restarts the watchdog timeout window
	ClearWatchdog()

	// Sleep enters low power until the next interrupt. Implementations
	// must return within the watchdog window.
	Sleep()
}

// Peripherals bundles every driver the controller needs.
type Peripherals struct {
	PWM    PWMDriver
	ADC    ADCDriver
	Vref   VrefDriver
	Timer  TimerDriver
	Button ButtonDriver
	Power  PowerDriver
	Clock  Clock
}

// validate reports the first missing driver
func (p Peripherals) validate() error {
	switch {
	case p.PWM == nil:
		return missingDriver("pwm")
	case p.ADC == nil:
		return missingDriver("adc")
	case p.Vref == nil:
		return missingDriver("vref")
	case p.Timer == nil:
		return missingDriver("timer")
	case p.Button == nil:
		return missingDriver("button")
	case p.Power == nil:
		return missingDriver("power")
	case p.Clock == nil:
		return missingDriver("clock")
	}
	return nil
}
