package core

// DutyCycle is the LED PWM on-time in PWM steps (see PWMPeriod).
type DutyCycle uint8

// PWMPeriod is the number of PWM steps in one LED drive period.
const PWMPeriod = 65

// ReloadTimeout bounds the wait for a pending reload. Hardware acks
// within one period; anything longer means the PWM is stuck.
const ReloadTimeout Ticks = 2000

// PWMDriver is the abstract PWM interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type PWMDriver interface {
	// Enable turns the LED drive output on at the current duty cycle
	Enable()

	// Disable turns the LED drive output off (pin driven low)
	Disable()

	// Enabled reports whether the output is currently enabled
	Enabled() bool

	// SetDuty stages a new duty cycle; it takes effect after RequestReload
	SetDuty(d DutyCycle)

	// RequestReload asks the hardware to latch the staged duty cycle
	// at the next period boundary
	RequestReload()

	// ReloadPending reports whether the last reload has not yet been
	// acknowledged by the hardware
	ReloadPending() bool
}
