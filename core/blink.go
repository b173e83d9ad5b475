package core

// BlinkScheduler toggles the LED drive each time the blink timer
// expires. It never waits, so regulation keeps running between toggles.
type BlinkScheduler struct {
	timer TimerDriver
	pwm   PWMDriver

	toggles uint32
}

// NewBlinkScheduler creates a scheduler over the given timer and PWM
func NewBlinkScheduler(timer TimerDriver, pwm PWMDriver) *BlinkScheduler {
	return &BlinkScheduler{timer: timer, pwm: pwm}
}

// Poll handles a pending expiry: clear the flag, reload with preset and
// flip the PWM enable. Only called in the blinking modes.
func (b *BlinkScheduler) Poll(preset Ticks) bool {
	if !b.timer.Expired() {
		return false
	}
	b.timer.ClearExpired()
	b.timer.Reload(preset)
	if b.pwm.Enabled() {
		b.pwm.Disable()
	} else {
		b.pwm.Enable()
	}
	b.toggles++
	return true
}

// Toggles returns the number of toggles since boot
func (b *BlinkScheduler) Toggles() uint32 { return b.toggles }
