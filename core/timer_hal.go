package core

// TimerDriver is the blink timer. It counts up from a reload point and
// latches an expiry flag once the preset has elapsed.
type TimerDriver interface {
	// Reload restarts the count so that the timer expires preset ticks from now
	Reload(preset Ticks)

	// Start lets the timer run
	Start()

	// Stop halts the timer; a stopped timer never expires
	Stop()

	// Expired reports the latched expiry flag
	Expired() bool

	// ClearExpired clears the expiry flag
	ClearExpired()
}
