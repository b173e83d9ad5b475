package core

// Ticks is the core time base: a free-running microsecond counter that
// wraps roughly every 71 minutes. Compare ticks only through Elapsed.
type Ticks uint32

// TickFreq is the tick frequency in Hz
const TickFreq = 1000000

// Clock is the injected time source. The firmware reads its hardware
// counter, tests and the simulator supply their own.
type Clock interface {
	Now() Ticks
}

// TicksFromMS converts milliseconds to ticks
func TicksFromMS(ms uint32) Ticks {
	return Ticks(ms * (TickFreq / 1000))
}

// TicksFromUS converts microseconds to ticks
func TicksFromUS(us uint32) Ticks {
	return Ticks(uint64(us) * TickFreq / 1000000)
}

// TicksToMS converts ticks to whole milliseconds
func TicksToMS(t Ticks) uint32 {
	return uint32(t) / (TickFreq / 1000)
}

// Elapsed returns the ticks from since to now, correct across one wrap
func Elapsed(now, since Ticks) Ticks {
	return now - since
}

// GetTime returns the current system time in ticks
func GetTime() Ticks {
	return getSystemTicks()
}

// SetTime sets the current system time; the target calls this from
// its hardware counter once per loop iteration
func SetTime(t Ticks) {
	setSystemTicks(t)
}
