package core

// EdgeLatch is a sticky flag set from interrupt context and polled and
// cleared from the main loop. It is the only state shared with an ISR.
type EdgeLatch struct {
	set bool
	// count of edges latched since boot, for the debug dump
	edges uint32
}

// Set latches the flag. Safe to call from an interrupt handler.
func (l *EdgeLatch) Set() {
	state := disableInterrupts()
	l.set = true
	l.edges++
	restoreInterrupts(state)
}

// Test reports whether the flag is latched
func (l *EdgeLatch) Test() bool {
	state := disableInterrupts()
	v := l.set
	restoreInterrupts(state)
	return v
}

// Clear releases the flag
func (l *EdgeLatch) Clear() {
	state := disableInterrupts()
	l.set = false
	restoreInterrupts(state)
}

// Edges returns how many edges have been latched since boot
func (l *EdgeLatch) Edges() uint32 {
	state := disableInterrupts()
	n := l.edges
	restoreInterrupts(state)
	return n
}
