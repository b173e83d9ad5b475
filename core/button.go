package core

// DebounceState is the phase of the button debounce state machine
type DebounceState uint8

const (
	// DebounceIdle waits for an edge (in Off: for release, quiet, then sleep)
	DebounceIdle DebounceState = iota
	// DebounceCandidate has seen an edge and waits for contacts to settle
	DebounceCandidate
	// DebounceConfirmed has settled and watches for a re-trigger (Off only)
	DebounceConfirmed
)

func (s DebounceState) String() string {
	switch s {
	case DebounceIdle:
		return "idle"
	case DebounceCandidate:
		return "candidate"
	case DebounceConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// ButtonMonitor turns the latched falling-edge flag into discrete press
// events. It is polled once per loop iteration and never blocks, except
// for Power.Sleep on the Off path.
//
// Off path: wait for release, let the line stay quiet for PressSettle,
// clear the flag and sleep until an edge wakes us. After WakeSettle the
// flag is cleared again; if it re-triggers within RetriggerWindow the
// wake is treated as noise.
//
// Active path: on an edge wait PressSettle, clear the flag and emit a
// press if the button is still held.
type ButtonMonitor struct {
	button ButtonDriver
	power  PowerDriver
	clock  Clock

	pressSettle Ticks
	wakeSettle  Ticks
	retrigger   Ticks

	state   DebounceState
	since   Ticks
	offPath bool

	// Off path idle progress
	released bool
	armed    bool

	presses uint32
	bounces uint32
}

// NewButtonMonitor returns a monitor in the Off path, waiting for release
func NewButtonMonitor(cfg Config, button ButtonDriver, power PowerDriver, clock Clock) *ButtonMonitor {
	m := &ButtonMonitor{
		button:      button,
		power:       power,
		clock:       clock,
		pressSettle: cfg.PressSettle,
		wakeSettle:  cfg.WakeSettle,
		retrigger:   cfg.RetriggerWindow,
	}
	m.restart(true)
	return m
}

// State returns the debounce phase
func (m *ButtonMonitor) State() DebounceState { return m.state }

// Presses returns the number of press events emitted since boot
func (m *ButtonMonitor) Presses() uint32 { return m.presses }

// Bounces returns the number of rejected edges since boot
func (m *ButtonMonitor) Bounces() uint32 { return m.bounces }

// Poll advances the state machine and reports a press event
func (m *ButtonMonitor) Poll(mode Mode) bool {
	off := mode == ModeOff
	if off != m.offPath {
		m.restart(off)
	}
	if off {
		return m.pollOff()
	}
	return m.pollActive()
}

func (m *ButtonMonitor) restart(off bool) {
	m.state = DebounceIdle
	m.offPath = off
	m.released = false
	m.armed = false
}

func (m *ButtonMonitor) pollOff() bool {
	now := m.clock.Now()

	switch m.state {
	case DebounceIdle:
		if !m.released {
			if m.button.Pressed() {
				return false
			}
			m.released = true
			m.since = now
			return false
		}
		if !m.armed {
			if Elapsed(now, m.since) < m.pressSettle {
				return false
			}
			m.button.ClearEdge()
			m.armed = true
		}
		// An edge latched before sleeping wakes immediately.
		if !m.button.EdgeFlag() {
			m.power.Sleep()
			if !m.button.EdgeFlag() {
				return false
			}
		}
		RecordEvent(EvtWake, uint32(now), 0)
		m.state = DebounceCandidate
		m.since = m.clock.Now()
		return false

	case DebounceCandidate:
		if Elapsed(now, m.since) < m.wakeSettle {
			return false
		}
		m.button.ClearEdge()
		m.state = DebounceConfirmed
		m.since = now
		return false

	case DebounceConfirmed:
		if Elapsed(now, m.since) < m.retrigger {
			return false
		}
		m.restart(true)
		if m.button.EdgeFlag() {
			m.button.ClearEdge()
			m.bounces++
			RecordEvent(EvtBounce, m.bounces, 0)
			return false
		}
		m.presses++
		RecordEvent(EvtPress, m.presses, 0)
		return true
	}

	m.restart(true)
	return false
}

func (m *ButtonMonitor) pollActive() bool {
	now := m.clock.Now()

	switch m.state {
	case DebounceIdle:
		if !m.button.EdgeFlag() {
			return false
		}
		m.state = DebounceCandidate
		m.since = now
		return false

	case DebounceCandidate:
		if Elapsed(now, m.since) < m.pressSettle {
			return false
		}
		m.button.ClearEdge()
		m.state = DebounceIdle
		if !m.button.Pressed() {
			m.bounces++
			RecordEvent(EvtBounce, m.bounces, 0)
			return false
		}
		m.presses++
		RecordEvent(EvtPress, m.presses, 0)
		return true
	}

	m.restart(false)
	return false
}
