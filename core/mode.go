package core

// Mode is the user-selected operating mode
type Mode uint8

// Modes in button order
const (
	ModeOff  Mode = 0
	ModeFast Mode = 1 // 80 ms on, 80 ms off
	ModeSlow Mode = 2 // 160 ms on, 160 ms off
	ModeOn   Mode = 3

	modeCount = 4
)

// Valid reports whether m is one of the four modes
func (m Mode) Valid() bool {
	return m < modeCount
}

// Next returns the mode selected by one more press. A corrupt value
// restarts the cycle at Off.
func (m Mode) Next() Mode {
	if !m.Valid() || m == ModeOn {
		return ModeOff
	}
	return m + 1
}

// Blinks reports whether the blink timer drives the output in m
func (m Mode) Blinks() bool {
	return m == ModeFast || m == ModeSlow
}

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeFast:
		return "fast"
	case ModeSlow:
		return "slow"
	case ModeOn:
		return "on"
	default:
		return "invalid(" + utoa(uint32(m)) + ")"
	}
}
