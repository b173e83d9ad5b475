package core

// ButtonDriver is the abstract push button interface that core code uses.
// The button is active low on every board so far; drivers hide the polarity.
type ButtonDriver interface {
	// Pressed reads the current (logical) button level
	Pressed() bool

	// EdgeFlag reports whether a falling edge was latched since the last ClearEdge
	EdgeFlag() bool

	// ClearEdge clears the latched edge flag
	ClearEdge()
}
