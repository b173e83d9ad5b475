//go:build !tinygo

package core

var systemTicks Ticks

// getSystemTicks returns the stored system ticks (host build)
func getSystemTicks() Ticks {
	return systemTicks
}

// setSystemTicks stores the system ticks (host build)
func setSystemTicks(t Ticks) {
	systemTicks = t
}
