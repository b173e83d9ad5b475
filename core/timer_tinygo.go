//go:build tinygo

package core

import "sync/atomic"

var systemTicksValue uint32

// getSystemTicks returns the stored system ticks
func getSystemTicks() Ticks {
	return Ticks(atomic.LoadUint32(&systemTicksValue))
}

// setSystemTicks stores the system ticks
func setSystemTicks(t Ticks) {
	atomic.StoreUint32(&systemTicksValue, uint32(t))
}
