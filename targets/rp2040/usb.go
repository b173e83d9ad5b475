//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// InitUSB initializes USB serial communication
// TinyGo automatically sets up USB CDC-ACM on RP2040
func InitUSB() {
	// machine.Serial is USB CDC on RP2040, not UART
	err := machine.Serial.Configure(machine.UARTConfig{})
	if err != nil {
		return
	}
}

// USBWriteBytes writes multiple bytes to USB
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}

// usbWriter adapts USBWriteBytes to io.Writer. Writes never fail: with
// no host attached the bytes are dropped.
type usbWriter struct{}

func (usbWriter) Write(p []byte) (int, error) {
	if _, err := USBWriteBytes(p); err != nil {
		usbDropped++
	}
	return len(p), nil
}

var usbDropped uint32
