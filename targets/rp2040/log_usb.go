//go:build (rp2040 || rp2350) && !uartlog

package main

import "io"

// logSink is the USB CDC console
func logSink() io.Writer {
	InitUSB()
	return usbWriter{}
}
