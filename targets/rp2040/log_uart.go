//go:build (rp2040 || rp2350) && uartlog

package main

import (
	"io"
	"machine"
)

// uartWriter drops output until the UART is configured
type uartWriter struct {
	uart *machine.UART
}

func (w uartWriter) Write(p []byte) (int, error) {
	if w.uart == nil {
		return len(p), nil
	}
	return w.uart.Write(p)
}

// logSink is UART0 on GPIO0 (TX) and GPIO1 (RX) at 115200 baud, for
// boards whose USB port only supplies power
func logSink() io.Writer {
	uart := machine.UART0
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO0,
		RX:       machine.GPIO1,
	})
	if err != nil {
		return uartWriter{}
	}
	return uartWriter{uart: uart}
}
