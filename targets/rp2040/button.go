//go:build rp2040 || rp2350

package main

import (
	"machine"

	"ledflasher/core"
)

// Button implements core.ButtonDriver on an active-low input with the
// internal pull-up. The falling-edge interrupt only latches the flag;
// everything else happens in the main loop.
type Button struct {
	pin  machine.Pin
	edge core.EdgeLatch
}

// NewButton configures pin and installs its edge interrupt
func NewButton(pin machine.Pin) (*Button, error) {
	b := &Button{pin: pin}
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		b.edge.Set()
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Button) Pressed() bool  { return !b.pin.Get() }
func (b *Button) EdgeFlag() bool { return b.edge.Test() }
func (b *Button) ClearEdge()     { b.edge.Clear() }

// Edges returns the number of edges the interrupt has latched
func (b *Button) Edges() uint32 { return b.edge.Edges() }

// SenseRef implements core.VrefDriver: a GPIO that powers the shunt
// reference and amplifier
type SenseRef struct {
	pin machine.Pin
}

// NewSenseRef configures pin as an output, reference off
func NewSenseRef(pin machine.Pin) *SenseRef {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &SenseRef{pin: pin}
}

func (r *SenseRef) Enable()  { r.pin.High() }
func (r *SenseRef) Disable() { r.pin.Low() }
