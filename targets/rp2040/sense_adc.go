//go:build (rp2040 || rp2350) && !ina260

package main

import (
	"device/rp"
	"machine"

	"ledflasher/core"
)

// arefMilliVolt is the ADC full scale; one sense count is one millivolt
// across the shunt
const arefMilliVolt = 3300

// SenseADC implements core.ADCDriver with single, non-blocking
// conversions on one ADC input, driven through the CS register directly
// because machine.ADC.Get blocks until READY.
type SenseADC struct {
	pin     machine.Pin
	channel uint32

	configured bool
	busy       bool
	result     core.ADCValue
}

// NewSenseADC returns the sense input on pin (one of ADC0-ADC3)
func NewSenseADC(pin machine.Pin) *SenseADC {
	return &SenseADC{
		pin:     pin,
		channel: uint32(pin - machine.ADC0),
	}
}

// NewSenseInput returns the board's sense front-end
func NewSenseInput() (core.ADCDriver, error) {
	return NewSenseADC(senseADCPin), nil
}

func (d *SenseADC) Enable() {
	if !d.configured {
		machine.InitADC()
		adc := machine.ADC{Pin: d.pin}
		adc.Configure(machine.ADCConfig{})
		d.configured = true
	}
	rp.ADC.CS.SetBits(rp.ADC_CS_EN)
}

func (d *SenseADC) Disable() {
	d.busy = false
	rp.ADC.CS.ClearBits(rp.ADC_CS_EN)
}

func (d *SenseADC) StartConversion() {
	if !rp.ADC.CS.HasBits(rp.ADC_CS_EN) {
		return
	}
	rp.ADC.CS.ReplaceBits(
		d.channel<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	d.busy = true
}

func (d *SenseADC) CancelConversion() { d.busy = false }

func (d *SenseADC) ConversionDone() bool {
	if d.busy && rp.ADC.CS.HasBits(rp.ADC_CS_READY) {
		// 12-bit raw (0-4095) to millivolts
		raw12 := rp.ADC.RESULT.Get() & 0xfff
		d.result = core.ADCValue(raw12 * arefMilliVolt / 4096)
		d.busy = false
	}
	return !d.busy
}

func (d *SenseADC) Result() core.ADCValue { return d.result }
