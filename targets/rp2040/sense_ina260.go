//go:build (rp2040 || rp2350) && ina260

package main

import (
	"machine"

	"tinygo.org/x/drivers/ina260"

	"ledflasher/core"
)

// microampsPerCount scales INA260 current to sense counts so the default
// target of 12 counts is 20 mA
const microampsPerCount = 20000 / int32(core.TargetValue)

// ina260Conversion is one averaged conversion: 16 samples of 140 us
const ina260Conversion = 16 * 140

// INA260Sense implements core.ADCDriver on an INA260 current monitor.
// The monitor converts continuously; a conversion here is a wait of one
// averaging window followed by a register read.
type INA260Sense struct {
	dev *ina260.Device

	enabled bool
	busy    bool
	started core.Ticks
	result  core.ADCValue
}

// NewSenseInput returns the board's sense front-end
func NewSenseInput() (core.ADCDriver, error) {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	})
	if err != nil {
		return nil, err
	}

	dev := ina260.New(machine.I2C0)
	dev.Configure(ina260.Config{
		AverageMode:     ina260.AVGMODE_16,
		VoltConvTime:    ina260.CONVTIME_140USEC,
		CurrentConvTime: ina260.CONVTIME_140USEC,
		Mode:            ina260.MODE_CONTINUOUS | ina260.MODE_CURRENT,
	})
	return &INA260Sense{dev: &dev}, nil
}

func (d *INA260Sense) Enable()  { d.enabled = true }
func (d *INA260Sense) Disable() { d.enabled = false; d.busy = false }

func (d *INA260Sense) StartConversion() {
	if !d.enabled {
		return
	}
	d.busy = true
	d.started = GetHardwareTime()
}

func (d *INA260Sense) CancelConversion() { d.busy = false }

func (d *INA260Sense) ConversionDone() bool {
	if d.busy && core.Elapsed(GetHardwareTime(), d.started) >= ina260Conversion {
		ua := d.dev.Current()
		if ua < 0 {
			ua = 0
		}
		d.result = core.ADCValue(ua / microampsPerCount)
		d.busy = false
	}
	return !d.busy
}

func (d *INA260Sense) Result() core.ADCValue { return d.result }
