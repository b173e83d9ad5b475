//go:build rp2040 || rp2350

package main

import (
	"machine"

	"ledflasher/core"
)

// ledPWMPeriod is the drive period in nanoseconds (62.5 kHz)
const ledPWMPeriod = 16000

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// LEDPWM implements core.PWMDriver on one RP2040 PWM channel.
//
// The slice compare register is double-buffered by hardware: a new level
// takes effect at the next counter wrap, so a reload can never tear and
// there is nothing to wait for. Stopping a slice freezes the pin at its
// current level, so disable is done by driving a zero level instead.
type LEDPWM struct {
	pwm     pwmPeripheral
	channel uint8
	top     uint32

	enabled bool
	staged  core.DutyCycle
	latched core.DutyCycle
}

// NewLEDPWM configures pin for hardware PWM and leaves the output low
func NewLEDPWM(pin machine.Pin) (*LEDPWM, error) {
	// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7, channel N & 1
	pwm := getPWMPeripheral(uint8((uint32(pin) >> 1) & 0x7))

	err := pwm.Configure(machine.PWMConfig{
		Period: ledPWMPeriod,
	})
	if err != nil {
		return nil, err
	}

	channel, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}

	d := &LEDPWM{
		pwm:     pwm,
		channel: channel,
		top:     pwm.Top(),
	}
	d.apply()
	return d, nil
}

func (d *LEDPWM) Enable() {
	d.enabled = true
	d.apply()
}

func (d *LEDPWM) Disable() {
	d.enabled = false
	d.apply()
}

func (d *LEDPWM) Enabled() bool { return d.enabled }

func (d *LEDPWM) SetDuty(duty core.DutyCycle) { d.staged = duty }

func (d *LEDPWM) RequestReload() {
	d.latched = d.staged
	d.apply()
}

func (d *LEDPWM) ReloadPending() bool { return false }

// apply writes the compare level for the latched duty, scaled from the
// 65-step period to the slice's Top()
func (d *LEDPWM) apply() {
	if !d.enabled {
		d.pwm.Set(d.channel, 0)
		return
	}
	// Use 32-bit math; Top() is at most 65535
	level := (uint32(d.latched) * (d.top + 1)) / core.PWMPeriod
	d.pwm.Set(d.channel, level)
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		// Should never happen with proper masking
		return machine.PWM0
	}
}
