//go:build rp2040 || rp2350

package main

import (
	"log/slog"
	"machine"
	"time"

	"ledflasher/core"
)

// Board wiring
const (
	ledPin      = machine.GPIO15 // LED driver gate, PWM7 B
	buttonPin   = machine.GPIO14 // push button to ground
	senseRefPin = machine.GPIO22 // shunt reference enable
	senseADCPin = machine.ADC0   // shunt amplifier output (GPIO26)
)

// statusInterval is how often the loop logs a status line
const statusInterval = 1000 * 1000

var (
	logger *slog.Logger

	// Debug counters
	loopErrors uint32
	lastStatus uint64
)

func main() {
	// Disable the watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	logger = newLogger(slog.LevelInfo)

	core.SetDebugWriter(func(msg string) {
		logger.Info(msg)
	})
	core.InitAsyncDebug()
	UpdateSystemTime()

	power, button, ctrl, err := setup()
	if err != nil {
		logger.Error("setup failed", slog.String("err", err.Error()))
		halt()
	}

	if err := power.StartWatchdog(); err != nil {
		logger.Error("watchdog", slog.String("err", err.Error()))
	}
	logger.Info("ledflasher ready", slog.String("mode", ctrl.Mode().String()))

	// Main loop
	for {
		// Recover from panics: force the LED off and keep going
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopErrors++
					ctrl.Reset()
					logger.Error("loop recovered", slog.Uint64("errors", uint64(loopErrors)))
					core.DumpEventRing()
				}
			}()

			// Update system time from hardware
			UpdateSystemTime()

			ctrl.Step()

			reportStatus(ctrl, button)
		}()

		// Yield to the debug output goroutine
		time.Sleep(10 * time.Microsecond)
	}
}

// setup builds the drivers and the controller
func setup() (*Power, *Button, *core.Controller, error) {
	pwm, err := NewLEDPWM(ledPin)
	if err != nil {
		return nil, nil, nil, err
	}
	sense, err := NewSenseInput()
	if err != nil {
		return nil, nil, nil, err
	}
	button, err := NewButton(buttonPin)
	if err != nil {
		return nil, nil, nil, err
	}
	power := NewPower(button.EdgeFlag)

	ctrl, err := core.NewController(core.DefaultConfig(), core.Peripherals{
		PWM:    pwm,
		ADC:    sense,
		Vref:   NewSenseRef(senseRefPin),
		Timer:  &BlinkTimer{},
		Button: button,
		Power:  power,
		Clock:  HardwareClock{},
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return power, button, ctrl, nil
}

// reportStatus logs the control state once per statusInterval while the
// LED is lit. In Off the loop mostly sleeps and stays quiet. Raw edges
// against presses and bounces show how noisy the contacts are.
func reportStatus(ctrl *core.Controller, button *Button) {
	now := GetHardwareUptime()
	if now-lastStatus < statusInterval || ctrl.Mode() == core.ModeOff {
		return
	}
	lastStatus = now

	st := ctrl.Status()
	logger.Info("status",
		slog.String("mode", st.Mode.String()),
		slog.Bool("led", st.LEDEnabled),
		slog.Int("duty", int(st.Duty)),
		slog.Int("estimate", int(st.Estimate)),
		slog.Uint64("presses", uint64(st.Presses)),
		slog.Uint64("bounces", uint64(st.Bounces)),
		slog.Uint64("edges", uint64(button.Edges())),
		slog.Uint64("dropped", uint64(usbDropped)),
	)
}

// halt parks the core with everything off. The watchdog is not running
// yet, so this does not reset.
func halt() {
	for {
		time.Sleep(time.Second)
	}
}
