package core

import "fmt"

// Firmware constants
const (
	// TargetValue is the sense reading for the desired LED current (about 20 mA)
	TargetValue ADCValue = 12

	MinDuty     DutyCycle = 1
	MaxDuty     DutyCycle = 60
	InitialDuty DutyCycle = 10

	// FilterDepth is the number of samples the moving average holds
	FilterDepth = 10
)

// Config holds the build-time tunables of the flasher. The firmware
// always runs DefaultConfig; host tools may override it for experiments.
type Config struct {
	Target      ADCValue  `json:"target"`
	InitialDuty DutyCycle `json:"initial_duty"`
	MinDuty     DutyCycle `json:"min_duty"`
	MaxDuty     DutyCycle `json:"max_duty"`

	// Blink half periods
	FastPreset Ticks `json:"fast_preset_us"`
	SlowPreset Ticks `json:"slow_preset_us"`

	// Debounce timings
	PressSettle     Ticks `json:"press_settle_us"`
	WakeSettle      Ticks `json:"wake_settle_us"`
	RetriggerWindow Ticks `json:"retrigger_window_us"`

	// FilterSeed is stored in the oldest filter slot at startup
	FilterSeed ADCValue `json:"filter_seed"`
}

// DefaultConfig returns the values the firmware ships with
func DefaultConfig() Config {
	return Config{
		Target:          TargetValue,
		InitialDuty:     InitialDuty,
		MinDuty:         MinDuty,
		MaxDuty:         MaxDuty,
		FastPreset:      TicksFromMS(80),
		SlowPreset:      TicksFromMS(160),
		PressSettle:     TicksFromMS(30),
		WakeSettle:      TicksFromMS(30),
		RetriggerWindow: TicksFromMS(10),
		FilterSeed:      TargetValue,
	}
}

// Validate checks the config for values the control loop cannot honour
func (c Config) Validate() error {
	if c.MinDuty == 0 || c.MinDuty > c.MaxDuty || c.MaxDuty >= PWMPeriod {
		return fmt.Errorf("%w: min=%d max=%d period=%d", ErrDutyRange, c.MinDuty, c.MaxDuty, PWMPeriod)
	}
	if c.InitialDuty < c.MinDuty || c.InitialDuty > c.MaxDuty {
		return fmt.Errorf("%w: initial=%d outside [%d,%d]", ErrDutyRange, c.InitialDuty, c.MinDuty, c.MaxDuty)
	}
	if c.FastPreset == 0 || c.SlowPreset == 0 {
		return fmt.Errorf("%w: fast=%d slow=%d", ErrPreset, c.FastPreset, c.SlowPreset)
	}
	if c.Target == 0 {
		return ErrTarget
	}
	if c.PressSettle == 0 || c.WakeSettle == 0 || c.RetriggerWindow == 0 {
		return ErrDebounce
	}
	return nil
}

// Preset returns the blink half period for m, or 0 for modes that do not blink
func (c Config) Preset(m Mode) Ticks {
	switch m {
	case ModeFast:
		return c.FastPreset
	case ModeSlow:
		return c.SlowPreset
	default:
		return 0
	}
}
