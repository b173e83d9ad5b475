package core

import (
	"errors"
	"fmt"
)

var (
	// Build/config
	ErrDutyRange     = errors.New("invalid_duty_range")
	ErrPreset        = errors.New("invalid_timer_preset")
	ErrTarget        = errors.New("invalid_target")
	ErrDebounce      = errors.New("invalid_debounce")
	ErrMissingDriver = errors.New("missing_driver")
)

func missingDriver(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingDriver, name)
}
