package core

// CurrentRegulator holds the LED current at the target by nudging the
// PWM duty cycle one step per completed sense conversion.
type CurrentRegulator struct {
	pwm    PWMDriver
	adc    ADCDriver
	clock  Clock
	filter *MovingAverageFilter

	target   ADCValue
	min, max DutyCycle
	duty     DutyCycle

	// last smoothed estimate, for the debug dump
	estimate ADCValue
}

// NewCurrentRegulator stages cfg.InitialDuty on the PWM
func NewCurrentRegulator(cfg Config, pwm PWMDriver, adc ADCDriver, clock Clock) *CurrentRegulator {
	r := &CurrentRegulator{
		pwm:    pwm,
		adc:    adc,
		clock:  clock,
		filter: NewMovingAverageFilter(cfg.FilterSeed),
		target: cfg.Target,
		min:    cfg.MinDuty,
		max:    cfg.MaxDuty,
	}
	r.SetDuty(cfg.InitialDuty)
	return r
}

// Duty returns the current duty cycle
func (r *CurrentRegulator) Duty() DutyCycle { return r.duty }

// Estimate returns the last filtered sense value
func (r *CurrentRegulator) Estimate() ADCValue { return r.estimate }

// Filter exposes the sample filter
func (r *CurrentRegulator) Filter() *MovingAverageFilter { return r.filter }

// SetDuty clamps d into range and loads it with an atomic reload
func (r *CurrentRegulator) SetDuty(d DutyCycle) {
	r.duty = clamp(d, r.min, r.max)
	r.reload()
}

// Poll runs one regulation step if a conversion has completed. The
// caller only polls while the PWM output is enabled.
func (r *CurrentRegulator) Poll() {
	if !r.adc.ConversionDone() {
		return
	}
	r.estimate = r.filter.Push(r.adc.Result())

	switch {
	case r.estimate < r.target && r.duty < r.max:
		r.duty++
		r.reload()
		RecordEvent(EvtDutyUp, uint32(r.duty), uint32(r.estimate))
	case r.estimate > r.target && r.duty > r.min:
		r.duty--
		r.reload()
		RecordEvent(EvtDutyDown, uint32(r.duty), uint32(r.estimate))
	}

	r.adc.StartConversion()
}

// reload waits out any reload still in flight, then stages and latches
// the current duty. The watchdog is not cleared while waiting. A reload
// that is still pending after ReloadTimeout is abandoned; the duty goes
// out with the next reload, so a stuck PWM cannot hang the loop.
func (r *CurrentRegulator) reload() {
	start := r.clock.Now()
	for r.pwm.ReloadPending() {
		if Elapsed(r.clock.Now(), start) >= ReloadTimeout {
			RecordEvent(EvtReloadTimeout, uint32(r.duty), 0)
			return
		}
	}
	r.pwm.SetDuty(r.duty)
	r.pwm.RequestReload()
}
