package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegulator(b *fakeBoard) *CurrentRegulator {
	return NewCurrentRegulator(DefaultConfig(), &b.pwm, &b.adc, &b.clock)
}

func fillFilter(r *CurrentRegulator, v ADCValue) {
	for i := 0; i < FilterDepth; i++ {
		r.Filter().Push(v)
	}
}

func TestRegulatorStartsAtInitialDuty(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)

	assert.Equal(t, InitialDuty, r.Duty())
	assert.Equal(t, InitialDuty, b.pwm.staged)
	assert.Equal(t, 1, b.pwm.reloads)
}

func TestRegulatorDecrementsAboveTarget(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	r.SetDuty(30)
	fillFilter(r, 20)
	reloads := b.pwm.reloads
	starts := b.adc.starts

	b.adc.complete(20)
	r.Poll()

	assert.Equal(t, DutyCycle(29), r.Duty())
	assert.Equal(t, ADCValue(20), r.Estimate())
	assert.Equal(t, DutyCycle(29), b.pwm.staged)
	assert.Equal(t, reloads+1, b.pwm.reloads)
	assert.Equal(t, starts+1, b.adc.starts, "next conversion started")
}

func TestRegulatorTracksFilterWhileConverging(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	r.SetDuty(30)

	// The seeded filter reads low for the first six samples, sits on
	// target for one, then reads high.
	want := []DutyCycle{31, 32, 33, 34, 35, 36, 36, 35, 34, 33, 32}
	for i, w := range want {
		b.adc.complete(20)
		r.Poll()
		require.Equal(t, w, r.Duty(), "sample %d", i)
	}
}

func TestRegulatorHoldsAtTarget(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	r.SetDuty(30)
	fillFilter(r, TargetValue)
	reloads := b.pwm.reloads

	b.adc.complete(TargetValue)
	r.Poll()

	assert.Equal(t, DutyCycle(30), r.Duty())
	assert.Equal(t, reloads, b.pwm.reloads, "no reload when on target")
	assert.Equal(t, 1, b.adc.starts, "conversion restarted")
}

func TestRegulatorClampsAtMax(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	r.SetDuty(MaxDuty)
	reloads := b.pwm.reloads

	b.adc.complete(0)
	r.Poll()

	assert.Equal(t, MaxDuty, r.Duty())
	assert.Equal(t, reloads, b.pwm.reloads)
}

func TestRegulatorClampsAtMin(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	r.SetDuty(MinDuty)
	fillFilter(r, 1000)

	b.adc.complete(1000)
	r.Poll()

	assert.Equal(t, MinDuty, r.Duty())
}

func TestRegulatorSetDutyClamps(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)

	r.SetDuty(0)
	assert.Equal(t, MinDuty, r.Duty())
	r.SetDuty(200)
	assert.Equal(t, MaxDuty, r.Duty())
}

func TestRegulatorDutyStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := &fakeBoard{}
	r := newTestRegulator(b)

	for i := 0; i < 20000; i++ {
		// Long runs of one level drive the duty into both rails
		level := ADCValue(0)
		if (i/500)%2 == 1 {
			level = 1023
		}
		if rng.Intn(4) == 0 {
			level = ADCValue(rng.Intn(1024))
		}
		b.adc.complete(level)
		r.Poll()
		require.GreaterOrEqual(t, r.Duty(), MinDuty)
		require.LessOrEqual(t, r.Duty(), MaxDuty)
	}
}

func TestRegulatorIgnoresPendingConversion(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)

	r.Poll()

	assert.Equal(t, InitialDuty, r.Duty())
	assert.Zero(t, b.adc.starts)
}

func TestRegulatorWaitsForReloadAck(t *testing.T) {
	b := &fakeBoard{}
	r := newTestRegulator(b)
	b.pwm.ackPolls = 3
	r.SetDuty(20)
	kicks := b.power.kicks

	b.adc.complete(0)
	r.Poll()

	assert.Equal(t, kicks, b.power.kicks, "watchdog left alone while waiting")
	assert.Equal(t, DutyCycle(20), b.pwm.latched, "previous duty latched first")
	assert.Equal(t, DutyCycle(21), b.pwm.staged)
	assert.True(t, b.pwm.pending)
}

func TestRegulatorGivesUpOnStuckReload(t *testing.T) {
	ClearEventRing()
	b := &fakeBoard{}
	r := newTestRegulator(b)
	reloads := b.pwm.reloads

	// the hardware never acks; each poll of the flag takes 10 us
	b.pwm.stuck = true
	b.pwm.spin = func() { b.clock.now += TicksFromUS(10) }
	start := b.clock.now

	b.adc.complete(0)
	r.Poll()

	assert.GreaterOrEqual(t, Elapsed(b.clock.now, start), ReloadTimeout)
	assert.Less(t, Elapsed(b.clock.now, start), ReloadTimeout+TicksFromUS(20))
	assert.Zero(t, b.power.kicks, "a stuck reload must not feed the watchdog")
	assert.Equal(t, reloads, b.pwm.reloads, "no new reload requested")
	assert.Equal(t, InitialDuty, b.pwm.staged, "stuck duty left staged")
	assert.Equal(t, 1, b.adc.starts, "loop carries on with the next conversion")

	var timeout *Event
	for _, evt := range Events() {
		if evt.Type == EvtReloadTimeout {
			timeout = &evt
		}
	}
	require.NotNil(t, timeout)
	assert.Equal(t, uint32(InitialDuty+1), timeout.Value1)

	// once the hardware recovers the pending duty goes out
	b.pwm.stuck = false
	b.adc.complete(0)
	r.Poll()
	assert.Equal(t, reloads+1, b.pwm.reloads)
	assert.Equal(t, InitialDuty+2, b.pwm.staged)
}
