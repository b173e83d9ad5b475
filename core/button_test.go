package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonitor(b *fakeBoard) *ButtonMonitor {
	return NewButtonMonitor(DefaultConfig(), &b.button, &b.power, &b.clock)
}

// pollFor polls once per millisecond and counts press events
func pollFor(m *ButtonMonitor, b *fakeBoard, mode Mode, ms int) int {
	n := 0
	for i := 0; i < ms; i++ {
		if m.Poll(mode) {
			n++
		}
		b.clock.advanceMS(1)
	}
	return n
}

func TestButtonOffCleanPress(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)

	require.Zero(t, pollFor(m, b, ModeOff, 40))
	assert.NotZero(t, b.power.sleeps, "sleeping while idle")

	b.button.press()
	assert.Equal(t, 1, pollFor(m, b, ModeOff, 60))
	assert.Equal(t, uint32(1), m.Presses())
	assert.Zero(t, m.Bounces())
	assert.False(t, b.button.EdgeFlag())
}

func TestButtonOffWaitsForRelease(t *testing.T) {
	b := &fakeBoard{}
	b.button.pressed = true
	m := newTestMonitor(b)

	assert.Zero(t, pollFor(m, b, ModeOff, 200))
	assert.Zero(t, b.power.sleeps, "no sleep while the button is held")

	b.button.release()
	pollFor(m, b, ModeOff, 29)
	assert.Zero(t, b.power.sleeps, "quiet period not over")
	pollFor(m, b, ModeOff, 5)
	assert.NotZero(t, b.power.sleeps)
}

func TestButtonOffRetriggerIsDiscarded(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)
	pollFor(m, b, ModeOff, 40)

	b.button.press()
	require.Zero(t, pollFor(m, b, ModeOff, 32))
	require.Equal(t, DebounceConfirmed, m.State())

	// Noise inside the re-trigger window
	b.button.edge.Set()
	assert.Zero(t, pollFor(m, b, ModeOff, 20))
	assert.Equal(t, uint32(1), m.Bounces())
	assert.Zero(t, m.Presses())
	assert.False(t, b.button.EdgeFlag(), "flag cleared after discard")
	assert.Equal(t, DebounceIdle, m.State())
}

func TestButtonOffEdgeBeforeArmingIsCleared(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)

	pollFor(m, b, ModeOff, 10)
	b.button.edge.Set() // release bounce during the quiet period
	assert.Zero(t, pollFor(m, b, ModeOff, 100))
	assert.Equal(t, DebounceIdle, m.State())
}

func TestButtonActivePress(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)

	b.button.press()
	assert.Equal(t, 1, pollFor(m, b, ModeFast, 40))
	assert.Zero(t, b.power.sleeps, "never sleeps outside Off")

	// Holding the button does not repeat
	assert.Zero(t, pollFor(m, b, ModeFast, 200))
}

func TestButtonActiveShortGlitch(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)

	b.button.press()
	pollFor(m, b, ModeOn, 10)
	b.button.release()

	assert.Zero(t, pollFor(m, b, ModeOn, 40))
	assert.Equal(t, uint32(1), m.Bounces())
}

func TestButtonEnteringOffAwaitsRelease(t *testing.T) {
	b := &fakeBoard{}
	m := newTestMonitor(b)

	b.button.press()
	require.Equal(t, 1, pollFor(m, b, ModeOn, 40))

	// The press switched to Off; the button is still held
	assert.Zero(t, pollFor(m, b, ModeOff, 100))
	assert.Zero(t, b.power.sleeps)

	b.button.release()
	pollFor(m, b, ModeOff, 40)
	assert.NotZero(t, b.power.sleeps)
}
