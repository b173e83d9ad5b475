package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRingKeepsNewest(t *testing.T) {
	ClearEventRing()
	defer ClearEventRing()

	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtPress, uint32(i), 0)
	}

	events := Events()
	require.Len(t, events, EventRingSize)
	assert.Equal(t, uint32(5), events[0].Value1)
	assert.Equal(t, uint32(EventRingSize+4), events[len(events)-1].Value1)
}

func TestModeChangeIsRecorded(t *testing.T) {
	ClearEventRing()
	defer ClearEventRing()

	c, b := newTestController(t)
	cleanPress(c, b)

	var changes []Event
	for _, e := range Events() {
		if e.Type == EvtModeChange {
			changes = append(changes, e)
		}
	}
	require.NotEmpty(t, changes)
	last := changes[len(changes)-1]
	assert.Equal(t, uint32(ModeOff), last.Value1)
	assert.Equal(t, uint32(ModeFast), last.Value2)
}

func TestDumpEventRing(t *testing.T) {
	ClearEventRing()
	defer ClearEventRing()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordEvent(EvtDutyUp, 11, 3)
	DumpEventRing()

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "[EVENTS] DUTY_UP"))
	assert.Contains(t, lines[1], "v1=11 v2=3")
}

func TestDebugPrintlnHonoursEnable(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")
	SetDebugEnabled(false)

	assert.Equal(t, []string{"shown"}, got)
}

func TestUtoa(t *testing.T) {
	assert.Equal(t, "0", utoa(0))
	assert.Equal(t, "7", utoa(7))
	assert.Equal(t, "4294967295", utoa(4294967295))
}
