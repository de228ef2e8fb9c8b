package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockIsMonotonic(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed(), "a clock that was never started does not advance")

	c.Start()
	previous := c.Elapsed()
	for i := 0; i < 5; i++ {
		time.Sleep(time.Millisecond)
		c.Update()
		assert.GreaterOrEqual(t, c.Elapsed(), previous)
		previous = c.Elapsed()
	}
	assert.Greater(t, previous, 0.0)

	c.Stop()
	c.Update()
	assert.Equal(t, previous, c.Elapsed())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	refreshed := false
	for i := 0; i < int(AVG_COUNT); i++ {
		refreshed = m.Update(0.010) || refreshed
	}
	assert.False(t, refreshed)
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)

	// 100 frames of 10ms make up a full second.
	for i := int(AVG_COUNT); i < 100; i++ {
		refreshed = m.Update(0.010) || refreshed
	}
	assert.True(t, refreshed)
	fps, frameTime := m.Frame()
	assert.InDelta(t, 100, fps, 1)
	assert.InDelta(t, 10.0, frameTime, 1e-9)
}

func TestEventsAndInput(t *testing.T) {
	require.True(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })
	require.NoError(t, InputInitialize())
	t.Cleanup(func() { _ = InputShutdown() })

	var pressed []KeyCode
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) bool {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
		return true
	})

	require.NoError(t, InputProcessKey(KEY_ESCAPE, true))
	// Repeated state does not fire again.
	require.NoError(t, InputProcessKey(KEY_ESCAPE, true))
	assert.Equal(t, []KeyCode{KEY_ESCAPE}, pressed)
	assert.True(t, InputIsKeyDown(KEY_ESCAPE))
	assert.False(t, InputWasKeyDown(KEY_ESCAPE))

	require.NoError(t, InputUpdate(0))
	assert.True(t, InputWasKeyDown(KEY_ESCAPE))

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
}

func TestIdentifier(t *testing.T) {
	a := IdentifierAquireNewID()
	b := IdentifierAquireNewID()
	assert.True(t, IdentifierIsValid(a))
	assert.NotEqual(t, a, b)
}

func TestSetLogLevel(t *testing.T) {
	assert.NoError(t, SetLogLevel("debug"))
	assert.Error(t, SetLogLevel("loud"))
	assert.NoError(t, SetLogLevel("info"))
}
