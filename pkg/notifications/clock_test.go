package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	t.Parallel()

	t.Run("advance moves now", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		c.Advance(time.Minute)

		assert.Equal(t, testEpoch.Add(time.Minute), c.Now())
	})

	t.Run("fires in deadline order", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		var order []string
		c.AfterFunc(2*time.Second, func() { order = append(order, "late") })
		c.AfterFunc(time.Second, func() { order = append(order, "early") })
		c.AfterFunc(time.Second, func() { order = append(order, "early-2") })

		c.Advance(time.Second)
		assert.Equal(t, []string{"early", "early-2"}, order)

		c.Advance(time.Second)
		assert.Equal(t, []string{"early", "early-2", "late"}, order)
		assert.Equal(t, 0, c.Pending())
	})

	t.Run("callback sees its deadline", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		var seen time.Time
		c.AfterFunc(time.Second, func() { seen = c.Now() })
		c.Advance(time.Hour)

		assert.Equal(t, testEpoch.Add(time.Second), seen)
	})

	t.Run("timers scheduled by callbacks fire in the same advance", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		fired := 0
		c.AfterFunc(time.Second, func() {
			fired++
			c.AfterFunc(time.Second, func() { fired++ })
		})

		c.Advance(2 * time.Second)
		assert.Equal(t, 2, fired)
	})

	t.Run("stop", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		fired := false
		timer := c.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())
		c.Advance(time.Second)
		assert.False(t, fired)
	})

	t.Run("set", func(t *testing.T) {
		t.Parallel()
		c := NewManualClock(testEpoch)

		fired := false
		c.AfterFunc(time.Second, func() { fired = true })
		c.Set(testEpoch.Add(time.Second))

		assert.True(t, fired)
		assert.Equal(t, testEpoch.Add(time.Second), c.Now())
	})
}

func TestSystemClock(t *testing.T) {
	t.Parallel()

	var c Clock = SystemClock{}
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)

	timer := c.AfterFunc(time.Hour, func() {})
	assert.True(t, timer.Stop())
}
