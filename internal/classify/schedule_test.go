package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2023, 6, 15, hour, min, sec, 0, time.UTC)
}

func TestIsPeakMorningWindowBounds(t *testing.T) {
	s := DefaultSchedule()

	assert.True(t, s.IsPeak(at(8, 0, 0)))
	assert.True(t, s.IsPeak(at(9, 59, 59)))
	assert.False(t, s.IsPeak(at(10, 0, 1)))
	assert.False(t, s.IsPeak(at(7, 59, 59)))
}

func TestIsPeakEveningWindow(t *testing.T) {
	s := DefaultSchedule()

	assert.True(t, s.IsPeak(at(18, 0, 0)))
	assert.True(t, s.IsPeak(at(20, 29, 59)))
	assert.False(t, s.IsPeak(at(20, 30, 0)))
	assert.False(t, s.IsPeak(at(12, 0, 0)))
}

func TestIsPeakWrapWindow(t *testing.T) {
	w, err := ParseWindow("22:00", "02:00")
	require.NoError(t, err)
	s := Schedule{Windows: []Window{w}}

	assert.True(t, s.IsPeak(at(23, 0, 0)))
	assert.True(t, s.IsPeak(at(1, 0, 0)))
	assert.False(t, s.IsPeak(at(12, 0, 0)))
}

func TestParseWindowWithSeconds(t *testing.T) {
	w, err := ParseWindow("08:15:30", "09:00:00")
	require.NoError(t, err)
	assert.Equal(t, 8*3600+15*60+30, w.Start)
	assert.Equal(t, 9*3600, w.End)
}

func TestParseWindowRejectsGarbage(t *testing.T) {
	_, err := ParseWindow("8am", "10:00")
	assert.Error(t, err)
	_, err = ParseWindow("08:00", "25:00")
	assert.Error(t, err)
}

func TestIsWeekday(t *testing.T) {
	monday := time.Date(2023, 6, 12, 12, 0, 0, 0, time.UTC)
	thursday := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2023, 6, 17, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2023, 6, 18, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsWeekday(monday))
	assert.True(t, IsWeekday(thursday))
	assert.False(t, IsWeekday(saturday))
	assert.False(t, IsWeekday(sunday))
}
