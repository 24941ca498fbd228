package classify

import (
	"fmt"
	"strings"
	"time"
)

// Window is one peak time-of-day interval [Start, End) in seconds since
// midnight. Start > End denotes a window wrapping midnight, matched as
// x >= Start || x <= End.
type Window struct {
	Start int
	End   int
}

func (w Window) contains(x int) bool {
	if w.Start <= w.End {
		return x >= w.Start && x < w.End
	}
	return x >= w.Start || x <= w.End
}

// ParseWindow builds a Window from "HH:MM" or "HH:MM:SS" boundary strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := secondsOfDay(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start %q: %w", start, err)
	}
	e, err := secondsOfDay(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end %q: %w", end, err)
	}
	return Window{Start: s, End: e}, nil
}

func secondsOfDay(s string) (int, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// Schedule classifies timestamps against a set of peak windows. Windows are
// OR'd; evaluation stops at the first match.
type Schedule struct {
	Windows []Window
}

// DefaultSchedule covers the morning and evening rush: 08:00-10:00 and
// 18:00-20:30.
func DefaultSchedule() Schedule {
	return Schedule{Windows: []Window{
		{Start: 8 * 3600, End: 10 * 3600},
		{Start: 18 * 3600, End: 20*3600 + 30*60},
	}}
}

// IsPeak reports whether t's time of day falls in any peak window.
func (s Schedule) IsPeak(t time.Time) bool {
	x := t.Hour()*3600 + t.Minute()*60 + t.Second()
	for _, w := range s.Windows {
		if w.contains(x) {
			return true
		}
	}
	return false
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
