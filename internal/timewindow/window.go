package timewindow

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var windowRe = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})\s*$`)

// Window is a half-open [Start, End) range of minutes within a local day.
// Comparing against minute-of-day keeps the semantics identical on any
// wall-clock date.
type Window struct {
	Start int // minutes since local midnight, inclusive
	End   int // minutes since local midnight, exclusive
}

// MinuteOfDay returns how many minutes into its local day t is.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Contains reports whether t's local minute-of-day falls inside the window.
func (w Window) Contains(t time.Time) bool {
	m := MinuteOfDay(t)
	return m >= w.Start && m < w.End
}

// Parse converts a "HH:MM-HH:MM" string into a Window.
func Parse(s string) (Window, error) {
	m := windowRe.FindStringSubmatch(s)
	if m == nil {
		return Window{}, fmt.Errorf("invalid time window %q, want HH:MM-HH:MM", s)
	}

	toMinutes := func(hs, ms string) (int, error) {
		h, _ := strconv.Atoi(hs)
		mm, _ := strconv.Atoi(ms)
		if h > 23 || mm > 59 {
			return 0, fmt.Errorf("out-of-range time %s:%s", hs, ms)
		}
		return h*60 + mm, nil
	}

	start, err := toMinutes(m[1], m[2])
	if err != nil {
		return Window{}, fmt.Errorf("invalid time window %q: %w", s, err)
	}
	end, err := toMinutes(m[3], m[4])
	if err != nil {
		return Window{}, fmt.Errorf("invalid time window %q: %w", s, err)
	}
	if end <= start {
		return Window{}, fmt.Errorf("invalid time window %q: end must be after start", s)
	}
	return Window{Start: start, End: end}, nil
}

// MustParse is Parse for package-level window constants.
func MustParse(s string) Window {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}
