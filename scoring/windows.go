package scoring

import (
	"fmt"
	"time"
)

// PrayerWindow is the fixed daily time-of-day interval during which a
// prayer may be marked on time. Minutes are minute-of-day (0-1439).
// A window with CrossesMidnight starts on day D and ends early on D+1.
type PrayerWindow struct {
	StartMinutes    int
	EndMinutes      int
	CrossesMidnight bool
}

// prayerWindows is static configuration, never mutated at runtime.
// Fajr 05:00-07:30, Dhuhr 12:30-18:25, Asr 16:00-18:25,
// Maghrib 18:15-19:30, Isha 19:30-05:00 next day.
var prayerWindows = map[PrayerType]PrayerWindow{
	Fajr:    {StartMinutes: 5 * 60, EndMinutes: 7*60 + 30},
	Dhuhr:   {StartMinutes: 12*60 + 30, EndMinutes: 18*60 + 25},
	Asr:     {StartMinutes: 16 * 60, EndMinutes: 18*60 + 25},
	Maghrib: {StartMinutes: 18*60 + 15, EndMinutes: 19*60 + 30},
	Isha:    {StartMinutes: 19*60 + 30, EndMinutes: 5 * 60, CrossesMidnight: true},
}

// WindowFor returns the configured window for a prayer type.
func WindowFor(p PrayerType) (PrayerWindow, error) {
	w, ok := prayerWindows[p]
	if !ok {
		return PrayerWindow{}, fmt.Errorf("no window configured for prayer type %q", p)
	}
	return w, nil
}

// WindowState describes where a prayer instance sits relative to now.
type WindowState string

const (
	WindowFuture  WindowState = "future"
	WindowOpen    WindowState = "open"
	WindowElapsed WindowState = "elapsed"
)

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// yesterdayKey returns the date key one calendar day before todayKey.
func yesterdayKey(todayKey string) string {
	t, err := ParseDateKey(todayKey)
	if err != nil {
		return ""
	}
	return FormatDateKey(t.AddDate(0, 0, -1))
}

// HasWindowElapsed reports whether the prayer's window for the given
// calendar date has fully passed.
//
// Date keys compare lexically, which matches chronological order for
// the fixed YYYY-MM-DD layout. The cross-midnight window needs the
// exactly-yesterday case: yesterday's Isha may still be open in the
// early hours of today, so a plain "date is in the past" check would
// auto-miss it while it can still be logged on time.
func (e *Engine) HasWindowElapsed(dateKey string, p PrayerType) bool {
	window, err := WindowFor(p)
	if err != nil {
		return false
	}

	todayKey := e.clock.TodayKey()
	nowMinutes := minuteOfDay(e.clock.Now())

	// Future dates have not passed.
	if dateKey > todayKey {
		return false
	}

	if dateKey == todayKey {
		if window.CrossesMidnight {
			return false // ends tomorrow morning
		}
		return nowMinutes > window.EndMinutes
	}

	// Past date.
	if window.CrossesMidnight && dateKey == yesterdayKey(todayKey) {
		if nowMinutes <= window.EndMinutes {
			return false
		}
	}
	return true
}

// WindowStateFor classifies a prayer instance as Future, Open or
// Elapsed, used to lock and unlock logging controls.
func (e *Engine) WindowStateFor(dateKey string, p PrayerType) WindowState {
	if e.HasWindowElapsed(dateKey, p) {
		return WindowElapsed
	}

	todayKey := e.clock.TodayKey()
	if dateKey > todayKey {
		return WindowFuture
	}
	if dateKey == todayKey {
		window, err := WindowFor(p)
		if err != nil {
			return WindowFuture
		}
		if minuteOfDay(e.clock.Now()) < window.StartMinutes {
			return WindowFuture
		}
	}
	return WindowOpen
}
