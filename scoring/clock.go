package scoring

import "time"

// Clock supplies the current instant and today's date key. Injected so
// every time-dependent computation can run against a fixed date in tests.
type Clock interface {
	Now() time.Time
	TodayKey() string
}

// SystemClock reads the real local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) TodayKey() string { return FormatDateKey(time.Now()) }

type fixedClock struct {
	t time.Time
}

// NewFixedClock returns a Clock frozen at t. Test use only.
func NewFixedClock(t time.Time) Clock { return fixedClock{t: t} }

func (c fixedClock) Now() time.Time { return c.t }

func (c fixedClock) TodayKey() string { return FormatDateKey(c.t) }
