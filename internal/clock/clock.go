package clock

import "time"

// Clock supplies the current time. The engine and the validation layer take
// a Clock instead of reading the process clock so that "today" is
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
