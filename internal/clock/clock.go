package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now returns current time truncated to milliseconds, the precision persisted by stores.
func Now() time.Time { return NowFunc().Truncate(time.Millisecond) }

// Freeze pins Now to t until the returned restore function is called
func Freeze(t time.Time) (restore func()) {
	prev := NowFunc
	NowFunc = func() time.Time { return t }
	return func() { NowFunc = prev }
}
