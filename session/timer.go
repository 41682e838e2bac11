package session

import "time"

// Pure timer computations over a record's fixed budget. The timer starts once,
// at session creation. It is not reset on resumption and not reset per
// request, so reconnecting can never extend the budget.

// Elapsed returns how much of the budget has been consumed at now.
func Elapsed(timerStart, now time.Time) time.Duration {
	return now.Sub(timerStart)
}

// Remaining returns the unused budget at now, clamped at zero.
func Remaining(timerStart time.Time, timeLimit time.Duration, now time.Time) time.Duration {
	remaining := timeLimit - Elapsed(timerStart, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the budget is exhausted at now.
func Expired(timerStart time.Time, timeLimit time.Duration, now time.Time) bool {
	return Elapsed(timerStart, now) >= timeLimit
}

// RemainingMinutes is Remaining expressed in fractional minutes, the unit the
// request surface reports to candidates.
func RemainingMinutes(timerStart time.Time, timeLimit time.Duration, now time.Time) float64 {
	return Remaining(timerStart, timeLimit, now).Minutes()
}
