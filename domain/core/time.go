package core

import (
	"time"
)

// Clock supplies the as-of date for evaluation paths. Services never read the
// wall clock directly; callers inject a Clock so results stay deterministic
// under test.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}
