package schedule

import (
	"fmt"
	"time"
)

// Clock returns the current wall-clock time. Injectable for tests.
type Clock func() time.Time

// TemporalContext formats "now" in the reference timezone for the
// extraction prompt. The model has no notion of the current date, so
// relative phrases like "tomorrow" or "next Friday" are unresolvable
// without it. Computed fresh on every request, never cached.
func TemporalContext(clock Clock, loc *time.Location) string {
	now := clock().In(loc)
	return fmt.Sprintf("%s (%s)", now.Format(time.RFC3339), now.Weekday())
}
