package roadmap

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadClock reports a malformed "HH:MM" time string.
var ErrBadClock = errors.New("malformed clock time")

const clockLayout = "15:04"

// AddClock adds a duration in hours to a zero-padded "HH:MM" time of day
// and returns the result in the same format. The hour component wraps
// silently past midnight; there is no day-rollover signal.
func AddClock(start string, hours float64) (string, error) {
	t, err := time.Parse(clockLayout, start)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadClock, start)
	}
	end := t.Add(time.Duration(hours * float64(time.Hour)))
	return end.Format(clockLayout), nil
}
