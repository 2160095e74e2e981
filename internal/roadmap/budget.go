package roadmap

import (
	"errors"
	"fmt"
	"math"

	"github.com/learnloop/learnloop/internal/curriculum"
)

// ErrInvalidDuration reports a plan duration of zero or fewer days.
var ErrInvalidDuration = errors.New("plan duration must be positive")

// efficiencyFactor discounts calendar days to productive study time when
// converting total curriculum hours into a daily budget. Fixed, not
// configurable.
const efficiencyFactor = 0.70

// DailyStudyHours derives the daily hour budget for a plan:
// ceil(totalHours / (totalDays * 0.70)), never less than 1.
func DailyStudyHours(c curriculum.Curriculum, totalDays int) (int, error) {
	if totalDays <= 0 {
		return 0, fmt.Errorf("%w: got %d days", ErrInvalidDuration, totalDays)
	}
	hours := int(math.Ceil(c.TotalHours() / (float64(totalDays) * efficiencyFactor)))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}
