package roadmap

import (
	"fmt"
	"math"
)

// WeeklyMilestones partitions a plan duration into 7-day windows and emits
// one milestone per window. Target progress is linear in the week index,
// so the last week's target is always exactly 100.
func WeeklyMilestones(totalDays int) []WeeklyMilestone {
	if totalDays <= 0 {
		return []WeeklyMilestone{}
	}

	totalWeeks := (totalDays + 6) / 7
	milestones := make([]WeeklyMilestone, 0, totalWeeks)

	for week := 1; week <= totalWeeks; week++ {
		weekStart := (week-1)*7 + 1
		weekEnd := week * 7
		if weekEnd > totalDays {
			weekEnd = totalDays
		}
		daysInWeek := weekEnd - weekStart + 1
		sessionTarget := int(math.Ceil(float64(daysInWeek) * 0.8))

		milestones = append(milestones, WeeklyMilestone{
			WeekNumber:  week,
			Title:       fmt.Sprintf("Week %d Milestone", week),
			Description: fmt.Sprintf("Complete all learning objectives for days %d-%d", weekStart, weekEnd),
			Goals: []string{
				fmt.Sprintf("Complete %d out of %d daily sessions", sessionTarget, daysInWeek),
				"Maintain consistent study schedule",
				"Review and reflect on learning progress",
			},
			TargetProgress: int(math.Round(float64(week) / float64(totalWeeks) * 100)),
			Achievements:   []string{},
		})
	}

	return milestones
}
