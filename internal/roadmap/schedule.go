package roadmap

import (
	"github.com/learnloop/learnloop/internal/curriculum"
)

var scheduleWeekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// WeeklySchedule builds the recurring "typical week" view: the same daily
// hour budget applied to a fixed Monday-Friday week. Unlike Pack, it does
// not walk units and topics; each day starts at subject dayIndex modulo
// subject count and rotates whole subjects, always drawing from a
// subject's first unit. Its cursor is independent of any Pack run.
func WeeklySchedule(c curriculum.Curriculum, totalDays int, prefs Preferences) (Schedule, error) {
	daily, err := DailyStudyHours(c, totalDays)
	if err != nil {
		return Schedule{}, err
	}

	weeklyStudyDays := prefs.WeeklyStudyDays
	if weeklyStudyDays == 0 {
		weeklyStudyDays = 5
	}

	schedule := Schedule{
		WeeklyPlan:      make([]DayPlan, 0, len(scheduleWeekdays)),
		DailyStudyHours: daily,
		WeeklyStudyDays: weeklyStudyDays,
		BreakDays:       []string{"Saturday", "Sunday"},
	}

	for dayIndex, weekday := range scheduleWeekdays {
		plan := DayPlan{Day: weekday, Sessions: []Session{}}

		if len(c.Subjects) > 0 {
			remaining := daily
			subjectIndex := dayIndex % len(c.Subjects)
			startTime := sessionStartOfDay

			for remaining > 0 {
				subject := c.Subjects[subjectIndex]

				hours := maxSessionHours
				if remaining < hours {
					hours = remaining
				}
				endTime, err := AddClock(startTime, float64(hours))
				if err != nil {
					return Schedule{}, err
				}

				unitTitle := "Introduction"
				var topics []string
				if len(subject.Units) > 0 {
					unit := subject.Units[0]
					unitTitle = unit.Title
					upper := 2
					if upper > len(unit.Topics) {
						upper = len(unit.Topics)
					}
					for _, t := range unit.Topics[:upper] {
						topics = append(topics, t.Name)
					}
				}

				plan.Sessions = append(plan.Sessions, Session{
					Subject:   subject.Name,
					Unit:      unitTitle,
					Topics:    topics,
					Duration:  hours * 60,
					StartTime: startTime,
					EndTime:   endTime,
					Type:      SessionLearning,
				})

				remaining -= hours
				startTime = endTime
				subjectIndex = (subjectIndex + 1) % len(c.Subjects)
			}
		}

		schedule.WeeklyPlan = append(schedule.WeeklyPlan, plan)
	}

	return schedule, nil
}
