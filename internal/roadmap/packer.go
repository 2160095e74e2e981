package roadmap

import (
	"fmt"
	"time"

	"github.com/learnloop/learnloop/internal/curriculum"
)

const (
	sessionStartOfDay = "09:00"
	maxSessionHours   = 2
	breakMinutes      = 15
)

// cursor is the packer's position in the curriculum tree. It persists
// across day boundaries within a single Pack call and is never reset
// mid-run.
type cursor struct {
	subject int
	unit    int
	topic   int
}

// Pack distributes a curriculum across totalDays calendar days starting at
// start, returning exactly totalDays entries numbered 1..totalDays.
//
// One greedy forward pass: each study day consumes up to the daily hour
// budget in sessions capped at two hours and one or two topics each, then
// gets a 15-minute break if anything was scheduled. Weekend days are
// non-study unless prefs ask otherwise; they emit a zero-hour placeholder
// and do not advance the cursor. Once the curriculum is exhausted the
// remaining study days keep their budget but get no sessions.
func Pack(c curriculum.Curriculum, totalDays int, prefs Preferences, start time.Time) ([]DayRoadmap, error) {
	daily, err := DailyStudyHours(c, totalDays)
	if err != nil {
		return nil, err
	}

	var cur cursor
	days := make([]DayRoadmap, 0, totalDays)

	for dayNumber := 1; dayNumber <= totalDays; dayNumber++ {
		date := start.AddDate(0, 0, dayNumber-1)
		weekday := date.Weekday()
		weekend := weekday == time.Saturday || weekday == time.Sunday
		studyDay := !weekend || prefs.StudyOnWeekends

		day := DayRoadmap{
			DayNumber:       dayNumber,
			Date:            date,
			DayOfWeek:       weekday.String(),
			IsStudyDay:      studyDay,
			Sessions:        []Session{},
			DailyGoals:      []DailyGoal{},
			DailyReflection: Reflection{Mood: "good", Energy: 5},
		}

		if studyDay {
			day.TotalStudyHours = daily
			if err := packDay(&day, c, &cur, daily); err != nil {
				return nil, err
			}
		}

		days = append(days, day)
	}

	return days, nil
}

// packDay emits sessions into day until the hour budget or the curriculum
// runs out, advancing cur as it goes.
func packDay(day *DayRoadmap, c curriculum.Curriculum, cur *cursor, daily int) error {
	remaining := daily
	startTime := sessionStartOfDay

	for remaining > 0 && cur.subject < len(c.Subjects) {
		subject := c.Subjects[cur.subject]

		if cur.unit >= len(subject.Units) {
			cur.subject++
			cur.unit = 0
			continue
		}
		unit := subject.Units[cur.unit]

		if cur.topic >= len(unit.Topics) {
			cur.unit++
			cur.topic = 0
			continue
		}

		hours := maxSessionHours
		if remaining < hours {
			hours = remaining
		}
		endTime, err := AddClock(startTime, float64(hours))
		if err != nil {
			return err
		}

		first := unit.Topics[cur.topic]
		upper := cur.topic + 2
		if upper > len(unit.Topics) {
			upper = len(unit.Topics)
		}
		names := make([]string, 0, 2)
		for _, t := range unit.Topics[cur.topic:upper] {
			names = append(names, t.Name)
		}

		day.Sessions = append(day.Sessions, Session{
			SessionID: fmt.Sprintf("day%d_session%d", day.DayNumber, len(day.Sessions)+1),
			Subject:   subject.Name,
			Unit:      unit.Title,
			Topics:    names,
			Duration:  hours * 60,
			StartTime: startTime,
			EndTime:   endTime,
			Type:      SessionLearning,
			LearningObjectives: []string{
				fmt.Sprintf("Understand %s", first.Name),
				fmt.Sprintf("Apply concepts from %s", unit.Title),
			},
			Resources:  placeholderResources(first.Name, c.RoadmapType),
			Exercises:  []Exercise{{Title: fmt.Sprintf("%s Practice", first.Name), Type: "quiz", EstimatedTime: 20}},
			Assessment: &Assessment{Type: "quiz", Questions: 5, TimeLimit: 15},
		})
		day.Progress.TotalSessions++
		day.DailyGoals = append(day.DailyGoals, DailyGoal{
			Goal: fmt.Sprintf("Complete %s in %s", first.Name, subject.Name),
		})

		remaining -= hours
		startTime = endTime
		cur.topic += 2
	}

	if len(day.Sessions) > 0 {
		last := day.Sessions[len(day.Sessions)-1]
		breakEnd, err := AddClock(last.EndTime, float64(breakMinutes)/60)
		if err != nil {
			return err
		}
		day.Sessions = append(day.Sessions, Session{
			SessionID: fmt.Sprintf("day%d_break", day.DayNumber),
			Subject:   "Break",
			Unit:      "Rest",
			Topics:    []string{"Short Break"},
			Duration:  breakMinutes,
			StartTime: last.EndTime,
			EndTime:   breakEnd,
			Type:      SessionBreak,
		})
	}

	return nil
}

func placeholderResources(topic, roadmapType string) []curriculum.Resource {
	url := "#"
	if roadmapType != "" {
		url = "https://roadmap.sh/" + roadmapType
	}
	return []curriculum.Resource{
		{Type: "video", Title: fmt.Sprintf("%s Tutorial", topic), URL: url, Duration: 30},
		{Type: "article", Title: fmt.Sprintf("%s Guide", topic), URL: url, Duration: 15},
	}
}
