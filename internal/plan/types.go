// Package plan assembles, persists, and tracks learning plans: the
// curriculum, the day-wise roadmap, weekly milestones, and the recurring
// schedule, plus the student's progress through them.
package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/roadmap"
)

// Plan statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// CompletedUnit records one finished unit.
type CompletedUnit struct {
	SubjectName string    `json:"subjectName"`
	UnitTitle   string    `json:"unitTitle"`
	CompletedAt time.Time `json:"completedAt"`
}

// CompletedTopic records one finished topic.
type CompletedTopic struct {
	SubjectName string    `json:"subjectName"`
	UnitTitle   string    `json:"unitTitle"`
	TopicName   string    `json:"topicName"`
	CompletedAt time.Time `json:"completedAt"`
}

// DailyProgress is one day's study log entry.
type DailyProgress struct {
	Date              time.Time `json:"date"`
	SessionsCompleted int       `json:"sessionsCompleted"`
	StudyTime         int       `json:"studyTime"` // minutes
	Topics            []string  `json:"topics,omitempty"`
	Score             float64   `json:"score"`
}

// Progress tracks a student's movement through a plan.
type Progress struct {
	CompletedUnits  []CompletedUnit  `json:"completedUnits"`
	CompletedTopics []CompletedTopic `json:"completedTopics"`
	OverallProgress int              `json:"overallProgress"` // percent
	Daily           []DailyProgress  `json:"dailyProgress"`
}

// LearningPlan is the persisted aggregate for one generated plan.
type LearningPlan struct {
	ID               string                    `json:"id"`
	StudentID        string                    `json:"studentId"`
	PlanType         string                    `json:"planType"` // "daily-roadmap" | "roadmap-based"
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	StartDate        time.Time                 `json:"startDate"`
	EndDate          time.Time                 `json:"endDate"`
	Curriculum       curriculum.Curriculum     `json:"curriculum"`
	DailyRoadmap     []roadmap.DayRoadmap      `json:"dailyRoadmap"`
	WeeklyMilestones []roadmap.WeeklyMilestone `json:"weeklyMilestones"`
	Schedule         roadmap.Schedule          `json:"schedule"`
	Progress         Progress                  `json:"progress"`
	Status           string                    `json:"status"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

// CompleteSession marks one session of one day complete and refreshes the
// day's counters and the overall progress figure.
func (p *LearningPlan) CompleteSession(dayNumber int, sessionID string, score float64, notes string, now time.Time) error {
	if dayNumber < 1 || dayNumber > len(p.DailyRoadmap) {
		return fmt.Errorf("day %d out of range 1..%d", dayNumber, len(p.DailyRoadmap))
	}
	day := &p.DailyRoadmap[dayNumber-1]

	var session *roadmap.Session
	for i := range day.Sessions {
		if day.Sessions[i].SessionID == sessionID {
			session = &day.Sessions[i]
			break
		}
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if session.IsCompleted {
		return fmt.Errorf("session already completed: %s", sessionID)
	}

	session.IsCompleted = true
	session.CompletionTime = &now
	session.Score = &score
	session.Notes = notes

	refreshDayProgress(day)
	p.Progress.OverallProgress = p.CompletionPercentage()
	p.UpdatedAt = now
	return nil
}

func refreshDayProgress(day *roadmap.DayRoadmap) {
	var completed, studyTime, scored int
	var scoreSum float64
	for _, s := range day.Sessions {
		if s.Type != roadmap.SessionLearning {
			continue
		}
		if s.IsCompleted {
			completed++
			studyTime += s.Duration
			if s.Score != nil {
				scored++
				scoreSum += *s.Score
			}
		}
	}
	day.Progress.CompletedSessions = completed
	day.Progress.StudyTime = studyTime
	if scored > 0 {
		day.Progress.Score = scoreSum / float64(scored)
	}
}

// TodayRoadmap returns the day entry whose calendar date matches now, or
// nil when now falls outside the plan.
func (p *LearningPlan) TodayRoadmap(now time.Time) *roadmap.DayRoadmap {
	y, m, d := now.Date()
	for i := range p.DailyRoadmap {
		dy, dm, dd := p.DailyRoadmap[i].Date.Date()
		if dy == y && dm == m && dd == d {
			return &p.DailyRoadmap[i]
		}
	}
	return nil
}

// RecordDailyProgress appends one study-log entry.
func (p *LearningPlan) RecordDailyProgress(entry DailyProgress) {
	p.Progress.Daily = append(p.Progress.Daily, entry)
	p.UpdatedAt = entry.Date
}

// CompleteUnit records a finished unit and refreshes the weighted
// progress figure.
func (p *LearningPlan) CompleteUnit(subjectName, unitTitle string, now time.Time) {
	for _, u := range p.Progress.CompletedUnits {
		if u.SubjectName == subjectName && u.UnitTitle == unitTitle {
			return
		}
	}
	p.Progress.CompletedUnits = append(p.Progress.CompletedUnits, CompletedUnit{
		SubjectName: subjectName,
		UnitTitle:   unitTitle,
		CompletedAt: now,
	})
	p.Progress.OverallProgress = p.WeightedUnitProgress()
	p.UpdatedAt = now
}

// WeightedUnitProgress is the weightage-weighted share of completed units
// across subjects, as a percentage.
func (p *LearningPlan) WeightedUnitProgress() int {
	var totalWeight int
	var acc float64
	for _, s := range p.Curriculum.Subjects {
		totalWeight += s.Weightage
		if len(s.Units) == 0 {
			continue
		}
		var done int
		for _, u := range p.Progress.CompletedUnits {
			if u.SubjectName == s.Name {
				done++
			}
		}
		acc += float64(s.Weightage) * float64(done) / float64(len(s.Units))
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(acc / float64(totalWeight) * 100))
}

// CompletionPercentage is the share of learning sessions completed across
// the whole day-wise roadmap.
func (p *LearningPlan) CompletionPercentage() int {
	var total, completed int
	for _, day := range p.DailyRoadmap {
		for _, s := range day.Sessions {
			if s.Type != roadmap.SessionLearning {
				continue
			}
			total++
			if s.IsCompleted {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
