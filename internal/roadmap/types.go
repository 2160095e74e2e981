// Package roadmap turns a curriculum into day-by-day study sessions: a
// greedy single-pass packer, a daily hour budget, weekly milestones, and a
// representative weekly schedule.
package roadmap

import (
	"time"

	"github.com/learnloop/learnloop/internal/curriculum"
)

// Session types.
const (
	SessionLearning = "learning"
	SessionBreak    = "break"
)

// Preferences are the weekly study constraints for one plan.
type Preferences struct {
	StudyOnWeekends bool `json:"studyOnWeekends"`
	WeeklyStudyDays int  `json:"weeklyStudyDays,omitempty"`
}

// Exercise is a placeholder practice item attached to a session.
type Exercise struct {
	Title         string `json:"title"`
	Type          string `json:"type"`
	EstimatedTime int    `json:"estimatedTime"` // minutes
}

// Assessment is a placeholder end-of-session check.
type Assessment struct {
	Type      string `json:"type"`
	Questions int    `json:"questions"`
	TimeLimit int    `json:"timeLimit"` // minutes
}

// Session is one scheduled block within a day. The packer initializes the
// completion fields; student-facing endpoints mutate them later.
type Session struct {
	SessionID          string                `json:"sessionId,omitempty"`
	Subject            string                `json:"subject"`
	Unit               string                `json:"unit"`
	Topics             []string              `json:"topics"`
	Duration           int                   `json:"duration"` // minutes
	StartTime          string                `json:"startTime"`
	EndTime            string                `json:"endTime"`
	Type               string                `json:"type"`
	LearningObjectives []string              `json:"learningObjectives,omitempty"`
	Resources          []curriculum.Resource `json:"resources,omitempty"`
	Exercises          []Exercise            `json:"exercises,omitempty"`
	Assessment         *Assessment           `json:"assessment,omitempty"`
	IsCompleted        bool                  `json:"isCompleted"`
	CompletionTime     *time.Time            `json:"completionTime,omitempty"`
	Score              *float64              `json:"score,omitempty"`
	Notes              string                `json:"notes,omitempty"`
}

// DailyGoal is one per-topic goal scheduled for a day.
type DailyGoal struct {
	Goal        string `json:"goal"`
	IsCompleted bool   `json:"isCompleted"`
}

// Reflection is filled in by the student after the day, not by the packer.
type Reflection struct {
	Mood         string   `json:"mood"`
	Energy       int      `json:"energy"` // 1-10
	Notes        string   `json:"notes"`
	Challenges   []string `json:"challenges,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// DayProgress counts session completion for a day. Starts zeroed.
type DayProgress struct {
	CompletedSessions int     `json:"completedSessions"`
	TotalSessions     int     `json:"totalSessions"`
	StudyTime         int     `json:"studyTime"` // minutes
	Score             float64 `json:"score"`
}

// DayRoadmap is one calendar day of a plan.
type DayRoadmap struct {
	DayNumber       int         `json:"dayNumber"`
	Date            time.Time   `json:"date"`
	DayOfWeek       string      `json:"dayOfWeek"`
	IsStudyDay      bool        `json:"isStudyDay"`
	TotalStudyHours int         `json:"totalStudyHours"`
	Sessions        []Session   `json:"sessions"`
	DailyGoals      []DailyGoal `json:"dailyGoals"`
	DailyReflection Reflection  `json:"dailyReflection"`
	Progress        DayProgress `json:"progress"`
}

// WeeklyMilestone is one per 7-day window of a plan.
type WeeklyMilestone struct {
	WeekNumber     int        `json:"weekNumber"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Goals          []string   `json:"goals"`
	TargetProgress int        `json:"targetProgress"` // cumulative %
	IsCompleted    bool       `json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Achievements   []string   `json:"achievements"`
}

// DayPlan is one weekday of the representative weekly schedule.
type DayPlan struct {
	Day      string    `json:"day"`
	Sessions []Session `json:"sessions"`
}

// Schedule is the recurring "typical week" view of a plan.
type Schedule struct {
	WeeklyPlan      []DayPlan `json:"weeklyPlan"`
	DailyStudyHours int       `json:"dailyStudyHours"`
	WeeklyStudyDays int       `json:"weeklyStudyDays"`
	BreakDays       []string  `json:"breakDays"`
}
