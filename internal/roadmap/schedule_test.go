package roadmap_test

import (
	"testing"

	"github.com/learnloop/learnloop/internal/roadmap"
)

func TestWeeklySchedule_FiveDays(t *testing.T) {
	c := bigCurriculum()
	sched, err := roadmap.WeeklySchedule(c, 30, roadmap.Preferences{})
	if err != nil {
		t.Fatalf("WeeklySchedule() error = %v", err)
	}

	if len(sched.WeeklyPlan) != 5 {
		t.Fatalf("weeklyPlan = %d days, want 5", len(sched.WeeklyPlan))
	}
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	for i, day := range sched.WeeklyPlan {
		if day.Day != want[i] {
			t.Errorf("day %d = %q, want %q", i, day.Day, want[i])
		}
	}
	if len(sched.BreakDays) != 2 {
		t.Errorf("breakDays = %v", sched.BreakDays)
	}
	if sched.WeeklyStudyDays != 5 {
		t.Errorf("weeklyStudyDays = %d, want default 5", sched.WeeklyStudyDays)
	}
}

func TestWeeklySchedule_SubjectRotation(t *testing.T) {
	c := bigCurriculum() // Algorithms, Networking, Databases
	sched, err := roadmap.WeeklySchedule(c, 30, roadmap.Preferences{})
	if err != nil {
		t.Fatalf("WeeklySchedule() error = %v", err)
	}

	// Day i starts at subject i % 3 and rotates whole subjects.
	monday := sched.WeeklyPlan[0]
	if monday.Sessions[0].Subject != "Algorithms" {
		t.Errorf("Monday first subject = %q", monday.Sessions[0].Subject)
	}
	if len(monday.Sessions) > 1 && monday.Sessions[1].Subject != "Networking" {
		t.Errorf("Monday second subject = %q", monday.Sessions[1].Subject)
	}

	tuesday := sched.WeeklyPlan[1]
	if tuesday.Sessions[0].Subject != "Networking" {
		t.Errorf("Tuesday first subject = %q", tuesday.Sessions[0].Subject)
	}
	thursday := sched.WeeklyPlan[3] // 3 % 3 == 0, wraps back
	if thursday.Sessions[0].Subject != "Algorithms" {
		t.Errorf("Thursday first subject = %q", thursday.Sessions[0].Subject)
	}
}

func TestWeeklySchedule_BudgetAndContiguity(t *testing.T) {
	c := bigCurriculum()
	daily, err := roadmap.DailyStudyHours(c, 30)
	if err != nil {
		t.Fatal(err)
	}
	sched, err := roadmap.WeeklySchedule(c, 30, roadmap.Preferences{WeeklyStudyDays: 6})
	if err != nil {
		t.Fatalf("WeeklySchedule() error = %v", err)
	}

	if sched.DailyStudyHours != daily {
		t.Errorf("dailyStudyHours = %d, want %d", sched.DailyStudyHours, daily)
	}
	if sched.WeeklyStudyDays != 6 {
		t.Errorf("weeklyStudyDays = %d, want caller value 6", sched.WeeklyStudyDays)
	}

	for _, day := range sched.WeeklyPlan {
		var minutes int
		for i, s := range day.Sessions {
			minutes += s.Duration
			if s.Duration > 120 {
				t.Errorf("%s session %d: duration = %d", day.Day, i, s.Duration)
			}
			if i > 0 && day.Sessions[i-1].EndTime != s.StartTime {
				t.Errorf("%s: session %d not contiguous", day.Day, i)
			}
		}
		if minutes != daily*60 {
			t.Errorf("%s: %d minutes scheduled, want %d", day.Day, minutes, daily*60)
		}
	}
}

func TestWeeklySchedule_InvalidDuration(t *testing.T) {
	_, err := roadmap.WeeklySchedule(bigCurriculum(), 0, roadmap.Preferences{})
	if err == nil {
		t.Error("WeeklySchedule(D=0) should fail")
	}
}
