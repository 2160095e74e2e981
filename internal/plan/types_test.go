package plan_test

import (
	"context"
	"testing"
	"time"

	"github.com/learnloop/learnloop/internal/plan"
	"github.com/learnloop/learnloop/internal/roadmap"
)

func generatedPlan(t *testing.T) *plan.LearningPlan {
	t.Helper()
	gen := plan.NewGenerator(testLibrary(t))
	p, err := gen.Generate(context.Background(), testStudent(), plan.GenerateRequest{
		Duration:  7,
		Preset:    "frontend",
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), // a Monday
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func firstSession(t *testing.T, p *plan.LearningPlan) (int, roadmap.Session) {
	t.Helper()
	for _, day := range p.DailyRoadmap {
		for _, s := range day.Sessions {
			if s.Type == roadmap.SessionLearning {
				return day.DayNumber, s
			}
		}
	}
	t.Fatal("no learning session in plan")
	return 0, roadmap.Session{}
}

func TestCompleteSession(t *testing.T) {
	p := generatedPlan(t)
	dayNum, session := firstSession(t, p)
	now := time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)

	if err := p.CompleteSession(dayNum, session.SessionID, 85, "went well", now); err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	day := p.DailyRoadmap[dayNum-1]
	var got *roadmap.Session
	for i := range day.Sessions {
		if day.Sessions[i].SessionID == session.SessionID {
			got = &day.Sessions[i]
		}
	}
	if got == nil || !got.IsCompleted {
		t.Fatal("session not marked completed")
	}
	if got.Score == nil || *got.Score != 85 {
		t.Errorf("score = %v, want 85", got.Score)
	}
	if got.CompletionTime == nil || !got.CompletionTime.Equal(now) {
		t.Errorf("completionTime = %v, want %v", got.CompletionTime, now)
	}
	if day.Progress.CompletedSessions != 1 {
		t.Errorf("completedSessions = %d, want 1", day.Progress.CompletedSessions)
	}
	if day.Progress.StudyTime != session.Duration {
		t.Errorf("studyTime = %d, want %d", day.Progress.StudyTime, session.Duration)
	}
	if p.Progress.OverallProgress <= 0 {
		t.Errorf("overallProgress = %d, want > 0", p.Progress.OverallProgress)
	}
}

func TestCompleteSession_Errors(t *testing.T) {
	p := generatedPlan(t)
	dayNum, session := firstSession(t, p)
	now := time.Now()

	if err := p.CompleteSession(99, session.SessionID, 80, "", now); err == nil {
		t.Error("out-of-range day should fail")
	}
	if err := p.CompleteSession(dayNum, "day1_session99", 80, "", now); err == nil {
		t.Error("unknown session should fail")
	}

	if err := p.CompleteSession(dayNum, session.SessionID, 80, "", now); err != nil {
		t.Fatal(err)
	}
	if err := p.CompleteSession(dayNum, session.SessionID, 80, "", now); err == nil {
		t.Error("double completion should fail")
	}
}

func TestTodayRoadmap(t *testing.T) {
	p := generatedPlan(t)

	day := p.TodayRoadmap(time.Date(2026, 1, 7, 18, 45, 0, 0, time.UTC))
	if day == nil {
		t.Fatal("TodayRoadmap() = nil for an in-plan date")
	}
	if day.DayNumber != 3 {
		t.Errorf("dayNumber = %d, want 3", day.DayNumber)
	}

	if got := p.TodayRoadmap(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); got != nil {
		t.Errorf("TodayRoadmap(outside plan) = day %d, want nil", got.DayNumber)
	}
}

func TestRecordDailyProgress(t *testing.T) {
	p := generatedPlan(t)
	entry := plan.DailyProgress{
		Date:              time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		SessionsCompleted: 2,
		StudyTime:         180,
		Topics:            []string{"Introduction to HTML"},
		Score:             90,
	}

	p.RecordDailyProgress(entry)

	if len(p.Progress.Daily) != 1 {
		t.Fatalf("daily log has %d entries, want 1", len(p.Progress.Daily))
	}
	if p.Progress.Daily[0].StudyTime != 180 {
		t.Errorf("studyTime = %d", p.Progress.Daily[0].StudyTime)
	}
}

func TestWeightedUnitProgress(t *testing.T) {
	p := generatedPlan(t)
	now := time.Now()

	if got := p.WeightedUnitProgress(); got != 0 {
		t.Errorf("fresh plan progress = %d, want 0", got)
	}

	subject := p.Curriculum.Subjects[0]
	for _, u := range subject.Units {
		p.CompleteUnit(subject.Name, u.Title, now)
	}

	got := p.WeightedUnitProgress()
	if got <= 0 || got >= 100 {
		t.Errorf("progress after one subject = %d, want strictly between 0 and 100", got)
	}

	// Completing the same unit twice must not double-count.
	before := len(p.Progress.CompletedUnits)
	p.CompleteUnit(subject.Name, subject.Units[0].Title, now)
	if len(p.Progress.CompletedUnits) != before {
		t.Error("duplicate unit completion recorded")
	}
}

func TestCompletionPercentage_AllSessions(t *testing.T) {
	p := generatedPlan(t)
	now := time.Now()

	for i := range p.DailyRoadmap {
		day := p.DailyRoadmap[i]
		for _, s := range day.Sessions {
			if s.Type != roadmap.SessionLearning {
				continue
			}
			if err := p.CompleteSession(day.DayNumber, s.SessionID, 100, "", now); err != nil {
				t.Fatal(err)
			}
		}
	}

	if got := p.CompletionPercentage(); got != 100 {
		t.Errorf("completion = %d%%, want 100", got)
	}
}
