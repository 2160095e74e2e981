package plan_test

import (
	"testing"
	"time"

	"github.com/learnloop/learnloop/internal/plan"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := plan.NewMemoryStore()
	p := generatedPlan(t)

	id, err := store.Create(*p)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty id")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.StudentID != "stu-1" {
		t.Errorf("studentId = %q", got.StudentID)
	}
	if len(got.DailyRoadmap) != len(p.DailyRoadmap) {
		t.Errorf("roadmap has %d days, want %d", len(got.DailyRoadmap), len(p.DailyRoadmap))
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := plan.NewMemoryStore()
	if _, err := store.Get("nope"); err == nil {
		t.Error("Get(missing) should fail")
	}
}

func TestMemoryStore_ListByStudent(t *testing.T) {
	store := plan.NewMemoryStore()
	p := generatedPlan(t)

	first := *p
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := *p
	second.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	other := *p
	other.StudentID = "stu-2"

	for _, pl := range []plan.LearningPlan{first, second, other} {
		if _, err := store.Create(pl); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListByStudent("stu-1")
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d plans, want 2", len(got))
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Error("plans not sorted newest first")
	}
}

func TestMemoryStore_Update(t *testing.T) {
	store := plan.NewMemoryStore()
	p := generatedPlan(t)

	id, err := store.Create(*p)
	if err != nil {
		t.Fatal(err)
	}

	stored, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	dayNum, session := firstSession(t, stored)
	if err := stored.CompleteSession(dayNum, session.SessionID, 90, "", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := store.Update(stored); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Progress.OverallProgress == 0 {
		t.Error("update not persisted")
	}

	missing := generatedPlan(t)
	missing.ID = "missing"
	if err := store.Update(missing); err == nil {
		t.Error("Update(missing) should fail")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := plan.NewMemoryStore()
	p := generatedPlan(t)

	id, err := store.Create(*p)
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	first.Status = plan.StatusPaused

	second, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if second.Status != plan.StatusActive {
		t.Error("mutating a Get() result leaked into the store")
	}
}
