package curriculum_test

import (
	"testing"

	"github.com/learnloop/learnloop/internal/curriculum"
)

func newLibrary(t *testing.T) *curriculum.Library {
	t.Helper()
	lib, err := curriculum.NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	return lib
}

func TestNormalize_ExplicitSubjectsWithoutUnits(t *testing.T) {
	lib := newLibrary(t)

	c := lib.Normalize(curriculum.Request{
		Subjects: []curriculum.SubjectSpec{
			{Name: "Physics"},
			{Name: "Chemistry"},
		},
		Duration: 30,
	}, "school")

	if len(c.Subjects) != 2 {
		t.Fatalf("subjects = %d, want 2", len(c.Subjects))
	}
	phys := c.Subjects[0]
	if len(phys.Units) != 2 {
		t.Fatalf("units = %d, want 2 synthesized defaults", len(phys.Units))
	}
	if phys.Units[0].Title != "Introduction to Physics" {
		t.Errorf("first unit = %q", phys.Units[0].Title)
	}
	if phys.Units[1].Title != "Advanced Physics" {
		t.Errorf("second unit = %q", phys.Units[1].Title)
	}
	if got := len(phys.Units[0].Topics); got != 4 {
		t.Errorf("first unit topics = %d, want 4", got)
	}
	if phys.Weightage != 50 {
		t.Errorf("weightage = %d, want round(100/2) = 50", phys.Weightage)
	}
	if phys.TotalHours != 45 {
		t.Errorf("totalHours = %v, want default 45", phys.TotalHours)
	}
	if c.Source != "custom" {
		t.Errorf("source = %q, want custom", c.Source)
	}
}

func TestNormalize_ExplicitSubjectsKeepOverrides(t *testing.T) {
	lib := newLibrary(t)

	c := lib.Normalize(curriculum.Request{
		Subjects: []curriculum.SubjectSpec{{
			Name:      "Go",
			Weightage: 80,
			Units: []curriculum.Unit{{
				Title:             "Concurrency",
				Topics:            []curriculum.Topic{{Name: "Goroutines"}, {Name: "Channels"}},
				EstimatedDuration: 12,
				Order:             1,
			}},
			TotalHours: 12,
		}},
		Duration: 14,
	}, "college")

	s := c.Subjects[0]
	if s.Weightage != 80 {
		t.Errorf("weightage = %d, want caller value 80", s.Weightage)
	}
	if len(s.Units) != 1 || s.Units[0].Title != "Concurrency" {
		t.Errorf("units overridden: %+v", s.Units)
	}
	if s.TotalHours != 12 {
		t.Errorf("totalHours = %v, want 12", s.TotalHours)
	}
}

func TestNormalize_SyllabusPreset(t *testing.T) {
	lib := newLibrary(t)

	c := lib.Normalize(curriculum.Request{Preset: "cbse-9", Duration: 60}, "school")

	if c.RoadmapType != "cbse-9" {
		t.Errorf("roadmapType = %q", c.RoadmapType)
	}
	if len(c.Subjects) == 0 {
		t.Fatal("empty subjects from syllabus preset")
	}
	if c.Subjects[0].Name != "Mathematics" {
		t.Errorf("first subject = %q, want Mathematics", c.Subjects[0].Name)
	}
}

func TestNormalize_RoadmapPresetConverts(t *testing.T) {
	lib := newLibrary(t)

	c := lib.Normalize(curriculum.Request{Preset: "frontend", Duration: 90}, "college")

	if len(c.Subjects) != 3 {
		t.Fatalf("subjects = %d, want 3 stages", len(c.Subjects))
	}
	basics := c.Subjects[0]
	if basics.Name != "Basics" {
		t.Errorf("first subject = %q", basics.Name)
	}
	// HTML (20h) + CSS (30h) + JavaScript (40h)
	if basics.TotalHours != 90 {
		t.Errorf("totalHours = %v, want 90", basics.TotalHours)
	}
	html := basics.Units[0]
	if len(html.Topics) != 5 {
		t.Fatalf("derived topics = %d, want 5", len(html.Topics))
	}
	if html.Topics[0].Name != "Introduction to HTML" {
		t.Errorf("first derived topic = %q", html.Topics[0].Name)
	}
	if html.Topics[0].EstimatedHours != 4 {
		t.Errorf("derived topic hours = %v, want 20/5 = 4", html.Topics[0].EstimatedHours)
	}
	if basics.Weightage != 33 {
		t.Errorf("weightage = %d, want round(100/3) = 33", basics.Weightage)
	}
}

func TestNormalize_UnknownPresetFallsBack(t *testing.T) {
	lib := newLibrary(t)

	c := lib.Normalize(curriculum.Request{Preset: "does-not-exist", Duration: 30}, "college")

	if len(c.Subjects) == 0 {
		t.Fatal("fallback produced empty curriculum")
	}
	assertNeverEmpty(t, c)
}

func TestNormalize_EmptyRequestNeverEmpty(t *testing.T) {
	lib := newLibrary(t)

	for _, studentType := range []string{"school", "college", ""} {
		c := lib.Normalize(curriculum.Request{Duration: 30}, studentType)
		assertNeverEmpty(t, c)
	}
}

func assertNeverEmpty(t *testing.T, c curriculum.Curriculum) {
	t.Helper()
	if len(c.Subjects) == 0 {
		t.Fatal("no subjects")
	}
	for _, s := range c.Subjects {
		if len(s.Units) == 0 {
			t.Fatalf("subject %q has no units", s.Name)
		}
		for _, u := range s.Units {
			if len(u.Topics) == 0 {
				t.Fatalf("unit %q has no topics", u.Title)
			}
		}
		if s.TotalHours <= 0 {
			t.Fatalf("subject %q has no hours", s.Name)
		}
	}
}
