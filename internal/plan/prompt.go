package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/roadmap"
	"github.com/learnloop/learnloop/internal/student"
)

const jsonOnlySystem = "You are a study-planning assistant. Respond with a single JSON object and nothing else: no prose, no markdown fences."

// BuildRoadmapPrompt asks the model for a staged learning roadmap for one
// technology track, in the shape ValidateRoadmapJSON accepts.
func BuildRoadmapPrompt(roadmapType string, durationDays int, st *student.Student) []ai.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a learning roadmap for %q to be completed in %d days.\n", roadmapType, durationDays)
	if st != nil {
		fmt.Fprintf(&b, "The learner is a %s student, age %d, difficulty preference %d/10.\n",
			st.StudentType, st.Age, st.DifficultyPreference)
	}
	b.WriteString(`Return JSON with this exact shape:
{
  "title": "string",
  "description": "string",
  "stages": [
    {
      "name": "string",
      "description": "string",
      "topics": [{"name": "string", "duration": 10, "priority": "high"}]
    }
  ]
}
Durations are hours per topic. Order stages from fundamentals to advanced.`)

	return []ai.Message{
		{Role: "system", Content: jsonOnlySystem},
		{Role: "user", Content: b.String()},
	}
}

// BuildSchedulePrompt asks the model for a recurring weekly schedule over
// an already-normalized curriculum, in the shape ValidateScheduleJSON
// accepts.
func BuildSchedulePrompt(c curriculum.Curriculum, durationDays, dailyHours int, prefs roadmap.Preferences, st *student.Student) []ai.Message {
	subjects := make([]map[string]any, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		units := make([]string, 0, len(s.Units))
		for _, u := range s.Units {
			units = append(units, u.Title)
		}
		subjects = append(subjects, map[string]any{
			"name":      s.Name,
			"weightage": s.Weightage,
			"units":     units,
		})
	}
	subjectJSON, _ := json.Marshal(subjects)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a weekly study schedule for %d days at %d study hours per day.\n", durationDays, dailyHours)
	fmt.Fprintf(&b, "Subjects: %s\n", subjectJSON)
	if st != nil {
		fmt.Fprintf(&b, "The learner is a %s student with difficulty preference %d/10.\n", st.StudentType, st.DifficultyPreference)
	}
	if prefs.StudyOnWeekends {
		b.WriteString("Weekends are study days.\n")
	} else {
		b.WriteString("Keep weekends free.\n")
	}
	b.WriteString(`Return JSON with this exact shape:
{
  "weeklyPlan": [
    {
      "day": "Monday",
      "sessions": [
        {"subject": "string", "unit": "string", "topics": ["string"], "startTime": "09:00", "endTime": "11:00", "duration": 120, "type": "learning"}
      ],
      "totalStudyHours": 3
    }
  ],
  "dailyStudyHours": 3,
  "weeklyStudyDays": 5
}
Durations are minutes. Balance subjects by weightage across the week.`)

	return []ai.Message{
		{Role: "system", Content: jsonOnlySystem},
		{Role: "user", Content: b.String()},
	}
}
