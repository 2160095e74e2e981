package lesson_test

import (
	"context"
	"testing"
	"time"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/lesson"
	"github.com/learnloop/learnloop/internal/student"
)

func collegeStudent() *student.Student {
	return &student.Student{
		ID:                   "stu-1",
		Name:                 "Asha",
		StudentType:          student.TypeCollege,
		Age:                  20,
		CurrentLevel:         1,
		DifficultyPreference: 6,
	}
}

func clientWith(response string, err error) *ai.Client {
	return ai.NewClient(
		&ai.MockProvider{Response: response, Err: err},
		ai.WithTimeout(time.Second),
		ai.WithRetries(0),
	)
}

func TestGenerate_DemoWhenNoAI(t *testing.T) {
	gen := lesson.NewGenerator(nil)

	l, err := gen.Generate(context.Background(), collegeStudent(), lesson.GenerateRequest{
		Topic:   "Recursion",
		Subject: "Computer Science",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if l.IsAIGenerated {
		t.Error("demo lesson marked AI-generated")
	}
	if len(l.Modules) != 3 {
		t.Errorf("got %d modules, want default 3", len(l.Modules))
	}
	if len(l.Questions) != 15 {
		t.Errorf("got %d questions, want 3*5", len(l.Questions))
	}
	if l.Modules[0].Duration != 20 { // 60 minutes over 3 modules
		t.Errorf("module duration = %d, want 20", l.Modules[0].Duration)
	}
	if l.Questions[7].ModuleIndex != 1 {
		t.Errorf("question 8 moduleIndex = %d, want 1", l.Questions[7].ModuleIndex)
	}
}

func TestGenerate_AILesson(t *testing.T) {
	reply := `{
		"title": "Recursion in Depth",
		"content": "Overview",
		"summary": "Summary",
		"modules": [
			{"title": "Base Cases", "content": "...", "duration": "25 minutes", "order": 1},
			{"title": "Recursive Steps", "content": "..."}
		],
		"questions": [
			{"question": "What terminates recursion?", "options": ["A","B","C","D"], "correctAnswer": "A", "moduleIndex": 0}
		],
		"estimatedDuration": NaN
	}`
	gen := lesson.NewGenerator(clientWith(reply, nil))

	l, err := gen.Generate(context.Background(), collegeStudent(), lesson.GenerateRequest{
		Topic:    "Recursion",
		Subject:  "Computer Science",
		Duration: 50,
		Modules:  2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !l.IsAIGenerated {
		t.Error("lesson not marked AI-generated")
	}
	if l.Modules[0].Duration != 25 {
		t.Errorf(`duration "25 minutes" parsed as %d, want 25`, l.Modules[0].Duration)
	}
	// Second module arrived bare; fix-ups fill the gaps.
	second := l.Modules[1]
	if second.Duration != 25 { // ceil(50/2)
		t.Errorf("defaulted duration = %d, want 25", second.Duration)
	}
	if second.Order != 2 {
		t.Errorf("defaulted order = %d, want 2", second.Order)
	}
	if second.Type != "content" {
		t.Errorf("defaulted type = %q", second.Type)
	}
	if len(second.InteractiveElements) == 0 {
		t.Error("missing default interactive element")
	}
	// NaN sanitized to null, then defaulted to the requested duration.
	if l.EstimatedDuration != 50 {
		t.Errorf("estimatedDuration = %d, want 50", l.EstimatedDuration)
	}
	if l.Questions[0].Type != lesson.QuestionMultipleChoice {
		t.Errorf("question type = %q", l.Questions[0].Type)
	}
	if l.Questions[0].Difficulty != 6 {
		t.Errorf("question difficulty = %d, want student preference 6", l.Questions[0].Difficulty)
	}
}

func TestGenerate_RejectsWrongShape(t *testing.T) {
	gen := lesson.NewGenerator(clientWith(`{"modules": "three please"}`, nil))

	if _, err := gen.Generate(context.Background(), collegeStudent(), lesson.GenerateRequest{Subject: "Math"}); err == nil {
		t.Error("Generate() should fail on a shapeless reply")
	}
}

func TestGenerate_PropagatesAIError(t *testing.T) {
	gen := lesson.NewGenerator(clientWith("", &ai.APIError{Status: 401, Body: "bad key"}))

	if _, err := gen.Generate(context.Background(), collegeStudent(), lesson.GenerateRequest{Subject: "Math"}); err == nil {
		t.Error("Generate() should propagate provider errors")
	}
}

func TestMinutes_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  lesson.Minutes
	}{
		{`30`, 30},
		{`"30"`, 30},
		{`"30 minutes"`, 30},
		{`"about 45 min"`, 45},
		{`null`, 0},
		{`"soon"`, 0},
	}

	for _, tt := range tests {
		var m lesson.Minutes
		if err := m.UnmarshalJSON([]byte(tt.input)); err != nil {
			t.Errorf("UnmarshalJSON(%s) error = %v", tt.input, err)
			continue
		}
		if m != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %d, want %d", tt.input, m, tt.want)
		}
	}
}
