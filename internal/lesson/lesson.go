// Package lesson generates modular lessons with per-module quiz
// questions, AI-assisted with a deterministic demo fallback.
package lesson

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Question types.
const (
	QuestionMultipleChoice = "multiple-choice"
)

// Module is one learning unit of a lesson.
type Module struct {
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Type                string   `json:"type"`
	Duration            Minutes  `json:"duration"`
	Order               int      `json:"order"`
	LearningObjectives  []string `json:"learningObjectives"`
	Resources           []string `json:"resources"`
	InteractiveElements []string `json:"interactiveElements"`
	IsCompleted         bool     `json:"isCompleted"`
	ModuleProgress      int      `json:"progress"`
}

// Question is one quiz question, tied to a module by index.
type Question struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    int      `json:"difficulty"`
	Tags          []string `json:"tags"`
	ModuleIndex   int      `json:"moduleIndex"`
}

// Lesson is a generated modular lesson.
type Lesson struct {
	ID                string     `json:"id,omitempty"`
	Title             string     `json:"title"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description"`
	Difficulty        int        `json:"difficulty"`
	Content           string     `json:"content"`
	Summary           string     `json:"summary"`
	Exercises         []string   `json:"exercises"`
	Resources         []string   `json:"resources"`
	Modules           []Module   `json:"modules"`
	Questions         []Question `json:"questions"`
	EstimatedDuration Minutes    `json:"estimatedDuration"`
	IsAIGenerated     bool       `json:"isAIGenerated"`
	CreatedAt         time.Time  `json:"createdAt,omitzero"`
}

// Minutes is a duration in minutes that tolerates model sloppiness: it
// accepts a bare number, a quoted number, or strings like "30 minutes",
// and comes out as an integer.
type Minutes int

var digits = regexp.MustCompile(`\d+`)

func (m *Minutes) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.Atoi(s); err == nil {
		*m = Minutes(n)
		return nil
	}
	if match := digits.FindString(s); match != "" {
		n, err := strconv.Atoi(match)
		if err == nil {
			*m = Minutes(n)
			return nil
		}
	}
	*m = 0
	return nil
}
