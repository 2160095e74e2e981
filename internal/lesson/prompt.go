package lesson

import (
	"fmt"
	"strings"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/student"
)

const lessonSystemPrompt = `You are an expert educational content creator specializing in modular learning design.
Output MUST be a single valid JSON object: no prose, no markdown fences.
All duration fields MUST be integers in minutes, interactiveElements MUST be arrays of strings, and no field may be null.`

func buildLessonPrompt(st *student.Student, req GenerateRequest) []ai.Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a modular lesson for this student:\n")
	fmt.Fprintf(&b, "- Type: %s, age %d, current level %d\n", st.StudentType, st.Age, st.CurrentLevel)
	if len(st.PreferredSubjects) > 0 {
		fmt.Fprintf(&b, "- Preferred subjects: %s\n", strings.Join(st.PreferredSubjects, ", "))
	}
	if st.StudentType == student.TypeSchool && st.School != nil {
		fmt.Fprintf(&b, "- Class %s (%s board, %s medium)\n", st.School.Class, st.School.Board, st.School.Medium)
	}
	if st.StudentType == student.TypeCollege && st.College != nil {
		fmt.Fprintf(&b, "- %s in %s, year %d\n", st.College.Degree, st.College.Branch, st.College.Year)
	}

	topic := req.Topic
	if topic == "" {
		topic = "any beginner-friendly topic for the subject"
	}
	fmt.Fprintf(&b, "\nLesson requirements:\n")
	fmt.Fprintf(&b, "- Subject: %s\n- Topic: %s\n- Difficulty: %d/10\n- Duration: %d minutes\n",
		req.Subject, topic, req.Difficulty, req.Duration)
	fmt.Fprintf(&b, "- Exactly %d modules, each with %d quiz questions (%d questions total)\n",
		req.Modules, req.QuestionsPerModule, req.Modules*req.QuestionsPerModule)

	b.WriteString(`
Return JSON with this exact shape:
{
  "title": "string",
  "content": "overview of the lesson",
  "summary": "3-4 sentence summary",
  "exercises": ["string"],
  "resources": ["string"],
  "modules": [
    {
      "title": "string",
      "content": "string",
      "type": "content",
      "duration": 20,
      "order": 1,
      "learningObjectives": ["string"],
      "resources": ["string"],
      "interactiveElements": ["Quiz: ..."]
    }
  ],
  "questions": [
    {
      "question": "string",
      "type": "multiple-choice",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": "A",
      "explanation": "string",
      "difficulty": 5,
      "tags": ["module-1"],
      "moduleIndex": 0
    }
  ],
  "estimatedDuration": 60,
  "difficulty": 5
}
Each module builds on the previous one; each question has exactly four options with one correct answer.`)

	return []ai.Message{
		{Role: "system", Content: lessonSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}
