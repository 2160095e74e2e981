package lesson

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/student"
)

// Generation defaults.
const (
	defaultModules            = 3
	defaultQuestionsPerModule = 5
	defaultDuration           = 60 // minutes
	defaultModuleDuration     = 10
)

// GenerateRequest is the lesson generation input.
type GenerateRequest struct {
	Topic              string `json:"topic"`
	Subject            string `json:"subject"`
	Difficulty         int    `json:"difficulty,omitempty"`
	Duration           int    `json:"duration,omitempty"` // minutes
	Modules            int    `json:"numModules,omitempty"`
	QuestionsPerModule int    `json:"numQuestions,omitempty"`
}

func (r *GenerateRequest) applyDefaults(st *student.Student) {
	if r.Modules <= 0 {
		r.Modules = defaultModules
	}
	if r.QuestionsPerModule <= 0 {
		r.QuestionsPerModule = defaultQuestionsPerModule
	}
	if r.Duration <= 0 {
		r.Duration = defaultDuration
	}
	if r.Difficulty <= 0 {
		r.Difficulty = st.DifficultyPreference
	}
	if r.Difficulty <= 0 {
		r.Difficulty = 5
	}
}

func (r GenerateRequest) topicOrSubject() string {
	if r.Topic != "" {
		return r.Topic
	}
	if r.Subject != "" {
		return r.Subject
	}
	return "general"
}

const lessonSchema = `{
	"type": "object",
	"required": ["title", "modules"],
	"properties": {
		"title": {"type": "string"},
		"modules": {"type": "array", "minItems": 1},
		"questions": {"type": "array"}
	}
}`

var lessonSchemaLoader = gojsonschema.NewStringLoader(lessonSchema)

// Generator builds lessons. A nil AI client means every request gets the
// demo lesson.
type Generator struct {
	client *ai.Client
}

// NewGenerator creates a lesson generator. client may be nil.
func NewGenerator(client *ai.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a modular lesson for a student. When the AI path is
// unavailable or its reply is unusable, the error is returned as-is; the
// caller decides whether demo content is acceptable.
func (g *Generator) Generate(ctx context.Context, st *student.Student, req GenerateRequest) (*Lesson, error) {
	req.applyDefaults(st)

	if g.client == nil {
		return DemoLesson(req), nil
	}

	resp, err := g.client.Complete(ctx, ai.CompletionRequest{
		Messages:    buildLessonPrompt(st, req),
		Task:        ai.TaskLesson,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	raw := []byte(ai.SanitizeJSON(resp.Content))
	if err := validateLessonJSON(raw); err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var l Lesson
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("lesson generation: unmarshal: %w", err)
	}

	fixupLesson(&l, req)
	l.IsAIGenerated = true
	return &l, nil
}

func validateLessonJSON(data []byte) error {
	result, err := gojsonschema.Validate(lessonSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating lesson: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("lesson shape invalid: %s", strings.Join(problems, "; "))
}

// fixupLesson repairs the fields models habitually get wrong: missing
// module metadata, zero durations, absent interactive elements.
func fixupLesson(l *Lesson, req GenerateRequest) {
	perModule := Minutes(int(math.Ceil(float64(req.Duration) / float64(req.Modules))))

	for i := range l.Modules {
		m := &l.Modules[i]
		if m.Title == "" {
			m.Title = fmt.Sprintf("Module %d", i+1)
		}
		if m.Content == "" {
			m.Content = fmt.Sprintf("Content for module %d", i+1)
		}
		if m.Type == "" {
			m.Type = "content"
		}
		if m.Order == 0 {
			m.Order = i + 1
		}
		if m.Duration == 0 {
			m.Duration = perModule
			if m.Duration == 0 {
				m.Duration = defaultModuleDuration
			}
		}
		if len(m.InteractiveElements) == 0 {
			m.InteractiveElements = []string{fmt.Sprintf("Quiz: Test your understanding of %s", m.Title)}
		}
	}

	for i := range l.Questions {
		q := &l.Questions[i]
		if q.Type == "" {
			q.Type = QuestionMultipleChoice
		}
		if q.Difficulty == 0 {
			q.Difficulty = req.Difficulty
		}
	}

	if l.Subject == "" {
		l.Subject = strings.ToLower(req.Subject)
	}
	if l.Description == "" {
		l.Description = fmt.Sprintf("AI-generated modular lesson on %s with %d modules", req.topicOrSubject(), len(l.Modules))
	}
	if l.Difficulty == 0 {
		l.Difficulty = req.Difficulty
	}
	if l.EstimatedDuration == 0 {
		l.EstimatedDuration = Minutes(req.Duration)
	}
}

// DemoLesson is the deterministic lesson used when no AI provider is
// configured.
func DemoLesson(req GenerateRequest) *Lesson {
	req.applyDefaults(&student.Student{})
	name := req.topicOrSubject()

	modules := make([]Module, 0, req.Modules)
	questions := make([]Question, 0, req.Modules*req.QuestionsPerModule)
	perModule := Minutes(int(math.Ceil(float64(req.Duration) / float64(req.Modules))))

	for i := 0; i < req.Modules; i++ {
		modules = append(modules, Module{
			Title:    fmt.Sprintf("Module %d: %s Basics", i+1, name),
			Content:  fmt.Sprintf("This is demo content for module %d covering %s. Configure an AI provider for real content.", i+1, name),
			Type:     "content",
			Duration: perModule,
			Order:    i + 1,
			LearningObjectives: []string{
				fmt.Sprintf("Understand %s concept %d", name, i+1),
				fmt.Sprintf("Apply %s principles", name),
			},
			Resources: []string{
				fmt.Sprintf("Resource %d", i+1),
				fmt.Sprintf("Reference %d", i+1),
			},
			InteractiveElements: []string{
				fmt.Sprintf("Quiz: Test your understanding of module %d", i+1),
			},
		})

		for j := 0; j < req.QuestionsPerModule; j++ {
			questions = append(questions, Question{
				Question:      fmt.Sprintf("Demo question %d for Module %d: What is a key concept in %s?", j+1, i+1, name),
				Type:          QuestionMultipleChoice,
				Options:       []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectAnswer: "Option A",
				Explanation:   fmt.Sprintf("Demo explanation for question %d in module %d", j+1, i+1),
				Difficulty:    req.Difficulty,
				Tags:          []string{fmt.Sprintf("module-%d", i+1), name},
				ModuleIndex:   i,
			})
		}
	}

	return &Lesson{
		Title:             fmt.Sprintf("Demo Modular Lesson: %s", name),
		Subject:           strings.ToLower(req.topicOrSubject()),
		Description:       fmt.Sprintf("A demo modular lesson for %s with %d modules", name, req.Modules),
		Difficulty:        req.Difficulty,
		Content:           fmt.Sprintf("A demo lesson covering %s in %d modules. Configure an AI provider for real content.", name, req.Modules),
		Summary:           fmt.Sprintf("Demo modular lesson covering %s with %d learning modules and %d practice questions.", name, req.Modules, len(questions)),
		Exercises:         []string{"Exercise 1", "Exercise 2", "Exercise 3"},
		Resources:         []string{"Resource 1", "Resource 2"},
		Modules:           modules,
		Questions:         questions,
		EstimatedDuration: Minutes(req.Duration),
		IsAIGenerated:     false,
	}
}
