package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/roadmap"
	"github.com/learnloop/learnloop/internal/student"
)

// Generation stages, reported through GenerateRequest.OnProgress.
const (
	StageCurriculum = "curriculum"
	StageRoadmap    = "roadmap"
	StageMilestones = "milestones"
	StageSchedule   = "schedule"
	StageDone       = "done"
)

// GenerateRequest is the input to plan generation.
type GenerateRequest struct {
	Duration    int                       `json:"duration"` // days
	Subjects    []curriculum.SubjectSpec  `json:"subjects,omitempty"`
	Preset      string                    `json:"preset,omitempty"`
	Preferences roadmap.Preferences       `json:"preferences"`
	StartDate   time.Time                 `json:"startDate,omitzero"`
	Title       string                    `json:"title,omitempty"`
	PlanType    string                    `json:"planType,omitempty"`

	// OnProgress, when set, receives stage names as generation advances.
	OnProgress func(stage string) `json:"-"`
}

// Generator builds learning plans. The AI client is optional and advisory:
// when it is absent, over budget, or returns anything unusable, generation
// continues with the deterministic path and the plan still comes out whole.
type Generator struct {
	client  *ai.Client
	library *curriculum.Library
	budget  ai.BudgetChecker
	now     func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithAIClient enables AI-assisted curriculum and schedule generation.
func WithAIClient(c *ai.Client) GeneratorOption {
	return func(g *Generator) { g.client = c }
}

// WithBudget enforces a per-student token budget on AI calls.
func WithBudget(b ai.BudgetChecker) GeneratorOption {
	return func(g *Generator) { g.budget = b }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a plan generator over a preset library.
func NewGenerator(library *curriculum.Library, opts ...GeneratorOption) *Generator {
	g := &Generator{
		library: library,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a complete learning plan for a student: curriculum,
// day-wise roadmap, weekly milestones, and the recurring schedule.
func (g *Generator) Generate(ctx context.Context, st *student.Student, req GenerateRequest) (*LearningPlan, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("generate plan: %w: %d days", roadmap.ErrInvalidDuration, req.Duration)
	}

	start := req.StartDate
	if start.IsZero() {
		now := g.now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	report(req.OnProgress, StageCurriculum)
	cur := g.buildCurriculum(ctx, st, req)

	report(req.OnProgress, StageRoadmap)
	days, err := roadmap.Pack(cur, req.Duration, req.Preferences, start)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	report(req.OnProgress, StageMilestones)
	milestones := roadmap.WeeklyMilestones(req.Duration)

	report(req.OnProgress, StageSchedule)
	schedule, err := g.buildSchedule(ctx, st, cur, req)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	planType := req.PlanType
	if planType == "" {
		if cur.RoadmapType != "" {
			planType = "roadmap-based"
		} else {
			planType = "daily-roadmap"
		}
	}
	title := req.Title
	if title == "" {
		title = planTitle(cur, req.Duration)
	}

	p := &LearningPlan{
		StudentID:        st.ID,
		PlanType:         planType,
		Title:            title,
		Description:      fmt.Sprintf("A %d-day study plan covering %d subjects", req.Duration, len(cur.Subjects)),
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, req.Duration-1),
		Curriculum:       cur,
		DailyRoadmap:     days,
		WeeklyMilestones: milestones,
		Schedule:         schedule,
		Status:           StatusActive,
		CreatedAt:        g.now(),
		UpdatedAt:        g.now(),
	}

	report(req.OnProgress, StageDone)
	return p, nil
}

func report(fn func(string), stage string) {
	if fn != nil {
		fn(stage)
	}
}

func planTitle(c curriculum.Curriculum, duration int) string {
	if c.RoadmapType != "" {
		return fmt.Sprintf("%s Roadmap (%d days)", curriculum.DisplayTitle(c.RoadmapType), duration)
	}
	return fmt.Sprintf("Study Plan (%d days)", duration)
}

// buildCurriculum resolves the curriculum for a request. Roadmap presets
// get an AI attempt first; everything else, and every AI failure, goes
// through the deterministic library path.
func (g *Generator) buildCurriculum(ctx context.Context, st *student.Student, req GenerateRequest) curriculum.Curriculum {
	local := g.library.Normalize(curriculum.Request{
		Subjects: req.Subjects,
		Preset:   req.Preset,
		Duration: req.Duration,
	}, st.StudentType)

	// AI only improves on roadmap presets; explicit subjects and syllabi
	// are already exact.
	if len(req.Subjects) > 0 || req.Preset == "" {
		return local
	}
	if _, isSyllabus := g.library.Syllabus(req.Preset); isSyllabus {
		return local
	}
	if !g.aiAllowed(st) {
		return local
	}

	resp, err := g.client.Complete(ctx, ai.CompletionRequest{
		Messages:    BuildRoadmapPrompt(req.Preset, req.Duration, st),
		Task:        ai.TaskPlan,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Warn("AI roadmap generation failed, using preset", "preset", req.Preset, "error", err)
		return local
	}
	g.recordUsage(st, resp)

	raw := []byte(ai.SanitizeJSON(resp.Content))
	if err := ValidateRoadmapJSON(raw); err != nil {
		slog.Warn("AI roadmap rejected, using preset", "preset", req.Preset, "error", err)
		return local
	}

	var r curriculum.Roadmap
	if err := json.Unmarshal(raw, &r); err != nil {
		slog.Warn("AI roadmap unparsable, using preset", "preset", req.Preset, "error", err)
		return local
	}

	cur := curriculum.ConvertRoadmap(r, req.Preset, req.Duration)
	cur.Source = "ai-generated"
	return cur
}

// buildSchedule produces the recurring weekly schedule, preferring an AI
// draft and falling back to the deterministic rotation.
func (g *Generator) buildSchedule(ctx context.Context, st *student.Student, cur curriculum.Curriculum, req GenerateRequest) (roadmap.Schedule, error) {
	local := func() (roadmap.Schedule, error) {
		return roadmap.WeeklySchedule(cur, req.Duration, req.Preferences)
	}

	if !g.aiAllowed(st) {
		return local()
	}

	daily, err := roadmap.DailyStudyHours(cur, req.Duration)
	if err != nil {
		return roadmap.Schedule{}, err
	}

	resp, err := g.client.Complete(ctx, ai.CompletionRequest{
		Messages:    BuildSchedulePrompt(cur, req.Duration, daily, req.Preferences, st),
		Task:        ai.TaskSchedule,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Warn("AI schedule generation failed, using local schedule", "error", err)
		return local()
	}
	g.recordUsage(st, resp)

	raw := []byte(ai.SanitizeJSON(resp.Content))
	if err := ValidateScheduleJSON(raw); err != nil {
		slog.Warn("AI schedule rejected, using local schedule", "error", err)
		return local()
	}

	var s roadmap.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("AI schedule unparsable, using local schedule", "error", err)
		return local()
	}

	if s.DailyStudyHours == 0 {
		s.DailyStudyHours = daily
	}
	if s.WeeklyStudyDays == 0 {
		s.WeeklyStudyDays = 5
		if req.Preferences.WeeklyStudyDays > 0 {
			s.WeeklyStudyDays = req.Preferences.WeeklyStudyDays
		}
	}
	if len(s.BreakDays) == 0 && !req.Preferences.StudyOnWeekends {
		s.BreakDays = []string{"Saturday", "Sunday"}
	}
	return s, nil
}

func (g *Generator) aiAllowed(st *student.Student) bool {
	if g.client == nil {
		return false
	}
	if g.budget == nil {
		return true
	}
	ok, err := g.budget.Check(st.ID)
	if err != nil {
		slog.Warn("budget check failed, skipping AI", "studentId", st.ID, "error", err)
		return false
	}
	if !ok {
		slog.Info("student over AI budget, using local generation", "studentId", st.ID)
	}
	return ok
}

func (g *Generator) recordUsage(st *student.Student, resp ai.CompletionResponse) {
	if g.budget == nil {
		return
	}
	if err := g.budget.Record(st.ID, resp.TotalTokens()); err != nil {
		slog.Warn("recording token usage failed", "studentId", st.ID, "error", err)
	}
}
