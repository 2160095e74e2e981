// Package httpapi exposes the platform over HTTP: plan generation and
// lifecycle, lessons, presets, exports, and health endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/export"
	"github.com/learnloop/learnloop/internal/lesson"
	"github.com/learnloop/learnloop/internal/plan"
	"github.com/learnloop/learnloop/internal/student"
)

// ReadyChecker is anything the readiness probe should ping.
type ReadyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Students  student.Store
	Plans     plan.Store
	Generator *plan.Generator
	Lessons   *lesson.Generator
	Library   *curriculum.Library
	Ready     []ReadyChecker
}

// Server is the HTTP front of the platform.
type Server struct {
	mux  *http.ServeMux
	deps Deps
}

// New creates the server and registers all routes.
func New(deps Deps) *Server {
	s := &Server{
		mux:  http.NewServeMux(),
		deps: deps,
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /readyz", s.handleReadyz)

	s.mux.HandleFunc("POST /api/students", s.handleRegisterStudent)

	s.mux.HandleFunc("GET /api/roadmaps", s.handleListRoadmaps)

	s.mux.HandleFunc("POST /api/plans/generate", s.handleGeneratePlan)
	s.mux.HandleFunc("POST /api/plans/generate-from-roadmap", s.handleGenerateFromRoadmap)
	s.mux.HandleFunc("GET /api/plans/generate/ws", s.handleGenerateWS)
	s.mux.HandleFunc("GET /api/plans", s.handleListPlans)
	s.mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	s.mux.HandleFunc("GET /api/plans/{id}/today", s.handleToday)
	s.mux.HandleFunc("GET /api/plans/{id}/export", s.handleExport)
	s.mux.HandleFunc("PUT /api/plans/{id}/sessions/{sessionID}/complete", s.handleCompleteSession)
	s.mux.HandleFunc("PUT /api/plans/{id}/daily-progress", s.handleDailyProgress)

	s.mux.HandleFunc("POST /api/lessons/generate", s.handleGenerateLesson)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	for _, c := range s.deps.Ready {
		if err := c.HealthCheck(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("dependency not ready: %v", err))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req student.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := student.New(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.deps.Students.Create(*st)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	st.ID = id

	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleListRoadmaps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"roadmaps": s.deps.Library.Available()})
}

// generateBody is the JSON body shared by the generation endpoints.
type generateBody struct {
	StudentID string `json:"studentId"`
	plan.GenerateRequest
	RoadmapType string `json:"roadmapType,omitempty"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var body generateBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.generate(w, r, body)
}

func (s *Server) handleGenerateFromRoadmap(w http.ResponseWriter, r *http.Request) {
	var body generateBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.RoadmapType == "" {
		writeError(w, http.StatusBadRequest, "roadmapType is required")
		return
	}
	body.Preset = body.RoadmapType
	body.PlanType = "roadmap-based"
	s.generate(w, r, body)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, body generateBody) {
	st, err := s.deps.Students.Get(body.StudentID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	p, err := s.deps.Generator.Generate(r.Context(), st, body.GenerateRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.deps.Plans.Create(*p)
	if err != nil {
		slog.Error("storing plan failed", "studentId", st.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "storing plan failed")
		return
	}
	p.ID = id

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "studentId query parameter is required")
		return
	}

	plans, err := s.deps.Plans.ListByStudent(studentID)
	if err != nil {
		slog.Error("listing plans failed", "studentId", studentID, "error", err)
		writeError(w, http.StatusInternalServerError, "listing plans failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}

	day := p.TodayRoadmap(time.Now())
	if day == nil {
		writeError(w, http.StatusNotFound, "no roadmap entry for today")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "plan-"+p.ID+".xlsx"))
	if err := export.WriteXLSX(w, p); err != nil {
		slog.Error("exporting plan failed", "planId", p.ID, "error", err)
	}
}

type completeSessionBody struct {
	DayNumber int     `json:"dayNumber"`
	Score     float64 `json:"score"`
	Notes     string  `json:"notes"`
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}

	var body completeSessionBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := r.PathValue("sessionID")
	if err := p.CompleteSession(body.DayNumber, sessionID, body.Score, body.Notes, time.Now()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.Plans.Update(p); err != nil {
		slog.Error("updating plan failed", "planId", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "updating plan failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDailyProgress(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}

	var entry plan.DailyProgress
	if err := decode(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	p.RecordDailyProgress(entry)
	if err := s.deps.Plans.Update(p); err != nil {
		slog.Error("updating plan failed", "planId", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "updating plan failed")
		return
	}
	writeJSON(w, http.StatusOK, p.Progress)
}

type lessonBody struct {
	StudentID string `json:"studentId"`
	lesson.GenerateRequest
}

func (s *Server) handleGenerateLesson(w http.ResponseWriter, r *http.Request) {
	var body lessonBody
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Subject == "" && body.Topic == "" {
		writeError(w, http.StatusBadRequest, "subject or topic is required")
		return
	}

	st, err := s.deps.Students.Get(body.StudentID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	l, err := s.deps.Lessons.Generate(r.Context(), st, body.GenerateRequest)
	if err != nil {
		slog.Warn("lesson generation failed", "studentId", st.ID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) loadPlan(w http.ResponseWriter, r *http.Request) (*plan.LearningPlan, bool) {
	p, err := s.deps.Plans.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return p, true
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
