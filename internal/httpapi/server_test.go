package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/httpapi"
	"github.com/learnloop/learnloop/internal/lesson"
	"github.com/learnloop/learnloop/internal/plan"
	"github.com/learnloop/learnloop/internal/roadmap"
	"github.com/learnloop/learnloop/internal/student"
)

func newTestServer(t *testing.T) *httpapi.Server {
	t.Helper()
	lib, err := curriculum.NewLibrary("")
	if err != nil {
		t.Fatal(err)
	}
	return httpapi.New(httpapi.Deps{
		Students:  student.NewMemoryStore(),
		Plans:     plan.NewMemoryStore(),
		Generator: plan.NewGenerator(lib),
		Lessons:   lesson.NewGenerator(nil),
		Library:   lib,
	})
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response: %v\nbody: %s", err, rec.Body.String())
	}
}

func registerStudent(t *testing.T, srv http.Handler) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/students", student.RegisterRequest{
		Name:        "Asha",
		Email:       fmt.Sprintf("asha+%d@example.com", time.Now().UnixNano()),
		Password:    "correct-horse",
		StudentType: student.TypeCollege,
		Age:         20,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}
	var st student.Student
	decodeInto(t, rec, &st)
	if st.ID == "" {
		t.Fatal("register: empty id")
	}
	return st.ID
}

func generatePlan(t *testing.T, srv http.Handler, studentID string, start time.Time) plan.LearningPlan {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/plans/generate", map[string]any{
		"studentId": studentID,
		"duration":  7,
		"preset":    "frontend",
		"startDate": start.Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate: status %d, body %s", rec.Code, rec.Body.String())
	}
	var p plan.LearningPlan
	decodeInto(t, rec, &p)
	if p.ID == "" {
		t.Fatal("generate: empty plan id")
	}
	return p
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	if rec := doJSON(t, srv, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Errorf("readyz status = %d", rec.Code)
	}
}

func TestReadyz_FailingDependency(t *testing.T) {
	lib, err := curriculum.NewLibrary("")
	if err != nil {
		t.Fatal(err)
	}
	srv := httpapi.New(httpapi.Deps{
		Students:  student.NewMemoryStore(),
		Plans:     plan.NewMemoryStore(),
		Generator: plan.NewGenerator(lib),
		Lessons:   lesson.NewGenerator(nil),
		Library:   lib,
		Ready:     []httpapi.ReadyChecker{failingChecker{}},
	})

	if rec := doJSON(t, srv, http.MethodGet, "/readyz", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz status = %d, want 503", rec.Code)
	}
}

type failingChecker struct{}

func (failingChecker) HealthCheck(context.Context) error { return fmt.Errorf("connection refused") }

func TestRegisterStudent_Invalid(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/students", student.RegisterRequest{Name: "X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateAndFetchPlan(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)
	p := generatePlan(t, srv, studentID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	if len(p.DailyRoadmap) != 7 {
		t.Errorf("plan has %d days, want 7", len(p.DailyRoadmap))
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/plans/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get plan: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/plans?studentId="+studentID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list plans: status %d", rec.Code)
	}
	var list struct {
		Plans []plan.LearningPlan `json:"plans"`
	}
	decodeInto(t, rec, &list)
	if len(list.Plans) != 1 {
		t.Errorf("got %d plans, want 1", len(list.Plans))
	}

	if rec := doJSON(t, srv, http.MethodGet, "/api/plans/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("get missing plan: status %d, want 404", rec.Code)
	}
}

func TestGenerateFromRoadmap(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/plans/generate-from-roadmap", map[string]any{
		"studentId":   studentID,
		"roadmapType": "data-science",
		"duration":    14,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var p plan.LearningPlan
	decodeInto(t, rec, &p)
	if p.PlanType != "roadmap-based" {
		t.Errorf("planType = %q, want roadmap-based", p.PlanType)
	}
	if p.Curriculum.RoadmapType != "data-science" {
		t.Errorf("roadmapType = %q", p.Curriculum.RoadmapType)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/plans/generate-from-roadmap", map[string]any{
		"studentId": studentID,
		"duration":  14,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing roadmapType: status %d, want 400", rec.Code)
	}
}

func TestTodayRoadmap(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	p := generatePlan(t, srv, studentID, today)

	rec := doJSON(t, srv, http.MethodGet, "/api/plans/"+p.ID+"/today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("today: status %d, body %s", rec.Code, rec.Body.String())
	}
	var day roadmap.DayRoadmap
	decodeInto(t, rec, &day)
	if day.DayNumber != 1 {
		t.Errorf("dayNumber = %d, want 1", day.DayNumber)
	}

	past := generatePlan(t, srv, studentID, time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC))
	if rec := doJSON(t, srv, http.MethodGet, "/api/plans/"+past.ID+"/today", nil); rec.Code != http.StatusNotFound {
		t.Errorf("expired plan today: status %d, want 404", rec.Code)
	}
}

func TestCompleteSession(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)
	p := generatePlan(t, srv, studentID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	var dayNum int
	var sessionID string
	for _, day := range p.DailyRoadmap {
		for _, s := range day.Sessions {
			if s.Type == roadmap.SessionLearning {
				dayNum, sessionID = day.DayNumber, s.SessionID
				break
			}
		}
		if sessionID != "" {
			break
		}
	}
	if sessionID == "" {
		t.Fatal("no learning session in generated plan")
	}

	path := fmt.Sprintf("/api/plans/%s/sessions/%s/complete", p.ID, sessionID)
	rec := doJSON(t, srv, http.MethodPut, path, map[string]any{
		"dayNumber": dayNum,
		"score":     88,
		"notes":     "good pace",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated plan.LearningPlan
	decodeInto(t, rec, &updated)
	if updated.Progress.OverallProgress == 0 {
		t.Error("overall progress not updated")
	}

	// Completing the same session twice is rejected.
	if rec := doJSON(t, srv, http.MethodPut, path, map[string]any{"dayNumber": dayNum, "score": 88}); rec.Code != http.StatusBadRequest {
		t.Errorf("double complete: status %d, want 400", rec.Code)
	}
}

func TestDailyProgress(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)
	p := generatePlan(t, srv, studentID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	rec := doJSON(t, srv, http.MethodPut, "/api/plans/"+p.ID+"/daily-progress", map[string]any{
		"sessionsCompleted": 2,
		"studyTime":         150,
		"topics":            []string{"Introduction to HTML"},
		"score":             92,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var progress plan.Progress
	decodeInto(t, rec, &progress)
	if len(progress.Daily) != 1 {
		t.Errorf("daily log has %d entries, want 1", len(progress.Daily))
	}
}

func TestListRoadmaps(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/roadmaps", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Roadmaps []curriculum.RoadmapInfo `json:"roadmaps"`
	}
	decodeInto(t, rec, &body)

	var found bool
	for _, r := range body.Roadmaps {
		if r.ID == "frontend" {
			found = true
		}
	}
	if !found {
		t.Errorf("frontend preset missing from %v", body.Roadmaps)
	}
}

func TestExportPlan(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)
	p := generatePlan(t, srv, studentID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	rec := doJSON(t, srv, http.MethodGet, "/api/plans/"+p.ID+"/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content-type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestGenerateLesson_Demo(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/lessons/generate", map[string]any{
		"studentId": studentID,
		"subject":   "Physics",
		"topic":     "Kinematics",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var l lesson.Lesson
	decodeInto(t, rec, &l)
	if l.IsAIGenerated {
		t.Error("demo lesson marked AI-generated")
	}
	if len(l.Modules) == 0 {
		t.Error("demo lesson has no modules")
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/lessons/generate", map[string]any{"studentId": studentID})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing subject/topic: status %d, want 400", rec.Code)
	}
}

func TestGenerateWS(t *testing.T) {
	srv := newTestServer(t)
	studentID := registerStudent(t, srv)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/plans/generate/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(-1)

	err = wsjson.Write(ctx, conn, map[string]any{
		"studentId": studentID,
		"duration":  7,
		"preset":    "frontend",
		"startDate": "2026-01-05T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	stages := make(map[string]bool)
	var got *plan.LearningPlan
	for got == nil {
		var ev struct {
			Type  string             `json:"type"`
			Stage string             `json:"stage"`
			Plan  *plan.LearningPlan `json:"plan"`
			Error string             `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			t.Fatalf("read: %v (stages so far: %v)", err, stages)
		}
		switch ev.Type {
		case "stage":
			stages[ev.Stage] = true
		case "plan":
			got = ev.Plan
		case "error":
			t.Fatalf("server error: %s", ev.Error)
		}
	}

	for _, want := range []string{"curriculum", "roadmap", "milestones", "schedule", "done"} {
		if !stages[want] {
			t.Errorf("stage %q not streamed (got %v)", want, stages)
		}
	}
	if got.ID == "" {
		t.Error("streamed plan has no id")
	}
	if len(got.DailyRoadmap) != 7 {
		t.Errorf("streamed plan has %d days, want 7", len(got.DailyRoadmap))
	}
}
