package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/learnloop/learnloop/internal/plan"
)

// wsEvent is one message on the generation progress stream.
type wsEvent struct {
	Type  string             `json:"type"` // "stage" | "plan" | "error"
	Stage string             `json:"stage,omitempty"`
	Plan  *plan.LearningPlan `json:"plan,omitempty"`
	Error string             `json:"error,omitempty"`
}

const wsGenerateTimeout = 5 * time.Minute

// handleGenerateWS streams generation stages over a websocket: the client
// sends one generate request, receives stage events as the plan is built,
// then the stored plan itself.
func (s *Server) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), wsGenerateTimeout)
	defer cancel()

	var body generateBody
	if err := wsjson.Read(ctx, conn, &body); err != nil {
		return
	}

	st, err := s.deps.Students.Get(body.StudentID)
	if err != nil {
		_ = wsjson.Write(ctx, conn, wsEvent{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusPolicyViolation, "unknown student")
		return
	}

	body.OnProgress = func(stage string) {
		if err := wsjson.Write(ctx, conn, wsEvent{Type: "stage", Stage: stage}); err != nil {
			slog.Warn("progress write failed", "stage", stage, "error", err)
		}
	}

	p, err := s.deps.Generator.Generate(ctx, st, body.GenerateRequest)
	if err != nil {
		_ = wsjson.Write(ctx, conn, wsEvent{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusInternalError, "generation failed")
		return
	}

	id, err := s.deps.Plans.Create(*p)
	if err != nil {
		slog.Error("storing plan failed", "studentId", st.ID, "error", err)
		_ = wsjson.Write(ctx, conn, wsEvent{Type: "error", Error: "storing plan failed"})
		conn.Close(websocket.StatusInternalError, "storing plan failed")
		return
	}
	p.ID = id

	if err := wsjson.Write(ctx, conn, wsEvent{Type: "plan", Plan: p}); err != nil {
		slog.Warn("plan write failed", "planId", id, "error", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
