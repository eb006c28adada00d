// Package consoleapi exposes the operator console's HTTP surface: triage
// listing and lifecycle for alerts, dashboard aggregates, and assistant
// sessions.
package consoleapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/aegis/internal/alert"
	"github.com/linnemanlabs/aegis/internal/assistant"
)

// AlertService defines the business operations consoleapi needs for alerts.
type AlertService interface {
	Ingest(ctx context.Context, al *alert.Alert) (*alert.Alert, error)
	List(ctx context.Context) ([]alert.Alert, error)
	Get(ctx context.Context, id string) (*alert.Alert, bool, error)
	UpdateStatus(ctx context.Context, id string, status alert.Status) (*alert.Alert, error)
}

// SessionManager defines the session operations consoleapi needs.
type SessionManager interface {
	Create() *assistant.Session
	Get(id string) (*assistant.Session, bool)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger   log.Logger
	alerts   AlertService
	sessions SessionManager
}

// New creates a new API handler.
func New(logger log.Logger, alerts AlertService, sessions SessionManager) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if alerts == nil {
		panic(xerrors.New("alert service is required"))
	}
	if sessions == nil {
		panic(xerrors.New("session manager is required"))
	}
	return &API{
		logger:   logger,
		alerts:   alerts,
		sessions: sessions,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/alerts", a.handleListAlerts)
		r.Post("/alerts", a.handleIngestAlert)
		r.Get("/alerts/stats", a.handleStats)
		r.Patch("/alerts/{id}/status", a.handleUpdateStatus)

		r.Post("/sessions", a.handleCreateSession)
		r.Get("/sessions/{id}", a.handleGetSession)
		r.Post("/sessions/{id}/compose", a.handleCompose)
		r.Post("/sessions/{id}/messages", a.handleSendMessage)
	})
}

// sessionView is the JSON shape for a session's observable state.
type sessionView struct {
	ID           string           `json:"id"`
	State        assistant.State  `json:"state"`
	PendingInput string           `json:"pending_input,omitempty"`
	Transcript   []assistant.Turn `json:"transcript"`
}

func viewOf(s *assistant.Session) sessionView {
	transcript := s.Transcript()
	if transcript == nil {
		transcript = []assistant.Turn{}
	}
	return sessionView{
		ID:           s.ID(),
		State:        s.RequestState(),
		PendingInput: s.PendingInput(),
		Transcript:   transcript,
	}
}

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := a.sessions.Create()
	a.logger.Info(r.Context(), "session created", "session_id", s.ID())
	writeJSON(w, http.StatusCreated, viewOf(s))
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("aegis.session.id", id))

	s, ok := a.sessions.Get(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (a *API) handleCompose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, ok := a.sessions.Get(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	var req struct {
		AlertID string `json:"alert_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AlertID == "" {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	al, ok, err := a.alerts.Get(r.Context(), req.AlertID)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get alert for compose", "alert_id", req.AlertID)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"alert not found"}`, http.StatusNotFound)
		return
	}

	s.ComposeFromAlert(al)
	writeJSON(w, http.StatusOK, viewOf(s))
}

func (a *API) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("aegis.session.id", id))

	s, ok := a.sessions.Get(id)
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if req.Content != "" {
		s.SetInput(req.Content)
	}

	switch err := s.Send(r.Context()); {
	case errors.Is(err, assistant.ErrEmptyInput):
		http.Error(w, `{"error":"message content is empty"}`, http.StatusBadRequest)
		return
	case errors.Is(err, assistant.ErrBusy):
		http.Error(w, `{"error":"a request is already in flight"}`, http.StatusConflict)
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "send failed", "session_id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, viewOf(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
