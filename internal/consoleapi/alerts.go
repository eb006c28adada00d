package consoleapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/aegis/internal/alert"
	"github.com/linnemanlabs/aegis/internal/triage"
)

func (a *API) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	q := triage.Query{
		Search:   r.URL.Query().Get("q"),
		Severity: r.URL.Query().Get("severity"),
	}

	if q.Severity != "" && q.Severity != triage.SeverityAll {
		if _, err := alert.ParseSeverity(q.Severity); err != nil {
			http.Error(w, `{"error":"unknown severity filter"}`, http.StatusBadRequest)
			return
		}
	}

	alerts, err := a.alerts.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list alerts")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	filtered := triage.Filter(alerts, q)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.Int("aegis.alerts.total", len(alerts)),
		attribute.Int("aegis.alerts.matched", len(filtered)),
	)

	writeJSON(w, http.StatusOK, map[string]any{"alerts": filtered})
}

func (a *API) handleIngestAlert(w http.ResponseWriter, r *http.Request) {
	var al alert.Alert
	if err := json.NewDecoder(r.Body).Decode(&al); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	accepted, err := a.alerts.Ingest(r.Context(), &al)
	if err != nil {
		a.logger.Info(r.Context(), "alert rejected", "reason", err.Error())
		http.Error(w, `{"error":"invalid alert record"}`, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, accepted)
}

func (a *API) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("aegis.alert.id", id))

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	updated, err := a.alerts.UpdateStatus(r.Context(), id, alert.Status(req.Status))
	switch {
	case errors.Is(err, alert.ErrNotFound):
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	case errors.Is(err, alert.ErrBadTransition):
		http.Error(w, `{"error":"status transition not permitted"}`, http.StatusConflict)
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "failed to update alert status", "alert_id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("aegis.alert.status", string(updated.Status)))
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.alerts.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list alerts for stats")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, triage.Stats(alerts))
}
