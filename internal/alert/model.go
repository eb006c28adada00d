// Package alert provides the business boundary for the Aegis alert store.
// It defines the Alert record, the closed severity/status enumerations
// validated at the ingestion boundary, the Store interface (persistence),
// and the Service (validation, lifecycle, notification dispatch).
package alert

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Severity classifies alert urgency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Status tracks where an alert is in its triage lifecycle.
type Status string

const (
	// StatusOpen means the alert has not been picked up by an operator.
	StatusOpen Status = "open"

	// StatusInvestigating means an operator is actively working the alert.
	StatusInvestigating Status = "investigating"

	// StatusResolved means the alert has been closed out. Terminal.
	StatusResolved Status = "resolved"
)

var (
	// ErrNotFound is returned when the requested alert id does not exist.
	ErrNotFound = errors.New("alert not found")

	// ErrBadTransition is returned for a status change the lifecycle does
	// not permit (e.g. reopening a resolved alert).
	ErrBadTransition = errors.New("status transition not permitted")
)

// Alert is a structured security event requiring operator attention.
// ID is assigned at ingestion and immutable; Status is the only mutable field.
type Alert struct {
	ID          string    `json:"id"`
	Severity    Severity  `json:"severity"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Target      string    `json:"target"`
	ObservedAt  time.Time `json:"observed_at"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
}

// ParseSeverity validates a severity string against the closed enumeration.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(s)) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// ParseStatus validates a status string against the closed enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusOpen, StatusInvestigating, StatusResolved:
		return Status(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another. Same-status updates are permitted (idempotent writes
// from the operator UI). Resolved is terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusOpen:
		return to == StatusInvestigating
	case StatusInvestigating:
		return to == StatusResolved || to == StatusOpen
	case StatusResolved:
		return false
	}
	return false
}

// Validate checks the record's required fields and enum values. It does not
// require an ID; the Service assigns one at ingestion.
func (a *Alert) Validate() error {
	var errs []error

	if _, err := ParseSeverity(string(a.Severity)); err != nil {
		errs = append(errs, err)
	}
	if a.Status != "" {
		if _, err := ParseStatus(string(a.Status)); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(a.Type) == "" {
		errs = append(errs, errors.New("type is required"))
	}
	if a.ObservedAt.IsZero() {
		errs = append(errs, errors.New("observed_at is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
