package triage

import (
	"strings"

	"github.com/linnemanlabs/aegis/internal/alert"
)

// SeverityAll disables severity filtering in a Query.
const SeverityAll = "all"

// Query is an ephemeral view description: free-text search plus a severity
// filter. Zero value matches everything.
type Query struct {
	Search   string `json:"search"`
	Severity string `json:"severity"`
}

// Filter returns the alerts matching the query, preserving the input order.
// Search is a case-insensitive substring match over type, source, and
// target; no trimming is applied beyond case folding. A severity of "all"
// (or empty) matches every severity.
func Filter(alerts []alert.Alert, q Query) []alert.Alert {
	search := strings.ToLower(q.Search)
	severity := strings.ToLower(q.Severity)

	out := make([]alert.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !matchesSeverity(&a, severity) {
			continue
		}
		if !matchesSearch(&a, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesSeverity(a *alert.Alert, severity string) bool {
	if severity == "" || severity == SeverityAll {
		return true
	}
	return string(a.Severity) == severity
}

func matchesSearch(a *alert.Alert, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Type), search) ||
		strings.Contains(strings.ToLower(a.Source), search) ||
		strings.Contains(strings.ToLower(a.Target), search)
}

// Snapshot is an aggregated view of the alert set for the dashboard.
type Snapshot struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByType     map[string]int `json:"by_type"`
	ByStatus   map[string]int `json:"by_status"`
}

// Stats aggregates counts by severity, type, and status.
func Stats(alerts []alert.Alert) Snapshot {
	s := Snapshot{
		Total:      len(alerts),
		BySeverity: make(map[string]int),
		ByType:     make(map[string]int),
		ByStatus:   make(map[string]int),
	}
	for _, a := range alerts {
		s.BySeverity[string(a.Severity)]++
		s.ByType[a.Type]++
		s.ByStatus[string(a.Status)]++
	}
	return s
}
