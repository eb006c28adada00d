// Package triage derives filtered, ranked views of the alert store.
// Everything here is pure: Filter and Stats take a snapshot of alerts and
// never mutate it, so callers can re-run them on every keystroke.
package triage
