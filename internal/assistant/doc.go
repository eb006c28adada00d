// Package assistant provides the operator-facing AI co-pilot session.
// It defines the Session state machine (append-only transcript, pending
// input, single-flight dispatch), the Provider interface for the backend
// analysis service, and the Manager that owns one Session per console.
package assistant
