package assistant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/aegis/internal/alert"
)

var (
	// ErrEmptyInput is returned by Send when the pending input is empty or
	// whitespace-only. The session is left unchanged.
	ErrEmptyInput = errors.New("pending input is empty")

	// ErrBusy is returned by Send while an exchange is already in flight.
	// The session is left unchanged; at most one exchange runs per session.
	ErrBusy = errors.New("exchange already in flight")
)

// SystemFunc produces the system prompt for an exchange. It runs at dispatch
// time so the prompt reflects the current alert set.
type SystemFunc func(ctx context.Context) string

// Session manages one operator conversation: an append-only transcript,
// the input being composed, and the request state machine.
type Session struct {
	id       string
	provider Provider
	system   SystemFunc
	timeout  time.Duration
	logger   log.Logger
	metrics  *Metrics

	mu         sync.Mutex
	transcript []Turn
	pending    string
	state      State
}

// NewSession creates an idle session with an empty transcript.
func NewSession(id string, provider Provider, system SystemFunc, timeout time.Duration, logger log.Logger, metrics *Metrics) *Session {
	if logger == nil {
		logger = log.Nop()
	}
	return &Session{
		id:       id,
		provider: provider,
		system:   system,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
		state:    StateIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// PendingInput returns the text the operator is currently composing.
func (s *Session) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// RequestState returns the session's current request state.
func (s *Session) RequestState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInput replaces the pending input. It never touches the transcript or
// the request state.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = text
}

// ComposeFromAlert sets the pending input to the analysis prompt for the
// given alert. Cross-component action from the triage view; the transcript
// and request state are untouched until the operator sends.
func (s *Session) ComposeFromAlert(al *alert.Alert) {
	s.SetInput(ComposePrompt(al))
}

// Send appends the pending input as a user turn, dispatches the transcript
// to the analysis backend, and appends the reply. A dispatch failure is not
// an error here: it is recorded as an assistant-authored notice in the
// transcript and the session returns to idle, still usable. There is no
// automatic retry.
//
// Send rejects with ErrEmptyInput when the pending input is blank and with
// ErrBusy while a previous exchange is still in flight; in both cases the
// session is completely unchanged.
func (s *Session) Send(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateAwaiting {
		s.mu.Unlock()
		return ErrBusy
	}
	input := s.pending
	if strings.TrimSpace(input) == "" {
		s.mu.Unlock()
		return ErrEmptyInput
	}

	s.transcript = append(s.transcript, Turn{Role: RoleUser, Content: input})
	turns := slices.Clone(s.transcript)
	s.pending = ""
	s.state = StateAwaiting
	s.mu.Unlock()

	var system string
	if s.system != nil {
		system = s.system(ctx)
	}

	dctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.provider.Exchange(dctx, &ExchangeRequest{System: system, Turns: turns})
	if err == nil && (reply == nil || reply.Text == "") {
		err = errors.New("empty reply from analysis backend")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	outcome := "success"
	if err != nil {
		outcome = "failure"
		// a timeout firing looks exactly like any other dispatch failure
		s.transcript = append(s.transcript, Turn{
			Role:    RoleAssistant,
			Content: fmt.Sprintf("Failed to get response: %v", err),
		})
		s.logger.Error(ctx, err, "analysis exchange failed", "session_id", s.id)
	} else {
		s.transcript = append(s.transcript, Turn{Role: RoleAssistant, Content: reply.Text})
		s.logger.Info(ctx, "analysis exchange complete",
			"session_id", s.id,
			"model", reply.Model,
			"turns", len(s.transcript),
		)
	}

	if s.metrics != nil {
		s.metrics.ExchangesTotal.WithLabelValues(outcome).Inc()
		s.metrics.ExchangeDuration.Observe(time.Since(start).Seconds())
		s.metrics.TranscriptTurns.Observe(float64(len(s.transcript)))
	}

	return nil
}
