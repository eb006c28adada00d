package assistant

import (
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"
)

// Manager owns the live sessions, one per console. Sessions have no
// persistence requirement: they live exactly as long as the process.
type Manager struct {
	provider Provider
	system   SystemFunc
	timeout  time.Duration
	logger   log.Logger
	metrics  *Metrics

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. system and metrics may be nil.
func NewManager(provider Provider, system SystemFunc, timeout time.Duration, logger log.Logger, metrics *Metrics) *Manager {
	if provider == nil {
		panic(xerrors.New("analysis provider is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		provider: provider,
		system:   system,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new idle session and returns it.
func (m *Manager) Create() *Session {
	id := ulid.Make().String()
	s := NewSession(id, m.provider, m.system, m.timeout, m.logger.With("session_id", id), m.metrics)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsTotal.Inc()
	}
	return s
}

// Get retrieves a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}
