package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// Notifier delivers out-of-band notifications for noteworthy alerts.
type Notifier interface {
	Notify(ctx context.Context, al *Alert) error
}

// Service is the business boundary for alert operations.
type Service struct {
	store    Store
	notifier Notifier
	logger   log.Logger
	metrics  *Metrics
}

// NewService creates a new alert service. notifier and metrics may be nil.
func NewService(store Store, notifier Notifier, logger log.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Ingest validates and stores an already-structured alert record, assigning
// its id. Records with unknown severity or status values are rejected, not
// quarantined into the store.
func (s *Service) Ingest(ctx context.Context, al *Alert) (*Alert, error) {
	if err := al.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.IngestsTotal.WithLabelValues("rejected").Inc()
		}
		return nil, fmt.Errorf("validate alert: %w", err)
	}

	cp := *al
	cp.ID = ulid.Make().String()
	if cp.Status == "" {
		cp.Status = StatusOpen
	}

	if err := s.store.Put(ctx, &cp); err != nil {
		if s.metrics != nil {
			s.metrics.IngestsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IngestsTotal.WithLabelValues("accepted").Inc()
		s.metrics.AlertsBySeverity.WithLabelValues(string(cp.Severity)).Inc()
	}

	s.logger.Info(ctx, "alert ingested",
		"alert_id", cp.ID,
		"severity", cp.Severity,
		"type", cp.Type,
	)

	// critical alerts page out immediately, off the request path
	if s.notifier != nil && cp.Severity == SeverityCritical {
		go s.notify(context.WithoutCancel(ctx), cp)
	}

	return &cp, nil
}

// List returns all alerts in ingestion order.
func (s *Service) List(ctx context.Context) ([]Alert, error) {
	return s.store.List(ctx)
}

// Get retrieves a single alert by id.
func (s *Service) Get(ctx context.Context, id string) (*Alert, bool, error) {
	return s.store.Get(ctx, id)
}

// UpdateStatus moves an alert through its lifecycle. It fails with
// ErrNotFound for unknown ids and ErrBadTransition for moves the lifecycle
// does not permit; in both cases the store is left unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Alert, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTransition, err)
	}

	existing, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if !CanTransition(existing.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, existing.Status, status)
	}

	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.StatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	}

	s.logger.Info(ctx, "alert status updated",
		"alert_id", id,
		"from", existing.Status,
		"to", status,
	)

	return updated, nil
}

func (s *Service) notify(ctx context.Context, al Alert) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.notifier.Notify(ctx, &al); err != nil {
		s.logger.Error(ctx, err, "alert notification failed", "alert_id", al.ID)
	}
}
