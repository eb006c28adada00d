package alert

import "context"

// Store is the persistence interface for alert records.
// List returns alerts in ingestion order; implementations must preserve it.
// UpdateStatus mutates the one record in place and must not affect ordering.
type Store interface {
	List(ctx context.Context) ([]Alert, error)
	Get(ctx context.Context, id string) (*Alert, bool, error)
	Put(ctx context.Context, al *Alert) error
	UpdateStatus(ctx context.Context, id string, status Status) (*Alert, error)
}
