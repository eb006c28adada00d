package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockStore implements Store for testing.
type mockStore struct {
	mu     sync.Mutex
	order  []string
	byID   map[string]*Alert
	putErr error
	getErr error
}

func newMockStore() *mockStore {
	return &mockStore{byID: make(map[string]*Alert)}
}

func (m *mockStore) List(_ context.Context) ([]Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Alert, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out, nil
}

func (m *mockStore) Get(_ context.Context, id string) (*Alert, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, false, nil
	}
	cp := *a
	return &cp, true, nil
}

func (m *mockStore) Put(_ context.Context, al *Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	if _, ok := m.byID[al.ID]; !ok {
		m.order = append(m.order, al.ID)
	}
	cp := *al
	m.byID[al.ID] = &cp
	return nil
}

func (m *mockStore) UpdateStatus(_ context.Context, id string, status Status) (*Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = status
	cp := *a
	return &cp, nil
}

// mockNotifier records notified alerts.
type mockNotifier struct {
	mu       sync.Mutex
	notified []Alert
	done     chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 8)}
}

func (m *mockNotifier) Notify(_ context.Context, al *Alert) error {
	m.mu.Lock()
	m.notified = append(m.notified, *al)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notified)
}

func validAlert() *Alert {
	return &Alert{
		Severity:    SeverityMedium,
		Type:        "Phishing",
		Source:      "external@fake.com",
		Target:      "user@company.com",
		ObservedAt:  time.Now(),
		Description: "Suspicious email with credential harvesting link",
	}
}

func TestIngest_AssignsIDAndDefaultsStatus(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	svc := NewService(store, nil, nil, nil)

	got, err := svc.Ingest(context.Background(), validAlert())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if got.ID == "" {
		t.Error("expected assigned ID")
	}
	if got.Status != StatusOpen {
		t.Errorf("Status = %q, want %q", got.Status, StatusOpen)
	}

	stored, ok, _ := store.Get(context.Background(), got.ID)
	if !ok {
		t.Fatal("expected alert in store")
	}
	if stored.Type != "Phishing" {
		t.Errorf("Type = %q, want %q", stored.Type, "Phishing")
	}
}

func TestIngest_RejectsUnknownSeverity(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	svc := NewService(store, nil, nil, nil)

	al := validAlert()
	al.Severity = "urgent"

	if _, err := svc.Ingest(context.Background(), al); err == nil {
		t.Fatal("expected validation error for unknown severity")
	}
	if alerts, _ := store.List(context.Background()); len(alerts) != 0 {
		t.Errorf("store has %d alerts, want 0 (rejected records must not be stored)", len(alerts))
	}
}

func TestIngest_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	svc := NewService(newMockStore(), nil, nil, nil)

	al := validAlert()
	_, err := svc.Ingest(context.Background(), al)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if al.ID != "" {
		t.Errorf("input ID = %q, want unchanged empty string", al.ID)
	}
}

func TestIngest_NotifiesCritical(t *testing.T) {
	t.Parallel()

	notifier := newMockNotifier()
	svc := NewService(newMockStore(), notifier, nil, nil)

	al := validAlert()
	al.Severity = SeverityCritical

	if _, err := svc.Ingest(context.Background(), al); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for critical alert notification")
	}
	if notifier.count() != 1 {
		t.Errorf("notified %d alerts, want 1", notifier.count())
	}
}

func TestIngest_DoesNotNotifyNonCritical(t *testing.T) {
	t.Parallel()

	notifier := newMockNotifier()
	svc := NewService(newMockStore(), notifier, nil, nil)

	if _, err := svc.Ingest(context.Background(), validAlert()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	select {
	case <-notifier.done:
		t.Fatal("medium severity alert must not notify")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	svc := NewService(store, nil, nil, nil)
	accepted, _ := svc.Ingest(context.Background(), validAlert())

	got, err := svc.UpdateStatus(context.Background(), accepted.ID, StatusInvestigating)
	if err != nil {
		t.Fatalf("UpdateStatus open->investigating: %v", err)
	}
	if got.Status != StatusInvestigating {
		t.Errorf("Status = %q, want %q", got.Status, StatusInvestigating)
	}

	// reopen
	if _, err := svc.UpdateStatus(context.Background(), accepted.ID, StatusOpen); err != nil {
		t.Fatalf("UpdateStatus investigating->open: %v", err)
	}

	// resolve via investigating
	_, _ = svc.UpdateStatus(context.Background(), accepted.ID, StatusInvestigating)
	if _, err := svc.UpdateStatus(context.Background(), accepted.ID, StatusResolved); err != nil {
		t.Fatalf("UpdateStatus investigating->resolved: %v", err)
	}

	// resolved is terminal
	_, err = svc.UpdateStatus(context.Background(), accepted.ID, StatusOpen)
	if !errors.Is(err, ErrBadTransition) {
		t.Errorf("reopening resolved: err = %v, want ErrBadTransition", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	svc := NewService(store, nil, nil, nil)
	_, _ = svc.Ingest(context.Background(), validAlert())

	_, err := svc.UpdateStatus(context.Background(), "nonexistent", StatusInvestigating)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// store unchanged
	alerts, _ := store.List(context.Background())
	if len(alerts) != 1 || alerts[0].Status != StatusOpen {
		t.Error("store must be unchanged after NotFound update")
	}
}

func TestUpdateStatus_UnknownStatusValue(t *testing.T) {
	t.Parallel()

	svc := NewService(newMockStore(), nil, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), "whatever", Status("closed"))
	if !errors.Is(err, ErrBadTransition) {
		t.Fatalf("err = %v, want ErrBadTransition for unknown status value", err)
	}
}

func TestUpdateStatus_SkipsInvestigating(t *testing.T) {
	t.Parallel()

	svc := NewService(newMockStore(), nil, nil, nil)
	accepted, _ := svc.Ingest(context.Background(), validAlert())

	_, err := svc.UpdateStatus(context.Background(), accepted.ID, StatusResolved)
	if !errors.Is(err, ErrBadTransition) {
		t.Fatalf("open->resolved: err = %v, want ErrBadTransition", err)
	}
}
