package pgstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/aegis/internal/alert"
	"github.com/linnemanlabs/aegis/internal/postgres"
)

// newTestStore connects to the database named by AEGIS_TEST_DATABASE_URL and
// skips the test when it is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("AEGIS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("AEGIS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	s, err := New(ctx, pool)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func testAlert() *alert.Alert {
	return &alert.Alert{
		ID:          ulid.Make().String(),
		Severity:    alert.SeverityHigh,
		Type:        "Brute Force",
		Source:      "203.0.113.42",
		Target:      "vpn.company.com",
		ObservedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:      alert.StatusOpen,
		Description: "Repeated failed SSH logins",
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := testAlert()
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: ok = false, want true")
	}
	if got.Type != want.Type || got.Severity != want.Severity || got.Status != want.Status {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.ObservedAt.Equal(want.ObservedAt) {
		t.Errorf("ObservedAt = %v, want %v", got.ObservedAt, want.ObservedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), ulid.Make().String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get: ok = true for missing id")
	}
}

func TestPutUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAlert()
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}

	a.Description = "updated description"
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put upsert: %v", err)
	}

	got, _, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "updated description" {
		t.Errorf("Description = %q, want updated", got.Description)
	}
}

func TestListOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testAlert()
	second := testAlert()
	if err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put second: %v", err)
	}

	alerts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// the table is shared across runs; check relative order of our two rows
	firstIdx, secondIdx := -1, -1
	for i, a := range alerts {
		switch a.ID {
		case first.ID:
			firstIdx = i
		case second.ID:
			secondIdx = i
		}
	}
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatal("inserted alerts missing from List")
	}
	if firstIdx > secondIdx {
		t.Errorf("List order: first at %d, second at %d, want insertion order", firstIdx, secondIdx)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAlert()
	if err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.UpdateStatus(ctx, a.ID, alert.StatusInvestigating)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != alert.StatusInvestigating {
		t.Errorf("Status = %q, want investigating", got.Status)
	}

	stored, _, _ := s.Get(ctx, a.ID)
	if stored.Status != alert.StatusInvestigating {
		t.Errorf("stored Status = %q, want investigating", stored.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateStatus(context.Background(), ulid.Make().String(), alert.StatusResolved)
	if !errors.Is(err, alert.ErrNotFound) {
		t.Fatalf("err = %v, want alert.ErrNotFound", err)
	}
}
