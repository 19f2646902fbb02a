package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pitchconnect/analytics-api/internal/logic"
)

var (
	_ logic.Cache = (*Memory)(nil)
	_ logic.Cache = (*Redis)(nil)
)

func TestMemory_SetGetExpire(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	if err := m.Set(ctx, "injury:p1", []byte(`{"risk":40}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := m.Get(ctx, "injury:p1")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(got) != `{"risk":40}` {
		t.Errorf("Get = %s", got)
	}

	// callers must not be able to mutate the stored value
	got[0] = 'X'
	again, _, _ := m.Get(ctx, "injury:p1")
	if string(again) != `{"risk":40}` {
		t.Errorf("stored value mutated: %s", again)
	}

	now = now.Add(time.Hour)
	if _, ok, _ := m.Get(ctx, "injury:p1"); ok {
		t.Error("entry served at its expiry instant")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d after expired read, want 0", m.Len())
	}
}

func TestMemory_DeleteAndSweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Set(ctx, "a", []byte("1"), time.Minute)
	_ = m.Set(ctx, "b", []byte("2"), time.Hour)
	_ = m.Set(ctx, "c", []byte("3"), time.Hour)

	if err := m.Delete(ctx, "c", "missing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "c"); ok {
		t.Error("deleted key still present")
	}

	now = now.Add(2 * time.Minute)
	if removed := m.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if _, ok, _ := m.Get(ctx, "b"); !ok {
		t.Error("live key swept")
	}
}
