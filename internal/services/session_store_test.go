package services

import (
	"testing"
	"time"
)

func TestSessionStoreReusesControllerPerSession(t *testing.T) {
	created := 0
	store := NewSessionStore(time.Hour, func(id string) *RouteList {
		created++
		l := NewRouteList(&fakeAPI{})
		l.SessionID = id
		return l
	})

	a := store.Get("a")
	if store.Get("a") != a {
		t.Fatalf("same session must return the same controller")
	}
	b := store.Get("b")
	if b == a || b.SessionID != "b" {
		t.Fatalf("different sessions must not share controllers")
	}
	if created != 2 || store.Len() != 2 {
		t.Fatalf("expected 2 sessions, created=%d len=%d", created, store.Len())
	}
}

func TestSessionStoreSweepDropsIdle(t *testing.T) {
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour, func(string) *RouteList { return NewRouteList(&fakeAPI{}) })
	store.now = func() time.Time { return now }

	store.Get("old")
	store.Get("old")
	now = now.Add(50 * time.Minute)
	store.Get("new")
	store.Get("new")
	now = now.Add(20 * time.Minute)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected one idle session removed, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one live session, got %d", store.Len())
	}
}

func TestSessionStoreSweepDropsSingleVisitSessionsEarly(t *testing.T) {
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(12*time.Hour, func(string) *RouteList { return NewRouteList(&fakeAPI{}) })
	store.now = func() time.Time { return now }
	if store.FirstVisitTTL != DefaultFirstVisitTTL {
		t.Fatalf("unexpected first visit ttl %v", store.FirstVisitTTL)
	}

	for _, id := range []string{"probe-1", "probe-2", "probe-3"} {
		store.Get(id)
	}
	store.Get("browser")
	store.Get("browser")

	now = now.Add(DefaultFirstVisitTTL + time.Minute)
	if removed := store.Sweep(); removed != 3 {
		t.Fatalf("expected the three single-visit sessions removed, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("returning session must survive, len=%d", store.Len())
	}

	now = now.Add(12 * time.Hour)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("returning session should expire after ttl, removed %d", removed)
	}
}

func TestSessionStoreFirstVisitTTLCappedByTTL(t *testing.T) {
	store := NewSessionStore(time.Minute, func(string) *RouteList { return NewRouteList(&fakeAPI{}) })
	if store.FirstVisitTTL != time.Minute {
		t.Fatalf("first visit ttl should not exceed ttl, got %v", store.FirstVisitTTL)
	}
}
