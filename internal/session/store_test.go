// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for deterministic tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeRefresher struct {
	err   error
	calls int
}

func (r *fakeRefresher) RefreshToken(ctx context.Context) error {
	r.calls++
	return r.err
}

func admin() Identity {
	return Identity{ID: "u1", Name: "Ada Admin", Email: "admin@example.com", Role: "admin"}
}

// checkInvariant verifies Authenticated == (User != nil) and that
// LastActivity is set exactly while authenticated.
func checkInvariant(t *testing.T, s State) {
	t.Helper()
	if s.Authenticated != (s.User != nil) {
		t.Errorf("invariant violated: Authenticated=%v, User=%v", s.Authenticated, s.User)
	}
	if s.Authenticated && s.LastActivity.IsZero() {
		t.Error("invariant violated: authenticated with zero LastActivity")
	}
	if !s.Authenticated && !s.LastActivity.IsZero() {
		t.Error("invariant violated: unauthenticated with LastActivity set")
	}
}

// =============================================================================
// TRANSITION TESTS
// =============================================================================

func TestStore_SetCredentials(t *testing.T) {
	clk := newFakeClock()
	s := NewStore(Config{Now: clk.Now})

	checkInvariant(t, s.Snapshot())

	s.SetCredentials(admin(), "session-marker")

	st := s.Snapshot()
	checkInvariant(t, st)
	if !st.Authenticated {
		t.Fatal("should be authenticated after SetCredentials")
	}
	if st.User.Role != "admin" {
		t.Errorf("role = %q, want admin", st.User.Role)
	}
	if !st.LastActivity.Equal(clk.Now()) {
		t.Errorf("LastActivity = %v, want %v", st.LastActivity, clk.Now())
	}
}

func TestStore_UpdateActivity(t *testing.T) {
	clk := newFakeClock()
	s := NewStore(Config{Now: clk.Now})

	// No-op while unauthenticated.
	s.UpdateActivity()
	checkInvariant(t, s.Snapshot())

	s.SetCredentials(admin(), "")
	clk.Advance(5 * time.Minute)
	s.UpdateActivity()

	if !s.LastActivity().Equal(clk.Now()) {
		t.Errorf("LastActivity = %v, want %v", s.LastActivity(), clk.Now())
	}
}

func TestStore_Logout_Idempotent(t *testing.T) {
	s := NewStore(Config{})
	s.SetCredentials(admin(), "tok")

	s.Logout()
	first := s.Snapshot()
	checkInvariant(t, first)
	if first.Authenticated {
		t.Fatal("should be logged out")
	}

	// A second logout observes cleared state and must behave identically.
	s.Logout()
	second := s.Snapshot()
	checkInvariant(t, second)
	if second != first {
		t.Errorf("second logout state = %+v, want %+v", second, first)
	}
}

func TestStore_Logout_SideEffects(t *testing.T) {
	wiped := 0
	redirected := false
	s := NewStore(Config{
		OnWipe: []func() error{
			func() error { wiped++; return errors.New("cookie jar unavailable") },
			func() error { panic("storage backend gone") },
			func() error { wiped++; return nil },
		},
		OnRedirect: func() { redirected = true },
	})
	s.SetCredentials(admin(), "tok")

	s.Logout()

	// One hook errored and one panicked; the rest must still run.
	if wiped != 2 {
		t.Errorf("wipe hooks run = %d, want 2", wiped)
	}
	if !redirected {
		t.Error("redirect should run after wipes")
	}
	checkInvariant(t, s.Snapshot())
}

// =============================================================================
// REFRESH TESTS
// =============================================================================

func TestStore_Refresh_Success(t *testing.T) {
	clk := newFakeClock()
	r := &fakeRefresher{}
	s := NewStore(Config{Now: clk.Now, Refresher: r})
	s.SetCredentials(admin(), "tok")

	clk.Advance(time.Minute)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if r.calls != 1 {
		t.Errorf("refresher calls = %d, want 1", r.calls)
	}
	if !s.LastActivity().Equal(clk.Now()) {
		t.Error("Refresh should advance LastActivity")
	}
	if !s.IsAuthenticated() {
		t.Error("Refresh success should keep the session")
	}
}

func TestStore_Refresh_FailureLogsOut(t *testing.T) {
	r := &fakeRefresher{err: errors.New("refresh rejected")}
	redirected := false
	s := NewStore(Config{Refresher: r, OnRedirect: func() { redirected = true }})
	s.SetCredentials(admin(), "tok")

	err := s.Refresh(context.Background())
	if err == nil {
		t.Fatal("Refresh should surface the gateway error")
	}

	st := s.Snapshot()
	checkInvariant(t, st)
	if st.Authenticated {
		t.Error("failed refresh must clear the session")
	}
	if !redirected {
		t.Error("failed refresh must redirect to login")
	}
}

func TestStore_Refresh_NoRefresher(t *testing.T) {
	s := NewStore(Config{})
	if err := s.Refresh(context.Background()); !errors.Is(err, ErrNoRefresher) {
		t.Errorf("err = %v, want ErrNoRefresher", err)
	}
}

// =============================================================================
// OBSERVER TESTS
// =============================================================================

func TestStore_Subscribe(t *testing.T) {
	s := NewStore(Config{})

	var seen []bool
	unsubscribe := s.Subscribe(func(st State) {
		seen = append(seen, st.Authenticated)
	})

	s.SetCredentials(admin(), "")
	s.Logout()
	unsubscribe()
	s.SetCredentials(admin(), "")

	if len(seen) != 2 || seen[0] != true || seen[1] != false {
		t.Errorf("seen = %v, want [true false]", seen)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore(Config{})
	s.SetCredentials(admin(), "")

	snap := s.Snapshot()
	snap.User.Role = "customer"

	if s.Snapshot().User.Role != "admin" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestStore_Restore(t *testing.T) {
	s := NewStore(Config{})
	u := admin()
	s.Restore(State{User: &u, Authenticated: true, LastActivity: time.Now()})

	if !s.IsAuthenticated() {
		t.Error("valid saved state should restore")
	}
}

func TestStore_Restore_RejectsInvalid(t *testing.T) {
	invalid := []State{
		{},
		{Authenticated: true},                        // no user
		{User: &Identity{ID: "x"}},                   // not authenticated
		{User: &Identity{ID: "x"}, Authenticated: true},    // no activity timestamp
	}

	for i, st := range invalid {
		s := NewStore(Config{})
		s.Restore(st)
		if s.IsAuthenticated() {
			t.Errorf("case %d: invalid state %+v should not restore", i, st)
		}
		checkInvariant(t, s.Snapshot())
	}
}
