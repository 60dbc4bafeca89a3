// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// Identity is the authenticated operator.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// State is a snapshot of the authentication state.
//
// Invariant: Authenticated == (User != nil), and LastActivity is non-zero
// exactly when Authenticated is true.
type State struct {
	User          *Identity
	Token         string
	Authenticated bool
	LastActivity  time.Time
}

// Refresher renews the session against the auth gateway.
type Refresher interface {
	RefreshToken(ctx context.Context) error
}

// =============================================================================
// STORE
// =============================================================================

// Store is the single-writer, observable record of authentication state.
// All mutation goes through SetCredentials, UpdateActivity, Logout and
// Refresh; readers take snapshots.
type Store struct {
	mu    sync.Mutex
	state State

	now       func() time.Time
	refresher Refresher

	// Side effects of logout. Each wipe is best-effort: a failing wipe
	// never prevents the remaining ones or the redirect from running.
	wipes    []func() error
	redirect func()

	subs   map[int]func(State)
	nextID int
}

// Config holds construction options for the store.
type Config struct {
	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	// Refresher is the gateway used by Refresh. Optional.
	Refresher Refresher

	// OnWipe are credential-cleanup hooks run during Logout
	// (session file removal, cookie jar clearing).
	OnWipe []func() error

	// OnRedirect forces navigation to the login entry point after Logout.
	OnRedirect func()
}

// NewStore creates an empty (unauthenticated) session store.
func NewStore(cfg Config) *Store {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:       now,
		refresher: cfg.Refresher,
		wipes:     cfg.OnWipe,
		redirect:  cfg.OnRedirect,
		subs:      make(map[int]func(State)),
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SetCredentials records a successful authentication.
// The token is optional: the backend keeps the real credential in an
// HTTP-only cookie, so the token is only a local logged-in marker.
func (s *Store) SetCredentials(user Identity, token string) {
	s.mu.Lock()
	u := user
	s.state = State{
		User:          &u,
		Token:         token,
		Authenticated: true,
		LastActivity:  s.now(),
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// UpdateActivity records user interaction. It is a no-op while
// unauthenticated.
func (s *Store) UpdateActivity() {
	s.mu.Lock()
	if s.state.Authenticated {
		s.state.LastActivity = s.now()
	}
	s.mu.Unlock()
}

// Logout clears the session and runs the wipe and redirect side effects.
// It is idempotent: a second call observes already-cleared state and
// produces the same end state without error.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = State{}
	snapshot := s.snapshotLocked()
	wipes := s.wipes
	redirect := s.redirect
	s.mu.Unlock()

	for _, wipe := range wipes {
		runBestEffort(wipe)
	}
	if redirect != nil {
		runBestEffort(func() error { redirect(); return nil })
	}

	s.notify(snapshot)
}

// Refresh silently renews the session via the auth gateway. On success the
// activity timestamp advances; on failure the session is fully cleared as
// if Logout had been called, and the gateway error is returned. The store
// does not retry internally.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refresher := s.refresher
	s.mu.Unlock()

	if refresher == nil {
		return ErrNoRefresher
	}

	if err := refresher.RefreshToken(ctx); err != nil {
		s.Logout()
		return err
	}

	s.UpdateActivity()
	return nil
}

// =============================================================================
// READ SIDE
// =============================================================================

// Snapshot returns a copy of the current state. The embedded Identity is
// copied so callers cannot mutate the store through it.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether an operator is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// LastActivity returns the most recent observed interaction time.
func (s *Store) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastActivity
}

func (s *Store) snapshotLocked() State {
	snapshot := s.state
	if s.state.User != nil {
		u := *s.state.User
		snapshot.User = &u
	}
	return snapshot
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn to be called after every state transition.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(snapshot State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore rehydrates a previously persisted session. Used once at startup,
// before any route decision. A state that violates the store invariant is
// ignored.
func (s *Store) Restore(state State) {
	if state.User == nil || !state.Authenticated || state.LastActivity.IsZero() {
		return
	}
	s.mu.Lock()
	u := *state.User
	state.User = &u
	s.state = state
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// runBestEffort runs fn, swallowing both errors and panics. Logout side
// effects must never prevent each other from being attempted.
func runBestEffort(fn func() error) {
	defer func() { _ = recover() }()
	_ = fn()
}
