// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/morganforge/banktui/internal/util"
)

// =============================================================================
// SESSION FILE
// =============================================================================

// ErrNoSavedSession indicates no session file exists to restore.
var ErrNoSavedSession = errors.New("session: no saved session")

// persistedSession is the on-disk form of the auth partition. It is the
// only console state written to durable storage. The token is sealed at
// rest; the real credential stays in the backend's HTTP-only cookie.
type persistedSession struct {
	User         Identity  `json:"user"`
	SealedToken  string    `json:"sealed_token,omitempty"`
	LastActivity time.Time `json:"last_activity"`
	SavedAt      time.Time `json:"saved_at"`
}

// FileStore persists the session to ~/.banktui/session.json.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at ~/.banktui.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreWithDir(filepath.Join(homeDir, ".banktui"))
}

// NewFileStoreWithDir creates a file store rooted at a custom directory.
func NewFileStoreWithDir(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) sessionPath() string {
	return filepath.Join(f.dir, "session.json")
}

// Save writes the auth partition of the given state. Saving an
// unauthenticated state clears the file instead.
func (f *FileStore) Save(state State) error {
	if !state.Authenticated || state.User == nil {
		return f.Clear()
	}

	p := persistedSession{
		User:         *state.User,
		LastActivity: state.LastActivity,
		SavedAt:      time.Now(),
	}

	if state.Token != "" {
		key, err := f.sealKey()
		if err != nil {
			return fmt.Errorf("session: deriving seal key: %w", err)
		}
		sealed, err := seal(key, state.Token)
		if err != nil {
			return fmt.Errorf("session: sealing token: %w", err)
		}
		p.SealedToken = sealed
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encoding session: %w", err)
	}
	return util.AtomicWriteFile(f.sessionPath(), data, 0600)
}

// Load restores a previously saved session. The file's ownership and
// permissions are verified before its contents are trusted.
func (f *FileStore) Load() (State, error) {
	path := f.sessionPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return State{}, ErrNoSavedSession
		}
		return State{}, err
	}

	if err := verifyOwner(path); err != nil {
		return State{}, fmt.Errorf("session: refusing session file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}

	var p persistedSession
	if err := json.Unmarshal(data, &p); err != nil {
		return State{}, fmt.Errorf("session: decoding session: %w", err)
	}
	if p.User.ID == "" {
		return State{}, ErrNoSavedSession
	}

	token := ""
	if p.SealedToken != "" {
		key, err := f.sealKey()
		if err != nil {
			return State{}, fmt.Errorf("session: deriving seal key: %w", err)
		}
		token, err = unseal(key, p.SealedToken)
		if err != nil {
			// A token that no longer opens (seed rotated, file copied from
			// another machine) invalidates the whole saved session.
			return State{}, fmt.Errorf("session: unsealing token: %w", err)
		}
	}

	u := p.User
	return State{
		User:          &u,
		Token:         token,
		Authenticated: true,
		LastActivity:  p.LastActivity,
	}, nil
}

// Clear removes the session file. Missing files are not an error.
func (f *FileStore) Clear() error {
	err := os.Remove(f.sessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
