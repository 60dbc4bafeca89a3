// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads the session timeouts while the console runs. Only
// the [session] table is applied live; everything else (gateway URL,
// theme) takes effect on restart, since swapping those under a signed-in
// operator would be worse than the stale value.
type Watcher struct {
	mu sync.Mutex

	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(SessionConfig)
	pending  *time.Timer
	done     chan struct{}
}

// NewWatcher watches the given config file and invokes onReload with the
// clamped [session] table after each edit. Editors replace files rather
// than write in place, so the parent directory is watched and events are
// debounced.
func NewWatcher(path string, onReload func(SessionConfig)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		debounce: 250 * time.Millisecond,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		}
	}
}

// scheduleReload resets the debounce timer; the reload runs once the
// editor has gone quiet.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		// A half-saved file is normal mid-edit; keep the old schedule.
		log.Printf("config reload skipped: %v", err)
		return
	}
	log.Printf("config reloaded: warning=%dm expiry=%dm",
		cfg.Session.WarningMins, cfg.Session.ExpireMins)
	w.onReload(cfg.Session)
}

// Close stops watching. Safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
