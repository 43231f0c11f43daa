package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/interlux/chatbot/backend/internal/config"
	"github.com/interlux/chatbot/backend/internal/model/chat"
)

// Registry owns all live sessions. It is injected into handlers and exposes
// GetOrCreate, Touch and Reap as its only mutators. Distinct sessions never
// block one another; requests for the same user serialize on the per-entry
// mutex, held for one full pipeline execution to avoid lost context updates.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	timeout      time.Duration
	reapInterval time.Duration
	highWater    int
}

type entry struct {
	mu      sync.Mutex
	session *chat.Session
}

// NewRegistry creates an empty registry with the configured lifetime policy.
func NewRegistry(cfg config.SessionConfig) *Registry {
	return &Registry{
		sessions:     make(map[string]*entry),
		timeout:      cfg.Timeout,
		reapInterval: cfg.ReapInterval,
		highWater:    cfg.HighWater,
	}
}

// GetOrCreate returns the session for userID, creating an empty one the first
// time. Idempotent under concurrent calls: the second writer finds the entry
// created by the first. Access refreshes LastActivity, and once the table
// grows past the high-water mark an opportunistic reap runs inline.
func (r *Registry) GetOrCreate(userID string) *chat.Session {
	r.mu.RLock()
	e, ok := r.sessions[userID]
	size := len(r.sessions)
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		if e, ok = r.sessions[userID]; !ok {
			e = &entry{session: chat.NewSession(userID)}
			r.sessions[userID] = e
		}
		size = len(r.sessions)
		r.mu.Unlock()
	}

	e.mu.Lock()
	e.session.LastActivity = time.Now().UTC()
	e.mu.Unlock()

	if size > r.highWater {
		r.Reap(time.Now().UTC())
	}

	return e.session
}

// Lock returns the session for userID with its per-session mutex held.
// The caller must invoke the returned release function when the pipeline
// finishes.
func (r *Registry) Lock(userID string) (*chat.Session, func()) {
	r.GetOrCreate(userID)

	r.mu.RLock()
	e := r.sessions[userID]
	r.mu.RUnlock()
	if e == nil {
		// Reaped between GetOrCreate and here; recreate.
		return r.Lock(userID)
	}

	e.mu.Lock()
	return e.session, e.mu.Unlock
}

// Touch refreshes the session's activity timestamp. The caller must hold the
// session's lock, as the pipeline does for its whole run.
func (r *Registry) Touch(s *chat.Session) {
	s.LastActivity = time.Now().UTC()
}

// Reap removes sessions idle past the timeout, scanning the whole table.
// LastActivity is only read or written under the entry mutex, so the scan
// try-locks each entry; one that is locked is mid-pipeline and therefore
// live, and is skipped rather than waited on. Returns the number of
// sessions removed.
func (r *Registry) Reap(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.session.LastActivity) > r.timeout {
			delete(r.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	if removed > 0 {
		log.Printf("[session] reaped %d expired sessions", removed)
	}
	return removed
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Run drives the interval reaper until ctx is cancelled, bounding idle-table
// growth independently of request traffic.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Reap(now.UTC())
		}
	}
}
