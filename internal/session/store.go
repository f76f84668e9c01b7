// Package session holds per-session report state. Each session owns an
// independent model instance; nothing is shared across sessions. A changed
// upload set invalidates the whole model — builds are replaced wholesale,
// never patched or merged.
package session

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jskoglund/lottrace/internal/report"
)

// Session is one caller's report state.
type Session struct {
	mu sync.Mutex

	ID          string
	Fingerprint string
	model       *report.Model
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Model returns the current model, nil when none is built.
func (s *Session) Model() *report.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Invalidate drops the model if the new file-set fingerprint differs from
// the one it was built from. Returns true when a rebuild is needed.
func (s *Session) Invalidate(newFingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != nil && s.Fingerprint == newFingerprint {
		return false
	}
	s.model = nil
	s.Fingerprint = ""
	s.UpdatedAt = time.Now()
	return true
}

// SetModel installs a freshly built model and the fingerprint of the input
// set it came from.
func (s *Session) SetModel(m *report.Model, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
	s.Fingerprint = fingerprint
	s.UpdatedAt = time.Now()
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the session or nil.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// GetOrCreate returns the session with the given ID, creating it when
// absent. An empty ID creates a session under a fresh UUID.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			return s
		}
	} else {
		id = uuid.NewString()
	}
	now := time.Now()
	s := &Session{ID: id, CreatedAt: now, UpdatedAt: now}
	st.sessions[id] = s
	return s
}

// Delete drops a session and its model.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Cleanup removes sessions idle past the TTL.
func (st *Store) Cleanup() {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.UpdatedAt)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}

// Run evicts expired sessions periodically until the context is canceled.
func (st *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Cleanup()
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns a hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// Fingerprint derives a stable identity for an upload set from the content
// hashes of its files, independent of file order and names.
func Fingerprint(files []report.InputFile) string {
	hashes := make([]string, 0, len(files))
	for _, f := range files {
		hashes = append(hashes, ContentHashHex(f.Data))
	}
	sort.Strings(hashes)
	h := sha256.New()
	for _, hex := range hashes {
		h.Write([]byte(hex))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
