package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrViewNotFound is returned for unknown or evicted view IDs.
var ErrViewNotFound = errors.New("view not found")

// ViewSession is a table instance kept by the server between requests.
type ViewSession struct {
	ID        string
	Dataset   string
	ClusterID int64
	Table     *Table
	CreatedAt time.Time
	LastUsed  time.Time
}

// ViewStore holds server-side table instances. Each Table is still single-writer;
// the store serialises requests that touch the same session.
type ViewStore struct {
	mu       sync.Mutex
	sessions map[string]*ViewSession
	now      func() time.Time
}

func NewViewStore() *ViewStore {
	return &ViewStore{
		sessions: make(map[string]*ViewSession),
		now:      time.Now,
	}
}

// Create registers a new session around t and returns a snapshot of it.
func (s *ViewStore) Create(dataset string, clusterID int64, t *Table) ViewSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	vs := &ViewSession{
		ID:        uuid.New().String(),
		Dataset:   dataset,
		ClusterID: clusterID,
		Table:     t,
		CreatedAt: now,
		LastUsed:  now,
	}
	s.sessions[vs.ID] = vs
	return *vs
}

// Update runs fn with exclusive access to the session. fn may mutate the session's table and cluster.
func (s *ViewStore) Update(id string, fn func(*ViewSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.sessions[id]
	if !ok {
		return ErrViewNotFound
	}
	vs.LastUsed = s.now()
	return fn(vs)
}

// Delete drops a session.
func (s *ViewStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrViewNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than maxIdle and returns how many were removed.
func (s *ViewStore) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, vs := range s.sessions {
		if vs.LastUsed.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
