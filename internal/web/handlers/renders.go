package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/kozaktomas/slide-sheets/internal/layout"
)

// Render is a finished PDF kept for download until it expires.
type Render struct {
	ID        string         `json:"id"`
	Title     string         `json:"title,omitempty"`
	Size      int            `json:"size"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Report    *layout.Report `json:"report"`

	pdf []byte
}

// PDF returns the rendered document.
func (r *Render) PDF() []byte { return r.pdf }

// RenderStore keeps finished renders in memory for a limited time.
type RenderStore struct {
	renders map[string]*Render
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRenderStore creates a store whose renders live for ttl.
func NewRenderStore(ttl time.Duration) *RenderStore {
	return &RenderStore{
		renders: make(map[string]*Render),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Put stores a rendered document under its report id.
func (s *RenderStore) Put(pdf []byte, report *layout.Report) *Render {
	now := s.now()
	r := &Render{
		ID:        report.ID,
		Title:     report.Title,
		Size:      len(pdf),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		Report:    report,
		pdf:       pdf,
	}

	s.mu.Lock()
	s.renders[r.ID] = r
	s.mu.Unlock()

	return r
}

// Get retrieves a render by ID. Expired renders are not returned.
func (s *RenderStore) Get(id string) *Render {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.renders[id]
	if !ok || !s.now().Before(r.ExpiresAt) {
		return nil
	}
	return r
}

// Delete removes a render and reports whether it existed.
func (s *RenderStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.renders[id]
	delete(s.renders, id)
	return ok
}

// Len returns the number of stored renders, expired ones included.
func (s *RenderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.renders)
}

// Cleanup drops expired renders and returns how many were removed.
func (s *RenderStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, r := range s.renders {
		if !now.Before(r.ExpiresAt) {
			delete(s.renders, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until Stop is called.
func (s *RenderStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Cleanup(); n > 0 {
					log.Printf("Removed %d expired renders", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine.
func (s *RenderStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
