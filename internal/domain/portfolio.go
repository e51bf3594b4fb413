package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSessionNotFound is returned when a session id is not in the portfolio.
var ErrSessionNotFound = errors.New("session not found")

// Portfolio maps session ids to their histories. It is owned by whoever
// loaded it and passed explicitly; there is no process-wide instance.
type Portfolio struct {
	sessions map[string]*SessionHistory
}

func NewPortfolio() *Portfolio {
	return &Portfolio{sessions: make(map[string]*SessionHistory)}
}

// Get returns the history for id or ErrSessionNotFound.
func (p *Portfolio) Get(id string) (*SessionHistory, error) {
	h, ok := p.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return h, nil
}

// GetOrCreate returns the history for id, creating an empty one on a miss.
func (p *Portfolio) GetOrCreate(id string) *SessionHistory {
	if p.sessions == nil {
		p.sessions = make(map[string]*SessionHistory)
	}
	h, ok := p.sessions[id]
	if !ok {
		h = NewSessionHistory(id)
		p.sessions[id] = h
	}
	return h
}

// Add inserts h, replacing any history with the same id.
func (p *Portfolio) Add(h *SessionHistory) {
	if p.sessions == nil {
		p.sessions = make(map[string]*SessionHistory)
	}
	p.sessions[h.ID] = h
}

// Remove drops the history for id. Unknown ids are ignored.
func (p *Portfolio) Remove(id string) {
	delete(p.sessions, id)
}

// IDs returns session ids ordered by start time, then id.
func (p *Portfolio) IDs() []string {
	ids := make([]string, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.sessions[ids[i]], p.sessions[ids[j]]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.Before(b.StartedAt)
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (p *Portfolio) Len() int {
	return len(p.sessions)
}
