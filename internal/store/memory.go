package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// Memory is an in-process Store used by tests and the dry-run onboarding path.
type Memory struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]profile.Map
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[uuid.UUID]profile.Map)}
}

func (s *Memory) GetMap(_ context.Context, userID uuid.UUID) (profile.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := make(profile.Map, len(s.rows[userID]))
	for key, score := range s.rows[userID] {
		m[key] = score
	}
	return m, nil
}

func (s *Memory) Upsert(_ context.Context, userID uuid.UUID, key dimension.Key, score profile.Score) error {
	score = score.Clamped()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.rows[userID]
	if user == nil {
		user = make(profile.Map)
		s.rows[userID] = user
	}

	// Preserve the user-set dealbreaker flag across extraction overwrites.
	if prev, ok := user[key]; ok {
		score.Dealbreaker = prev.Dealbreaker
	}
	user[key] = score
	return nil
}

func (s *Memory) SetDealbreaker(_ context.Context, userID uuid.UUID, key dimension.Key, dealbreaker bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.rows[userID]
	if user == nil {
		user = make(profile.Map)
		s.rows[userID] = user
	}

	score := user[key]
	score.Dealbreaker = dealbreaker
	user[key] = score
	return nil
}

func (s *Memory) ListUsers(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
