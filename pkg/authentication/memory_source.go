package authentication

import (
	"context"
	"sync"
)

// MemorySource provides password hashes from an in-memory map
type MemorySource struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemorySource creates a new MemorySource with optional initial data
func NewMemorySource(initial map[string]string) *MemorySource {
	hashes := make(map[string]string, len(initial))
	for user, hash := range initial {
		hashes[user] = hash
	}
	return &MemorySource{
		hashes: hashes,
	}
}

// LookupHash implements Source
func (s *MemorySource) LookupHash(ctx context.Context, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, ok := s.hashes[username]
	if !ok {
		return "", ErrUsernameNotFound
	}
	return hash, nil
}

// SetHash adds or updates a user's hash
func (s *MemorySource) SetHash(username, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[username] = hash
}

// RemoveUser removes a user from memory
func (s *MemorySource) RemoveUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, username)
}
