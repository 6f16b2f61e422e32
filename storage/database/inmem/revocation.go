package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/user"
)

// RevocationStore keeps revoked bearer tokens in memory. Tokens are never
// pruned; entries become harmless once the tokens they name expire.
type RevocationStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

var _ user.RevocationStore = (*RevocationStore)(nil)

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{tokens: make(map[string]struct{})}
}

func (s *RevocationStore) Add(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
}

func (s *RevocationStore) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}
