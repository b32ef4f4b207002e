// Package memory is a process-local snapshot store for tests and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/document"
)

// Store keeps encoded documents so callers never share state with it.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewStore() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, userID string) (*ledger.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.docs[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return document.Decode(data)
}

func (s *Store) Save(ctx context.Context, userID string, snapshot *ledger.Snapshot) error {
	data, err := document.Encode(snapshot, time.Now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[userID] = data
	return nil
}
