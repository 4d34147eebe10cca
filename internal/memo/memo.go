// Package memo remembers the guess recommended for a candidate set, keyed by
// a fingerprint of the set's contents.
package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
)

// Store maps candidate-set fingerprints to recommended guesses. Put keeps
// the first value recorded for a key.
type Store interface {
	Get(key string) (string, bool)
	Put(key, word string) error
}

// Fingerprint is the hex SHA-256 of the sorted words concatenated, so equal
// sets give equal keys whatever order they were built in.
func Fingerprint(words []string) string {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	hash := sha256.Sum256([]byte(strings.Join(sorted, "")))
	return hex.EncodeToString(hash[:])
}

// MemoryStore is a Store that lives for the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	answers map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{answers: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.answers[key]
	return w, ok
}

func (s *MemoryStore) Put(key, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[key]; !ok {
		s.answers[key] = word
	}
	return nil
}

// Recommendations lists the distinct recorded guesses, sorted.
func (s *MemoryStore) Recommendations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctValues(s.answers)
}

func distinctValues(m map[string]string) []string {
	seen := make(map[string]struct{}, len(m))
	ret := make([]string, 0, len(m))
	for _, w := range m {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		ret = append(ret, w)
	}
	slices.Sort(ret)
	return ret
}
