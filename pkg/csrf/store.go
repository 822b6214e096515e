// Package csrf issues per-session anti-forgery tokens and verifies them in
// constant time.
package csrf

import (
	"fmt"
	"time"

	"calendar-assistant/pkg/token"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCapacity = 10000
	DefaultTTL      = 2 * time.Hour
)

// Store keeps one live token per subject. Entries expire after the TTL and
// the oldest subjects are evicted past capacity.
type Store struct {
	tokens *expirable.LRU[string, string]
}

// NewStore creates a Store. Non-positive arguments fall back to defaults.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		tokens: expirable.NewLRU[string, string](capacity, nil, ttl),
	}
}

// Issue creates a fresh token for subject, replacing any previous one.
func (s *Store) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("csrf.Store.Issue: empty subject")
	}
	tok, err := token.Generate()
	if err != nil {
		return "", fmt.Errorf("csrf.Store.Issue: %w", err)
	}
	s.tokens.Add(subject, tok)
	return tok, nil
}

// Verify reports whether presented is the live token for subject.
func (s *Store) Verify(subject, presented string) bool {
	stored, ok := s.tokens.Get(subject)
	if !ok {
		return false
	}
	return token.Equal(stored, presented)
}

// Revoke forgets the token for subject.
func (s *Store) Revoke(subject string) {
	s.tokens.Remove(subject)
}
