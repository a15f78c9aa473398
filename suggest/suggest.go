// Package suggest implements prefix completion over a sorted set of
// candidate strings.
package suggest

import (
	"sort"
	"strings"
	"sync"
)

// Suggest holds a sorted list of candidate strings and answers prefix
// completion queries against it.
type Suggest struct {
	mu         sync.RWMutex
	candidates []string
}

// New builds a Suggest from candidates, sorting a copy of them.
func New(candidates []string) *Suggest {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	return &Suggest{candidates: sorted}
}

// Replace swaps the candidate set, re-sorting a copy of items.
func (s *Suggest) Replace(items []string) {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = sorted
}

// Len returns the number of candidates.
func (s *Suggest) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

// Search returns the first candidate, in lexicographic order, that
// starts with prefix. It returns ("", false) if no candidate matches.
func (s *Suggest) Search(prefix string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := sort.Search(len(s.candidates), func(i int) bool {
		return s.candidates[i] >= prefix
	})
	if i < len(s.candidates) && strings.HasPrefix(s.candidates[i], prefix) {
		return s.candidates[i], true
	}
	return "", false
}
