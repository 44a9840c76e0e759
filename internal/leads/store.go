package leads

import (
	"strings"
	"sync"

	"prospector-engine/internal/domain"
)

// Store is the in-memory lead table for one session. Rows are keyed by
// lowercased email, first writer wins, and insertion order is preserved.
// Leads never persist across engine restarts.
type Store struct {
	mu      sync.Mutex
	rows    []domain.Lead
	byEmail map[string]struct{}
}

func NewStore() *Store {
	return &Store{byEmail: make(map[string]struct{})}
}

// Upsert adds a lead unless the email is empty or already present. Later
// duplicates are dropped silently, never overwritten.
func (s *Store) Upsert(company, email, website, phone, source string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return false
	}
	s.byEmail[key] = struct{}{}
	s.rows = append(s.rows, domain.Lead{
		Company: company,
		Email:   email,
		Website: website,
		Phone:   phone,
		Source:  source,
	})
	return true
}

// Has reports whether email is already stored, case-insensitively.
func (s *Store) Has(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Snapshot returns the rows in insertion order.
func (s *Store) Snapshot() []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Lead, len(s.rows))
	copy(out, s.rows)
	return out
}

// Emails returns just the addresses, in store order.
func (s *Store) Emails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.rows))
	for _, l := range s.rows {
		out = append(out, l.Email)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Reset clears the table. Only an explicit reset empties the store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.byEmail = make(map[string]struct{})
}
