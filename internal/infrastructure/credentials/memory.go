package credentials

import (
	"context"
	"fmt"
	"strings"
)

// MemoryStore is a fixed username to bcrypt-hash table. Plaintext passwords
// are discarded once hashed.
type MemoryStore struct {
	hashes map[string][]byte
}

// NewMemoryStore hashes every password in users at the given bcrypt cost.
func NewMemoryStore(users map[string]string, cost int) (*MemoryStore, error) {
	s := &MemoryStore{hashes: make(map[string][]byte, len(users))}
	for username, password := range users {
		if username == "" || password == "" {
			return nil, fmt.Errorf("credential for %q: username and password must not be empty", username)
		}
		h, err := Hash(password, cost)
		if err != nil {
			return nil, fmt.Errorf("credential for %q: %w", username, err)
		}
		s.hashes[username] = h
	}
	return s, nil
}

// ParseUsers decodes "user:pass,user2:pass2" into a username to password map.
func ParseUsers(list string) (map[string]string, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		username, password, ok := strings.Cut(pair, ":")
		if !ok || username == "" || password == "" {
			return nil, fmt.Errorf("invalid credential entry %q, want user:password", pair)
		}
		if _, dup := users[username]; dup {
			return nil, fmt.Errorf("duplicate credential for %q", username)
		}
		users[username] = password
	}
	return users, nil
}

// Verify reports whether password matches the stored hash for username.
// Unknown users cost the same bcrypt comparison as wrong passwords.
func (s *MemoryStore) Verify(_ context.Context, username, password string) (bool, error) {
	return Compare(s.hashes[username], password)
}

// Len reports the number of stored credentials.
func (s *MemoryStore) Len() int { return len(s.hashes) }
